// Package release reads release descriptors from a release tree and turns
// them into in-memory snapshots of which components are installed at which
// versions.
//
// A release tree follows the conventional hot-upgrade layout: the descriptor
// for version V of release R lives at <root>/releases/<V>/<R>.rel, and each
// component's compiled artifacts live under <root>/lib/<component>-<version>/ebin.
package release
