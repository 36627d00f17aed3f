// Package fsutil provides small filesystem helpers shared by the generator:
// descriptor writing with overwrite control and path expansion.
package fsutil
