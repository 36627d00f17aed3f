// Package artifact compares and inspects a component's compiled module files.
//
// The differ walks two artifact directories and classifies each module file
// as added, removed, or changed by content hash. The inspector extracts the
// declared attributes (structural role, migration hook, dependencies) from a
// single compiled module; alternative inspectors can be injected through the
// DI runtime.
package artifact
