package release

import "path/filepath"

// Snapshot captures which components a release ships at a given version.
// Snapshots are rebuilt from filesystem state on every invocation and are
// never mutated after construction.
type Snapshot struct {
	// Name is the release name shared by every version of the release.
	Name string
	// Version is the release version. Versions are opaque strings compared
	// only for equality; no ordering scheme is assumed.
	Version string
	// Components maps each component name to its installed version.
	Components map[string]string
	// Root is the release tree this snapshot was read from.
	Root string
}

// descriptor is the on-disk YAML form of a release descriptor.
type descriptor struct {
	Name       string            `yaml:"name"`
	Version    string            `yaml:"version"`
	Components map[string]string `yaml:"components"`
}

// ComponentDir returns the artifact directory for a component at the given
// version inside the snapshot's release tree.
func (s Snapshot) ComponentDir(component, version string) string {
	return filepath.Join(s.Root, "lib", component+"-"+version, "ebin")
}
