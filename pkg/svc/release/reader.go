package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadSnapshot locates and parses the release descriptor for the given
// name/version under root. It fails with ErrReleaseInfoUnavailable when the
// descriptor is missing or malformed; descriptor absence is terminal and is
// never retried.
func ReadSnapshot(name, version, root string) (Snapshot, error) {
	descriptorPath := filepath.Join(root, "releases", version, name+".rel")

	data, err := os.ReadFile(descriptorPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf(
			"%w: release %q version %q: reading %s: %w",
			ErrReleaseInfoUnavailable, name, version, descriptorPath, err,
		)
	}

	var desc descriptor

	err = yaml.Unmarshal(data, &desc)
	if err != nil {
		return Snapshot{}, fmt.Errorf(
			"%w: release %q version %q: parsing %s: %w",
			ErrReleaseInfoUnavailable, name, version, descriptorPath, err,
		)
	}

	if desc.Name != name {
		return Snapshot{}, fmt.Errorf(
			"%w: descriptor %s declares release %q, expected %q",
			ErrReleaseInfoUnavailable, descriptorPath, desc.Name, name,
		)
	}

	if desc.Version != version {
		return Snapshot{}, fmt.Errorf(
			"%w: descriptor %s declares version %q, expected %q",
			ErrReleaseInfoUnavailable, descriptorPath, desc.Version, version,
		)
	}

	components := desc.Components
	if components == nil {
		components = map[string]string{}
	}

	return Snapshot{
		Name:       name,
		Version:    version,
		Components: components,
		Root:       root,
	}, nil
}

// DiscoverVersion determines the release version installed under root by
// listing <root>/releases. Exactly one version directory must exist; zero or
// several candidates fail with ErrAmbiguousVersion naming what was found, so
// callers can pass an explicit version instead.
func DiscoverVersion(root string) (string, error) {
	releasesDir := filepath.Join(root, "releases")

	entries, err := os.ReadDir(releasesDir)
	if err != nil {
		return "", fmt.Errorf(
			"%w: listing %s: %w", ErrReleaseInfoUnavailable, releasesDir, err,
		)
	}

	var versions []string

	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}

	switch len(versions) {
	case 0:
		return "", fmt.Errorf("%w: no version directories under %s", ErrAmbiguousVersion, releasesDir)
	case 1:
		return versions[0], nil
	default:
		return "", fmt.Errorf(
			"%w: multiple version directories under %s: %s",
			ErrAmbiguousVersion, releasesDir, strings.Join(versions, ", "),
		)
	}
}

// IsReleaseInfoUnavailable reports whether err stems from a missing or
// malformed release descriptor.
func IsReleaseInfoUnavailable(err error) bool {
	return errors.Is(err, ErrReleaseInfoUnavailable)
}
