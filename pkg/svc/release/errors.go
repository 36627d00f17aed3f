package release

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Common errors for release descriptor operations.
var (
	// ErrReleaseInfoUnavailable is returned when a release descriptor is
	// missing or malformed. Descriptor absence is a terminal input error;
	// callers must not retry.
	ErrReleaseInfoUnavailable = fmt.Errorf("release info unavailable: %w", errdefs.ErrNotFound)

	// ErrAmbiguousVersion is returned when version discovery finds zero or
	// more than one version directory under <root>/releases.
	ErrAmbiguousVersion = fmt.Errorf("release version is ambiguous: %w", errdefs.ErrInvalidArgument)
)
