package artifact

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Common errors for artifact operations.
var (
	// ErrArtifactDirUnreadable is returned when an expected artifact
	// directory does not exist or cannot be listed. A missing directory for
	// a component flagged as upgraded is an error, never an implicit
	// "everything added" or "everything removed".
	ErrArtifactDirUnreadable = fmt.Errorf("artifact directory unreadable: %w", errdefs.ErrNotFound)

	// ErrUnreadableArtifact is returned when a compiled module's metadata
	// cannot be extracted. Synthesis for the owning component aborts rather
	// than guessing an instruction.
	ErrUnreadableArtifact = fmt.Errorf("artifact metadata unreadable: %w", errdefs.ErrInvalidArgument)
)
