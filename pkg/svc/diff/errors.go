package diff

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// ErrPreconditionViolation is returned when two snapshots cannot be compared:
// their release names differ or their versions are equal. The violation is
// reported before any diffing begins.
var ErrPreconditionViolation = fmt.Errorf(
	"snapshot comparison precondition violated: %w", errdefs.ErrFailedPrecondition,
)
