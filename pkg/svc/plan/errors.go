package plan

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// ErrWrite is returned when a plan descriptor cannot be written to a target.
// Failures are reported per target and never roll back writes already
// completed to other targets.
var ErrWrite = fmt.Errorf("plan descriptor write failed: %w", errdefs.ErrUnavailable)
