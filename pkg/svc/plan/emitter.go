package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/appupgen/appupgen/pkg/fsutil"
)

// Emitter writes rendered plans to descriptor files.
type Emitter struct {
	// Tool is the tool name recorded in the descriptor header.
	Tool string
	// Now supplies the header timestamp; it exists so tests can pin it.
	Now func() time.Time
}

// NewEmitter constructs an emitter stamping descriptors with the given tool
// name and the wall clock.
func NewEmitter(tool string) *Emitter {
	return &Emitter{Tool: tool, Now: time.Now}
}

// Render serializes a plan to the canonical descriptor text.
func (e *Emitter) Render(upgradePlan Plan) string {
	rendered := make([]string, 0, len(upgradePlan.Instructions))
	for _, instruction := range upgradePlan.Instructions {
		rendered = append(rendered, instruction.Render())
	}

	var builder strings.Builder

	fmt.Fprintf(
		&builder,
		"%%%% appup generated for %s by %s (%s)\n",
		upgradePlan.Component, e.Tool, e.Now().Format(time.RFC3339),
	)
	fmt.Fprintf(
		&builder,
		"{%q, [{%q, [%s]}], [{%q, []}]}.\n",
		upgradePlan.NewVersion, upgradePlan.OldVersion,
		strings.Join(rendered, ", "), upgradePlan.OldVersion,
	)

	return builder.String()
}

// Emit renders the plan once and writes the identical bytes to every target
// path. Every target is attempted: a failure on one target is reported with
// that target's path and does not prevent or roll back writes to the others.
func (e *Emitter) Emit(upgradePlan Plan, targets []string) error {
	content := e.Render(upgradePlan)

	var writeErrors []error

	for _, target := range targets {
		_, err := fsutil.TryWriteFile(content, target, true)
		if err != nil {
			writeErrors = append(writeErrors, fmt.Errorf(
				"%w: component %q target %s: %w", ErrWrite, upgradePlan.Component, target, err,
			))
		}
	}

	return errors.Join(writeErrors...)
}
