package plan

import (
	"fmt"
	"path/filepath"

	"github.com/appupgen/appupgen/pkg/svc/artifact"
	"github.com/sirupsen/logrus"
)

// DependencyMap maps a module name to the ordered module names it depends on
// for migration ordering. Entries naming modules outside the current change
// set are dropped silently during synthesis.
type DependencyMap map[string][]string

// Plan is the ordered instruction list for upgrading one component. It is
// built in a single synthesis pass, immutable afterwards, and discarded once
// emitted.
type Plan struct {
	Component    string
	OldVersion   string
	NewVersion   string
	Instructions []Instruction
}

// Synthesizer turns artifact change sets into upgrade plans using module
// metadata from an inspector.
type Synthesizer struct {
	inspector artifact.Inspector
	logger    *logrus.Logger
}

// NewSynthesizer constructs a synthesizer around the given inspector.
func NewSynthesizer(inspector artifact.Inspector, logger *logrus.Logger) *Synthesizer {
	return &Synthesizer{inspector: inspector, logger: logger}
}

// BuildDependencyMap assembles the declared dependency map for a change set
// by inspecting the new artifact of every changed file. Added and removed
// files need no dependency ordering and are not inspected.
func (s *Synthesizer) BuildDependencyMap(
	newDir string,
	changes artifact.ChangeSet,
) (DependencyMap, error) {
	deps := make(DependencyMap, len(changes.Changed))

	for _, file := range changes.Changed {
		metadata, err := s.inspector.Inspect(filepath.Join(newDir, file))
		if err != nil {
			return nil, err
		}

		deps[artifact.ModuleName(file)] = metadata.DependsOn
	}

	return deps, nil
}

// Synthesize produces the upgrade plan for one component. Emission order is
// fixed: all add instructions, then all remove instructions, then one
// instruction per changed file in the order the differ returned them. Other
// tooling relies on this ordering; do not reorder.
func (s *Synthesizer) Synthesize(
	component, oldVersion, newVersion, newDir string,
	changes artifact.ChangeSet,
	deps DependencyMap,
) (Plan, error) {
	upgradePlan := Plan{
		Component:  component,
		OldVersion: oldVersion,
		NewVersion: newVersion,
	}

	changedNames := changes.ChangedNames()

	for _, file := range changes.Added {
		upgradePlan.Instructions = append(
			upgradePlan.Instructions, AddModule{Name: artifact.ModuleName(file)},
		)
	}

	for _, file := range changes.Removed {
		upgradePlan.Instructions = append(
			upgradePlan.Instructions, RemoveModule{Name: artifact.ModuleName(file)},
		)
	}

	for _, file := range changes.Changed {
		metadata, err := s.inspector.Inspect(filepath.Join(newDir, file))
		if err != nil {
			return Plan{}, fmt.Errorf(
				"synthesizing plan for component %q (%s -> %s): %w",
				component, oldVersion, newVersion, err,
			)
		}

		name := artifact.ModuleName(file)
		instruction := classify(name, metadata, deps, changedNames)

		s.logger.WithFields(logrus.Fields{
			"component": component,
			"module":    name,
			"role":      metadata.Role.String(),
			"migration": metadata.HasMigrationHook,
		}).Debug("classified changed module")

		upgradePlan.Instructions = append(upgradePlan.Instructions, instruction)
	}

	return upgradePlan, nil
}

// classify maps one changed module's metadata to exactly one instruction.
// The priority is fixed: supervisor role first, migration hook second, plain
// code reload as the final fallback.
func classify(
	name string,
	metadata artifact.Metadata,
	deps DependencyMap,
	changedNames map[string]bool,
) Instruction {
	switch {
	case metadata.Role == artifact.RoleSupervisor:
		return UpdateSupervisor{Name: name}
	case metadata.HasMigrationHook:
		return UpdateWithMigration{Name: name, Deps: FilterDependencies(deps[name], changedNames)}
	default:
		return ReloadCode{Name: name, Deps: FilterDependencies(deps[name], changedNames)}
	}
}

// FilterDependencies keeps only declared dependencies that are part of the
// current change set, preserving declaration order. Stale entries are
// dropped silently.
func FilterDependencies(declared []string, changedNames map[string]bool) []string {
	filtered := make([]string, 0, len(declared))

	for _, dep := range declared {
		if changedNames[dep] {
			filtered = append(filtered, dep)
		}
	}

	return filtered
}
