package plan_test

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/appupgen/appupgen/pkg/svc/artifact"
	"github.com/appupgen/appupgen/pkg/svc/plan"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInspect = errors.New("inspect failure")

// fakeInspector serves canned metadata keyed by file base name and records
// every inspected path.
type fakeInspector struct {
	metadata  map[string]artifact.Metadata
	failing   map[string]bool
	inspected []string
}

func (f *fakeInspector) Inspect(path string) (artifact.Metadata, error) {
	f.inspected = append(f.inspected, path)

	base := filepath.Base(path)
	if f.failing[base] {
		return artifact.Metadata{}, errInspect
	}

	return f.metadata[base], nil
}

// silentLogger returns a logger that discards all output.
func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}

func TestSynthesize_InstructionOrdering(t *testing.T) {
	t.Parallel()

	inspector := &fakeInspector{metadata: map[string]artifact.Metadata{
		"worker.mod": {Role: artifact.RoleNone},
	}}
	synthesizer := plan.NewSynthesizer(inspector, silentLogger())

	changes := artifact.ChangeSet{
		Added:   []string{"fresh.mod", "second.mod"},
		Removed: []string{"legacy.mod"},
		Changed: []string{"worker.mod"},
	}

	upgradePlan, err := synthesizer.Synthesize("comp", "1.0", "1.1", "new/dir", changes, nil)

	require.NoError(t, err)
	assert.Equal(t, "comp", upgradePlan.Component)
	assert.Equal(t, "1.0", upgradePlan.OldVersion)
	assert.Equal(t, "1.1", upgradePlan.NewVersion)
	// Fixed contract: adds first, then removes, then changed files in differ
	// order.
	assert.Equal(t, []plan.Instruction{
		plan.AddModule{Name: "fresh"},
		plan.AddModule{Name: "second"},
		plan.RemoveModule{Name: "legacy"},
		plan.ReloadCode{Name: "worker", Deps: []string{}},
	}, upgradePlan.Instructions)
}

//nolint:funlen // Table over every (role, migration hook) pair.
func TestSynthesize_ClassificationIsTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		metadata artifact.Metadata
		want     plan.Instruction
	}{
		{
			name:     "no role no hook falls back to code reload",
			metadata: artifact.Metadata{Role: artifact.RoleNone},
			want:     plan.ReloadCode{Name: "worker", Deps: []string{}},
		},
		{
			name:     "migration hook",
			metadata: artifact.Metadata{Role: artifact.RoleNone, HasMigrationHook: true},
			want:     plan.UpdateWithMigration{Name: "worker", Deps: []string{}},
		},
		{
			name:     "supervisor role",
			metadata: artifact.Metadata{Role: artifact.RoleSupervisor},
			want:     plan.UpdateSupervisor{Name: "worker"},
		},
		{
			name:     "supervisor role wins over migration hook",
			metadata: artifact.Metadata{Role: artifact.RoleSupervisor, HasMigrationHook: true},
			want:     plan.UpdateSupervisor{Name: "worker"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			inspector := &fakeInspector{metadata: map[string]artifact.Metadata{
				"worker.mod": test.metadata,
			}}
			synthesizer := plan.NewSynthesizer(inspector, silentLogger())

			changes := artifact.ChangeSet{Changed: []string{"worker.mod"}}

			upgradePlan, err := synthesizer.Synthesize("comp", "1.0", "1.1", "new/dir", changes, nil)

			require.NoError(t, err)
			require.Len(t, upgradePlan.Instructions, 1)
			assert.Equal(t, test.want, upgradePlan.Instructions[0])
		})
	}
}

func TestSynthesize_DependencyOrderPreserved(t *testing.T) {
	t.Parallel()

	inspector := &fakeInspector{metadata: map[string]artifact.Metadata{
		"n.mod": {HasMigrationHook: true},
		"x.mod": {},
		"y.mod": {},
	}}
	synthesizer := plan.NewSynthesizer(inspector, silentLogger())

	changes := artifact.ChangeSet{Changed: []string{"n.mod", "x.mod", "y.mod"}}
	deps := plan.DependencyMap{"n": {"x", "y"}}

	upgradePlan, err := synthesizer.Synthesize("comp", "1.0", "1.1", "new/dir", changes, deps)

	require.NoError(t, err)
	assert.Contains(t, upgradePlan.Instructions, plan.UpdateWithMigration{
		Name: "n", Deps: []string{"x", "y"},
	})
}

func TestSynthesize_InspectFailureAbortsComponent(t *testing.T) {
	t.Parallel()

	inspector := &fakeInspector{failing: map[string]bool{"worker.mod": true}}
	synthesizer := plan.NewSynthesizer(inspector, silentLogger())

	changes := artifact.ChangeSet{Changed: []string{"worker.mod"}}

	_, err := synthesizer.Synthesize("comp", "1.0", "1.1", "new/dir", changes, nil)

	require.ErrorIs(t, err, errInspect)
	assert.Contains(t, err.Error(), "comp")
	assert.Contains(t, err.Error(), "1.0")
	assert.Contains(t, err.Error(), "1.1")
}

func TestBuildDependencyMap(t *testing.T) {
	t.Parallel()

	inspector := &fakeInspector{metadata: map[string]artifact.Metadata{
		"n.mod": {DependsOn: []string{"x", "stale"}},
		"x.mod": {},
	}}
	synthesizer := plan.NewSynthesizer(inspector, silentLogger())

	changes := artifact.ChangeSet{
		Added:   []string{"added.mod"},
		Changed: []string{"n.mod", "x.mod"},
	}

	deps, err := synthesizer.BuildDependencyMap("new/dir", changes)

	require.NoError(t, err)
	assert.Equal(t, plan.DependencyMap{"n": {"x", "stale"}, "x": nil}, deps)
	// Only changed files are inspected for dependency declarations.
	assert.Len(t, inspector.inspected, 2)
}

func TestFilterDependencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared []string
		changed  map[string]bool
		want     []string
	}{
		{
			name:     "keeps only changed names in declaration order",
			declared: []string{"y", "stale", "x"},
			changed:  map[string]bool{"x": true, "y": true},
			want:     []string{"y", "x"},
		},
		{
			name:     "empty declaration",
			declared: nil,
			changed:  map[string]bool{"x": true},
			want:     []string{},
		},
		{
			name:     "all stale entries dropped silently",
			declared: []string{"a", "b"},
			changed:  map[string]bool{},
			want:     []string{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := plan.FilterDependencies(test.declared, test.changed)

			assert.Equal(t, test.want, got)

			for _, dep := range got {
				assert.True(t, test.changed[dep], "dependency %q is not in the change set", dep)
			}
		})
	}
}
