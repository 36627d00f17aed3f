package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appupgen/appupgen/pkg/config"
	"github.com/appupgen/appupgen/pkg/svc/artifact"
	"github.com/appupgen/appupgen/pkg/svc/diff"
	"github.com/appupgen/appupgen/pkg/svc/plan"
	"github.com/appupgen/appupgen/pkg/svc/release"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxParallelComponents bounds concurrent synthesis in parallel mode.
const maxParallelComponents = 4

// Summary reports what a generate run produced.
type Summary struct {
	// Diff is the component-level difference between the two snapshots.
	// Removed components are reported here but produce no instructions.
	Diff diff.Result
	// Written lists every descriptor path written, in emission order.
	Written []string
	// Skipped lists components left alone because they already carry a plan
	// descriptor.
	Skipped []string
	// Failed lists components whose synthesis or emission failed.
	Failed []string
}

// Generator runs the release-diff-and-instruction-synthesis pipeline.
type Generator struct {
	cfg         *config.Generate
	synthesizer *plan.Synthesizer
	emitter     *plan.Emitter
	logger      *logrus.Logger
}

// New constructs a generator from its collaborators.
func New(
	cfg *config.Generate,
	inspector artifact.Inspector,
	emitter *plan.Emitter,
	logger *logrus.Logger,
) *Generator {
	return &Generator{
		cfg:         cfg,
		synthesizer: plan.NewSynthesizer(inspector, logger),
		emitter:     emitter,
		logger:      logger,
	}
}

// Run executes one generate pass. Missing release descriptors and snapshot
// precondition violations abort the whole run before any plan is written.
// Per-component failures are isolated: the returned Summary covers every
// component and the error joins each component's failure.
func (g *Generator) Run() (Summary, error) {
	oldSnap, newSnap, err := g.readSnapshots()
	if err != nil {
		return Summary{}, err
	}

	err = diff.CheckPreconditions(oldSnap, newSnap)
	if err != nil {
		return Summary{}, err
	}

	result := diff.Compute(oldSnap, newSnap)

	summary := Summary{Diff: result}
	candidates := diff.SelectCandidates(result.Upgraded, g.scanPlanned(newSnap, result.Upgraded, &summary))

	plans, componentErrors := g.synthesizeAll(newSnap, oldSnap, candidates)

	// Emission stays sequential in candidate order so target files are
	// written deterministically even in parallel mode.
	for i, candidate := range candidates {
		if componentErrors[i] != nil {
			summary.Failed = append(summary.Failed, candidate.Component)

			continue
		}

		targets := g.targets(newSnap, candidate)

		emitErr := g.emitter.Emit(plans[i], targets)
		if emitErr != nil {
			componentErrors[i] = emitErr
			summary.Failed = append(summary.Failed, candidate.Component)

			continue
		}

		summary.Written = append(summary.Written, targets...)
	}

	return summary, errors.Join(componentErrors...)
}

// readSnapshots resolves both versions and reads both release descriptors.
func (g *Generator) readSnapshots() (release.Snapshot, release.Snapshot, error) {
	previousVersion := g.cfg.PreviousVersion
	if previousVersion == "" {
		discovered, err := release.DiscoverVersion(g.cfg.PreviousRoot)
		if err != nil {
			return release.Snapshot{}, release.Snapshot{}, err
		}

		previousVersion = discovered
	}

	currentVersion, err := release.DiscoverVersion(g.cfg.CurrentRoot)
	if err != nil {
		return release.Snapshot{}, release.Snapshot{}, err
	}

	oldSnap, err := release.ReadSnapshot(g.cfg.ReleaseName, previousVersion, g.cfg.PreviousRoot)
	if err != nil {
		return release.Snapshot{}, release.Snapshot{}, err
	}

	newSnap, err := release.ReadSnapshot(g.cfg.ReleaseName, currentVersion, g.cfg.CurrentRoot)
	if err != nil {
		return release.Snapshot{}, release.Snapshot{}, err
	}

	return oldSnap, newSnap, nil
}

// scanPlanned finds components that already carry a plan descriptor in their
// new artifact directory. Such components are skipped unconditionally; a
// hand-authored descriptor is never validated, merged, or overwritten.
func (g *Generator) scanPlanned(
	newSnap release.Snapshot,
	upgraded []diff.Upgrade,
	summary *Summary,
) map[string]bool {
	planned := map[string]bool{}

	for _, upgrade := range upgraded {
		if upgrade.OldVersion == diff.NoneVersion {
			continue
		}

		descriptorPath := filepath.Join(
			newSnap.ComponentDir(upgrade.Component, upgrade.NewVersion),
			upgrade.Component+".appup",
		)

		_, err := os.Stat(descriptorPath)
		if err == nil {
			planned[upgrade.Component] = true
			summary.Skipped = append(summary.Skipped, upgrade.Component)

			g.logger.WithField("component", upgrade.Component).
				Debug("existing plan descriptor found, skipping component")
		}
	}

	return planned
}

// synthesizeAll produces a plan per candidate, sequentially by default or
// concurrently when parallel mode is on. Results and errors are indexed by
// candidate so ordering and failure isolation are identical in both modes.
func (g *Generator) synthesizeAll(
	newSnap, oldSnap release.Snapshot,
	candidates []diff.Upgrade,
) ([]plan.Plan, []error) {
	plans := make([]plan.Plan, len(candidates))
	componentErrors := make([]error, len(candidates))

	if !g.cfg.Parallel {
		for i, candidate := range candidates {
			plans[i], componentErrors[i] = g.synthesizeOne(newSnap, oldSnap, candidate)
		}

		return plans, componentErrors
	}

	var group errgroup.Group

	group.SetLimit(maxParallelComponents)

	for i, candidate := range candidates {
		group.Go(func() error {
			// Each goroutine writes only its own slot; failures stay local
			// to the component instead of cancelling siblings.
			plans[i], componentErrors[i] = g.synthesizeOne(newSnap, oldSnap, candidate)

			return nil
		})
	}

	_ = group.Wait()

	return plans, componentErrors
}

// synthesizeOne diffs one component's artifact directories and synthesizes
// its plan.
func (g *Generator) synthesizeOne(
	newSnap, oldSnap release.Snapshot,
	candidate diff.Upgrade,
) (plan.Plan, error) {
	oldDir := oldSnap.ComponentDir(candidate.Component, candidate.OldVersion)
	newDir := newSnap.ComponentDir(candidate.Component, candidate.NewVersion)

	changes, err := artifact.CompareDirs(oldDir, newDir)
	if err != nil {
		return plan.Plan{}, fmt.Errorf(
			"component %q (%s -> %s): %w",
			candidate.Component, candidate.OldVersion, candidate.NewVersion, err,
		)
	}

	deps, err := g.synthesizer.BuildDependencyMap(newDir, changes)
	if err != nil {
		return plan.Plan{}, fmt.Errorf(
			"component %q (%s -> %s): %w",
			candidate.Component, candidate.OldVersion, candidate.NewVersion, err,
		)
	}

	return g.synthesizer.Synthesize(
		candidate.Component, candidate.OldVersion, candidate.NewVersion, newDir, changes, deps,
	)
}

// targets returns the descriptor paths to write for one component: the
// explicit target directory when configured, otherwise the new release's
// artifact directory plus the active build output directory.
func (g *Generator) targets(newSnap release.Snapshot, candidate diff.Upgrade) []string {
	descriptor := candidate.Component + ".appup"

	if g.cfg.TargetDir != "" {
		return []string{filepath.Join(g.cfg.TargetDir, descriptor)}
	}

	return []string{
		filepath.Join(newSnap.ComponentDir(candidate.Component, candidate.NewVersion), descriptor),
		filepath.Join(g.cfg.BuildDir, candidate.Component, "ebin", descriptor),
	}
}
