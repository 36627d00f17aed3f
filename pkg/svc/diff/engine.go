package diff

import (
	"fmt"
	"sort"

	"github.com/appupgen/appupgen/pkg/svc/release"
)

// NoneVersion is the sentinel old version recorded for components that are
// present in the new snapshot but absent from the old one. Such entries still
// appear in Result.Upgraded and are dropped by SelectCandidates; they are
// already captured in Result.Added.
const NoneVersion = "none"

// Upgrade records a component whose version differs between two snapshots.
type Upgrade struct {
	Component  string
	OldVersion string
	NewVersion string
}

// Result is the component-level difference between two release snapshots.
type Result struct {
	// Added holds components present only in the new snapshot, sorted by name.
	Added []string
	// Removed holds components present only in the old snapshot, sorted by
	// name. Removed is reported but intentionally never turned into
	// whole-component teardown instructions.
	Removed []string
	// Upgraded holds every component of the new snapshot whose version
	// differs from the old snapshot, in ascending (component, old, new)
	// order. Components with equal versions on both sides never appear.
	Upgraded []Upgrade
}

// CheckPreconditions verifies that two snapshots are comparable: equal
// release names and unequal versions. Callers must invoke it before Compute;
// a violation is a terminal input error, not a recoverable condition.
func CheckPreconditions(oldSnap, newSnap release.Snapshot) error {
	if oldSnap.Name != newSnap.Name {
		return fmt.Errorf(
			"%w: release names differ: %q vs %q",
			ErrPreconditionViolation, oldSnap.Name, newSnap.Name,
		)
	}

	if oldSnap.Version == newSnap.Version {
		return fmt.Errorf(
			"%w: release %q: old and new versions are both %q",
			ErrPreconditionViolation, oldSnap.Name, oldSnap.Version,
		)
	}

	return nil
}

// Compute diffs two snapshots. Preconditions (same release name, different
// versions) are the caller's responsibility; see CheckPreconditions.
func Compute(oldSnap, newSnap release.Snapshot) Result {
	result := Result{}

	for name := range newSnap.Components {
		if _, ok := oldSnap.Components[name]; !ok {
			result.Added = append(result.Added, name)
		}
	}

	for name := range oldSnap.Components {
		if _, ok := newSnap.Components[name]; !ok {
			result.Removed = append(result.Removed, name)
		}
	}

	for name, newVersion := range newSnap.Components {
		oldVersion, ok := oldSnap.Components[name]
		if !ok {
			oldVersion = NoneVersion
		}

		if oldVersion != newVersion {
			result.Upgraded = append(result.Upgraded, Upgrade{
				Component:  name,
				OldVersion: oldVersion,
				NewVersion: newVersion,
			})
		}
	}

	// Map iteration order is random; sort everything so identical inputs
	// yield byte-identical output across runs.
	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Slice(result.Upgraded, func(i, j int) bool {
		left, right := result.Upgraded[i], result.Upgraded[j]
		if left.Component != right.Component {
			return left.Component < right.Component
		}

		if left.OldVersion != right.OldVersion {
			return left.OldVersion < right.OldVersion
		}

		return left.NewVersion < right.NewVersion
	})

	return result
}

// SelectCandidates filters the upgraded list down to components that actually
// need a generated plan. Entries with the NoneVersion sentinel are newly
// added components, not upgrades. Entries named in alreadyPlanned carry a
// hand-authored or previously generated plan and are skipped entirely rather
// than merged or overwritten.
func SelectCandidates(upgraded []Upgrade, alreadyPlanned map[string]bool) []Upgrade {
	candidates := make([]Upgrade, 0, len(upgraded))

	for _, upgrade := range upgraded {
		if upgrade.OldVersion == NoneVersion {
			continue
		}

		if alreadyPlanned[upgrade.Component] {
			continue
		}

		candidates = append(candidates, upgrade)
	}

	return candidates
}
