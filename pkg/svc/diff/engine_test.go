package diff_test

import (
	"testing"

	"github.com/appupgen/appupgen/pkg/svc/diff"
	"github.com/appupgen/appupgen/pkg/svc/release"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(name, version string, components map[string]string) release.Snapshot {
	return release.Snapshot{Name: name, Version: version, Components: components}
}

func TestCheckPreconditions(t *testing.T) {
	t.Parallel()

	t.Run("valid pair passes", func(t *testing.T) {
		t.Parallel()

		err := diff.CheckPreconditions(
			snapshot("myrel", "1.0", nil),
			snapshot("myrel", "1.1", nil),
		)

		require.NoError(t, err)
	})

	t.Run("different release names fail", func(t *testing.T) {
		t.Parallel()

		err := diff.CheckPreconditions(
			snapshot("myrel", "1.0", nil),
			snapshot("otherrel", "1.1", nil),
		)

		require.ErrorIs(t, err, diff.ErrPreconditionViolation)
		assert.Contains(t, err.Error(), "myrel")
		assert.Contains(t, err.Error(), "otherrel")
	})

	t.Run("equal versions fail", func(t *testing.T) {
		t.Parallel()

		err := diff.CheckPreconditions(
			snapshot("myrel", "1.0", nil),
			snapshot("myrel", "1.0", nil),
		)

		require.ErrorIs(t, err, diff.ErrPreconditionViolation)
		assert.Contains(t, err.Error(), "1.0")
	})
}

func TestCompute_IdenticalComponentSets(t *testing.T) {
	t.Parallel()

	components := map[string]string{"a": "1.0", "b": "2.0"}
	result := diff.Compute(
		snapshot("myrel", "1.0", components),
		snapshot("myrel", "1.1", map[string]string{"a": "1.0", "b": "2.0"}),
	)

	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Upgraded)
}

func TestCompute_Classification(t *testing.T) {
	t.Parallel()

	oldSnap := snapshot("myrel", "1.0", map[string]string{"a": "1.0", "b": "2.0", "gone": "0.1"})
	newSnap := snapshot("myrel", "1.1", map[string]string{"a": "1.1", "b": "2.0", "c": "1.0"})

	result := diff.Compute(oldSnap, newSnap)

	assert.Equal(t, []string{"c"}, result.Added)
	assert.Equal(t, []string{"gone"}, result.Removed)
	// Newly added components still surface in Upgraded with the sentinel old
	// version; the candidate filter drops them downstream.
	assert.Equal(t, []diff.Upgrade{
		{Component: "a", OldVersion: "1.0", NewVersion: "1.1"},
		{Component: "c", OldVersion: diff.NoneVersion, NewVersion: "1.0"},
	}, result.Upgraded)
}

func TestCompute_SymmetricUnderSwap(t *testing.T) {
	t.Parallel()

	oldSnap := snapshot("myrel", "1.0", map[string]string{"a": "1.0", "only-old": "1.0"})
	newSnap := snapshot("myrel", "1.1", map[string]string{"a": "1.1", "only-new": "1.0"})

	forward := diff.Compute(oldSnap, newSnap)
	backward := diff.Compute(newSnap, oldSnap)

	assert.Equal(t, forward.Added, backward.Removed)
	assert.Equal(t, forward.Removed, backward.Added)
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	oldSnap := snapshot("myrel", "1.0", map[string]string{
		"zeta": "1.0", "alpha": "1.0", "mid": "1.0",
	})
	newSnap := snapshot("myrel", "1.1", map[string]string{
		"zeta": "2.0", "alpha": "2.0", "mid": "2.0", "extra": "1.0",
	})

	first := diff.Compute(oldSnap, newSnap)
	second := diff.Compute(oldSnap, newSnap)

	require.Equal(t, first, second)
	assert.Equal(t, []diff.Upgrade{
		{Component: "alpha", OldVersion: "1.0", NewVersion: "2.0"},
		{Component: "extra", OldVersion: diff.NoneVersion, NewVersion: "1.0"},
		{Component: "mid", OldVersion: "1.0", NewVersion: "2.0"},
		{Component: "zeta", OldVersion: "1.0", NewVersion: "2.0"},
	}, first.Upgraded)
}

func TestSelectCandidates(t *testing.T) {
	t.Parallel()

	upgraded := []diff.Upgrade{
		{Component: "a", OldVersion: "1.0", NewVersion: "1.1"},
		{Component: "added", OldVersion: diff.NoneVersion, NewVersion: "1.0"},
		{Component: "planned", OldVersion: "1.0", NewVersion: "2.0"},
	}

	candidates := diff.SelectCandidates(upgraded, map[string]bool{"planned": true})

	assert.Equal(t, []diff.Upgrade{
		{Component: "a", OldVersion: "1.0", NewVersion: "1.1"},
	}, candidates)
}

func TestSelectCandidates_EmptyInput(t *testing.T) {
	t.Parallel()

	candidates := diff.SelectCandidates(nil, nil)

	assert.Empty(t, candidates)
}
