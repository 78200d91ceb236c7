package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtomasevic/scuttlesort/timeline"
)

// checkInvariants re-checks the structural invariants from spec.md §3
// that the public API exposes (positions, predecessor order and ranks,
// equal-rank name order, tips) against tl's current state. The scenarios
// in timeline_test.go call it once they have finished ingesting.
func checkInvariants(t *testing.T, tl *timeline.Timeline) {
	t.Helper()

	names := make([]string, 0, tl.Len())
	for name := range tl.All() {
		names = append(names, name)
	}

	for i, name := range names {
		e, err := tl.Event(name)
		require.NoError(t, err)

		got, err := tl.At(i)
		require.NoError(t, err)
		assert.Equal(t, name, got, "linear[indx] must be e")
		assert.Equal(t, i, e.Index())

		if i > 0 {
			prev, err := tl.Event(names[i-1])
			require.NoError(t, err)
			if prev.Rank() == e.Rank() {
				assert.Lessf(t, prev.Name, e.Name, "equal-rank run must be lexicographically increasing (%s before %s)", prev.Name, e.Name)
			} else {
				assert.Lessf(t, prev.Rank(), e.Rank(), "consecutive ranks must be non-decreasing (%s=%d, %s=%d)", prev.Name, prev.Rank(), e.Name, e.Rank())
			}
		}

		preds := e.Predecessors()
		if len(preds) == 0 {
			assert.Equalf(t, 0, e.Rank(), "%s: rank of a resolved-predecessor-free event must be 0", name)
			continue
		}
		maxRank := -1
		for _, p := range preds {
			assert.Lessf(t, p.Index(), e.Index(), "%s: predecessor %s must sit before it", name, p.Name)
			assert.Lessf(t, p.Rank(), e.Rank(), "%s: predecessor %s must have strictly smaller rank", name, p.Name)
			if p.Rank() > maxRank {
				maxRank = p.Rank()
			}
		}
		assert.Equalf(t, maxRank+1, e.Rank(), "%s: rank must be 1+max(predecessor rank)", name)
	}

	tips := make(map[string]bool)
	for _, name := range tl.Tips() {
		tips[name] = true
	}
	for _, name := range names {
		e, err := tl.Event(name)
		require.NoError(t, err)
		isTip := len(e.Successors()) == 0
		assert.Equalf(t, isTip, tips[name], "%s: tip membership must match empty-successor-set", name)
	}
}
