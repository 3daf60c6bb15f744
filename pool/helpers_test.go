package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// implementations lists the allocators under test. Every semantic test
// runs against all of them; Pool and TreePool must be indistinguishable
// through the Allocator interface.
var implementations = []struct {
	name string
	mk   func(start uint64) Allocator
}{
	{"Pool", func(start uint64) Allocator { return New(start) }},
	{"TreePool", func(start uint64) Allocator { return NewTree(start) }},
}

func eachImpl(t *testing.T, fn func(t *testing.T, mk func(start uint64) Allocator)) {
	t.Helper()
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			fn(t, impl.mk)
		})
	}
}

// validateFreeList checks the structural invariants of a pool's free
// list: non-empty, sorted ascending, disjoint, non-adjacent, nothing
// below start, and an unbounded tail span.
func validateFreeList(t *testing.T, a Allocator) {
	t.Helper()

	ranges := a.Ranges()
	require.NotEmpty(t, ranges, "free list must never be empty")
	require.Equal(t, Infinity, ranges[len(ranges)-1].Hi, "final span must end at Infinity")

	for i, s := range ranges {
		require.LessOrEqual(t, s.Lo, s.Hi, "span %d inverted: %v", i, s)
		require.GreaterOrEqual(t, s.Lo, a.Start(), "span %d below start: %v", i, s)
		if i > 0 {
			prev := ranges[i-1]
			require.Less(t, prev.Hi, s.Lo,
				"spans %d and %d overlap or are out of order: %v %v", i-1, i, prev, s)
			require.NotEqual(t, prev.Hi+1, s.Lo,
				"spans %d and %d are adjacent and should have merged: %v %v", i-1, i, prev, s)
		}
	}
}

func mustAllocate(t *testing.T, a Allocator) uint64 {
	t.Helper()
	key, err := a.Allocate()
	require.NoError(t, err)
	return key
}
