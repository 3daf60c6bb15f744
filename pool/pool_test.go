package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Allocate_Sequential(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		for want := uint64(0); want < 10; want++ {
			require.Equal(t, want, mustAllocate(t, p))
		}
	})
}

func Test_Allocate_HonorsStart(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(100)
		require.Equal(t, uint64(100), p.Start())
		require.Equal(t, uint64(100), mustAllocate(t, p))
		require.Equal(t, uint64(101), mustAllocate(t, p))
	})
}

func Test_Allocate_Unique(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		seen := make(map[uint64]bool, 1000)
		for i := range 1000 {
			key := mustAllocate(t, p)
			require.False(t, seen[key], "key %d issued twice (allocation %d)", key, i)
			seen[key] = true
		}
	})
}

func Test_ReusePriority(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		keys := make([]uint64, 6)
		for i := range keys {
			keys[i] = mustAllocate(t, p)
		}

		// The lowest released key always comes back first.
		require.NoError(t, p.Release(keys[0]))
		require.Equal(t, keys[0], mustAllocate(t, p))

		require.NoError(t, p.Release(keys[4]))
		require.NoError(t, p.Release(keys[2]))
		require.Equal(t, keys[2], mustAllocate(t, p))
		require.Equal(t, keys[4], mustAllocate(t, p))
	})
}

// The walkthrough scenario: allocate three keys, then watch the free list
// as the low keys cycle through release and reallocation.
func Test_Scenario_ReleaseRealloc(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		require.Equal(t, uint64(0), mustAllocate(t, p))
		require.Equal(t, uint64(1), mustAllocate(t, p))
		require.Equal(t, uint64(2), mustAllocate(t, p))

		require.NoError(t, p.Release(0))
		require.Equal(t, []Span{{Lo: 0, Hi: 0}, {Lo: 3, Hi: Infinity}}, p.Ranges())

		require.Equal(t, uint64(0), mustAllocate(t, p))
		require.NoError(t, p.Release(1))
		require.Equal(t, uint64(1), mustAllocate(t, p))
	})
}

func Test_MergeCorrectness(t *testing.T) {
	// Releasing a contiguous run in any order must collapse it into a
	// single span once the last key lands.
	orders := map[string][]uint64{
		"ascending":   {0, 1, 2, 3, 4, 5, 6, 7},
		"descending":  {7, 6, 5, 4, 3, 2, 1, 0},
		"outside-in":  {0, 7, 1, 6, 2, 5, 3, 4},
		"interleaved": {4, 0, 6, 2, 7, 1, 5, 3},
	}

	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		for name, order := range orders {
			t.Run(name, func(t *testing.T) {
				p := mk(0)
				for range 8 {
					mustAllocate(t, p)
				}
				for _, key := range order {
					require.NoError(t, p.Release(key))
					validateFreeList(t, p)
				}
				require.Equal(t, []Span{{Lo: 0, Hi: Infinity}}, p.Ranges())
			})
		}
	})
}

func Test_RoundTrip(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		for range 5 {
			mustAllocate(t, p)
		}
		require.NoError(t, p.Release(2))

		before := p.Ranges()
		for range 50 {
			key := mustAllocate(t, p)
			require.NoError(t, p.Release(key))
			require.Equal(t, before, p.Ranges())
		}
	})
}

func Test_Release_FreeKey(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)

		// Never allocated: 5 lies inside the initial free span.
		require.ErrorIs(t, p.Release(5), ErrNotInUse)

		key := mustAllocate(t, p)
		require.NoError(t, p.Release(key))
		require.ErrorIs(t, p.Release(key), ErrNotInUse)
	})
}

func Test_Release_InvalidKey(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(100)
		require.ErrorIs(t, p.Release(5), ErrInvalidKey)
		require.ErrorIs(t, p.Release(99), ErrInvalidKey)
		require.ErrorIs(t, p.Release(Infinity), ErrInvalidKey)
	})
}

func Test_Remove_Alias(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		key := mustAllocate(t, p)
		require.NoError(t, p.Remove(key))
		require.Equal(t, key, mustAllocate(t, p))
		require.ErrorIs(t, p.Remove(Infinity), ErrInvalidKey)
	})
}

func Test_Close(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		key := mustAllocate(t, p)
		require.False(t, p.Closed())

		p.Close()
		require.True(t, p.Closed())

		_, err := p.Allocate()
		require.ErrorIs(t, err, ErrClosed)

		// Releases against a closed pool are silent no-ops so that
		// handles outliving the pool dispose cleanly.
		require.NoError(t, p.Release(key))
		require.NoError(t, p.Release(12345))
	})
}

func Test_Stats(t *testing.T) {
	eachImpl(t, func(t *testing.T, mk func(uint64) Allocator) {
		p := mk(0)
		for range 3 {
			mustAllocate(t, p)
		}
		st := p.Stats()
		require.Equal(t, 3, st.AllocCalls)
		require.Equal(t, 3, st.Minted)
		require.Equal(t, 0, st.Reused)

		require.NoError(t, p.Release(0))
		require.Equal(t, uint64(0), mustAllocate(t, p))
		st = p.Stats()
		require.Equal(t, 1, st.ReleaseCalls)
		require.Equal(t, 1, st.Reused)

		// Failed releases don't count.
		require.ErrorIs(t, p.Release(50), ErrNotInUse)
		require.Equal(t, 1, p.Stats().ReleaseCalls)

		// 0, 1, 2 in use. Releasing 2 after 1 merges both ways at once;
		// releasing 0 then merges forward into the combined span.
		require.NoError(t, p.Release(1))
		require.NoError(t, p.Release(2))
		require.NoError(t, p.Release(0))
		st = p.Stats()
		require.Equal(t, []Span{{Lo: 0, Hi: Infinity}}, p.Ranges())
		require.Positive(t, st.MergesNext)
		require.Positive(t, st.MergesPrev)
		require.GreaterOrEqual(t, st.PeakSpans, 2)
	})
}

// Pool-specific: locate's insertion index doubles as the in-use proof.
func Test_Locate_InsertionIndex(t *testing.T) {
	p := New(0)
	for range 10 {
		mustAllocate(t, p)
	}
	require.NoError(t, p.Release(3))
	require.NoError(t, p.Release(7))
	// free list: [3,3] [7,7] [10,inf]

	cases := []struct {
		key  uint64
		want int
	}{
		{0, 0}, {2, 0}, {4, 1}, {6, 1}, {8, 2}, {9, 2},
	}
	for _, tc := range cases {
		i, err := p.locate(tc.key)
		require.NoError(t, err, "locate(%d)", tc.key)
		require.Equal(t, tc.want, i, "locate(%d)", tc.key)
	}

	_, err := p.locate(3)
	require.ErrorIs(t, err, ErrNotInUse)
	_, err = p.locate(15)
	require.ErrorIs(t, err, ErrNotInUse)
	_, err = p.locate(Infinity)
	require.ErrorIs(t, err, ErrInvalidKey)
}
