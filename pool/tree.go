package pool

import (
	"fmt"
	"os"

	"github.com/google/btree"
)

// treeDegree is the btree branching factor. Spans are tiny, so a wide
// tree keeps the depth shallow without wasting much node space.
const treeDegree = 32

// TreePool tracks free spans in a btree ordered by span lower bound.
// Both allocation and release run in O(log n), which makes it the better
// choice when churn keeps a large number of spans live. Pool and TreePool
// implement identical semantics.
type TreePool struct {
	start  uint64
	free   *btree.BTreeG[Span]
	stats  Stats
	closed bool
}

var _ Allocator = (*TreePool)(nil)

// NewTree creates a btree-backed pool whose lowest issuable key is start.
func NewTree(start uint64) *TreePool {
	free := btree.NewG(treeDegree, func(a, b Span) bool { return a.Lo < b.Lo })
	free.ReplaceOrInsert(Span{Lo: start, Hi: Infinity})
	return &TreePool{
		start: start,
		free:  free,
		stats: Stats{PeakSpans: 1},
	}
}

// Start returns the lowest key the pool will ever issue.
func (t *TreePool) Start() uint64 { return t.start }

// Spans returns the number of free spans currently tracked.
func (t *TreePool) Spans() int { return t.free.Len() }

// Ranges returns a copy of the free list, sorted ascending.
func (t *TreePool) Ranges() []Span {
	out := make([]Span, 0, t.free.Len())
	t.free.Ascend(func(s Span) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Stats returns a snapshot of the pool's operation counters.
func (t *TreePool) Stats() Stats { return t.stats }

// Closed reports whether Close has been called.
func (t *TreePool) Closed() bool { return t.closed }

// Close drops the free spans. See Pool.Close for the contract.
func (t *TreePool) Close() {
	t.free.Clear(false)
	t.closed = true
}

// Allocate returns the lowest unused key and marks it used.
func (t *TreePool) Allocate() (uint64, error) {
	if t.closed {
		return 0, ErrClosed
	}
	t.stats.AllocCalls++

	head, _ := t.free.DeleteMin()
	key := head.Lo
	if head.Hi == Infinity {
		t.stats.Minted++
	} else {
		t.stats.Reused++
	}
	if !head.single() {
		head.Lo++
		t.free.ReplaceOrInsert(head)
	}

	if logPool {
		fmt.Fprintf(os.Stderr, "[POOL] allocate %d (%d spans free)\n", key, t.free.Len())
	}
	return key, nil
}

// Release marks key unused again, merging it with adjacent free spans.
func (t *TreePool) Release(key uint64) error {
	if t.closed {
		return nil
	}
	if key < t.start || key == Infinity {
		return ErrInvalidKey
	}

	// The only span that could contain key is the one with the greatest
	// lower bound <= key.
	var pred Span
	havePred := false
	t.free.DescendLessOrEqual(Span{Lo: key}, func(s Span) bool {
		pred, havePred = s, true
		return false
	})
	if havePred && pred.contains(key) {
		return ErrNotInUse
	}
	t.stats.ReleaseCalls++

	merged := Span{Lo: key, Hi: key}

	// Fold in the successor when it starts exactly at key+1.
	var succ Span
	haveSucc := false
	t.free.AscendGreaterOrEqual(Span{Lo: key + 1}, func(s Span) bool {
		succ, haveSucc = s, true
		return false
	})
	if haveSucc && succ.Lo == key+1 {
		t.free.Delete(succ)
		merged.Hi = succ.Hi
		t.stats.MergesNext++
	}

	// Fold in the predecessor when it ends exactly at key-1.
	if havePred && pred.Hi == key-1 {
		t.free.Delete(pred)
		merged.Lo = pred.Lo
		t.stats.MergesPrev++
	}

	t.free.ReplaceOrInsert(merged)

	if n := t.free.Len(); n > t.stats.PeakSpans {
		t.stats.PeakSpans = n
	}
	if logPool {
		fmt.Fprintf(os.Stderr, "[POOL] release %d (%d spans free)\n", key, t.free.Len())
	}
	return nil
}

// Remove is an alias for Release.
func (t *TreePool) Remove(key uint64) error { return t.Release(key) }
