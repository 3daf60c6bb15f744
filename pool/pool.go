package pool

import (
	"fmt"
	"os"
	"sort"
)

// Runtime debug flag for operation tracing - controlled by KEYPOOL_LOG env var.
var logPool = os.Getenv("KEYPOOL_LOG") != ""

// Pool tracks free keys in a sorted slice of disjoint, non-adjacent spans
// covering every unused key in [start, Infinity]. Lookup is a true binary
// search over span bounds; release pays O(n) for the slice insert. For
// workloads that keep many thousands of spans live, prefer TreePool.
type Pool struct {
	start  uint64
	free   []Span
	stats  Stats
	closed bool
}

var _ Allocator = (*Pool)(nil)

// New creates a pool whose lowest issuable key is start.
func New(start uint64) *Pool {
	return &Pool{
		start: start,
		free:  []Span{{Lo: start, Hi: Infinity}},
		stats: Stats{PeakSpans: 1},
	}
}

// Start returns the lowest key the pool will ever issue.
func (p *Pool) Start() uint64 { return p.start }

// Spans returns the number of free spans currently tracked.
func (p *Pool) Spans() int { return len(p.free) }

// Ranges returns a copy of the free list, sorted ascending.
func (p *Pool) Ranges() []Span {
	out := make([]Span, len(p.free))
	copy(out, p.free)
	return out
}

// Stats returns a snapshot of the pool's operation counters.
func (p *Pool) Stats() Stats { return p.stats }

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool { return p.closed }

// Close drops the free list. Subsequent Allocate calls return ErrClosed;
// Release calls quietly succeed so that handles outliving the pool
// dispose cleanly.
func (p *Pool) Close() {
	p.free = nil
	p.closed = true
}

// Allocate returns the lowest unused key and marks it used.
//
// The first span always holds the lowest free key. A singleton span is
// consumed whole; otherwise its lower bound moves up by one. The tail
// span ends at Infinity, so allocation cannot exhaust the pool.
func (p *Pool) Allocate() (uint64, error) {
	if p.closed {
		return 0, ErrClosed
	}
	p.stats.AllocCalls++

	head := &p.free[0]
	key := head.Lo
	if head.Hi == Infinity {
		p.stats.Minted++
	} else {
		p.stats.Reused++
	}

	if head.single() {
		p.free = append(p.free[:0], p.free[1:]...)
	} else {
		head.Lo++
	}

	if logPool {
		fmt.Fprintf(os.Stderr, "[POOL] allocate %d (%d spans free)\n", key, len(p.free))
	}
	return key, nil
}

// Release marks key unused again, merging it with adjacent free spans.
//
// The singleton [key, key] is inserted at its sorted position, then the
// successor is folded in when it starts at key+1 and the predecessor when
// it ends at key-1, keeping the free list fully coalesced.
func (p *Pool) Release(key uint64) error {
	if p.closed {
		return nil
	}

	i, err := p.locate(key)
	if err != nil {
		return err
	}
	p.stats.ReleaseCalls++

	p.free = append(p.free, Span{})
	copy(p.free[i+1:], p.free[i:])
	p.free[i] = Span{Lo: key, Hi: key}

	if i+1 < len(p.free) && p.free[i+1].Lo == key+1 {
		p.free[i].Hi = p.free[i+1].Hi
		p.free = append(p.free[:i+1], p.free[i+2:]...)
		p.stats.MergesNext++
	}
	if i > 0 && p.free[i-1].Hi == key-1 {
		p.free[i-1].Hi = p.free[i].Hi
		p.free = append(p.free[:i], p.free[i+1:]...)
		p.stats.MergesPrev++
	}

	if n := len(p.free); n > p.stats.PeakSpans {
		p.stats.PeakSpans = n
	}
	if logPool {
		fmt.Fprintf(os.Stderr, "[POOL] release %d (%d spans free)\n", key, len(p.free))
	}
	return nil
}

// Remove is an alias for Release.
func (p *Pool) Remove(key uint64) error { return p.Release(key) }

// locate returns the index at which the singleton span [key, key] must be
// inserted to keep the free list sorted, which doubles as proof that key
// is currently allocated: a key inside an existing span reports
// ErrNotInUse instead.
//
// The spans are sorted by lower bound, so sort.Search finds the first
// span past the key in O(log n); the key is in use exactly when it also
// lies past the previous span's upper bound.
func (p *Pool) locate(key uint64) (int, error) {
	if key < p.start || key == Infinity {
		return 0, ErrInvalidKey
	}

	i := sort.Search(len(p.free), func(i int) bool { return p.free[i].Lo > key })
	if i > 0 && p.free[i-1].contains(key) {
		return 0, ErrNotInUse
	}
	return i, nil
}
