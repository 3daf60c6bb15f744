package pool

// Allocator hands out unique uint64 keys, always preferring to reuse the
// lowest previously-released key before minting a new one.
//
// Implementations:
//   - Pool: sorted span slice with binary-search lookup
//   - TreePool: btree-backed span index for heavily fragmented pools
//
// This interface enables different free-list strategies while keeping
// handles and containers implementation-agnostic.
//
// Allocator instances are not safe for concurrent use.
type Allocator interface {
	// Allocate returns the lowest currently-unused key and marks it used.
	// The key space is unbounded, so Allocate fails only with ErrClosed.
	Allocate() (uint64, error)

	// Release marks key unused again, merging it into adjacent free
	// spans. Returns ErrInvalidKey for keys the pool can never have
	// issued and ErrNotInUse when the key is already free. Releasing
	// against a closed pool is a silent no-op.
	Release(key uint64) error

	// Remove is an alias for Release.
	Remove(key uint64) error

	// Start returns the lowest key the pool will ever issue.
	Start() uint64

	// Spans returns the number of free spans currently tracked.
	Spans() int

	// Ranges returns a snapshot of the free list, sorted ascending.
	// The final span always ends at Infinity.
	Ranges() []Span

	// Stats returns a snapshot of the pool's operation counters.
	Stats() Stats

	// Close tears the pool down. Afterwards Allocate returns ErrClosed
	// and Release quietly succeeds, so handles that outlive the pool
	// dispose cleanly.
	Close()

	// Closed reports whether Close has been called.
	Closed() bool
}
