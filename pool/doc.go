// Package pool allocates and recycles small unique uint64 keys from an
// unbounded range, always preferring the lowest previously-released key
// over minting a new one.
//
// # Overview
//
// A pool tracks the complement of the allocated key set: an ordered list
// of disjoint, non-adjacent free spans covering everything unused in
// [start, Infinity]. Allocation takes the lowest value of the first span;
// release re-inserts a singleton span and merges it with its neighbors,
// so the free list stays fully coalesced at all times.
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface:
//
//   - Allocate(): hand out the lowest unused key
//   - Release(key): return a key for reuse (error if the key is free)
//   - Ranges()/Spans(): inspect the free list
//   - Close(): tear the pool down; handles that outlive it dispose cleanly
//
// # Implementations
//
// Pool: sorted span slice
//
//   - Binary search lookup, O(log n)
//   - O(n) slice insert on release
//   - Smallest footprint; the right default for modest fragmentation
//
// TreePool: btree-backed span index
//
//   - O(log n) allocation and release
//   - Preferred when churn keeps many thousands of spans live
//
// # Handles
//
// Handle defers allocation until a key is first observed:
//
//	p := pool.New(0)
//	h := pool.NewHandle(p)      // no key consumed yet
//	fmt.Println(h.Key())        // resolves: allocates and caches
//	defer h.Close()             // releases the key unless disowned
//
// # Usage Example
//
//	p := pool.New(0)
//	a, _ := p.Allocate() // 0
//	b, _ := p.Allocate() // 1
//	p.Release(a)         // 0 is free again
//	c, _ := p.Allocate() // 0, reused
//	_ = b
//	_ = c
//
// # Thread Safety
//
// Pool, TreePool, and Handle are not safe for concurrent use. Callers
// must serialize access externally.
//
// # Related Packages
//
//   - github.com/tyrannosaur/keypool/keymap: map container that draws its
//     keys from a pool and releases them on delete
package pool
