package pool

import "strconv"

// Handle defers pulling a key from an Allocator until the key is first
// observed. Creating handles is free: no key is consumed until Key or
// String resolves one, so callers can mint handles speculatively.
//
// The allocator reference is non-owning. A handle may outlive its pool;
// resolution and release against a closed pool quietly do nothing.
type Handle struct {
	alloc    Allocator
	key      uint64
	resolved bool
	disowned bool
	closed   bool
}

// NewHandle returns an unresolved handle drawing from a.
func NewHandle(a Allocator) *Handle {
	return &Handle{alloc: a}
}

// Key resolves the handle on first call, allocating a key and caching it;
// later calls return the cached value. If the allocator was closed before
// the handle ever resolved, Key returns 0 and the handle stays
// unresolved.
func (h *Handle) Key() uint64 {
	if !h.resolved {
		key, err := h.alloc.Allocate()
		if err != nil {
			return 0
		}
		h.key = key
		h.resolved = true
	}
	return h.key
}

// Resolved reports the cached key, if any, without triggering resolution.
func (h *Handle) Resolved() (uint64, bool) {
	return h.key, h.resolved
}

// Disown disables the automatic release in Close. Owners such as
// keymap.Dict call it once they have captured the resolved key and manage
// its lifetime themselves.
func (h *Handle) Disown() { h.disowned = true }

// Close releases the resolved key back to the allocator. Closing an
// unresolved or disowned handle, or one whose allocator is already
// closed, is a no-op. Close is idempotent; use it with defer to scope a
// key to a block:
//
//	h := pool.NewHandle(p)
//	defer h.Close()
//	use(h.Key())
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if !h.resolved || h.disowned || h.alloc.Closed() {
		return nil
	}
	return h.alloc.Release(h.key)
}

// Equal reports whether both handles are resolved against the same
// allocator and hold the same key. Resolution has an observable side
// effect, so Equal never resolves: an unresolved handle compares unequal
// to everything, including itself.
func (h *Handle) Equal(other *Handle) bool {
	if other == nil || !h.resolved || !other.resolved {
		return false
	}
	return h.alloc == other.alloc && h.key == other.key
}

// String resolves the handle and formats its key, mirroring the behavior
// of Key. Printing a handle therefore pins its value.
func (h *Handle) String() string {
	return strconv.FormatUint(h.Key(), 10)
}
