package keymap

import (
	"iter"
	"maps"

	"github.com/tyrannosaur/keypool/pool"
)

// Dict combines a map with an owned key pool. Keys come in two kinds:
// pool keys (uint64, issued via Next/SetItem or stored directly) and
// arbitrary comparable keys, which bypass the pool entirely.
//
// Handles passed as keys are resolved to their uint64 value; the dict
// takes over the key's lifetime from the handle, releasing it back to the
// pool when the entry is deleted.
type Dict[V any] struct {
	entries map[any]V
	pool    *pool.Pool
}

// New creates an empty dict whose pool issues keys from 0.
func New[V any]() *Dict[V] {
	return NewWithStart[V](0)
}

// NewWithStart creates an empty dict whose pool issues keys from start.
func NewWithStart[V any](start uint64) *Dict[V] {
	return &Dict[V]{
		entries: make(map[any]V),
		pool:    pool.New(start),
	}
}

// Next returns an unresolved handle bound to the dict's pool. The handle
// consumes no key until observed, so Next can be called any number of
// times without burning through the key space.
func (d *Dict[V]) Next() *pool.Handle {
	return pool.NewHandle(d.pool)
}

// SetItem stores value under a freshly resolved key and returns its
// handle.
func (d *Dict[V]) SetItem(value V) (*pool.Handle, error) {
	h := d.Next()
	if err := d.Put(h, value); err != nil {
		return nil, err
	}
	return h, nil
}

// Put stores value under key. A *pool.Handle key is disowned and resolved
// first, and the entry lives under the resolved uint64, so overwriting an
// existing entry never allocates a second key. Any other key is stored
// unchanged; it must be comparable, as with a plain map.
func (d *Dict[V]) Put(key any, value V) error {
	if h, ok := key.(*pool.Handle); ok {
		// The dict owns the key's lifetime from here on: the handle must
		// not release it when it goes out of scope.
		h.Disown()
		k := h.Key()
		if _, resolved := h.Resolved(); !resolved {
			return pool.ErrClosed
		}
		key = k
	}
	d.entries[key] = value
	return nil
}

// Get returns the value stored under key. Handle keys are looked up via
// their resolved value.
func (d *Dict[V]) Get(key any) (V, bool) {
	v, ok := d.entries[resolveKey(key)]
	return v, ok
}

// Contains reports whether an entry exists under key. Handle keys are
// tested via their resolved value.
func (d *Dict[V]) Contains(key any) bool {
	_, ok := d.entries[resolveKey(key)]
	return ok
}

// Delete removes the entry under key. Handle keys resolve first; any
// uint64 key is then released back to the pool. The entry is removed even
// when the release fails, and the failure propagates: deleting a uint64
// key the pool never issued reports pool.ErrNotInUse.
func (d *Dict[V]) Delete(key any) error {
	k := resolveKey(key)
	delete(d.entries, k)
	if ik, ok := k.(uint64); ok {
		return d.pool.Release(ik)
	}
	return nil
}

// Len returns the number of entries.
func (d *Dict[V]) Len() int {
	return len(d.entries)
}

// All iterates over all entries in unspecified order.
func (d *Dict[V]) All() iter.Seq2[any, V] {
	return maps.All(d.entries)
}

// Pool exposes the dict's allocator for diagnostics and tests.
func (d *Dict[V]) Pool() pool.Allocator {
	return d.pool
}

// resolveKey maps a handle to its resolved key value and leaves every
// other key kind untouched. Reads resolve handles (observation pins the
// key) but do not transfer ownership.
func resolveKey(key any) any {
	if h, ok := key.(*pool.Handle); ok {
		return h.Key()
	}
	return key
}
