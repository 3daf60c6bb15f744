// Package keymap provides Dict, a map whose integer keys are drawn from a
// key pool and recycled on delete.
//
// Dict is meant for callers that need dense, cheap, unique integer keys
// but do not care about their values:
//
//	items := keymap.New[string]()
//
//	// Assign a value under a fresh generated key
//	items.Put(items.Next(), "hello, world")
//
//	// Assign a value and capture the key
//	h, _ := items.SetItem("hello again, world")
//	_ = h.Key()
//
//	// Assign anything except a uint64, like a normal map
//	items.Put("hello", "world")
//
// Deleting an entry stored under a pool key releases the key, so later
// inserts reuse it. Dict is not safe for concurrent use.
package keymap
