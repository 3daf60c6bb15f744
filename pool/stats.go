package pool

// Stats holds operation counters for a pool. Used by tests and the
// poolbench tool to inspect allocator behavior.
type Stats struct {
	AllocCalls   int `json:"alloc_calls"`   // Total Allocate() calls
	ReleaseCalls int `json:"release_calls"` // Total Release() calls that passed validation
	Reused       int `json:"reused"`        // Keys handed out from a previously-released span
	Minted       int `json:"minted"`        // Keys taken fresh from the unbounded tail span
	MergesNext   int `json:"merges_next"`   // Released keys merged into the following span
	MergesPrev   int `json:"merges_prev"`   // Released keys merged into the preceding span
	PeakSpans    int `json:"peak_spans"`    // High-water mark of the free-span count
}
