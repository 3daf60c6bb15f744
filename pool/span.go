package pool

import (
	"fmt"
	"math"
)

// Infinity is the symbolic upper bound of the final free span. It marks
// "unbounded" rather than a real key: the pool never issues it and
// Release rejects it with ErrInvalidKey.
const Infinity = uint64(math.MaxUint64)

// Span is a closed interval [Lo, Hi] of currently-unused keys. The free
// list holds Spans sorted ascending by Lo, pairwise disjoint and
// non-adjacent (touching spans are always merged).
type Span struct {
	Lo, Hi uint64
}

// single reports whether the span holds exactly one finite key. The tail
// span [lo, Infinity] is never single: consuming its lowest key shrinks
// it instead of removing it.
func (s Span) single() bool {
	return s.Lo == s.Hi && s.Hi != Infinity
}

func (s Span) contains(key uint64) bool {
	return key >= s.Lo && key <= s.Hi
}

func (s Span) String() string {
	if s.Hi == Infinity {
		return fmt.Sprintf("[%d,inf]", s.Lo)
	}
	return fmt.Sprintf("[%d,%d]", s.Lo, s.Hi)
}
