package wordgraph

import "github.com/gammazero/deque"

// newLengths returns the queue of per-character span lengths for a walk,
// one slot per character of the current context. A context is never
// deeper than depth, so the queue never grows past its first allocation.
func newLengths(depth int) *deque.Deque[uint32] {
	return deque.New[uint32](max(depth, 1))
}

// raise sets slot i, counted from the front, to v if v is larger.
func raise(q *deque.Deque[uint32], i int, v uint32) {
	if q.At(i) < v {
		q.Set(i, v)
	}
}
