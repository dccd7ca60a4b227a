// File: transitions.go
// Role: Transition table, per-entry successor counts built incrementally.
//
// Invariants:
//   - At most one edge per distinct target (by Compare on payloads).
//   - Counts are positive and their per-entry total never exceeds math.MaxInt.
//   - A failed call leaves the successor list untouched.
package chain

import (
	"fmt"
	"math"
)

// RecordTransition records one observation of from → to.
//
// If from already has an edge to a target equivalent to to, its count is
// incremented; otherwise the edge (to, 1) is appended.
//
// Errors:
//   - ErrClosed: the chain is closed.
//   - ErrForeignEntry: from or to is nil or not owned by this chain.
//   - ErrAllocation: a new edge would exceed WithMaxEdges.
//   - ErrBadCount: the successor total of from would overflow int.
//
// Complexity: O(deg(from)).
func (c *Chain[T]) RecordTransition(from, to *Entry[T]) error {
	return c.record("RecordTransition", from, to, 1)
}

// RecordTransitionN records n observations of from → to in one step.
// It is equivalent to n RecordTransition calls; n must be at least 1.
func (c *Chain[T]) RecordTransitionN(from, to *Entry[T], n int) error {
	if n < 1 {
		return fmt.Errorf("chain: RecordTransitionN: n=%d: %w", n, ErrBadCount)
	}

	return c.record("RecordTransitionN", from, to, n)
}

func (c *Chain[T]) record(method string, from, to *Entry[T], n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if !c.owns(from) || !c.owns(to) {
		return fmt.Errorf("chain: %s: %w", method, ErrForeignEntry)
	}

	total := 0
	for _, s := range from.successors {
		total += s.count
	}
	if n > math.MaxInt-total {
		return fmt.Errorf("chain: %s: total %d + n=%d overflows: %w", method, total, n, ErrBadCount)
	}

	for i := range from.successors {
		s := &from.successors[i]
		if c.caps.Compare(c.entries[s.target].value, to.value) == 0 {
			s.count += n
			return nil
		}
	}

	if c.maxEdges > 0 && c.edgeCount >= c.maxEdges {
		c.logger.Debug("edge budget exhausted", "max_edges", c.maxEdges)
		return fmt.Errorf("chain: %s: edge budget %d exhausted: %w", method, c.maxEdges, ErrAllocation)
	}
	from.successors = append(from.successors, successor{target: to.index, count: n})
	c.edgeCount++

	return nil
}
