// File: walk.go
// Role: Walk generator, bounded random walks over the sampler.
//
// Stop rule:
//   - The start entry is always emitted, terminal or not.
//   - Each further step emits PickNext(current) and stops right after a
//     terminal entry, so a walk never exceeds maxLength entries.
//   - A non-terminal entry without successors (a dead end) ends the walk early.
package chain

import (
	"fmt"
	"iter"
	"strings"
)

// Walk returns a lazy walk of at most maxLength entries.
//
// If start is nil a start entry is drawn with PickStart when Walk is called,
// so every iteration of the returned sequence begins at the same entry but
// draws fresh successors. The chain lock is held per step, never across yield.
//
// Errors:
//   - ErrBadLength: maxLength < 1.
//   - ErrClosed, ErrEmptyChain, ErrNoStartState: see PickStart (nil start).
//   - ErrForeignEntry: start is not owned by this chain.
func (c *Chain[T]) Walk(start *Entry[T], maxLength int) (iter.Seq[*Entry[T]], error) {
	if maxLength < 1 {
		return nil, fmt.Errorf("chain: Walk: maxLength=%d: %w", maxLength, ErrBadLength)
	}

	c.mu.Lock()
	if start == nil {
		if err := c.checkStart(); err != nil {
			c.mu.Unlock()
			return nil, fmt.Errorf("chain: Walk: %w", err)
		}
		start = c.pickStart()
	} else if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	} else if !c.owns(start) {
		c.mu.Unlock()
		return nil, fmt.Errorf("chain: Walk: %w", ErrForeignEntry)
	}
	c.mu.Unlock()

	return func(yield func(*Entry[T]) bool) {
		if !yield(start) {
			return
		}
		cur := start
		for step := 1; step < maxLength; step++ {
			next, ok := c.step(cur)
			if !ok || !yield(next) {
				return
			}
			if next.terminal {
				return
			}
			cur = next
		}
	}, nil
}

// step draws the successor of cur, or reports false at a dead end or after
// the chain was closed mid-walk.
func (c *Chain[T]) step(cur *Entry[T]) (*Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(cur.successors) == 0 {
		return nil, false
	}

	return c.pickNext(cur), true
}

// generateCapHint bounds the up-front allocation for very long walk limits.
const generateCapHint = 64

// Generate runs Walk eagerly and returns the emitted entries.
// The result always has length in [1, maxLength].
func (c *Chain[T]) Generate(start *Entry[T], maxLength int) ([]*Entry[T], error) {
	seq, err := c.Walk(start, maxLength)
	if err != nil {
		return nil, err
	}

	out := make([]*Entry[T], 0, min(maxLength, generateCapHint))
	for e := range seq {
		out = append(out, e)
	}

	return out, nil
}

// Values returns the payloads of a walk in order.
func Values[T any](walk []*Entry[T]) []T {
	out := make([]T, len(walk))
	for i, e := range walk {
		out[i] = e.Value()
	}

	return out
}

// Format renders a walk through Capabilities.Format, joining states with sep.
func (c *Chain[T]) Format(walk []*Entry[T], sep string) string {
	var b strings.Builder
	for i, e := range walk {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(c.caps.Format(e.Value()))
	}

	return b.String()
}
