// File: sampler.go
// Role: Start-state and successor sampling.
//
// Both samplers draw from the chain's own *rand.Rand under c.mu, so a fixed
// seed and a fixed population order reproduce the same picks.
package chain

import "fmt"

// PickStart draws a uniformly random entry, redrawing while the entry is
// terminal. The loop is unbounded but terminates with probability 1 because
// at least one non-terminal entry is guaranteed to exist.
//
// Errors:
//   - ErrClosed: the chain is closed.
//   - ErrEmptyChain: the chain has no entries.
//   - ErrNoStartState: every entry is terminal.
func (c *Chain[T]) PickStart() (*Entry[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkStart(); err != nil {
		return nil, fmt.Errorf("chain: PickStart: %w", err)
	}

	return c.pickStart(), nil
}

// checkStart checks the PickStart preconditions; caller holds c.mu.
func (c *Chain[T]) checkStart() error {
	switch {
	case c.closed:
		return ErrClosed
	case len(c.entries) == 0:
		return ErrEmptyChain
	case c.startable == 0:
		return ErrNoStartState
	}

	return nil
}

// pickStart is the rejection loop; caller holds c.mu and checked checkStart.
func (c *Chain[T]) pickStart() *Entry[T] {
	for {
		e := c.entries[c.rng.Intn(len(c.entries))]
		if !e.terminal {
			return e
		}
	}
}

// PickNext draws a successor of e with probability count/total.
//
// Errors:
//   - ErrClosed: the chain is closed.
//   - ErrForeignEntry: e is nil or not owned by this chain.
//   - ErrNoSuccessors: e has no recorded successors.
//
// Complexity: O(deg(e)).
func (c *Chain[T]) PickNext(e *Entry[T]) (*Entry[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if !c.owns(e) {
		return nil, fmt.Errorf("chain: PickNext: %w", ErrForeignEntry)
	}
	if len(e.successors) == 0 {
		return nil, fmt.Errorf("chain: PickNext: entry %d: %w", e.index, ErrNoSuccessors)
	}

	return c.pickNext(e), nil
}

// pickNext draws r in [0,total) and subtracts counts in list order until r
// goes negative; caller holds c.mu and e has at least one successor.
func (c *Chain[T]) pickNext(e *Entry[T]) *Entry[T] {
	total := 0
	for _, s := range e.successors {
		total += s.count
	}

	r := c.rng.Intn(total)
	for _, s := range e.successors {
		r -= s.count
		if r < 0 {
			return c.entries[s.target]
		}
	}

	// Unreachable: r < total guarantees a hit.
	return c.entries[e.successors[len(e.successors)-1].target]
}
