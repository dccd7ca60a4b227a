// File: registry.go
// Role: State registry, lookup, get-or-insert, enumeration and teardown.
//
// Determinism:
//   - Entries are kept in insertion order; Entries(), At(i) and First() expose it.
//
// Concurrency:
//   - Every method takes c.mu; Entry accessors take their owner's mu.
package chain

import "fmt"

// Find returns the first entry whose payload is equivalent to v.
// Returns (nil, false) when absent or when the chain is closed.
// Complexity: O(V) Compare calls.
func (c *Chain[T]) Find(v T) (*Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false
	}
	e := c.find(v)

	return e, e != nil
}

// find is Find without locking; caller holds c.mu.
func (c *Chain[T]) find(v T) *Entry[T] {
	var e *Entry[T]
	for _, e = range c.entries {
		if c.caps.Compare(e.value, v) == 0 {
			return e
		}
	}

	return nil
}

// GetOrInsert returns the entry equivalent to v, inserting one if missing.
//
// A new entry owns a copy of v made by Capabilities.Clone and starts with an
// empty successor list; it is appended at the end of the registry.
//
// Errors:
//   - ErrClosed: the chain is closed.
//   - ErrAllocation: Clone failed, or WithMaxEntries is exhausted. In the latter
//     case the fresh copy is released before returning, so a failed call never
//     leaves an orphaned payload behind.
//
// Complexity: O(V) for the lookup, O(1) amortized for the append.
func (c *Chain[T]) GetOrInsert(v T) (*Entry[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if e := c.find(v); e != nil {
		return e, nil
	}

	owned, err := c.caps.Clone(v)
	if err != nil {
		return nil, fmt.Errorf("chain: GetOrInsert: clone: %w: %w", ErrAllocation, err)
	}
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.caps.Release(owned)
		c.logger.Debug("entry budget exhausted", "max_entries", c.maxEntries)

		return nil, fmt.Errorf("chain: GetOrInsert: entry budget %d exhausted: %w", c.maxEntries, ErrAllocation)
	}

	e := &Entry[T]{
		owner:    c,
		index:    len(c.entries),
		value:    owned,
		terminal: c.caps.IsTerminal(owned),
	}
	c.entries = append(c.entries, e)
	if !e.terminal {
		c.startable++
	}

	return e, nil
}

// Len returns the number of entries (zero once closed).
func (c *Chain[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// EdgeCount returns the number of distinct edges across all entries.
func (c *Chain[T]) EdgeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.edgeCount
}

// At returns the i-th entry in insertion order.
func (c *Chain[T]) At(i int) (*Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.entries) {
		return nil, false
	}

	return c.entries[i], true
}

// First returns the earliest inserted entry, the fallback start state of
// producers whose walks always begin at the same place.
func (c *Chain[T]) First() (*Entry[T], bool) { return c.At(0) }

// Entries returns a snapshot of all entries in insertion order.
func (c *Chain[T]) Entries() []*Entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Entry[T], len(c.entries))
	copy(out, c.entries)

	return out
}

// DeadEnds returns the non-terminal entries that have no successors, in
// insertion order. A walk reaching one of them stops early.
func (c *Chain[T]) DeadEnds() []*Entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*Entry[T]
	for _, e := range c.entries {
		if !e.terminal && len(e.successors) == 0 {
			out = append(out, e)
		}
	}

	return out
}

// Close releases every payload via Capabilities.Release, drops every
// successor list and invalidates all entries. Calling Close again is a no-op.
// It always returns nil; the error result lets Chain satisfy io.Closer.
func (c *Chain[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	var zero T
	for _, e := range c.entries {
		c.caps.Release(e.value)
		e.value = zero
		e.successors = nil
	}
	c.logger.Debug("chain closed", "entries", len(c.entries), "edges", c.edgeCount)

	c.entries = nil
	c.edgeCount = 0
	c.startable = 0
	c.closed = true

	return nil
}

// owns reports whether e is a live entry of c; caller holds c.mu.
func (c *Chain[T]) owns(e *Entry[T]) bool {
	return e != nil && e.owner == c && e.index < len(c.entries) && c.entries[e.index] == e
}

// Value returns the entry's owned payload. The chain keeps ownership; callers
// must not release or mutate it.
func (e *Entry[T]) Value() T {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()

	return e.value
}

// Index returns the entry's insertion ordinal.
func (e *Entry[T]) Index() int { return e.index }

// Terminal reports the cached IsTerminal result for the payload.
func (e *Entry[T]) Terminal() bool { return e.terminal }

// String renders the payload through Capabilities.Format.
func (e *Entry[T]) String() string { return e.owner.caps.Format(e.Value()) }

// Successors returns a snapshot of the entry's edges in the order they were
// first observed.
func (e *Entry[T]) Successors() []Edge[T] {
	c := e.owner
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Edge[T], 0, len(e.successors))
	for _, s := range e.successors {
		out = append(out, Edge[T]{Target: c.entries[s.target], Count: s.count})
	}

	return out
}

// Total returns the sum of successor counts, the denominator of PickNext.
func (e *Entry[T]) Total() int {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()

	total := 0
	for _, s := range e.successors {
		total += s.count
	}

	return total
}
