// SPDX-License-Identifier: MIT
// Package: markov/chain
//
// types.go: Capabilities, Entry, Edge, Chain and the New constructor.
//
// Ownership:
//   • The Chain owns every Entry and every payload copy.
//   • Successor lists hold arena indexes into Chain.entries, never owning links.
//   • Entries are never removed individually; Close tears everything down.

package chain

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
)

// Capabilities supplies the payload semantics of a state type T.
// A chain never inspects payload structure; it only calls these methods.
type Capabilities[T any] interface {
	// Format renders v for printing. Not used by the sampling algorithms.
	Format(v T) string

	// Compare returns zero iff a and b denote the same state.
	Compare(a, b T) int

	// Clone returns an owned deep copy of v. A non-nil error is reported by
	// the chain as ErrAllocation.
	Clone(v T) (T, error)

	// Release frees an owned copy produced by Clone.
	Release(v T)

	// IsTerminal reports whether a walk must stop after emitting v.
	// It must be pure: the chain evaluates it once per entry.
	IsTerminal(v T) bool
}

// Funcs adapts plain functions to Capabilities.
// CompareFn is required; nil optional fields fall back to fmt.Sprint for
// FormatFn, identity for CloneFn, a no-op for ReleaseFn and "never terminal"
// for IsTerminalFn.
type Funcs[T any] struct {
	FormatFn     func(v T) string
	CompareFn    func(a, b T) int
	CloneFn      func(v T) (T, error)
	ReleaseFn    func(v T)
	IsTerminalFn func(v T) bool
}

// Format implements Capabilities.
func (f Funcs[T]) Format(v T) string {
	if f.FormatFn == nil {
		return fmt.Sprint(v)
	}
	return f.FormatFn(v)
}

// Compare implements Capabilities.
func (f Funcs[T]) Compare(a, b T) int { return f.CompareFn(a, b) }

// Clone implements Capabilities.
func (f Funcs[T]) Clone(v T) (T, error) {
	if f.CloneFn == nil {
		return v, nil
	}
	return f.CloneFn(v)
}

// Release implements Capabilities.
func (f Funcs[T]) Release(v T) {
	if f.ReleaseFn != nil {
		f.ReleaseFn(v)
	}
}

// IsTerminal implements Capabilities.
func (f Funcs[T]) IsTerminal(v T) bool {
	if f.IsTerminalFn == nil {
		return false
	}
	return f.IsTerminalFn(v)
}

// successor is one internal edge: arena index of the target and its count.
type successor struct {
	target int // index into Chain.entries
	count  int // observations, always >= 1
}

// Entry is the chain-owned wrapper around one unique state.
//
// An Entry is only valid while its chain is open. After Close, accessors
// return zero values.
type Entry[T any] struct {
	owner      *Chain[T]
	index      int         // insertion ordinal
	value      T           // owned copy from Capabilities.Clone
	terminal   bool        // cached IsTerminal(value); immutable
	successors []successor // at most one per distinct target
}

// Edge is a read-only view of one weighted successor.
type Edge[T any] struct {
	// Target is the successor entry. It is owned by the chain, not the edge.
	Target *Entry[T]

	// Count is the number of observed (from → Target) transitions.
	Count int
}

// Chain is a first-order Markov chain over states of type T.
//
// mu guards every field below it, including the RNG.
type Chain[T any] struct {
	mu sync.Mutex

	caps   Capabilities[T]
	rng    *rand.Rand
	logger *slog.Logger

	// Budgets; zero means unlimited.
	maxEntries int
	maxEdges   int

	entries   []*Entry[T] // insertion order
	edgeCount int         // distinct (from, to) pairs across all entries
	startable int         // non-terminal entries
	closed    bool
}

// New creates an empty chain that interprets payloads through caps.
// Panics on nil caps, mirroring the option constructors.
// Complexity: O(len(opts)).
func New[T any](caps Capabilities[T], opts ...Option) *Chain[T] {
	if caps == nil {
		panic("chain: New(nil capabilities)")
	}
	cfg := newConfig(opts...)

	return &Chain[T]{
		caps:       caps,
		rng:        cfg.rng,
		logger:     cfg.logger,
		maxEntries: cfg.maxEntries,
		maxEdges:   cfg.maxEdges,
	}
}

// Capabilities returns the payload strategy the chain was built with.
func (c *Chain[T]) Capabilities() Capabilities[T] { return c.caps }
