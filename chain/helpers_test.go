// SPDX-License-Identifier: MIT
// Package chain_test contains fixtures shared by the chain tests.

package chain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/markov/chain"
)

// Common states used across chain tests.
const (
	StateA    = "a"
	StateB    = "b"
	StateC    = "c"
	StateD    = "d"
	StateEndX = "x."
	StateEndY = "y."
)

// Fixed seed so failures reproduce.
const testSeed = 7

// errNoMemory stands in for a Clone that cannot allocate.
var errNoMemory = errors.New("out of memory")

// wordCaps treats a trailing '.' as a terminal state.
func wordCaps() chain.Funcs[string] {
	return chain.Funcs[string]{
		CompareFn:    strings.Compare,
		CloneFn:      func(s string) (string, error) { return strings.Clone(s), nil },
		IsTerminalFn: func(s string) bool { return strings.HasSuffix(s, ".") },
	}
}

// tracker counts Clone/Release calls and can force Clone to fail.
type tracker struct {
	clones    int
	releases  int
	failClone bool
}

func (tr *tracker) caps() chain.Funcs[string] {
	caps := wordCaps()
	caps.CloneFn = func(s string) (string, error) {
		if tr.failClone {
			return "", errNoMemory
		}
		tr.clones++
		return strings.Clone(s), nil
	}
	caps.ReleaseFn = func(string) { tr.releases++ }

	return caps
}

// newWordChain builds a seeded string chain closed at test cleanup.
func newWordChain(t *testing.T, opts ...chain.Option) *chain.Chain[string] {
	t.Helper()
	c := chain.New[string](wordCaps(), append([]chain.Option{chain.WithSeed(testSeed)}, opts...)...)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

// insert GetOrInserts every value and returns the entries in call order.
func insert(t *testing.T, c *chain.Chain[string], values ...string) []*chain.Entry[string] {
	t.Helper()
	out := make([]*chain.Entry[string], 0, len(values))
	for _, v := range values {
		e, err := c.GetOrInsert(v)
		require.NoError(t, err, "GetOrInsert(%q)", v)
		out = append(out, e)
	}

	return out
}

// link records from → to count times, inserting both states as needed.
func link(t *testing.T, c *chain.Chain[string], from, to string, count int) {
	t.Helper()
	es := insert(t, c, from, to)
	require.NoError(t, c.RecordTransitionN(es[0], es[1], count), "RecordTransitionN(%q,%q,%d)", from, to, count)
}

// counts flattens an entry's successors to target → count.
func counts(e *chain.Entry[string]) map[string]int {
	out := make(map[string]int)
	for _, edge := range e.Successors() {
		out[edge.Target.Value()] = edge.Count
	}

	return out
}
