// SPDX-License-Identifier: MIT
// Package: markov/chain
//
// options.go: functional options for New.
//
// Contract:
//   • Option constructors validate and PANIC on meaningless inputs; chain
//     operations never panic on caller data and return sentinels instead.
//   • Determinism is explicit: seed with WithSeed or inject WithRand.
//   • Later options override earlier ones.

package chain

import (
	"io"
	"log/slog"
	"math/rand"
	"time"
)

// Option customizes a Chain before it is returned by New.
type Option func(*config)

// config aggregates every knob consumed by New.
type config struct {
	rng        *rand.Rand
	logger     *slog.Logger
	maxEntries int
	maxEdges   int
}

// newConfig applies opts in order on top of the defaults:
// a time-seeded RNG, a discard logger and unlimited budgets.
func newConfig(opts ...Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return cfg
}

// WithRand provides an explicit RNG. The chain takes ownership of r: it must
// not be shared with code running concurrently with the chain.
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("chain: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
// Use this in tests and CLIs to reproduce walks.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("chain: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithMaxEntries caps the number of entries. GetOrInsert reports
// ErrAllocation once the cap is reached. Zero means unlimited; panics on n < 0.
func WithMaxEntries(n int) Option {
	if n < 0 {
		panic("chain: WithMaxEntries(n<0)")
	}
	return func(c *config) {
		c.maxEntries = n
	}
}

// WithMaxEdges caps the number of distinct edges across the chain.
// RecordTransition reports ErrAllocation when a new edge would exceed it;
// incrementing an existing edge never does. Zero means unlimited; panics on n < 0.
func WithMaxEdges(n int) Option {
	if n < 0 {
		panic("chain: WithMaxEdges(n<0)")
	}
	return func(c *config) {
		c.maxEdges = n
	}
}
