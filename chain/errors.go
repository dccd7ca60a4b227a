// SPDX-License-Identifier: MIT
// Package: markov/chain
//
// errors.go: sentinel errors for the chain package.
//
// Error policy:
//   • Only sentinel variables are exposed; branch with errors.Is.
//   • Call sites attach method context with %w, never by redefining sentinels.
//   • Once GetOrInsert or RecordTransition fails the chain is unusable and the
//     caller is expected to Close it; there is no partial-success contract.

package chain

import "errors"

// ErrAllocation indicates that a new payload copy, entry, or successor edge
// could not be obtained: Clone reported a failure, or the budget configured
// with WithMaxEntries / WithMaxEdges is exhausted.
var ErrAllocation = errors.New("chain: allocation failure")

// ErrClosed indicates an operation on a chain that has already been closed.
var ErrClosed = errors.New("chain: chain is closed")

// ErrForeignEntry indicates a nil entry or an entry owned by a different chain.
var ErrForeignEntry = errors.New("chain: entry does not belong to this chain")

// ErrEmptyChain indicates sampling from a chain that has no entries.
var ErrEmptyChain = errors.New("chain: chain has no entries")

// ErrNoStartState indicates that every entry is terminal, so PickStart could
// never accept a draw.
var ErrNoStartState = errors.New("chain: no non-terminal start state")

// ErrNoSuccessors indicates PickNext on an entry without recorded successors.
var ErrNoSuccessors = errors.New("chain: entry has no successors")

// ErrBadLength indicates a walk length below 1.
var ErrBadLength = errors.New("chain: walk length must be at least 1")

// ErrBadCount indicates an observation count below 1, or one that would push
// an entry's successor total past math.MaxInt.
var ErrBadCount = errors.New("chain: observation count must be at least 1")
