// Package chain implements a generic first-order Markov chain over discrete
// states, together with the two samplers needed to walk it.
//
// 🚀 What is a chain?
//
//	A Chain[T] is a registry of unique states (words, board cells, …), each
//	wrapped in an Entry that carries a weighted successor list. A weight is the
//	number of times the pair (from → to) was observed in training data, so
//	sampling a successor is frequency-proportional without ever building a
//	normalized probability table.
//
// ✨ Key features:
//   - Deduplicated, insertion-ordered registry (GetOrInsert, Find, First, At)
//   - Incremental transition counting (RecordTransition, RecordTransitionN)
//   - Uniform non-terminal start selection (PickStart, rejection sampling)
//   - Count-weighted successor selection (PickNext)
//   - Bounded walks that stop on terminal states (Walk as iter.Seq, Generate)
//   - One-shot teardown that releases every owned payload (Close, idempotent)
//
// Payload semantics are supplied by the caller through Capabilities[T]:
//
//	Format(v)      - render a state for printing (never used by sampling)
//	Compare(a, b)  - zero iff a and b denote the same state
//	Clone(v)       - owned deep copy taken at insertion; error = allocation failure
//	Release(v)     - frees an owned copy on Close
//	IsTerminal(v)  - walk-stopping states; must be pure
//
// Funcs[T] adapts plain functions to the interface.
//
// ⚙️ Usage:
//
//	c := chain.New[string](words, chain.WithSeed(42))
//	defer c.Close()
//
//	prev, _ := c.GetOrInsert("the")
//	next, _ := c.GetOrInsert("cat.")
//	_ = c.RecordTransition(prev, next)
//
//	seq, err := c.Generate(nil, 20) // nil start ⇒ PickStart
//
// Randomness:
//
//	Every draw comes from the chain's *rand.Rand (WithRand / WithSeed); there
//	is no package-level RNG. A fixed seed reproduces the same walks for the same
//	population order.
//
// Concurrency:
//
//	All chain state and the RNG are guarded by a single mutex. Walk takes the
//	lock once per step and never holds it while yielding.
//
// Complexity:
//
//   - Find / GetOrInsert: O(V) linear scan, no secondary index.
//   - RecordTransition:   O(deg(from)).
//   - PickStart:          expected O(V / non-terminal V) draws.
//   - PickNext:           O(deg(e)).
//
// Errors:
//
//	ErrAllocation     - Clone failed, or the entry/edge budget is exhausted.
//	ErrClosed         - the chain has been torn down.
//	ErrForeignEntry   - nil entry, or an entry owned by another chain.
//	ErrEmptyChain     - sampling from a chain with no entries.
//	ErrNoStartState   - every entry is terminal, so no walk can start.
//	ErrNoSuccessors   - PickNext on an entry that has no recorded successors.
//	ErrBadLength      - walk length below 1.
//	ErrBadCount       - RecordTransitionN with n below 1.
package chain
