// Package markov is a small toolkit for first-order Markov chains over
// arbitrary discrete states.
//
// 🚀 What is inside?
//
//	chain/  - the generic engine: state registry, weighted transition table,
//	          start and successor samplers, bounded walks
//	corpus/ - learns a word chain from whitespace-separated text
//	board/  - the 100-cell snakes-and-ladders board as a chain of cells
//	store/  - SQLite persistence: save a populated chain as a named model and
//	          replay it later with identical walks
//
//	cmd/markov - the command line front end (tweets, snakes, replay, models)
//
// ✨ Quick example:
//
//	c := chain.New[string](corpus.Words{}, chain.WithSeed(42))
//	defer c.Close()
//
//	if _, err := corpus.Fill(ctx, c, strings.NewReader("the cat sat. the dog ran.")); err != nil { … }
//	walk, _ := c.Generate(nil, 20)
//	fmt.Println(c.Format(walk, " ")) // e.g. "the dog ran."
//
// Any comparable notion of state works: supply a chain.Capabilities[T]
// implementation, or fill in chain.Funcs[T] with plain functions. The
// examples/ directory shows a weather chain built that way.
//
//	go get github.com/katalvlaran/markov
package markov
