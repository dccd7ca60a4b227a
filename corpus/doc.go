// Package corpus turns whitespace-separated text into a word chain.
//
// Every token is a state; a token ending in '.' is terminal and closes the
// current sentence, so no transition is ever recorded out of a terminal word.
//
//	c := chain.New[string](corpus.Words{}, chain.WithSeed(seed))
//	stats, err := corpus.FillFile(ctx, c, "tweets.txt", corpus.WithBudget(1000))
//
// Token budget:
//
//	WithBudget(n) bounds how many tokens are consumed. Once n tokens have been
//	read the producer finishes the sentence in progress and stops, so a budget
//	never leaves a non-terminal word without successors. Input that ends in the
//	middle of a sentence still can; Stats.Unterminated reports it and
//	chain.DeadEnds lists the affected word.
package corpus
