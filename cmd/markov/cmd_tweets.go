package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/markov/chain"
	"github.com/katalvlaran/markov/corpus"
)

func newTweetsCmd(a *app) *cobra.Command {
	var (
		length int
		name   string
	)
	cmd := &cobra.Command{
		Use:   "tweets SEED COUNT PATH [WORDS]",
		Short: "Generate tweets from a text corpus",
		Long: `Reads whitespace-separated words from PATH (at most WORDS of them, finishing
the sentence in progress), then prints COUNT tweets. A tweet starts at a random
non-terminal word and ends at a word ending in '.' or after --length words.
Without WORDS the whole file is read; WORDS must be at least 1.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := parseSeed(args[0])
			if err != nil {
				return err
			}
			count, err := parseCount("count", args[1])
			if err != nil {
				return err
			}
			budget := 0
			if len(args) == 4 {
				if budget, err = parseCount("words", args[3]); err != nil {
					return err
				}
				if budget < 1 {
					return fmt.Errorf("%w: words must be at least 1, got %d", errBadArg, budget)
				}
			}

			ctx := cmd.Context()
			c := chain.New[string](corpus.Words{}, chain.WithSeed(seed), chain.WithLogger(a.logger))
			defer c.Close()

			if _, err = corpus.FillFile(ctx, c, args[2],
				corpus.WithBudget(budget),
				corpus.WithLogger(a.logger),
			); err != nil {
				return err
			}
			if err = save(ctx, a, name, c, corpus.WordCodec{}); err != nil {
				return err
			}

			return printWalks(cmd.OutOrStdout(), "Tweet", count, c, nil, length)
		},
	}
	cmd.Flags().IntVar(&length, "length", a.cfg.TweetLength, "maximum words per tweet (MARKOV_TWEET_LENGTH)")
	cmd.Flags().StringVar(&name, "save", "", "store the learned chain under this model name")

	return cmd
}
