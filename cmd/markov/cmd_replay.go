package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/markov/board"
	"github.com/katalvlaran/markov/chain"
	"github.com/katalvlaran/markov/corpus"
	"github.com/katalvlaran/markov/internal/random"
	"github.com/katalvlaran/markov/store"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		seed   int64
		length int
	)
	cmd := &cobra.Command{
		Use:   "replay NAME COUNT",
		Short: "Generate walks from a stored model",
		Long: `Loads the model NAME from the database and prints COUNT walks over it, in the
format of the command that saved it. Without --seed a random seed is drawn and
logged at info level.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseCount("count", args[1])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				if seed, err = random.NewSeed(); err != nil {
					return err
				}
			}
			a.logger.Info("replay", "model", args[0], "seed", seed)

			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			m, err := s.Model(ctx, args[0])
			if err != nil {
				return err
			}
			opts := []chain.Option{chain.WithSeed(seed), chain.WithLogger(a.logger)}
			out := cmd.OutOrStdout()
			words, cells := corpus.WordCodec{}, board.CellCodec{}

			switch m.Kind {
			case words.Kind():
				return replay(ctx, s, m.Name, chain.New[string](corpus.Words{}, opts...), words,
					out, "Tweet", count, false, lengthOr(length, a.cfg.TweetLength))
			case cells.Kind():
				return replay(ctx, s, m.Name, chain.New[board.Cell](board.Cells{}, opts...), cells,
					out, "Random Walk", count, true, lengthOr(length, a.cfg.WalkLength))
			}

			return fmt.Errorf("%w: model %q has unknown kind %q", errBadArg, m.Name, m.Kind)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: drawn from crypto/rand)")
	cmd.Flags().IntVar(&length, "length", 0, "maximum walk length (default: per model kind)")

	return cmd
}

// replay loads name into c and prints count walks. fromFirst starts every
// walk at the first stored state instead of a random one.
func replay[T any](ctx context.Context, s *store.Store, name string, c *chain.Chain[T], codec store.Codec[T],
	w io.Writer, label string, count int, fromFirst bool, maxLength int) error {
	defer c.Close()

	if _, err := store.Load(ctx, s, name, c, codec); err != nil {
		return err
	}
	var start *chain.Entry[T]
	if fromFirst {
		start, _ = c.First()
	}

	return printWalks(w, label, count, c, start, maxLength)
}

func lengthOr(n, def int) int {
	if n > 0 {
		return n
	}

	return def
}
