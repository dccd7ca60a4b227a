package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/markov/chain"
	"github.com/katalvlaran/markov/internal/logging"
	"github.com/katalvlaran/markov/store"
)

var errBadArg = errors.New("invalid argument")

// app carries the state shared by every subcommand.
type app struct {
	cfg    Config
	logger *slog.Logger
}

func newRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg, logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:           "markov",
		Short:         "Generate random walks over Markov chains",
		Long:          `markov learns first-order Markov chains from a text corpus or a snakes-and-ladders board and prints seeded random walks over them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Config{
				Level:  a.cfg.LogLevel,
				Format: a.cfg.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a.logger = logger

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.DBPath, "db", cfg.DBPath, "model database path (MARKOV_DB)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (MARKOV_LOG_LEVEL)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", cfg.LogFormat, "text or json (MARKOV_LOG_FORMAT)")

	root.AddCommand(
		newTweetsCmd(a),
		newSnakesCmd(a),
		newReplayCmd(a),
		newModelsCmd(a),
		newDeleteCmd(a),
	)

	return root
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, a.cfg.DBPath, store.WithLogger(a.logger))
}

// save stores c as name unless name is empty.
func save[T any](ctx context.Context, a *app, name string, c *chain.Chain[T], codec store.Codec[T]) error {
	if name == "" {
		return nil
	}
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := store.Save(ctx, s, name, c, codec)
	if err != nil {
		return err
	}
	a.logger.Info("model saved", "name", m.Name, "id", m.ID, "states", m.States, "edges", m.Edges)

	return nil
}

// printWalks writes count walks of at most maxLength states, one per line,
// as "<label> i: s1 s2 ...". A nil start picks a random start per walk.
func printWalks[T any](w io.Writer, label string, count int, c *chain.Chain[T], start *chain.Entry[T], maxLength int) error {
	for i := 1; i <= count; i++ {
		walk, err := c.Generate(start, maxLength)
		if err != nil {
			return fmt.Errorf("%s %d: %w", label, i, err)
		}
		if _, err = fmt.Fprintf(w, "%s %d: %s\n", label, i, c.Format(walk, " ")); err != nil {
			return err
		}
	}

	return nil
}

func parseSeed(s string) (int64, error) {
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: seed %q", errBadArg, s)
	}

	return seed, nil
}

func parseCount(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s %q", errBadArg, what, s)
	}

	return n, nil
}
