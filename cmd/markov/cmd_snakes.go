package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/markov/board"
	"github.com/katalvlaran/markov/chain"
)

func newSnakesCmd(a *app) *cobra.Command {
	var (
		length int
		name   string
	)
	cmd := &cobra.Command{
		Use:   "snakes SEED COUNT",
		Short: "Play random snakes-and-ladders games",
		Long: `Builds the 100-cell snakes-and-ladders chain and prints COUNT games. Every
game starts on cell 1 and ends on cell 100 or after --length cells.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := parseSeed(args[0])
			if err != nil {
				return err
			}
			count, err := parseCount("count", args[1])
			if err != nil {
				return err
			}

			c := chain.New[board.Cell](board.Cells{}, chain.WithSeed(seed), chain.WithLogger(a.logger))
			defer c.Close()

			if err = board.Fill(c); err != nil {
				return err
			}
			if err = save(cmd.Context(), a, name, c, board.CellCodec{}); err != nil {
				return err
			}
			start, _ := c.First()

			return printWalks(cmd.OutOrStdout(), "Random Walk", count, c, start, length)
		},
	}
	cmd.Flags().IntVar(&length, "length", a.cfg.WalkLength, "maximum cells per game (MARKOV_WALK_LENGTH)")
	cmd.Flags().StringVar(&name, "save", "", "store the board chain under this model name")

	return cmd
}
