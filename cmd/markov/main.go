// Command markov generates random walks over first-order Markov chains: tweets
// learned from a text corpus and snakes-and-ladders games, optionally stored
// in and replayed from a SQLite model database.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/markov/internal/config"
)

// Config is read from MARKOV_* environment variables; flags override it.
type Config struct {
	LogLevel    string `env:"MARKOV_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"MARKOV_LOG_FORMAT" envDefault:"text"`
	DBPath      string `env:"MARKOV_DB" envDefault:"markov.db"`
	TweetLength int    `env:"MARKOV_TWEET_LENGTH" envDefault:"20"`
	WalkLength  int    `env:"MARKOV_WALK_LENGTH" envDefault:"60"`
}

func main() {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("markov: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		stop()
		config.Exitf("markov: %v", err)
	}
}
