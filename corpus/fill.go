package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/markov/chain"
)

var (
	// ErrOpenCorpus is returned when the corpus file cannot be opened.
	ErrOpenCorpus = errors.New("corpus: cannot open corpus")

	// ErrNilChain is returned when Fill is given a nil chain.
	ErrNilChain = errors.New("corpus: chain is nil")
)

// maxTokenSize bounds a single whitespace-free run of input.
const maxTokenSize = 1 << 20

// Stats summarizes one Fill call.
type Stats struct {
	// Tokens is the number of tokens consumed.
	Tokens int
	// Sentences is the number of terminal tokens consumed.
	Sentences int
	// Unterminated is true when the input ended inside a sentence, leaving its
	// last word without a recorded successor.
	Unterminated bool
}

// Option configures Fill.
type Option func(*options)

type options struct {
	budget int
	logger *slog.Logger
}

// WithBudget limits Fill to n tokens, rounded up to the end of the sentence
// in progress. n <= 0 means no limit.
func WithBudget(n int) Option {
	return func(o *options) {
		o.budget = n
	}
}

// WithLogger sets the logger used for the fill summary. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Fill reads whitespace-separated tokens from r into c.
//
// For every token it calls GetOrInsert and, unless the token opens a
// sentence, RecordTransition from the previous token. The previous token is
// reset after every terminal word. ctx is checked between tokens.
//
// Any chain error aborts the fill and is returned wrapped; the caller is
// expected to Close the chain.
func Fill(ctx context.Context, c *chain.Chain[string], r io.Reader, opts ...Option) (Stats, error) {
	if c == nil {
		return Stats{}, ErrNilChain
	}
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTokenSize)
	sc.Split(bufio.ScanWords)

	var (
		st   Stats
		prev *chain.Entry[string]
	)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		cur, err := c.GetOrInsert(sc.Text())
		if err != nil {
			return st, fmt.Errorf("corpus: Fill: token %d: %w", st.Tokens+1, err)
		}
		if prev != nil {
			if err = c.RecordTransition(prev, cur); err != nil {
				return st, fmt.Errorf("corpus: Fill: token %d: %w", st.Tokens+1, err)
			}
		}
		st.Tokens++

		if !cur.Terminal() {
			prev = cur
			continue
		}
		st.Sentences++
		prev = nil
		if o.budget > 0 && st.Tokens >= o.budget {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return st, fmt.Errorf("corpus: Fill: scan: %w", err)
	}
	st.Unterminated = prev != nil

	o.logger.Debug("corpus filled",
		"tokens", st.Tokens,
		"sentences", st.Sentences,
		"states", c.Len(),
		"edges", c.EdgeCount(),
		"unterminated", st.Unterminated,
	)

	return st, nil
}

// FillFile opens path and Fills c from it.
func FillFile(ctx context.Context, c *chain.Chain[string], path string, opts ...Option) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrOpenCorpus, err)
	}
	defer f.Close()

	return Fill(ctx, c, f, opts...)
}
