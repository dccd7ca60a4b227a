// Package store persists populated chains as named models in SQLite.
//
// A model is an ordered list of encoded states plus, per state, its
// successor edges in first-observed order. Loading a model replays
// GetOrInsert and RecordTransitionN in that order, so the restored chain has
// the same insertion order, successor order and counts as the saved one and
// a seeded walk over it matches a walk over the saved chain.
//
// Several models of different kinds live side by side in one database file;
// the Codec kind recorded with each model guards against loading it with the
// wrong payload type.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/katalvlaran/markov/store/migrations"
)

var (
	// ErrModelExists is returned by Save when the name is already taken.
	ErrModelExists = errors.New("store: model already exists")

	// ErrModelNotFound is returned when no model has the requested name.
	ErrModelNotFound = errors.New("store: model not found")

	// ErrKindMismatch is returned by Load when the codec kind differs from
	// the kind the model was saved with.
	ErrKindMismatch = errors.New("store: model kind mismatch")

	// ErrCorruptModel is returned by Load when stored state ordinals have gaps
	// or stored edges reference states the model does not have.
	ErrCorruptModel = errors.New("store: corrupt model")

	// ErrNameRequired is returned when a model name is blank.
	ErrNameRequired = errors.New("store: model name is required")
)

// Codec converts state payloads to and from their stored text form.
type Codec[T any] interface {
	// Kind labels the payload type, e.g. "words".
	Kind() string
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

// Model describes one stored chain.
type Model struct {
	ID        string
	Name      string
	Kind      string
	States    int
	Edges     int
	CreatedAt time.Time
}

// Store is a SQLite-backed model store. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Option configures Open.
type Option func(*Store)

// WithLogger sets the logger used for save, load and delete events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite db: %w", err)
	}
	if err = applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: run migrations: %w", err)
	}

	s := &Store{db: db, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Models lists every stored model, oldest first.
func (s *Store) Models(ctx context.Context) ([]Model, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, states, edges, created_at FROM models ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("store: list models: %w", err)
	}
	defer rows.Close()

	var out []Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list models: %w", err)
		}
		out = append(out, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list models: %w", err)
	}

	return out, nil
}

// Model returns the model named name.
func (s *Store) Model(ctx context.Context, name string) (Model, error) {
	return getModel(ctx, s.db, name)
}

// Delete removes the model named name together with its states and edges.
func (s *Store) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("store: delete %q: %w", name, ErrModelNotFound)
	}
	s.logger.Debug("model deleted", "name", name)

	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getModel(ctx context.Context, q queryer, name string) (Model, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Model{}, ErrNameRequired
	}

	row := q.QueryRowContext(ctx,
		`SELECT id, name, kind, states, edges, created_at FROM models WHERE name = ?`, name)
	m, err := scanModel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Model{}, fmt.Errorf("store: model %q: %w", name, ErrModelNotFound)
	}
	if err != nil {
		return Model{}, fmt.Errorf("store: model %q: %w", name, err)
	}

	return m, nil
}

func scanModel(row scanner) (Model, error) {
	var (
		m       Model
		created int64
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Kind, &m.States, &m.Edges, &created); err != nil {
		return Model{}, err
	}
	m.CreatedAt = fromMillis(created)

	return m, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
