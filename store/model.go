package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/markov/chain"
)

// Save stores c under name. The chain must not be mutated while Save runs.
//
// Errors:
//   - ErrNameRequired: name is blank.
//   - chain.ErrEmptyChain: c has no states (a closed chain has none).
//   - ErrModelExists: name is taken.
//   - any Codec.Encode error, wrapped.
func Save[T any](ctx context.Context, s *Store, name string, c *chain.Chain[T], codec Codec[T]) (Model, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Model{}, ErrNameRequired
	}
	entries := c.Entries()
	if len(entries) == 0 {
		return Model{}, fmt.Errorf("store: save %q: %w", name, chain.ErrEmptyChain)
	}

	m := Model{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      codec.Kind(),
		States:    len(entries),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	payloads := make([]string, len(entries))
	edges := make([][]chain.Edge[T], len(entries))
	for i, e := range entries {
		p, err := codec.Encode(e.Value())
		if err != nil {
			return Model{}, fmt.Errorf("store: save %q: state %d: %w", name, i, err)
		}
		payloads[i] = p
		edges[i] = e.Successors()
		m.Edges += len(edges[i])
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Model{}, fmt.Errorf("store: save %q: begin: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO models (id, name, kind, states, edges, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Kind, m.States, m.Edges, toMillis(m.CreatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return Model{}, fmt.Errorf("store: save %q: %w", name, ErrModelExists)
		}
		return Model{}, fmt.Errorf("store: save %q: %w", name, err)
	}

	stateStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO model_states (model_id, ord, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return Model{}, fmt.Errorf("store: save %q: %w", name, err)
	}
	defer stateStmt.Close()
	edgeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO model_edges (model_id, from_ord, position, to_ord, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Model{}, fmt.Errorf("store: save %q: %w", name, err)
	}
	defer edgeStmt.Close()

	for i, p := range payloads {
		if _, err = stateStmt.ExecContext(ctx, m.ID, i, p); err != nil {
			return Model{}, fmt.Errorf("store: save %q: state %d: %w", name, i, err)
		}
		for pos, edge := range edges[i] {
			if _, err = edgeStmt.ExecContext(ctx, m.ID, i, pos, edge.Target.Index(), edge.Count); err != nil {
				return Model{}, fmt.Errorf("store: save %q: edge %d/%d: %w", name, i, pos, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return Model{}, fmt.Errorf("store: save %q: commit: %w", name, err)
	}
	s.logger.Debug("model saved", "name", m.Name, "kind", m.Kind, "states", m.States, "edges", m.Edges)

	return m, nil
}

// Load replays the model named name into dst: every state through
// GetOrInsert in stored order, then every edge through RecordTransitionN in
// stored order. dst is normally empty; states it already holds are reused.
//
// Errors:
//   - ErrModelNotFound, ErrKindMismatch, ErrCorruptModel.
//   - any Codec.Decode or chain error, wrapped. dst may be partially filled.
func Load[T any](ctx context.Context, s *Store, name string, dst *chain.Chain[T], codec Codec[T]) (Model, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Model{}, fmt.Errorf("store: load %q: begin: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	m, err := getModel(ctx, tx, name)
	if err != nil {
		return Model{}, err
	}
	if m.Kind != codec.Kind() {
		return Model{}, fmt.Errorf("store: load %q: stored %q, codec %q: %w", m.Name, m.Kind, codec.Kind(), ErrKindMismatch)
	}

	entries, err := loadStates(ctx, tx, m, dst, codec)
	if err != nil {
		return Model{}, err
	}
	if err = loadEdges(ctx, tx, m, dst, entries); err != nil {
		return Model{}, err
	}
	s.logger.Debug("model loaded", "name", m.Name, "kind", m.Kind, "states", m.States, "edges", m.Edges)

	return m, nil
}

func loadStates[T any](ctx context.Context, tx *sql.Tx, m Model, dst *chain.Chain[T], codec Codec[T]) ([]*chain.Entry[T], error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT ord, payload FROM model_states WHERE model_id = ? ORDER BY ord`, m.ID)
	if err != nil {
		return nil, fmt.Errorf("store: load %q: states: %w", m.Name, err)
	}
	defer rows.Close()

	entries := make([]*chain.Entry[T], 0, m.States)
	for rows.Next() {
		var (
			ord     int
			payload string
		)
		if err = rows.Scan(&ord, &payload); err != nil {
			return nil, fmt.Errorf("store: load %q: states: %w", m.Name, err)
		}
		if ord != len(entries) {
			return nil, fmt.Errorf("store: load %q: state ordinal %d out of sequence: %w", m.Name, ord, ErrCorruptModel)
		}
		v, err := codec.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("store: load %q: state %d: %w", m.Name, ord, err)
		}
		e, err := dst.GetOrInsert(v)
		if err != nil {
			return nil, fmt.Errorf("store: load %q: state %d: %w", m.Name, ord, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load %q: states: %w", m.Name, err)
	}
	if len(entries) != m.States {
		return nil, fmt.Errorf("store: load %q: %d of %d states: %w", m.Name, len(entries), m.States, ErrCorruptModel)
	}

	return entries, nil
}

func loadEdges[T any](ctx context.Context, tx *sql.Tx, m Model, dst *chain.Chain[T], entries []*chain.Entry[T]) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT from_ord, to_ord, count FROM model_edges WHERE model_id = ? ORDER BY from_ord, position`, m.ID)
	if err != nil {
		return fmt.Errorf("store: load %q: edges: %w", m.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var from, to, count int
		if err = rows.Scan(&from, &to, &count); err != nil {
			return fmt.Errorf("store: load %q: edges: %w", m.Name, err)
		}
		if from < 0 || from >= len(entries) || to < 0 || to >= len(entries) {
			return fmt.Errorf("store: load %q: edge %d->%d: %w", m.Name, from, to, ErrCorruptModel)
		}
		if err = dst.RecordTransitionN(entries[from], entries[to], count); err != nil {
			return fmt.Errorf("store: load %q: edge %d->%d: %w", m.Name, from, to, err)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("store: load %q: edges: %w", m.Name, err)
	}

	return nil
}
