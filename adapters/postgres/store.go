// Package postgres implements the event store on PostgreSQL using pgx.
// Each conference document lives in a single row; optimistic concurrency
// is enforced with a version column.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/softwerkskammer/Agora-sub003/core/es"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS eventstores (
	url     TEXT PRIMARY KEY,
	version BIGINT NOT NULL,
	doc     JSONB  NOT NULL
)`

// Store persists conference documents in a single eventstores table.
type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ es.EventStore = (*Store)(nil)

type Option func(*Store)

func WithLog(l *slog.Logger) Option {
	return func(s *Store) { s.log = l.With(slog.String("component", "postgres-store")) }
}

// New connects a Store to the given pool and ensures the schema exists.
func New(ctx context.Context, pool *pgxpool.Pool, opts ...Option) (*Store, error) {
	s := &Store{
		pool: pool,
		log:  slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("create eventstores table: %w", err)
	}
	return s, nil
}

// Connect opens a pool from a connection string and builds a Store on it.
func Connect(ctx context.Context, connString string, opts ...Option) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(ctx, pool, opts...)
}

func (s *Store) Fetch(ctx context.Context, conferenceURL string) (*es.Store, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM eventstores WHERE url = $1`,
		conferenceURL,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("conference %q: %w", conferenceURL, es.ErrStoreNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch eventstore: %w", err)
	}

	var doc es.Store
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode eventstore document: %w", err)
	}
	return &doc, nil
}

func (s *Store) Append(ctx context.Context, conferenceURL string, baseVersion int64, batch es.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	if baseVersion == 0 {
		return s.insert(ctx, conferenceURL, batch)
	}
	return s.update(ctx, conferenceURL, baseVersion, batch)
}

// insert handles the first append for a conference. A duplicate key means
// someone else created the document since the caller fetched.
func (s *Store) insert(ctx context.Context, conferenceURL string, batch es.Batch) error {
	doc := es.NewStore(conferenceURL)
	doc.Apply(batch)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode eventstore document: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO eventstores (url, version, doc)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (url) DO NOTHING`,
		conferenceURL, doc.Version, data,
	)
	if err != nil {
		return fmt.Errorf("insert eventstore: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return es.ErrConcurrencyConflict
	}

	s.log.Debug("eventstore created",
		slog.String("url", conferenceURL),
		slog.Int("events", batch.Len()),
	)
	return nil
}

func (s *Store) update(ctx context.Context, conferenceURL string, baseVersion int64, batch es.Batch) error {
	current, err := s.Fetch(ctx, conferenceURL)
	if errors.Is(err, es.ErrStoreNotFound) {
		return es.ErrConcurrencyConflict
	}
	if err != nil {
		return err
	}
	if current.Version != baseVersion {
		return es.ErrConcurrencyConflict
	}

	next := current.Clone()
	next.Apply(batch)

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode eventstore document: %w", err)
	}

	// The WHERE clause on version makes the write a compare-and-swap; a
	// concurrent writer that got there first leaves zero rows affected.
	tag, err := s.pool.Exec(ctx,
		`UPDATE eventstores SET version = $1, doc = $2 WHERE url = $3 AND version = $4`,
		next.Version, data, conferenceURL, baseVersion,
	)
	if err != nil {
		return fmt.Errorf("update eventstore: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return es.ErrConcurrencyConflict
	}

	s.log.Debug("eventstore updated",
		slog.String("url", conferenceURL),
		slog.Int64("version", next.Version),
		slog.Int("events", batch.Len()),
	)
	return nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}
