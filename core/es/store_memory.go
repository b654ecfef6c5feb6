package es

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryStore is a simple, correct (optimistic) store for tests/dev.
type InMemoryStore struct {
	mu      sync.Mutex
	log     *slog.Logger
	docs    map[string]*Store
	metrics Metrics
}

type InMemoryStoreOption func(*InMemoryStore)

func WithStoreLog(log *slog.Logger) InMemoryStoreOption {
	return func(s *InMemoryStore) { s.log = log }
}

func WithStoreMetrics(m Metrics) InMemoryStoreOption {
	return func(s *InMemoryStore) { s.metrics = m }
}

func NewInMemoryStore(opts ...InMemoryStoreOption) *InMemoryStore {
	s := &InMemoryStore{
		log:     slog.Default(),
		docs:    map[string]*Store{},
		metrics: NopMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("store", "memory"))
	return s
}

func (s *InMemoryStore) Fetch(_ context.Context, conferenceURL string) (*Store, error) {
	defer s.metrics.FetchDuration().ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[conferenceURL]
	if !ok {
		return nil, ErrStoreNotFound
	}
	return doc.Clone(), nil
}

func (s *InMemoryStore) Append(_ context.Context, conferenceURL string, baseVersion int64, batch Batch) error {
	defer s.metrics.AppendDuration().ObserveDuration()

	if err := batch.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[conferenceURL]
	if !ok {
		doc = NewStore(conferenceURL)
	}
	if doc.Version != baseVersion {
		s.metrics.ConcurrencyConflict()
		return ErrConcurrencyConflict
	}

	doc.Apply(batch)
	s.docs[conferenceURL] = doc
	s.metrics.EventsAppended(batch.Len())

	s.log.Debug(
		"append",
		slog.String("conference", conferenceURL),
		slog.Int64("version", doc.Version),
		slog.Int("num_events", batch.Len()),
	)

	return nil
}

var _ EventStore = (*InMemoryStore)(nil)
