package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/softwerkskammer/Agora-sub003/core/es"
)

const defaultBucket = "agora_eventstores"

type EventStoreConfig struct {
	Connect Connector    // Connect creates the NATS connection. If nil, ConnectDefault() is used.
	Log     *slog.Logger // Log for diagnostics (optional)
	Bucket  string       // Bucket is the KV bucket holding one entry per conference
}

// EventStore persists each conference document as one JetStream KV entry.
// Optimistic concurrency maps onto KV revisions: Append re-reads the entry,
// checks the document version against the caller's base version and writes
// with Update(lastRevision), so a racing writer loses with
// es.ErrConcurrencyConflict either way.
type EventStore struct {
	nc      *natsgo.Conn
	closeNc closeFunc
	kv      jetstream.KeyValue
	log     *slog.Logger
}

func NewEventStore(cfg EventStoreConfig) (*EventStore, error) {
	doConnect := cfg.Connect
	if doConnect == nil {
		doConnect = ConnectDefault()
	}

	nc, closeNatsCon, err := doConnect()
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, err
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = defaultBucket
	}

	kv, err := js.CreateOrUpdateKeyValue(context.Background(), jetstream.KeyValueConfig{
		Bucket:  bucket,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket %s: %w", bucket, err)
	}

	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	return &EventStore{
		nc:      nc,
		closeNc: closeNatsCon,
		kv:      kv,
		log:     log.With(slog.String("store", "nats_kv"), slog.String("bucket", bucket)),
	}, nil
}

func (s *EventStore) Close() {
	if s.closeNc != nil {
		s.closeNc()
	}
}

// keyFor maps a conference URL onto a valid KV key.
func keyFor(conferenceURL string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, conferenceURL)
}

func (s *EventStore) Fetch(ctx context.Context, conferenceURL string) (*es.Store, error) {
	entry, err := s.kv.Get(ctx, keyFor(conferenceURL))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, es.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", conferenceURL, err)
	}
	var doc es.Store
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		return nil, fmt.Errorf("corrupt event store document for %s: %w", conferenceURL, err)
	}
	return &doc, nil
}

func (s *EventStore) Append(ctx context.Context, conferenceURL string, baseVersion int64, batch es.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	key := keyFor(conferenceURL)

	entry, err := s.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return s.create(ctx, key, conferenceURL, baseVersion, batch)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s before append: %w", conferenceURL, err)
	}

	var doc es.Store
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		return fmt.Errorf("corrupt event store document for %s: %w", conferenceURL, err)
	}
	if doc.Version != baseVersion {
		return es.ErrConcurrencyConflict
	}

	next := doc.Clone()
	next.Apply(batch)

	data, err := json.Marshal(next)
	if err != nil {
		return err
	}

	if _, err := s.kv.Update(ctx, key, data, entry.Revision()); err != nil {
		if isRevisionMismatch(err) {
			return es.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to append to %s: %w", conferenceURL, err)
	}

	s.log.Debug(
		"append",
		slog.String("conference", conferenceURL),
		slog.Int64("version", next.Version),
		slog.Int("num_events", batch.Len()),
	)
	return nil
}

// create handles the first append for a new conference. A racing first
// writer makes Create fail, which is a regular conflict.
func (s *EventStore) create(ctx context.Context, key, conferenceURL string, baseVersion int64, batch es.Batch) error {
	if baseVersion != 0 {
		return es.ErrConcurrencyConflict
	}
	doc := es.NewStore(conferenceURL)
	doc.Apply(batch)

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := s.kv.Create(ctx, key, data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return es.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to create %s: %w", conferenceURL, err)
	}
	return nil
}

func isRevisionMismatch(err error) bool {
	var apiErr *jetstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
	}
	return errors.Is(err, jetstream.ErrKeyExists)
}

var _ es.EventStore = (*EventStore)(nil)
