// Package service orchestrates command execution: fetch the conference event
// store, fold the write models, run the command processor, append the
// outcome with optimistic concurrency and retry the whole cycle on conflict.
// Notifications fire exactly once, after a durable, conflict-free append.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/softwerkskammer/Agora-sub003/core/cache"
	"github.com/softwerkskammer/Agora-sub003/core/conference"
	"github.com/softwerkskammer/Agora-sub003/core/es"
	"github.com/softwerkskammer/Agora-sub003/core/events"
	"github.com/softwerkskammer/Agora-sub003/core/registration"
	"github.com/softwerkskammer/Agora-sub003/core/rooms"
	"github.com/softwerkskammer/Agora-sub003/core/sf"
)

// Service runs commands against one event store. Each command execution
// fetches its own copy of the conference document and computes its models
// locally; the only shared mutable resource is the persisted document,
// guarded by the store's version check.
type Service struct {
	log        *slog.Logger
	store      es.EventStore
	registry   *es.EventRegistry
	notifier   Notifier
	metrics    es.Metrics
	clock      func() time.Time
	maxRetries int

	decodeCache cache.TypedCache[*decodedStreams]
	decodeSF    *sf.Singleflight[decodedStreams]
}

type Option func(*Service)

func WithLog(log *slog.Logger) Option           { return func(s *Service) { s.log = log } }
func WithNotifier(n Notifier) Option            { return func(s *Service) { s.notifier = n } }
func WithMetrics(m es.Metrics) Option           { return func(s *Service) { s.metrics = m } }
func WithClock(clock func() time.Time) Option   { return func(s *Service) { s.clock = clock } }

// WithMaxRetries caps conflict-driven retries per command. 0 retries
// unbounded, matching the short contention windows of the domain.
func WithMaxRetries(n int) Option { return func(s *Service) { s.maxRetries = n } }

func New(store es.EventStore, opts ...Option) *Service {
	s := &Service{
		log:         slog.Default(),
		store:       store,
		registry:    es.NewRegistry(),
		notifier:    NewNopNotifier(),
		metrics:     es.NopMetrics(),
		clock:       time.Now,
		decodeCache: cache.NewTyped[*decodedStreams](cache.NewLRU(cache.LRUOpts{Size: 256})),
		decodeSF:    sf.New[decodedStreams](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("component", "service"))
	events.RegisterAll(s.registry)
	return s
}

// decodedStreams caches the decoded event streams of one fetched document
// version. Models are always folded fresh so reservation-expiry checks see
// the current clock.
type decodedStreams struct {
	registration []any
	socrates     []any
	rooms        []any
}

func (s *Service) decodeAll(doc *es.Store) (*decodedStreams, error) {
	key := fmt.Sprintf("%s@%d", doc.URL, doc.Version)
	if d, ok := s.decodeCache.Get(key); ok {
		s.metrics.ReadModelCacheHit()
		return d, nil
	}
	s.metrics.ReadModelCacheMiss()

	return s.decodeSF.Do(key, func() (*decodedStreams, error) {
		reg, err := es.DecodeStream(s.registry, doc.RegistrationEvents)
		if err != nil {
			return nil, err
		}
		soc, err := es.DecodeStream(s.registry, doc.SocratesEvents)
		if err != nil {
			return nil, err
		}
		rms, err := es.DecodeStream(s.registry, doc.RoomsEvents)
		if err != nil {
			return nil, err
		}
		d := &decodedStreams{registration: reg, socrates: soc, rooms: rms}
		s.decodeCache.Put(key, d)
		return d, nil
	})
}

// models is the per-attempt working set: every retry rebuilds it from a
// fresh fetch, so a retried command re-validates all guards and may
// legitimately change outcome.
type models struct {
	doc       *es.Store
	now       time.Time
	regWrite  *registration.WriteModel
	regRead   *registration.ReadModel
	conf      *conference.WriteModel
	roomsRead *rooms.ReadModel
}

func (s *Service) buildModels(doc *es.Store) (*models, error) {
	d, err := s.decodeAll(doc)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	return &models{
		doc:       doc,
		now:       now,
		regWrite:  registration.NewWriteModel(d.registration, now),
		regRead:   registration.NewReadModel(d.registration, now),
		conf:      conference.NewWriteModel(d.socrates),
		roomsRead: rooms.NewReadModel(d.rooms),
	}, nil
}

func (s *Service) fetchOrNew(ctx context.Context, conferenceURL string) (*es.Store, error) {
	doc, err := s.store.Fetch(ctx, conferenceURL)
	if errors.Is(err, es.ErrStoreNotFound) {
		return es.NewStore(conferenceURL), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event store for %s: %w", conferenceURL, err)
	}
	return doc, nil
}

// execute is the single command cycle around the store: fetch, fold, decide,
// append, retry on conflict. decide may return a nil event to signal that
// nothing needs to be appended (idempotent setup commands).
func (s *Service) execute(
	ctx context.Context,
	conferenceURL string,
	command string,
	stream es.StreamID,
	decide func(m *models) events.Event,
) (events.Event, error) {
	defer s.metrics.CommandDuration(command).ObserveDuration()

	log := s.log.With(
		slog.String("command", command),
		slog.String("conference", conferenceURL),
	)

	for attempt := 1; ; attempt++ {
		doc, err := s.fetchOrNew(ctx, conferenceURL)
		if err != nil {
			return nil, err
		}

		m, err := s.buildModels(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", command, err)
		}

		ev := decide(m)
		if ev == nil {
			return nil, nil
		}

		batch, err := es.NewBatch(stream, ev)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", command, err)
		}

		err = s.store.Append(ctx, conferenceURL, doc.Version, batch)
		if errors.Is(err, es.ErrConcurrencyConflict) {
			s.metrics.CommandRetried(command)
			if s.maxRetries > 0 && attempt >= s.maxRetries {
				return nil, fmt.Errorf("%s: gave up after %d conflicting attempts: %w", command, attempt, err)
			}
			log.Debug("append conflicted, retrying", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", command, err)
		}

		log.Debug("command applied", slog.String("outcome", ev.EventKind()), slog.Int("attempt", attempt))
		s.notify(ctx, conferenceURL, ev)
		return ev, nil
	}
}

func (s *Service) notify(ctx context.Context, conferenceURL string, ev events.Event) {
	s.metrics.NotificationSent(ev.EventKind())
	s.notifier.Notify(ctx, NotificationFor(conferenceURL, ev))
}

// === Conference configuration commands ===

// CreateConference sets up the event store of a new conference. Calling it
// again for an existing conference is a no-op.
func (s *Service) CreateConference(ctx context.Context, conferenceURL string) error {
	_, err := s.execute(ctx, conferenceURL, "create_conference", es.StreamSocrates, func(m *models) events.Event {
		if m.conf.IsCreated() {
			return nil
		}
		return conference.NewProcessor(m.conf).CreateConference(conferenceURL)
	})
	return err
}

func (s *Service) SetRoomQuota(ctx context.Context, conferenceURL string, roomType events.RoomType, quota int) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "set_room_quota", es.StreamSocrates, func(m *models) events.Event {
		return conference.NewProcessor(m.conf).SetRoomQuota(roomType, quota)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) OpenRegistration(ctx context.Context, conferenceURL string) error {
	_, err := s.execute(ctx, conferenceURL, "open_registration", es.StreamSocrates, func(m *models) events.Event {
		return conference.NewProcessor(m.conf).OpenRegistration()
	})
	return err
}

func (s *Service) CloseRegistration(ctx context.Context, conferenceURL string) error {
	_, err := s.execute(ctx, conferenceURL, "close_registration", es.StreamSocrates, func(m *models) events.Event {
		return conference.NewProcessor(m.conf).CloseRegistration()
	})
	return err
}

// === Registration commands ===

func (s *Service) IssueReservation(ctx context.Context, conferenceURL string, roomType events.RoomType, duration int, sessionID, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "issue_reservation", es.StreamRegistration, func(m *models) events.Event {
		full := m.conf.IsFull(roomType, m.regRead)
		return registration.NewProcessor(m.regWrite).IssueReservation(roomType, duration, sessionID, memberID, full)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) RegisterParticipant(ctx context.Context, conferenceURL string, roomType events.RoomType, duration int, sessionID, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "register_participant", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).RegisterParticipant(roomType, duration, sessionID, memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) IssueWaitinglistReservation(ctx context.Context, conferenceURL string, desiredRoomTypes []events.RoomType, sessionID, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "issue_waitinglist_reservation", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).IssueWaitinglistReservation(desiredRoomTypes, sessionID, memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) RegisterWaitinglistParticipant(ctx context.Context, conferenceURL string, desiredRoomTypes []events.RoomType, sessionID, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "register_waitinglist_participant", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).RegisterWaitinglistParticipant(desiredRoomTypes, sessionID, memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) FromWaitinglistToParticipant(ctx context.Context, conferenceURL string, roomType events.RoomType, duration int, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "from_waitinglist_to_participant", es.StreamRegistration, func(m *models) events.Event {
		full := m.conf.IsFull(roomType, m.regRead)
		return registration.NewProcessor(m.regWrite).FromWaitinglistToParticipant(roomType, duration, memberID, full)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) RemoveParticipant(ctx context.Context, conferenceURL string, roomType events.RoomType, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "remove_participant", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).RemoveParticipant(roomType, memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) RemoveWaitinglistParticipant(ctx context.Context, conferenceURL string, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "remove_waitinglist_participant", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).RemoveWaitinglistParticipant(memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) MoveParticipantToNewRoomType(ctx context.Context, conferenceURL string, roomType events.RoomType, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "move_participant_to_new_room_type", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).MoveParticipantToNewRoomType(roomType, memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) SetNewDurationForParticipant(ctx context.Context, conferenceURL string, duration int, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "set_new_duration", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).SetNewDurationForParticipant(duration, memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) ChangeDesiredRoomTypes(ctx context.Context, conferenceURL string, desiredRoomTypes []events.RoomType, memberID string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "change_desired_room_types", es.StreamRegistration, func(m *models) events.Event {
		return registration.NewProcessor(m.regWrite).ChangeDesiredRoomTypes(desiredRoomTypes, memberID)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

// === Room pairing commands ===

func (s *Service) AddRoomPair(ctx context.Context, conferenceURL string, roomType events.RoomType, memberIDA, memberIDB string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "add_room_pair", es.StreamRooms, func(m *models) events.Event {
		return rooms.NewProcessor(m.roomsRead).AddRoomPair(roomType, memberIDA, memberIDB)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}

func (s *Service) RemoveRoomPair(ctx context.Context, conferenceURL string, roomType events.RoomType, memberIDA, memberIDB string) (*Rejection, error) {
	ev, err := s.execute(ctx, conferenceURL, "remove_room_pair", es.StreamRooms, func(m *models) events.Event {
		return rooms.NewProcessor(m.roomsRead).RemoveRoomPair(roomType, memberIDA, memberIDB)
	})
	if err != nil {
		return nil, err
	}
	return RejectionFor(ev), nil
}
