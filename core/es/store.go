package es

import (
	"context"
	"errors"
)

var (
	ErrStoreNotFound       = errors.New("event store not found")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrEmptyBatch          = errors.New("no events to append")
	ErrUnknownEventKind    = errors.New("unknown event kind")
)

// StreamID names one of the four event streams of a conference document.
type StreamID string

const (
	StreamResource     StreamID = "resourceEvents"
	StreamSocrates     StreamID = "socratesEvents"
	StreamRegistration StreamID = "registrationEvents"
	StreamRooms        StreamID = "roomsEvents"
)

// Store is the per-conference event log document. It is only ever mutated by
// appending events and incrementing Version; events are never edited or
// removed.
type Store struct {
	URL                string     `json:"url"`
	Version            int64      `json:"version"`
	ResourceEvents     []Envelope `json:"resourceEvents"`
	SocratesEvents     []Envelope `json:"socratesEvents"`
	RegistrationEvents []Envelope `json:"registrationEvents"`
	RoomsEvents        []Envelope `json:"roomsEvents"`
}

func NewStore(conferenceURL string) *Store {
	return &Store{URL: conferenceURL}
}

// Stream returns the named stream. Unknown IDs yield nil.
func (s *Store) Stream(id StreamID) []Envelope {
	switch id {
	case StreamResource:
		return s.ResourceEvents
	case StreamSocrates:
		return s.SocratesEvents
	case StreamRegistration:
		return s.RegistrationEvents
	case StreamRooms:
		return s.RoomsEvents
	}
	return nil
}

func (s *Store) NumEvents() int {
	return len(s.ResourceEvents) + len(s.SocratesEvents) + len(s.RegistrationEvents) + len(s.RoomsEvents)
}

// Clone returns a deep copy. Fetch implementations hand out clones so no two
// command executions ever share a mutable document.
func (s *Store) Clone() *Store {
	out := &Store{URL: s.URL, Version: s.Version}
	out.ResourceEvents = append([]Envelope(nil), s.ResourceEvents...)
	out.SocratesEvents = append([]Envelope(nil), s.SocratesEvents...)
	out.RegistrationEvents = append([]Envelope(nil), s.RegistrationEvents...)
	out.RoomsEvents = append([]Envelope(nil), s.RoomsEvents...)
	return out
}

// Apply appends the batch to the respective streams and bumps the version
// exactly once. Callers hold whatever lock guards s; store implementations
// use this on their own private copy, never on a fetched clone handed out to
// a command.
func (s *Store) Apply(batch Batch) {
	s.ResourceEvents = append(s.ResourceEvents, batch.Resource...)
	s.SocratesEvents = append(s.SocratesEvents, batch.Socrates...)
	s.RegistrationEvents = append(s.RegistrationEvents, batch.Registration...)
	s.RoomsEvents = append(s.RoomsEvents, batch.Rooms...)
	s.Version++
}

// Batch carries the envelopes of one append, grouped per stream. A batch is
// applied atomically: either every envelope is persisted and the document
// version incremented once, or nothing is.
type Batch struct {
	Resource     []Envelope
	Socrates     []Envelope
	Registration []Envelope
	Rooms        []Envelope
}

func (b Batch) Len() int {
	return len(b.Resource) + len(b.Socrates) + len(b.Registration) + len(b.Rooms)
}

func (b Batch) Validate() error {
	if b.Len() == 0 {
		return ErrEmptyBatch
	}
	for _, stream := range [][]Envelope{b.Resource, b.Socrates, b.Registration, b.Rooms} {
		for _, env := range stream {
			if err := env.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewBatch wraps events into envelopes targeting a single stream.
func NewBatch(stream StreamID, events ...any) (Batch, error) {
	envs := make([]Envelope, 0, len(events))
	for _, ev := range events {
		env, err := Wrap(ev)
		if err != nil {
			return Batch{}, err
		}
		envs = append(envs, env)
	}
	var b Batch
	switch stream {
	case StreamResource:
		b.Resource = envs
	case StreamSocrates:
		b.Socrates = envs
	case StreamRegistration:
		b.Registration = envs
	case StreamRooms:
		b.Rooms = envs
	default:
		return Batch{}, errors.New("unknown stream: " + string(stream))
	}
	return b, nil
}

// EventStore persists conference documents with optimistic concurrency.
//
// Fetch returns the current document for conferenceURL or ErrStoreNotFound.
// Append persists batch against baseVersion: when the stored version no
// longer equals baseVersion it fails with ErrConcurrencyConflict and
// persists nothing. The first append for a new conference uses baseVersion 0
// and creates the document.
type EventStore interface {
	Fetch(ctx context.Context, conferenceURL string) (*Store, error)
	Append(ctx context.Context, conferenceURL string, baseVersion int64, batch Batch) error
}
