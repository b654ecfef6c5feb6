package es

import (
	"encoding/json"
	"fmt"
	"sync"
)

// EventRegistry maps event kinds to constructors so we can decode persisted
// envelopes back into typed events.
type EventRegistry struct {
	mu   sync.RWMutex
	news map[string]func() any
}

func NewRegistry() *EventRegistry {
	return &EventRegistry{news: map[string]func() any{}}
}

func (r *EventRegistry) Register(kind string, ctor func() any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.news[kind] = ctor
}

func (r *EventRegistry) Decode(env Envelope) (any, error) {
	r.mu.RLock()
	ctor, ok := r.news[env.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventKind, env.Kind)
	}
	ev := ctor()
	if env.Data != nil {
		if err := json.Unmarshal(env.Data, ev); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

type Registrar interface {
	Register(kind string, ctor func() any)
}

// Event returns a reflection-free constructor for an event of type T.
// Each call to the returned function constructs a fresh *T via new(T).
func Event[T any]() func() any { return func() any { return new(T) } }

// RegisterEvents registers event constructors. For each provided constructor
// we call it once to derive the event kind and then register the original
// constructor so future decodes produce fresh instances per call.
func RegisterEvents(r Registrar, ctors ...func() any) {
	for _, ctor := range ctors {
		sample := ctor()
		r.Register(kindOf(sample), ctor)
	}
}

// DecodeStream decodes every envelope of a stream in order.
func DecodeStream(d Decoder, stream []Envelope) ([]any, error) {
	out := make([]any, 0, len(stream))
	for _, env := range stream {
		ev, err := d.Decode(env)
		if err != nil {
			return nil, fmt.Errorf("failed to decode event %s: %w", env.ID, err)
		}
		out = append(out, ev)
	}
	return out, nil
}
