// Package es provides the event log kernel for the registration engine.
//
// # Overview
//
// All state of one conference lives in a single append-only [Store] document
// holding four independent event streams and one version counter. Commands
// never mutate state directly: they fold the streams into a write model,
// decide, and append exactly one new event. Persistence is guarded by
// optimistic concurrency: [EventStore.Append] only succeeds when the caller's
// base version still matches the stored version, otherwise it fails with
// [ErrConcurrencyConflict] and the whole command cycle is retried against
// fresh state.
//
// # Core Components
//
// Envelope: the unit of storage. It wraps the JSON-encoded event payload with
// an ID, the event kind used for decode routing and the append timestamp.
//
// Store: the per-conference document. Four named streams (resource, socrates,
// registration, rooms) plus a version that increases by exactly one per
// successful append, regardless of batch size.
//
// EventStore: the persistence contract. Fetch returns the current document or
// [ErrStoreNotFound]; Append is atomic, either the whole batch is persisted
// and the version incremented once, or nothing is.
//
//	store := es.NewInMemoryStore()
//	_, err := store.Fetch(ctx, "socrates-2026")            // ErrStoreNotFound
//	err = store.Append(ctx, "socrates-2026", 0, batch)     // creates the document
//
// EventRegistry: maps event kinds to constructors so persisted envelopes can
// be decoded back into typed events:
//
//	reg := es.NewRegistry()
//	es.RegisterEvents(reg, es.Event[events.ParticipantWasRegistered]())
//	decoded, err := es.DecodeStream(reg, doc.RegistrationEvents)
//
// Production stores (NATS JetStream KV, Postgres) live in the adapters
// packages; [InMemoryStore] is the reference implementation used by tests.
package es
