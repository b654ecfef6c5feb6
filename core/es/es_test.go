package es

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteAdded struct {
	Text string `json:"text"`
}

func (noteAdded) EventKind() string { return "NOTE-WAS-ADDED" }

type noteRemoved struct {
	Text string `json:"text"`
}

func (noteRemoved) EventKind() string { return "NOTE-WAS-REMOVED" }

func TestWrap(t *testing.T) {
	env, err := Wrap(noteAdded{Text: "hello"})
	require.NoError(t, err)

	require.NoError(t, env.Validate())
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, "NOTE-WAS-ADDED", env.Kind)
	assert.False(t, env.OccurredAt.IsZero())
	assert.JSONEq(t, `{"text":"hello"}`, string(env.Data))
}

func TestWrap_KindFallsBackToTypeName(t *testing.T) {
	type plain struct{ N int }

	env, err := Wrap(plain{N: 1})
	require.NoError(t, err)
	assert.Contains(t, env.Kind, "es.plain")
}

func TestRegistry_Decode(t *testing.T) {
	r := NewRegistry()
	RegisterEvents(r, Event[noteAdded](), Event[noteRemoved]())

	env, err := Wrap(noteAdded{Text: "hello"})
	require.NoError(t, err)

	ev, err := r.Decode(env)
	require.NoError(t, err)
	added, ok := ev.(*noteAdded)
	require.True(t, ok)
	assert.Equal(t, "hello", added.Text)
}

func TestRegistry_DecodeUnknownKind(t *testing.T) {
	r := NewRegistry()

	env, err := Wrap(noteAdded{Text: "hello"})
	require.NoError(t, err)

	_, err = r.Decode(env)
	require.ErrorIs(t, err, ErrUnknownEventKind)
}

func TestRegistry_DecodeProducesFreshInstances(t *testing.T) {
	r := NewRegistry()
	RegisterEvents(r, Event[noteAdded]())

	env1, err := Wrap(noteAdded{Text: "one"})
	require.NoError(t, err)
	env2, err := Wrap(noteAdded{Text: "two"})
	require.NoError(t, err)

	ev1, err := r.Decode(env1)
	require.NoError(t, err)
	ev2, err := r.Decode(env2)
	require.NoError(t, err)

	assert.NotSame(t, ev1, ev2)
	assert.Equal(t, "one", ev1.(*noteAdded).Text)
	assert.Equal(t, "two", ev2.(*noteAdded).Text)
}

func TestDecodeStream(t *testing.T) {
	r := NewRegistry()
	RegisterEvents(r, Event[noteAdded](), Event[noteRemoved]())

	batch, err := NewBatch(StreamRegistration,
		noteAdded{Text: "a"},
		noteRemoved{Text: "a"},
	)
	require.NoError(t, err)

	evts, err := DecodeStream(r, batch.Registration)
	require.NoError(t, err)
	require.Len(t, evts, 2)
	assert.IsType(t, &noteAdded{}, evts[0])
	assert.IsType(t, &noteRemoved{}, evts[1])
}

func TestNewBatch(t *testing.T) {
	t.Run("routes to the requested stream", func(t *testing.T) {
		batch, err := NewBatch(StreamRooms, noteAdded{Text: "x"})
		require.NoError(t, err)
		assert.Len(t, batch.Rooms, 1)
		assert.Empty(t, batch.Resource)
		assert.Empty(t, batch.Socrates)
		assert.Empty(t, batch.Registration)
	})

	t.Run("unknown stream", func(t *testing.T) {
		_, err := NewBatch(StreamID("bogus"), noteAdded{})
		require.Error(t, err)
	})
}

func TestBatch_Validate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		require.ErrorIs(t, Batch{}.Validate(), ErrEmptyBatch)
	})

	t.Run("invalid envelope", func(t *testing.T) {
		b := Batch{Registration: []Envelope{{}}}
		require.Error(t, b.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		b, err := NewBatch(StreamRegistration, noteAdded{Text: "x"})
		require.NoError(t, err)
		require.NoError(t, b.Validate())
	})
}

func TestStore_Apply(t *testing.T) {
	doc := NewStore("socrates-2026")
	require.Equal(t, int64(0), doc.Version)

	batch, err := NewBatch(StreamRegistration, noteAdded{Text: "a"}, noteAdded{Text: "b"})
	require.NoError(t, err)
	doc.Apply(batch)

	// One version bump per batch, not per event.
	assert.Equal(t, int64(1), doc.Version)
	assert.Equal(t, 2, doc.NumEvents())
	assert.Len(t, doc.Stream(StreamRegistration), 2)
}

func TestStore_Clone(t *testing.T) {
	doc := NewStore("socrates-2026")
	batch, err := NewBatch(StreamSocrates, noteAdded{Text: "a"})
	require.NoError(t, err)
	doc.Apply(batch)

	clone := doc.Clone()
	more, err := NewBatch(StreamSocrates, noteAdded{Text: "b"})
	require.NoError(t, err)
	clone.Apply(more)

	assert.Equal(t, int64(1), doc.Version)
	assert.Equal(t, 1, doc.NumEvents())
	assert.Equal(t, int64(2), clone.Version)
	assert.Equal(t, 2, clone.NumEvents())
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch missing conference", func(t *testing.T) {
		store := NewInMemoryStore()
		_, err := store.Fetch(ctx, "nope")
		require.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("first append creates the document", func(t *testing.T) {
		store := NewInMemoryStore()
		batch, err := NewBatch(StreamSocrates, noteAdded{Text: "a"})
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, "socrates-2026", 0, batch))

		doc, err := store.Fetch(ctx, "socrates-2026")
		require.NoError(t, err)
		assert.Equal(t, int64(1), doc.Version)
		assert.Equal(t, 1, doc.NumEvents())
	})

	t.Run("stale base version conflicts", func(t *testing.T) {
		store := NewInMemoryStore()
		batch, err := NewBatch(StreamSocrates, noteAdded{Text: "a"})
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, "socrates-2026", 0, batch))

		err = store.Append(ctx, "socrates-2026", 0, batch)
		require.ErrorIs(t, err, ErrConcurrencyConflict)

		require.NoError(t, store.Append(ctx, "socrates-2026", 1, batch))
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		store := NewInMemoryStore()
		err := store.Append(ctx, "socrates-2026", 0, Batch{})
		require.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("fetch hands out clones", func(t *testing.T) {
		store := NewInMemoryStore()
		batch, err := NewBatch(StreamSocrates, noteAdded{Text: "a"})
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, "socrates-2026", 0, batch))

		doc, err := store.Fetch(ctx, "socrates-2026")
		require.NoError(t, err)
		doc.Version = 99
		doc.SocratesEvents = nil

		fresh, err := store.Fetch(ctx, "socrates-2026")
		require.NoError(t, err)
		assert.Equal(t, int64(1), fresh.Version)
		assert.Len(t, fresh.SocratesEvents, 1)
	})

	t.Run("concurrent appends admit exactly one winner per version", func(t *testing.T) {
		store := NewInMemoryStore()
		batch, err := NewBatch(StreamRegistration, noteAdded{Text: "x"})
		require.NoError(t, err)

		const writers = 16
		var wg sync.WaitGroup
		errs := make([]error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = store.Append(ctx, "socrates-2026", 0, batch)
			}(i)
		}
		wg.Wait()

		won := 0
		for _, err := range errs {
			if err == nil {
				won++
			} else {
				require.ErrorIs(t, err, ErrConcurrencyConflict)
			}
		}
		assert.Equal(t, 1, won)

		doc, err := store.Fetch(ctx, "socrates-2026")
		require.NoError(t, err)
		assert.Equal(t, int64(1), doc.Version)
	})
}
