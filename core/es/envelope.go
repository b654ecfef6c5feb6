package es

import (
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/softwerkskammer/Agora-sub003/internal/reflector"
)

// Envelope wraps an event with the metadata needed for persistence and
// decode routing. It is the unit of storage inside a [Store] stream.
type Envelope struct {
	// ID is the unique identifier of this envelope.
	ID string `json:"id"`
	// Kind is the event kind name used for deserialization routing.
	Kind string `json:"kind"`
	// OccurredAt is when the event was appended. Expiry and queue-priority
	// math reads timestamps from the event payload, not from here; this
	// field is diagnostic metadata.
	OccurredAt time.Time `json:"occurred_at"`
	// Data contains the JSON-encoded event payload.
	Data json.RawMessage `json:"data"`
}

func (e Envelope) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("envelope id is empty")
	}
	if e.Kind == "" {
		return fmt.Errorf("envelope kind is empty")
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("envelope occurred at is zero")
	}
	return nil
}

// Wrap encodes a single event into an Envelope. The kind is taken from the
// event's EventKind method when present, otherwise derived from its type name.
func Wrap(ev any) (Envelope, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode event %T: %w", ev, err)
	}
	return Envelope{
		ID:         gonanoid.Must(),
		Kind:       kindOf(ev),
		OccurredAt: time.Now(),
		Data:       data,
	}, nil
}

func kindOf(ev any) string {
	if k, ok := ev.(interface{ EventKind() string }); ok {
		return k.EventKind()
	}
	return reflector.TypeInfoOf(ev).Name
}

type Decoder interface{ Decode(e Envelope) (any, error) }
