package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the application.
const (
	// TypeStageAdvanced is emitted after a quiz submission moved a wordlist
	// to its next stage.
	TypeStageAdvanced = "wordlist.stage_advanced"
)

// Event is a typed notification with a JSON payload. Producers build events
// with NewEvent; consumers decode the payload with UnmarshalPayload.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event of the given type with payload serialized as JSON.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// StageAdvanced is the payload of a TypeStageAdvanced event.
type StageAdvanced struct {
	UserID     uuid.UUID `json:"user_id"`
	WordlistID uuid.UUID `json:"wordlist_id"`
	Category   string    `json:"category"`
	Score      int       `json:"score"`
	NewStage   int       `json:"new_stage"`
}

// NewStageAdvancedEvent wraps p in an Event.
func NewStageAdvancedEvent(p StageAdvanced) (*Event, error) {
	return NewEvent(TypeStageAdvanced, p)
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
