package events

import (
	"context"
	"log/slog"
	"sync"
)

// AllTypes subscribes a handler to every event type.
const AllTypes = "*"

// Dispatcher routes events to the handlers subscribed to their type. Delivery
// is synchronous and runs on the caller's goroutine, so a stage-advance
// notification is handled before SubmitQuizResult returns.
type Dispatcher struct {
	mu     sync.RWMutex
	routes map[string][]EventHandler
	logger *slog.Logger
}

var _ EventEmitter = (*Dispatcher)(nil)

// NewDispatcher returns a Dispatcher with no subscriptions.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		routes: make(map[string][]EventHandler),
		logger: logger.With(slog.String("component", "event_dispatcher")),
	}
}

// Subscribe registers h for eventType, or for every type when eventType is
// AllTypes.
func (d *Dispatcher) Subscribe(eventType string, h EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[eventType] = append(d.routes[eventType], h)
	d.logger.Debug("handler subscribed",
		slog.String("event_type", eventType),
		slog.Int("handler_count", len(d.routes[eventType])))
}

// handlersFor snapshots the typed handlers followed by the catch-all ones.
func (d *Dispatcher) handlersFor(eventType string) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]EventHandler, 0, len(d.routes[eventType])+len(d.routes[AllTypes]))
	out = append(out, d.routes[eventType]...)
	if eventType != AllTypes {
		out = append(out, d.routes[AllTypes]...)
	}
	return out
}

// EmitEvent implements EventEmitter. Every matching handler sees the event
// even when an earlier one fails; the first error is returned. An event with
// no subscribers is dropped.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *Event) error {
	handlers := d.handlersFor(event.Type)
	log := d.logger.With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))

	if len(handlers) == 0 {
		log.DebugContext(ctx, "no subscribers for event")
		return nil
	}

	var firstErr error
	for i, h := range handlers {
		if err := h.HandleEvent(ctx, event); err != nil {
			log.ErrorContext(ctx, "event handler failed",
				slog.String("error", err.Error()),
				slog.Int("handler_index", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
