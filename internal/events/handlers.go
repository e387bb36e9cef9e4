package events

import (
	"context"
	"log/slog"
)

// LoggingHandler records every event it receives at info level.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a LoggingHandler writing to logger.
func NewLoggingHandler(logger *slog.Logger) *LoggingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingHandler{logger: logger.With(slog.String("component", "event_log"))}
}

// HandleEvent implements EventHandler.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *Event) error {
	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
	}

	if event.Type == TypeStageAdvanced {
		var p StageAdvanced
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		attrs = append(attrs,
			slog.String("user_id", p.UserID.String()),
			slog.String("wordlist_id", p.WordlistID.String()),
			slog.String("category", p.Category),
			slog.Int("new_stage", p.NewStage))
	}

	h.logger.InfoContext(ctx, "event received", attrs...)
	return nil
}
