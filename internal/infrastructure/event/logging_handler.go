package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/librarium/lending/internal/domain/shared"
)

// LoggingHandler logs every event it receives. Subscribe it with no
// event types to get a structured audit trail of all domain activity.
type LoggingHandler struct {
	logger *zap.Logger
}

var _ shared.EventHandler = (*LoggingHandler)(nil)

// NewLoggingHandler creates a handler that writes events to the given
// logger
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.Stringer("aggregate_id", evt.AggregateID()),
		zap.Time("occurred_at", evt.OccurredAt()))
	return nil
}

// EventTypes returns nil so the handler receives all events
func (h *LoggingHandler) EventTypes() []string {
	return nil
}
