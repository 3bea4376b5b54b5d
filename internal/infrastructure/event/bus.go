// Package event provides a synchronous in-memory event bus
// for delivering domain events to registered handlers.
package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/librarium/lending/internal/domain/shared"
)

// InMemoryEventBus delivers events synchronously to registered handlers.
// Handler panics are recovered so a misbehaving subscriber cannot take
// down the publisher.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers events to all handlers registered for their types
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		if evt == nil {
			continue
		}

		handlers := b.registry.GetHandlers(evt.EventType())
		b.logger.Debug("publishing event",
			zap.String("event_type", evt.EventType()),
			zap.Stringer("event_id", evt.EventID()),
			zap.Stringer("aggregate_id", evt.AggregateID()),
			zap.Int("handler_count", len(handlers)))

		for _, handler := range handlers {
			if err := b.dispatchToHandler(ctx, handler, evt); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.Stringer("event_id", evt.EventID()),
					zap.Error(err))
			}
		}
	}
	return nil
}

// Subscribe registers a handler for the given event types.
// With no event types the handler receives every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if handler == nil {
		return
	}
	b.registry.Register(handler, eventTypes...)
}

// Unsubscribe removes a handler from all event types
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	if handler == nil {
		return
	}
	b.registry.Unregister(handler)
}

func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, evt)
}
