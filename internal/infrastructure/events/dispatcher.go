// Package events provides the in-process domain event dispatcher
package events

import (
	"context"
	"sync"

	"github.com/alchemorsel/kitchen/internal/domain/shared"
	"go.uber.org/zap"
)

// Dispatcher fans domain events out to registered handlers
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	log      *zap.Logger
}

var _ shared.EventDispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a new event dispatcher
func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]shared.EventHandler),
		log:      log.Named("events"),
	}
}

// Dispatch runs every handler registered for the event. A failing handler
// is logged and does not stop the others.
func (d *Dispatcher) Dispatch(ctx context.Context, event shared.DomainEvent) error {
	d.mu.RLock()
	handlers := d.handlers[event.EventName()]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.log.Debug("No handlers registered for event", zap.String("event", event.EventName()))
		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.log.Error("Failed to handle event",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Register registers an event handler
func (d *Dispatcher) Register(eventName string, handler shared.EventHandler) {
	d.mu.Lock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
	d.mu.Unlock()

	d.log.Debug("Registered event handler", zap.String("event", eventName))
}
