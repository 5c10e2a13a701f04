package usecases

import (
	"log/slog"
	"sync"

	"github.com/stategraph/stategraph/internal/app/dto"
)

// Observer receives lifecycle events. Observers are adapters layered above
// the core (log sinks, UIs, metrics collectors); their failures never
// propagate back into the run.
type Observer interface {
	OnEvent(ev dto.Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ev dto.Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(ev dto.Event) { f(ev) }

// EventBus fans out lifecycle events to independent observers. One bus
// belongs to one Runner; there is no process-wide singleton, so distinct
// runners stay decoupled and tests see only their own events.
// PRINCIPLES:
// - SRP: Fan-out only; no filtering, no buffering
//
// Delivery is synchronous to preserve the per-run event ordering guarantee;
// a slow observer slows the run but never reorders it.
type EventBus struct {
	mu        sync.RWMutex
	observers []Observer
	logger    *slog.Logger
}

// NewEventBus creates an empty bus.
func NewEventBus(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{logger: logger}
}

// Subscribe registers an observer for all subsequent events.
func (b *EventBus) Subscribe(o Observer) {
	if o == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Publish delivers an event to every observer. A panicking observer is
// logged and skipped; the run continues.
func (b *EventBus) Publish(ev dto.Event) {
	b.mu.RLock()
	observers := b.observers
	b.mu.RUnlock()

	for _, o := range observers {
		b.deliver(o, ev)
	}
}

func (b *EventBus) deliver(o Observer, ev dto.Event) {
	defer func() {
		if p := recover(); p != nil {
			b.logger.Warn("event observer panicked",
				"event", string(ev.Type), "node", ev.Node, "panic", p)
		}
	}()
	o.OnEvent(ev)
}
