package bus

import (
	"github.com/zeusync/arena/internal/core/events"
)

// EventBus is the in-process publish/subscribe registry of the simulation.
//
// Key characteristics:
// - Kind-based fan-out: handlers subscribe by events.Kind, a closed enum.
// - Two registries: signal handlers for kinds without payload, data handlers
//   for payload kinds. Subscribing to the wrong registry is rejected.
// - Ordered, synchronous delivery: Publish runs every handler in subscription
//   order in the caller goroutine before returning. A handler that publishes
//   recurses synchronously.
// - No deduplication: subscribing the same func twice runs it twice.
// - Runtime anomalies (publish without handlers, unsubscribing twice) are
//   logged and counted, never returned from Publish.
type EventBus interface {
	// Subscribe registers a handler for a signal kind.
	Subscribe(kind events.Kind, handler SignalHandler) (Subscription, error)
	// SubscribeData registers a handler for a payload kind.
	SubscribeData(kind events.Kind, handler DataHandler) (Subscription, error)
	// Unsubscribe removes the subscription. It returns ErrNotSubscribed when the
	// subscription is not registered; callers may ignore it.
	Unsubscribe(sub Subscription) error
	// UnsubscribeAll clears both registries.
	UnsubscribeAll()

	// Publish delivers a signal kind to its handlers.
	Publish(kind events.Kind)
	// PublishData delivers a payload to the handlers of payload.Kind().
	PublishData(payload events.Payload)

	// Handlers returns the number of handlers registered for kind.
	Handlers(kind events.Kind) int

	AddObserver(obs Observer)
	RemoveObserver(obs Observer)
	Metrics() Metrics
}

type (
	// SignalHandler handles a kind without payload.
	SignalHandler func()
	// DataHandler handles a payload kind.
	DataHandler func(payload events.Payload)
)

// Subscription is the handle returned by Subscribe. Handles are unique per
// call, which is what lets the same func be registered more than once.
type Subscription interface {
	ID() string
	Kind() events.Kind
	IsActive() bool
	// Cancel is shorthand for EventBus.Unsubscribe(sub).
	Cancel() error
}

// Observer is notified about routing outcomes. Implementations export
// metrics; they must return quickly and must not publish.
type Observer interface {
	OnPublish(kind events.Kind, handlers int)
	OnUnrouted(kind events.Kind)
}

// Metrics is a snapshot of the bus counters.
type Metrics struct {
	Published   uint64
	Delivered   uint64
	Unrouted    uint64
	Subscribers uint64
}
