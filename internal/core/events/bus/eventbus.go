package bus

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/observability/log"
)

// subscription implements Subscription.
type subscription struct {
	id     string
	kind   events.Kind
	signal SignalHandler
	data   DataHandler
	active atomic.Bool
	bus    *inMemoryBus
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) Kind() events.Kind { return s.kind }
func (s *subscription) IsActive() bool    { return s.active.Load() }
func (s *subscription) Cancel() error     { return s.bus.Unsubscribe(s) }

// inMemoryBus is the EventBus used by the simulation. The mutex only guards
// the registries; it is never held while a handler runs.
type inMemoryBus struct {
	mu        sync.RWMutex
	signals   map[events.Kind][]*subscription
	data      map[events.Kind][]*subscription
	observers []Observer
	metrics   Metrics
	logger    log.Log
}

// New creates an empty EventBus.
func New(logger log.Log) EventBus {
	return &inMemoryBus{
		signals: make(map[events.Kind][]*subscription),
		data:    make(map[events.Kind][]*subscription),
		logger:  logger.Named("eventbus"),
	}
}

func (b *inMemoryBus) Subscribe(kind events.Kind, handler SignalHandler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if err := checkKind(kind, false); err != nil {
		return nil, err
	}
	s := &subscription{id: uuid.NewString(), kind: kind, signal: handler, bus: b}
	b.register(b.signals, s)
	return s, nil
}

func (b *inMemoryBus) SubscribeData(kind events.Kind, handler DataHandler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if err := checkKind(kind, true); err != nil {
		return nil, err
	}
	s := &subscription{id: uuid.NewString(), kind: kind, data: handler, bus: b}
	b.register(b.data, s)
	return s, nil
}

func (b *inMemoryBus) register(registry map[events.Kind][]*subscription, s *subscription) {
	s.active.Store(true)
	b.mu.Lock()
	if _, ok := registry[s.kind]; !ok {
		b.logger.Debug("creating subscription list", log.Stringer("kind", s.kind))
	}
	registry[s.kind] = append(registry[s.kind], s)
	b.mu.Unlock()
	b.logger.Debug("subscribed handler", log.Stringer("kind", s.kind), log.String("subscription", s.id))
}

func (b *inMemoryBus) Unsubscribe(sub Subscription) error {
	s, ok := sub.(*subscription)
	if !ok || s == nil || s.bus != b {
		b.logger.Warn("unsubscribe called with a foreign subscription")
		return ErrNotSubscribed
	}

	registry := b.signals
	if s.data != nil {
		registry = b.data
	}

	b.mu.Lock()
	list := registry[s.kind]
	idx := -1
	for i, candidate := range list {
		if candidate == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		b.logger.Warn("handler was not found; never subscribed or already unsubscribed?",
			log.Stringer("kind", s.kind), log.String("subscription", s.id))
		return eris.Wrapf(ErrNotSubscribed, "kind %s", s.kind)
	}
	// Copy instead of shifting in place: an in-flight dispatch may still be
	// iterating a snapshot of the old slice.
	next := make([]*subscription, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	if len(next) == 0 {
		delete(registry, s.kind)
	} else {
		registry[s.kind] = next
	}
	s.active.Store(false)
	b.mu.Unlock()

	b.logger.Debug("unsubscribed handler", log.Stringer("kind", s.kind), log.String("subscription", s.id))
	return nil
}

func (b *inMemoryBus) UnsubscribeAll() {
	b.mu.Lock()
	for _, registry := range []map[events.Kind][]*subscription{b.signals, b.data} {
		for _, list := range registry {
			for _, s := range list {
				s.active.Store(false)
			}
		}
	}
	b.signals = make(map[events.Kind][]*subscription)
	b.data = make(map[events.Kind][]*subscription)
	b.mu.Unlock()
	b.logger.Info("all subscriptions cleared")
}

func (b *inMemoryBus) Publish(kind events.Kind) {
	if !kind.Valid() {
		b.logger.Warn("publish called with an unknown kind", log.Stringer("kind", kind))
		return
	}
	if kind.HasPayload() {
		b.logger.Warn("payload kind published without payload; use PublishData", log.Stringer("kind", kind))
		b.unrouted(kind)
		return
	}
	subs, observers := b.snapshot(b.signals, kind)
	if len(subs) == 0 {
		b.logger.Warn("publish called but no subscriptions exist; did you forget to subscribe?",
			log.Stringer("kind", kind))
		b.unrouted(kind)
		return
	}

	delivered := 0
	for _, s := range subs {
		if !s.active.Load() {
			continue
		}
		s.signal()
		delivered++
	}
	b.delivered(kind, delivered, observers)
}

func (b *inMemoryBus) PublishData(payload events.Payload) {
	if payload == nil {
		b.logger.Warn("publish called with a nil payload")
		return
	}
	kind := payload.Kind()
	subs, observers := b.snapshot(b.data, kind)
	if len(subs) == 0 {
		b.logger.Warn("publish with data called but no subscriptions exist; did you forget to subscribe?",
			log.Stringer("kind", kind))
		b.unrouted(kind)
		return
	}

	delivered := 0
	for _, s := range subs {
		if !s.active.Load() {
			continue
		}
		s.data(payload)
		delivered++
	}
	b.delivered(kind, delivered, observers)
}

func (b *inMemoryBus) Handlers(kind events.Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if kind.HasPayload() {
		return len(b.data[kind])
	}
	return len(b.signals[kind])
}

func (b *inMemoryBus) AddObserver(obs Observer) {
	b.mu.Lock()
	b.observers = append(b.observers, obs)
	b.mu.Unlock()
}

func (b *inMemoryBus) RemoveObserver(obs Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.observers {
		if o == obs {
			b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
			return
		}
	}
}

func (b *inMemoryBus) Metrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := b.metrics
	var subs uint64
	for _, list := range b.signals {
		subs += uint64(len(list))
	}
	for _, list := range b.data {
		subs += uint64(len(list))
	}
	m.Subscribers = subs
	return m
}

// snapshot copies the handler list so delivery runs without the lock.
func (b *inMemoryBus) snapshot(registry map[events.Kind][]*subscription, kind events.Kind) ([]*subscription, []Observer) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	list := registry[kind]
	subs := make([]*subscription, len(list))
	copy(subs, list)
	var observers []Observer
	if len(b.observers) > 0 {
		observers = make([]Observer, len(b.observers))
		copy(observers, b.observers)
	}
	return subs, observers
}

func (b *inMemoryBus) unrouted(kind events.Kind) {
	b.mu.Lock()
	b.metrics.Published++
	b.metrics.Unrouted++
	observers := append([]Observer(nil), b.observers...)
	b.mu.Unlock()
	for _, o := range observers {
		o.OnUnrouted(kind)
	}
}

func (b *inMemoryBus) delivered(kind events.Kind, handlers int, observers []Observer) {
	b.mu.Lock()
	b.metrics.Published++
	b.metrics.Delivered += uint64(handlers)
	b.mu.Unlock()
	b.logger.Debug("published event", log.Stringer("kind", kind), log.Int("handlers", handlers))
	for _, o := range observers {
		o.OnPublish(kind, handlers)
	}
}

func checkKind(kind events.Kind, wantPayload bool) error {
	if !kind.Valid() {
		return eris.Wrapf(ErrUnknownKind, "kind %d", uint8(kind))
	}
	if kind.HasPayload() != wantPayload {
		return eris.Wrapf(ErrKindMismatch, "kind %s", kind)
	}
	return nil
}
