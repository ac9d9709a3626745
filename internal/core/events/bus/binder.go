package bus

import (
	"errors"

	"github.com/zeusync/arena/internal/core/events"
)

// Binder collects the subscriptions of one system so they can be released
// together when the system detaches. The first subscription error is kept
// and returned by Err; later calls become no-ops.
type Binder struct {
	bus  EventBus
	subs []Subscription
	err  error
}

func NewBinder(b EventBus) *Binder {
	return &Binder{bus: b}
}

func (g *Binder) On(kind events.Kind, handler SignalHandler) *Binder {
	if g.err != nil {
		return g
	}
	sub, err := g.bus.Subscribe(kind, handler)
	if err != nil {
		g.err = err
		return g
	}
	g.subs = append(g.subs, sub)
	return g
}

func (g *Binder) OnData(kind events.Kind, handler DataHandler) *Binder {
	if g.err != nil {
		return g
	}
	sub, err := g.bus.SubscribeData(kind, handler)
	if err != nil {
		g.err = err
		return g
	}
	g.subs = append(g.subs, sub)
	return g
}

// Err returns the first subscription failure. On failure the subscriptions
// made so far are released.
func (g *Binder) Err() error {
	if g.err != nil {
		g.Release()
	}
	return g.err
}

// Len returns the number of live subscriptions held.
func (g *Binder) Len() int {
	return len(g.subs)
}

// Release unsubscribes everything that is still active. Subscriptions already
// cleared by UnsubscribeAll are skipped silently.
func (g *Binder) Release() error {
	var all error
	for _, sub := range g.subs {
		if !sub.IsActive() {
			continue
		}
		if err := g.bus.Unsubscribe(sub); err != nil {
			all = errors.Join(all, err)
		}
	}
	g.subs = nil
	return all
}
