// Package heart drives gameplay cadence: a group of named interval timers,
// each publishing one event kind on expiry. Timers are logical countdowns
// advanced by the host through Tick; the heart owns no goroutine.
package heart

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
)

type Heart struct {
	mu     sync.Mutex
	timers map[string]*timer
	order  []*timer
	bus    bus.EventBus
	logger log.Log
}

func New(b bus.EventBus, logger log.Log) *Heart {
	return &Heart{
		timers: make(map[string]*timer),
		bus:    b,
		logger: logger.Named("heart"),
	}
}

// BuildTimer adds a timer that publishes kind every interval. A duplicate
// name or an unusable interval/kind is a wiring mistake and is returned as an
// error.
func (h *Heart) BuildTimer(name string, interval time.Duration, oneShot, autostart bool, kind events.Kind) error {
	if name == "" {
		return eris.Wrap(ErrInvalidTimer, "timer name is empty")
	}
	if interval <= 0 {
		return eris.Wrapf(ErrInvalidTimer, "timer %s: interval %s must be positive", name, interval)
	}
	if !kind.Valid() || kind.HasPayload() {
		return eris.Wrapf(ErrInvalidTimer, "timer %s: kind %s cannot be published as a timeout", name, kind)
	}

	h.mu.Lock()
	if _, exists := h.timers[name]; exists {
		h.mu.Unlock()
		h.logger.Error("timer already exists", log.String("timer", name))
		return eris.Wrapf(ErrDuplicateTimer, "timer %s", name)
	}
	t := &timer{name: name, interval: interval, remaining: interval, oneShot: oneShot, kind: kind}
	if autostart {
		t.start()
	}
	h.timers[name] = t
	h.order = append(h.order, t)
	h.mu.Unlock()

	h.logger.Info("built timer",
		log.String("timer", name),
		log.Duration("interval", interval),
		log.Float64("hz", t.info().Hz()),
		log.Bool("one_shot", oneShot),
		log.Stringer("kind", kind),
	)
	return nil
}

// RemoveTimer drops a timer from the group. Removing an unknown timer is
// diagnosed and reported but harmless.
func (h *Heart) RemoveTimer(name string) error {
	h.mu.Lock()
	t, ok := h.timers[name]
	if !ok {
		h.mu.Unlock()
		h.logger.Warn("timer does not exist, cannot remove", log.String("timer", name))
		return eris.Wrapf(ErrTimerNotFound, "timer %s", name)
	}
	delete(h.timers, name)
	for i, candidate := range h.order {
		if candidate == t {
			h.order = append(h.order[:i:i], h.order[i+1:]...)
			break
		}
	}
	h.mu.Unlock()
	h.logger.Info("removed timer", log.String("timer", name))
	return nil
}

// StartAll attaches every timer not yet attached and (re)starts all timers
// with a full interval.
func (h *Heart) StartAll() {
	h.mu.Lock()
	for _, t := range h.order {
		t.start()
	}
	n := len(h.order)
	h.mu.Unlock()
	h.logger.Info("started timers", log.Int("count", n))
}

// StopAll stops every timer. Stopped timers keep their configuration and
// restart with a full interval.
func (h *Heart) StopAll() {
	h.mu.Lock()
	for _, t := range h.order {
		t.state = StateStopped
		t.remaining = t.interval
	}
	h.mu.Unlock()
	h.logger.Info("stopped timers")
}

// PauseAll freezes every running timer, keeping its remaining time.
func (h *Heart) PauseAll() {
	h.mu.Lock()
	for _, t := range h.order {
		if t.state == StateRunning {
			t.state = StatePaused
		}
	}
	h.mu.Unlock()
	h.logger.Debug("paused timers")
}

// ResumeAll continues every paused timer from where it was frozen.
func (h *Heart) ResumeAll() {
	h.mu.Lock()
	for _, t := range h.order {
		if t.state == StatePaused {
			t.state = StateRunning
		}
	}
	h.mu.Unlock()
	h.logger.Debug("resumed timers")
}

// SetInterval changes the period of a timer. The current countdown is left
// alone; the new interval applies from the next re-arm.
func (h *Heart) SetInterval(name string, interval time.Duration) error {
	if interval <= 0 {
		return eris.Wrapf(ErrInvalidTimer, "timer %s: interval %s must be positive", name, interval)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.timers[name]
	if !ok {
		return eris.Wrapf(ErrTimerNotFound, "timer %s", name)
	}
	t.interval = interval
	return nil
}

func (h *Heart) Interval(name string) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.timers[name]
	if !ok {
		return 0, false
	}
	return t.interval, true
}

func (h *Heart) Timer(name string) (TimerInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.timers[name]
	if !ok {
		return TimerInfo{}, false
	}
	return t.info(), true
}

// Timers returns every timer in build order.
func (h *Heart) Timers() []TimerInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]TimerInfo, 0, len(h.order))
	for _, t := range h.order {
		out = append(out, t.info())
	}
	return out
}

// Tick advances every running timer by delta and publishes the kinds of the
// timers that expired, in build order. Publishing happens after the lock is
// released so handlers may call back into the heart.
func (h *Heart) Tick(delta time.Duration) {
	if delta <= 0 {
		return
	}
	h.mu.Lock()
	var fired []events.Kind
	for _, t := range h.order {
		if t.advance(delta) {
			fired = append(fired, t.kind)
		}
	}
	h.mu.Unlock()

	for _, kind := range fired {
		h.bus.Publish(kind)
	}
}
