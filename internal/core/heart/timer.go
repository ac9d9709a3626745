package heart

import (
	"time"

	"github.com/zeusync/arena/internal/core/events"
)

// State is the run state of a timer.
type State uint8

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// timer is a logical countdown advanced by Heart.Tick.
type timer struct {
	name      string
	interval  time.Duration
	remaining time.Duration
	oneShot   bool
	state     State
	kind      events.Kind
	// attached is false until the timer has joined the running loop
	// through autostart or StartAll.
	attached bool
	fired    uint64
}

func (t *timer) start() {
	t.attached = true
	t.remaining = t.interval
	t.state = StateRunning
}

// advance moves the countdown forward and reports whether the timer expired.
// A timer fires at most once per advance; the overshoot is carried into the
// next period.
func (t *timer) advance(delta time.Duration) bool {
	if t.state != StateRunning {
		return false
	}
	t.remaining -= delta
	if t.remaining > 0 {
		return false
	}
	t.fired++
	if t.oneShot {
		t.remaining = 0
		t.state = StateStopped
		return true
	}
	t.remaining += t.interval
	if t.remaining <= 0 {
		t.remaining = t.interval
	}
	return true
}

func (t *timer) info() TimerInfo {
	return TimerInfo{
		Name:      t.name,
		Interval:  t.interval,
		Remaining: t.remaining,
		OneShot:   t.oneShot,
		State:     t.state,
		Kind:      t.kind,
		Attached:  t.attached,
		Fired:     t.fired,
	}
}

// TimerInfo is a read-only view of a timer.
type TimerInfo struct {
	Name      string
	Interval  time.Duration
	Remaining time.Duration
	OneShot   bool
	State     State
	Kind      events.Kind
	Attached  bool
	Fired     uint64
}

// Hz returns the firing frequency implied by the interval.
func (i TimerInfo) Hz() float64 {
	if i.Interval <= 0 {
		return 0
	}
	return float64(time.Second) / float64(i.Interval)
}
