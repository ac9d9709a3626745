package heart

import (
	"time"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
)

// Clock starts the heart on Init and ramps the spawn cadence every game
// minute.
type Clock struct {
	heart       *Heart
	bus         bus.EventBus
	logger      log.Log
	ramp        RampConfig
	binder      *bus.Binder
	initialized bool
	minutes     int
}

func NewClock(h *Heart, b bus.EventBus, logger log.Log, ramp RampConfig) *Clock {
	return &Clock{
		heart:  h,
		bus:    b,
		logger: logger.Named("clock"),
		ramp:   ramp,
	}
}

func (c *Clock) Attach() error {
	c.binder = bus.NewBinder(c.bus).
		On(events.Init, c.OnInit).
		On(events.GameTimeout, c.OnGameTimeout)
	return c.binder.Err()
}

func (c *Clock) Name() string { return "clock" }

func (c *Clock) Detach() {
	if c.binder != nil {
		_ = c.binder.Release()
		c.binder = nil
	}
}

func (c *Clock) IsInitialized() bool { return c.initialized }

// Minutes returns the number of GameTimeout events seen since Init.
func (c *Clock) Minutes() int { return c.minutes }

func (c *Clock) OnInit() {
	if c.initialized {
		c.logger.Warn("clock already initialized, ignoring Init")
		return
	}
	c.heart.StartAll()
	c.initialized = true
}

func (c *Clock) OnGameTimeout() {
	c.minutes++
	mob := c.shorten(MobSpawnTimer, c.ramp.MobSpawnStep, c.ramp.MobSpawnFloor)
	chest := c.shorten(ChestSpawnTimer, c.ramp.ChestSpawnStep, c.ramp.ChestSpawnFloor)
	c.logger.Info("difficulty ramp",
		log.Int("minute", c.minutes),
		log.Duration("mob_spawn", mob),
		log.Duration("chest_spawn", chest),
	)
}

// shorten lowers a timer interval by step without going below floor. An
// interval already at or under the floor is left alone.
func (c *Clock) shorten(name string, step, floor time.Duration) time.Duration {
	current, ok := c.heart.Interval(name)
	if !ok {
		return 0
	}
	if current <= floor {
		return current
	}
	next := max(current-step, floor)
	if next == current {
		return current
	}
	if err := c.heart.SetInterval(name, next); err != nil {
		c.logger.Error("failed to ramp timer", log.String("timer", name), log.Error(err))
		return current
	}
	return next
}

func (c *Clock) Pause()  { c.heart.PauseAll() }
func (c *Clock) Resume() { c.heart.ResumeAll() }

// Reset stops every timer and allows a fresh Init.
func (c *Clock) Reset() {
	c.heart.StopAll()
	c.initialized = false
	c.minutes = 0
}
