package heart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
)

func newClock(t *testing.T) (*Clock, *Heart, bus.EventBus) {
	t.Helper()
	b := bus.New(log.NewNop())
	h := New(b, log.NewNop())
	cfg := DefaultConfig()
	require.NoError(t, h.BuildStandard(cfg))
	c := NewClock(h, b, log.NewNop(), cfg.Ramp)
	require.NoError(t, c.Attach())
	return c, h, b
}

func TestClockStartsTimersOnce(t *testing.T) {
	c, h, b := newClock(t)
	b.Publish(events.Init)
	assert.True(t, c.IsInitialized())
	for _, info := range h.Timers() {
		assert.Equal(t, StateRunning, info.State, info.Name)
	}

	h.Tick(time.Second)
	before, _ := h.Timer(PulseTimer)

	b.Publish(events.Init)
	after, _ := h.Timer(PulseTimer)
	assert.Equal(t, before.Remaining, after.Remaining)
	assert.True(t, c.IsInitialized())
}

func TestDifficultyRampReachesFloor(t *testing.T) {
	c, h, b := newClock(t)
	b.Publish(events.Init)

	for range 20 {
		b.Publish(events.GameTimeout)
	}
	mob, _ := h.Interval(MobSpawnTimer)
	chest, _ := h.Interval(ChestSpawnTimer)
	assert.Equal(t, 500*time.Millisecond, mob)
	assert.Equal(t, time.Second, chest)
	assert.Equal(t, 20, c.Minutes())
}

func TestDifficultyRampSingleStep(t *testing.T) {
	_, h, b := newClock(t)
	b.Publish(events.Init)
	b.Publish(events.GameTimeout)

	mob, _ := h.Interval(MobSpawnTimer)
	chest, _ := h.Interval(ChestSpawnTimer)
	assert.Equal(t, 4750*time.Millisecond, mob)
	assert.Equal(t, 9500*time.Millisecond, chest)
}

func TestGameTimerDrivesRamp(t *testing.T) {
	_, h, b := newClock(t)
	b.Publish(events.Init)
	for range 60 {
		h.Tick(time.Second)
	}
	mob, _ := h.Interval(MobSpawnTimer)
	assert.Equal(t, 4750*time.Millisecond, mob)
}

func TestClockPauseResumeReset(t *testing.T) {
	c, h, b := newClock(t)
	b.Publish(events.Init)
	h.Tick(2 * time.Second)

	c.Pause()
	h.Tick(10 * time.Second)
	info, _ := h.Timer(MobSpawnTimer)
	assert.Equal(t, 3*time.Second, info.Remaining)

	c.Resume()
	info, _ = h.Timer(MobSpawnTimer)
	assert.Equal(t, StateRunning, info.State)

	c.Reset()
	assert.False(t, c.IsInitialized())
	info, _ = h.Timer(MobSpawnTimer)
	assert.Equal(t, StateStopped, info.State)
}

func TestClockDetach(t *testing.T) {
	c, _, b := newClock(t)
	c.Detach()
	assert.Zero(t, b.Handlers(events.Init))
	assert.Zero(t, b.Handlers(events.GameTimeout))
}

func TestDifficultyRampNeverSlowsFastTimers(t *testing.T) {
	b := bus.New(log.NewNop())
	h := New(b, log.NewNop())
	cfg := DefaultConfig()
	cfg.MobSpawn = 300 * time.Millisecond
	cfg.ChestSpawn = 800 * time.Millisecond
	require.NoError(t, h.BuildStandard(cfg))
	c := NewClock(h, b, log.NewNop(), cfg.Ramp)
	require.NoError(t, c.Attach())
	b.Publish(events.Init)

	for range 3 {
		b.Publish(events.GameTimeout)
	}
	mob, _ := h.Interval(MobSpawnTimer)
	chest, _ := h.Interval(ChestSpawnTimer)
	assert.Equal(t, 300*time.Millisecond, mob)
	assert.Equal(t, 800*time.Millisecond, chest)
}
