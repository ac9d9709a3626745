package game

import (
	"slices"

	"github.com/zeusync/arena/internal/core/chest"
	"github.com/zeusync/arena/internal/core/heart"
	"github.com/zeusync/arena/internal/core/spawn"
	"github.com/zeusync/arena/pkg/geom"
	"github.com/zeusync/arena/pkg/sequence"
)

// Snapshot is an immutable copy of the session state taken after a tick.
type Snapshot struct {
	Level          string          `json:"level"`
	Loaded         bool            `json:"loaded"`
	Playing        bool            `json:"playing"`
	Started        bool            `json:"started"`
	Victory        bool            `json:"victory"`
	Tick           uint64          `json:"tick"`
	Elapsed        float64         `json:"elapsed_seconds"`
	Minutes        int             `json:"minutes"`
	Hero           HeroView        `json:"hero"`
	Mobs           []spawn.MobView `json:"mobs"`
	// MobsByTemplate counts the active mobs per template name.
	MobsByTemplate map[string]int  `json:"mobs_by_template"`
	Pool           spawn.Stats     `json:"pool"`
	Chests         []chest.Chest   `json:"chests"`
	World          geom.Rect       `json:"world"`
	XPTotal        uint64          `json:"xp_total"`
	Kills          uint64          `json:"kills"`
	ChestsSpawned  uint64          `json:"chests_spawned"`
	Timers         []TimerView     `json:"timers"`
	WorldMove      uint64          `json:"world_shifts"`
	Systems        []string        `json:"systems"`
}

type TimerView struct {
	Name        string  `json:"name"`
	IntervalMs  int64   `json:"interval_ms"`
	RemainingMs int64   `json:"remaining_ms"`
	State       string  `json:"state"`
	Hz          float64 `json:"hz"`
}

// Snapshot returns the state published by the latest tick. It is safe to call
// from any goroutine.
func (m *Manager) Snapshot() Snapshot {
	m.snapMu.RLock()
	defer m.snapMu.RUnlock()
	return m.snapshot
}

func (m *Manager) publishSnapshot() {
	snap := m.buildSnapshot()
	m.snapMu.Lock()
	m.snapshot = snap
	m.snapMu.Unlock()
}

func (m *Manager) buildSnapshot() Snapshot {
	s := m.s
	if s == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		Level:         s.level.Level.Name,
		Loaded:        true,
		Playing:       m.playing.Load(),
		Started:       s.started,
		Victory:       s.victory,
		Tick:          s.ticks,
		Elapsed:       s.simulated.Seconds(),
		Minutes:       s.minutes,
		Hero:          s.hero.View(),
		Mobs:          s.spawner.Active(),
		Pool:          s.spawner.Stats(),
		Chests:        s.chests.Chests(),
		World:         s.streamer.WorldRect(),
		XPTotal:       s.xp.Total(),
		Kills:         s.kills,
		ChestsSpawned: s.drops,
		WorldMove:     s.streamer.Shifts(),
		Systems:       s.systems.Names(),
		Timers:        sequence.Map(s.heart.Timers(), timerView),
	}
	snap.MobsByTemplate = sequence.CountBy(slices.Values(snap.Mobs), func(v spawn.MobView) string { return v.Template })
	return snap
}

func timerView(t heart.TimerInfo) TimerView {
	return TimerView{
		Name:        t.Name,
		IntervalMs:  t.Interval.Milliseconds(),
		RemainingMs: t.Remaining.Milliseconds(),
		State:       t.State.String(),
		Hz:          t.Hz(),
	}
}
