package spawn

import (
	"github.com/google/uuid"

	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/pkg/geom"
)

// MobState is the lifecycle position of a pooled mob. A mob moves
// Pooled -> Spawning -> Active -> PendingDeath -> Pooled and is held by
// exactly one of the pool, the spawn queue, the active list or the death
// queue at any time.
type MobState uint8

const (
	MobPooled MobState = iota
	MobSpawning
	MobActive
	MobPendingDeath
)

func (s MobState) String() string {
	switch s {
	case MobPooled:
		return "pooled"
	case MobSpawning:
		return "spawning"
	case MobActive:
		return "active"
	case MobPendingDeath:
		return "pending_death"
	default:
		return "unknown"
	}
}

// Mob is one pre-allocated instance bound to a template for its whole life.
type Mob struct {
	ID       string
	Template *models.MobTemplate
	Position geom.Vec2
	Velocity geom.Vec2
	Health   uint32
	Visible  bool
	// FrameSkip counts ticks skipped while off-screen.
	FrameSkip int
	// Elapsed is the simulated time in seconds since the mob was spawned.
	Elapsed float64
	State   MobState
}

func newMob(t *models.MobTemplate) *Mob {
	m := &Mob{ID: uuid.NewString(), Template: t}
	m.reset()
	return m
}

// IsActive reports whether the mob is live in the world.
func (m *Mob) IsActive() bool { return m.State == MobActive }

// reset restores the pooled defaults.
func (m *Mob) reset() {
	m.Position = geom.Zero
	m.Velocity = geom.Zero
	m.Health = m.Template.Stats.MaxHealth
	m.Visible = false
	m.FrameSkip = 0
	m.Elapsed = 0
	m.State = MobPooled
}

// MobView is a copy of a mob's public state.
type MobView struct {
	ID        string          `json:"id"`
	Template  string          `json:"template"`
	Rarity    models.Rarity   `json:"rarity"`
	Movement  models.Movement `json:"movement"`
	Position  geom.Vec2       `json:"position"`
	Velocity  geom.Vec2       `json:"velocity"`
	Health    uint32          `json:"health"`
	MaxHealth uint32          `json:"max_health"`
	State     string          `json:"state"`
}

func (m *Mob) View() MobView {
	return MobView{
		ID:        m.ID,
		Template:  m.Template.Name,
		Rarity:    m.Template.Rarity,
		Movement:  m.Template.Movement,
		Position:  m.Position,
		Velocity:  m.Velocity,
		Health:    m.Health,
		MaxHealth: m.Template.Stats.MaxHealth,
		State:     m.State.String(),
	}
}
