package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/pkg/geom"
)

// Autopilot steers a hero that has no player input.
type Autopilot interface {
	// Steer returns the velocity the hero should move with for the next dt
	// seconds.
	Steer(h *Hero, dt float64) geom.Vec2
}

// Hero is the player-controlled subject every system orbits.
type Hero struct {
	bus       bus.EventBus
	template  *models.HeroTemplate
	position  geom.Vec2
	velocity  geom.Vec2
	health    uint32
	xp        uint64
	level     uint32
	maxLevel  uint32
	defeated  bool
	autopilot Autopilot
}

func NewHero(b bus.EventBus, t *models.HeroTemplate, spawn geom.Vec2, maxLevel uint32) *Hero {
	return &Hero{
		bus:      b,
		template: t,
		position: spawn,
		health:   t.Stats.MaxHealth,
		level:    1,
		maxLevel: maxLevel,
	}
}

func (h *Hero) SetAutopilot(a Autopilot) { h.autopilot = a }

func (h *Hero) Position() geom.Vec2 { return h.position }
func (h *Hero) Velocity() geom.Vec2 { return h.velocity }

// SetVelocity overrides the velocity until the next autopilot step.
func (h *Hero) SetVelocity(v geom.Vec2) { h.velocity = v }

func (h *Hero) Health() uint32    { return h.health }
func (h *Hero) MaxHealth() uint32 { return h.template.Stats.MaxHealth }
func (h *Hero) XP() uint64        { return h.xp }
func (h *Hero) Level() uint32     { return h.level }
func (h *Hero) Defeated() bool    { return h.defeated }

// Tick integrates the hero's movement.
func (h *Hero) Tick(delta time.Duration) {
	if h.defeated {
		return
	}
	dt := delta.Seconds()
	if h.autopilot != nil {
		h.velocity = h.autopilot.Steer(h, dt)
	}
	h.position = h.position.Add(h.velocity.Mul(dt))
}

// Damage lowers health, clamping at zero. The first time health reaches zero
// PlayerDefeat is published.
func (h *Hero) Damage(amount uint32) {
	if h.defeated {
		return
	}
	h.health -= min(amount, h.health)
	if h.health == 0 {
		h.defeated = true
		h.velocity = geom.Zero
		h.bus.Publish(events.PlayerDefeat)
	}
}

// xpForLevel is the cumulative XP needed to reach level+1.
func xpForLevel(level uint32) uint64 {
	l := uint64(level)
	return 50 * l * (l + 1)
}

// GainXP adds experience and returns how many levels were gained.
func (h *Hero) GainXP(amount uint32) uint32 {
	h.xp += uint64(amount)
	gained := uint32(0)
	for (h.maxLevel == 0 || h.level < h.maxLevel) && h.xp >= xpForLevel(h.level) {
		h.level++
		gained++
	}
	return gained
}

// HeroView is a copy of the hero's public state.
type HeroView struct {
	Name      string    `json:"name"`
	Position  geom.Vec2 `json:"position"`
	Velocity  geom.Vec2 `json:"velocity"`
	Health    uint32    `json:"health"`
	MaxHealth uint32    `json:"max_health"`
	XP        uint64    `json:"xp"`
	Level     uint32    `json:"level"`
	Defeated  bool      `json:"defeated"`
}

func (h *Hero) View() HeroView {
	return HeroView{
		Name:      h.template.Name,
		Position:  h.position,
		Velocity:  h.velocity,
		Health:    h.health,
		MaxHealth: h.MaxHealth(),
		XP:        h.xp,
		Level:     h.level,
		Defeated:  h.defeated,
	}
}

// Wander is a seeded autopilot that picks a new heading every Interval and
// walks at the hero's template speed.
type Wander struct {
	Interval time.Duration
	rng      *rand.Rand
	heading  geom.Vec2
	left     float64
}

func NewWander(seed uint64, interval time.Duration) *Wander {
	return &Wander{Interval: interval, rng: rand.New(rand.NewPCG(seed, seed+1))}
}

func (w *Wander) Steer(h *Hero, dt float64) geom.Vec2 {
	w.left -= dt
	if w.left <= 0 || w.heading.IsZero() {
		w.heading = geom.FromAngle(w.rng.Float64() * 2 * math.Pi)
		w.left = w.Interval.Seconds()
	}
	return w.heading.Mul(h.template.Stats.Speed)
}
