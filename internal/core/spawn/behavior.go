package spawn

import (
	"math"
	"math/rand/v2"

	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/pkg/geom"
)

// Context is what a behavior may read while updating a mob.
type Context struct {
	// Subject is the position every pursuing mob steers toward.
	Subject geom.Vec2
	// Delta is the simulated step in seconds.
	Delta float64
	Rand  *rand.Rand
}

// Behavior updates the velocity of one mob. Position is integrated by the
// spawner after the behavior returns.
type Behavior func(m *Mob, ctx *Context)

// Behaviors maps a movement kind to its velocity update.
type Behaviors map[models.Movement]Behavior

func DefaultBehaviors() Behaviors {
	return Behaviors{
		models.MovementStationary:   Idle,
		models.MovementCurved:       CurvedPursuit,
		models.MovementDash:         Dash,
		models.MovementAttracted:    DirectPursuit,
		models.MovementRandom:       RandomWalk,
		models.MovementZigZag:       ZigZag,
		models.MovementCircleStrafe: CircleStrafe,
	}
}

func Idle(m *Mob, _ *Context) {
	m.Velocity = geom.Zero
}

func CurvedPursuit(m *Mob, ctx *Context) {
	jitter := uniform(ctx.Rand, -0.05, 0.05)
	dir := m.Position.DirectionTo(ctx.Subject).Rotated(jitter)
	m.Velocity = m.Velocity.Mul(0.95).Add(dir.Mul(m.Template.Stats.Speed * 0.05))
}

// Dash lets the current velocity decay and, once it drops under a tenth of
// the template speed, bursts toward the subject at 1.5x speed.
func Dash(m *Mob, ctx *Context) {
	speed := m.Template.Stats.Speed
	if m.Velocity.Length() >= speed*0.1 && !m.Velocity.IsZero() {
		m.Velocity = m.Velocity.Mul(0.9)
		return
	}
	dir := m.Position.DirectionTo(ctx.Subject)
	m.Velocity = dir.Mul(speed * 1.5)
}

func DirectPursuit(m *Mob, ctx *Context) {
	m.Velocity = m.Position.DirectionTo(ctx.Subject).Mul(m.Template.Stats.Speed)
}

func RandomWalk(m *Mob, ctx *Context) {
	if m.Velocity.Length() < 1 {
		heading := geom.FromAngle(uniform(ctx.Rand, 0, 2*math.Pi))
		m.Velocity = heading.Mul(m.Template.Stats.Speed)
		return
	}
	m.Velocity = m.Velocity.Mul(0.95)
}

func ZigZag(m *Mob, ctx *Context) {
	offset := math.Sin(m.Elapsed*5)*0.25 + uniform(ctx.Rand, -0.3, 0.3)
	m.Velocity = lateral(m, ctx.Subject, offset)
}

func CircleStrafe(m *Mob, ctx *Context) {
	offset := math.Sin(m.Elapsed*3) * 0.5
	m.Velocity = lateral(m, ctx.Subject, offset)
}

// lateral steers toward subject with a sideways offset along the
// perpendicular of the pursuit direction.
func lateral(m *Mob, subject geom.Vec2, offset float64) geom.Vec2 {
	dir := m.Position.DirectionTo(subject)
	heading := dir.Add(dir.Perpendicular().Mul(offset)).Normalized()
	return heading.Mul(m.Template.Stats.Speed)
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
