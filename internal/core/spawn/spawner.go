// Package spawn runs the weighted, pooled mob population of a level: the
// spawn table, the per-template pools, the movement behaviors and the
// Spawner system that ties them to the heart's timers.
package spawn

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/pkg/geom"
	"github.com/zeusync/arena/pkg/sequence"
)

// Subject is the entity mobs pursue and spawn around.
type Subject interface {
	Position() geom.Vec2
}

// Observer is notified about pool traffic. Implementations must be cheap.
type Observer interface {
	OnSpawn(template string)
	OnSpawnMiss(template string)
	OnRecycle(template string)
}

// Stats counts mob instances by lifecycle state.
type Stats struct {
	Pooled       int `json:"pooled"`
	Spawning     int `json:"spawning"`
	Active       int `json:"active"`
	PendingDeath int `json:"pending_death"`
	Capacity     int `json:"capacity"`
}

type Spawner struct {
	bus       bus.EventBus
	logger    log.Log
	subject   Subject
	templates []*models.MobTemplate
	cfg       Config
	behaviors Behaviors
	rng       *rand.Rand
	binder    *bus.Binder
	observers []Observer

	table  *Table
	pool   *Pool
	paths  []SpawnPath
	active []*Mob
	spawns *sequence.Queue[*Mob]
	deaths *sequence.Queue[*Mob]

	elapsedMinutes float64
	initialized    bool
	missing        map[models.Movement]bool
}

func NewSpawner(b bus.EventBus, logger log.Log, subject Subject, templates []*models.MobTemplate, cfg Config) *Spawner {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Spawner{
		bus:       b,
		logger:    logger.Named("spawner"),
		subject:   subject,
		templates: templates,
		cfg:       cfg,
		behaviors: DefaultBehaviors(),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		spawns:    sequence.NewQueue[*Mob](16),
		deaths:    sequence.NewQueue[*Mob](16),
		missing:   make(map[models.Movement]bool),
	}
}

// SetBehaviors replaces the behavior table. Movement kinds without an entry
// fall back to Idle.
func (s *Spawner) SetBehaviors(behaviors Behaviors) {
	s.behaviors = behaviors
}

func (s *Spawner) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Spawner) Attach() error {
	s.binder = bus.NewBinder(s.bus).
		On(events.Init, s.OnInit).
		On(events.MobSpawnTimeout, s.OnSpawnTimeout).
		On(events.GameTimeout, s.OnGameTimeout)
	return s.binder.Err()
}

func (s *Spawner) Name() string { return "spawner" }

func (s *Spawner) Detach() {
	if s.binder != nil {
		_ = s.binder.Release()
		s.binder = nil
	}
}

func (s *Spawner) IsInitialized() bool { return s.initialized }

func (s *Spawner) OnInit() {
	if err := s.Init(); err != nil {
		s.logger.Error("failed to initialize spawner", log.Error(err))
	}
}

// Init builds the spawn table, the pools and the spawn paths. A second call
// is ignored with a warning.
func (s *Spawner) Init() error {
	if s.initialized {
		s.logger.Warn("spawner already initialized, ignoring Init")
		return nil
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	table, err := BuildTable(s.templates, s.rng)
	if err != nil {
		return err
	}
	s.table = table
	s.pool = NewPool(table)
	s.paths = StandardPaths()
	s.initialized = true

	s.logger.Info("built spawn table",
		log.Int("templates", table.Len()),
		log.Float64("total_weight", table.Total()),
		log.Int("pooled", s.pool.Capacity()),
	)
	return nil
}

// OnSpawnTimeout rolls the table and queues one pooled instance of the picked
// template. An exhausted pool skips the spawn.
func (s *Spawner) OnSpawnTimeout() {
	if !s.initialized {
		s.logger.Warn("spawn timeout before init, skipping")
		return
	}
	floor := s.table.Floor(s.elapsedMinutes, s.cfg.FloorMargin)
	tmpl := s.table.Sample(s.rng, floor)
	m, ok := s.pool.Acquire(tmpl)
	if !ok {
		s.logger.Debug("pool exhausted, skipping spawn", log.String("template", tmpl.Name))
		for _, o := range s.observers {
			o.OnSpawnMiss(tmpl.Name)
		}
		return
	}
	s.spawns.Enqueue(m)
}

func (s *Spawner) OnGameTimeout() {
	s.elapsedMinutes++
}

// ElapsedMinutes returns the number of game minutes seen since start.
func (s *Spawner) ElapsedMinutes() float64 { return s.elapsedMinutes }

// Tick simulates one step of every active mob, then places queued spawns and
// recycles queued deaths.
func (s *Spawner) Tick(delta time.Duration) {
	if !s.initialized {
		return
	}
	dt := delta.Seconds()
	ctx := &Context{Subject: s.subject.Position(), Delta: dt, Rand: s.rng}
	screen := geom.CenteredRect(ctx.Subject, s.cfg.viewport())

	for _, m := range s.active {
		if m.State != MobActive {
			continue
		}
		if m.Health == 0 {
			m.State = MobPendingDeath
			s.deaths.Enqueue(m)
			continue
		}
		m.Elapsed += dt
		if s.shouldSkip(m, screen) {
			m.Position = m.Position.Add(m.Velocity.Mul(dt))
			continue
		}
		s.behave(m, ctx)
		m.Position = m.Position.Add(m.Velocity.Mul(dt))
	}

	s.spawns.Drain(func(m *Mob) { s.place(m, ctx.Subject) })
	s.deaths.Drain(s.recycle)
}

// shouldSkip throttles off-screen mobs: their behavior runs once every
// FrameSkip+1 ticks. Their last velocity keeps integrating in between.
func (s *Spawner) shouldSkip(m *Mob, screen geom.Rect) bool {
	if screen.HasPoint(m.Position) {
		return false
	}
	m.FrameSkip++
	if m.FrameSkip > s.cfg.FrameSkip {
		m.FrameSkip = 0
		return false
	}
	return true
}

func (s *Spawner) behave(m *Mob, ctx *Context) {
	movement := m.Template.Movement
	behavior, ok := s.behaviors[movement]
	if !ok {
		if !s.missing[movement] {
			s.missing[movement] = true
			s.logger.Warn("no behavior for movement, mob stays idle",
				log.Stringer("movement", movement),
				log.String("template", m.Template.Name),
			)
		}
		behavior = Idle
	}
	behavior(m, ctx)
}

func (s *Spawner) place(m *Mob, subject geom.Vec2) {
	path := s.paths[s.rng.IntN(len(s.paths))]
	m.Position = path.Point(subject, s.rng.Float64())
	m.Visible = true
	m.State = MobActive
	s.active = append(s.active, m)
	for _, o := range s.observers {
		o.OnSpawn(m.Template.Name)
	}
	s.logger.Debug("spawned mob",
		log.String("template", m.Template.Name),
		log.String("path", path.Name),
	)
}

func (s *Spawner) recycle(m *Mob) {
	if i := slices.Index(s.active, m); i >= 0 {
		s.active = slices.Delete(s.active, i, i+1)
	}
	died := events.MobDiedEvent{
		MobID:    m.ID,
		Template: m.Template.Name,
		Rarity:   m.Template.Rarity,
		Position: m.Position,
	}
	if err := s.pool.Release(m); err != nil {
		s.logger.Error("failed to return mob to pool", log.String("mob", m.ID), log.Error(err))
		return
	}
	for _, o := range s.observers {
		o.OnRecycle(m.Template.Name)
	}
	s.bus.PublishData(events.XPEvent{Rarity: died.Rarity})
	s.bus.PublishData(died)
}

// Damage subtracts amount from an active mob's health, clamping at zero. It
// reports whether the mob was found and active.
func (s *Spawner) Damage(id string, amount uint32) bool {
	if !s.initialized {
		return false
	}
	m, ok := s.pool.Lookup(id)
	if !ok || m.State != MobActive {
		return false
	}
	m.Health -= min(amount, m.Health)
	return true
}

// Active returns a copy of every active mob in spawn order.
func (s *Spawner) Active() []MobView {
	out := make([]MobView, 0, len(s.active))
	for m := range sequence.Filter(slices.Values(s.active), (*Mob).IsActive) {
		out = append(out, m.View())
	}
	return out
}

// Table returns the spawn table, or nil before Init.
func (s *Spawner) Table() *Table { return s.table }

// Stats counts every instance by state.
func (s *Spawner) Stats() Stats {
	return s.count(func(*Mob) bool { return true })
}

// CountByTemplate counts the instances of one template by state.
func (s *Spawner) CountByTemplate(name string) Stats {
	return s.count(func(m *Mob) bool { return m.Template.Name == name })
}

func (s *Spawner) count(match func(*Mob) bool) Stats {
	var st Stats
	if s.pool == nil {
		return st
	}
	s.pool.Each(func(m *Mob) {
		if !match(m) {
			return
		}
		st.Capacity++
		switch m.State {
		case MobPooled:
			st.Pooled++
		case MobSpawning:
			st.Spawning++
		case MobActive:
			st.Active++
		case MobPendingDeath:
			st.PendingDeath++
		}
	})
	return st
}
