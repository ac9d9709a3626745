// Package game owns a play session: it resolves a level, builds and wires the
// simulation systems on one event bus and drives them from the host's Tick.
package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/chest"
	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/heart"
	"github.com/zeusync/arena/internal/core/level"
	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/observability/metrics"
	"github.com/zeusync/arena/internal/core/spawn"
	"github.com/zeusync/arena/internal/core/system"
	"github.com/zeusync/arena/internal/core/world"
	"github.com/zeusync/arena/internal/core/xp"
)

var (
	ErrLevelLoaded  = eris.New("a level is already loaded")
	ErrNoLevel      = eris.New("no level is loaded")
	ErrMissingRole  = eris.New("level lacks a required template")
	ErrInvalidSetup = eris.New("invalid session options")
)

// Options tunes the systems of a session.
type Options struct {
	Heart heart.Config
	Spawn spawn.Config
	Chest chest.Config
	// Autopilot makes the hero wander on its own.
	Autopilot bool
	// WanderInterval is how often the autopilot changes heading.
	WanderInterval time.Duration
	Seed           uint64
}

func DefaultOptions() Options {
	return Options{
		Heart:          heart.DefaultConfig(),
		Spawn:          spawn.DefaultConfig(),
		Chest:          chest.DefaultConfig(),
		WanderInterval: 3 * time.Second,
	}
}

type session struct {
	level    *level.Resolved
	hero     *Hero
	heart    *heart.Heart
	clock    *heart.Clock
	spawner  *spawn.Spawner
	streamer *world.Streamer
	xp       *xp.Settler
	chests   *chest.Spawner
	systems  *system.Group
	binder   *bus.Binder

	started   bool
	victory   bool
	minutes   int
	ticks     uint64
	simulated time.Duration
	kills     uint64
	drops     uint64
}

// Manager is driven from a single host goroutine. Snapshot and Playing may be
// called from any goroutine.
type Manager struct {
	bus      bus.EventBus
	logger   log.Log
	manifest *level.Manifest
	opts     Options
	metrics  *metrics.Collector

	s       *session
	playing atomic.Bool

	snapMu   sync.RWMutex
	snapshot Snapshot
}

// NewManager wires a manager. collector may be nil.
func NewManager(b bus.EventBus, logger log.Log, manifest *level.Manifest, opts Options, collector *metrics.Collector) *Manager {
	if collector != nil {
		b.AddObserver(collector)
	}
	return &Manager{
		bus:      b,
		logger:   logger.Named("game"),
		manifest: manifest,
		opts:     opts,
		metrics:  collector,
	}
}

func (m *Manager) validate() error {
	if err := m.opts.Heart.Validate(); err != nil {
		return eris.Wrap(err, "heart options")
	}
	if err := m.opts.Spawn.Validate(); err != nil {
		return eris.Wrap(err, "spawn options")
	}
	if m.opts.Autopilot && m.opts.WanderInterval <= 0 {
		return eris.Wrap(ErrInvalidSetup, "wander interval must be positive")
	}
	return m.manifest.Validate()
}

// LoadLevel resolves name, builds every system, attaches them to the bus and
// publishes PlayerSpawn followed by Init. Configuration faults are returned
// before anything is attached.
func (m *Manager) LoadLevel(name string) error {
	if m.s != nil {
		return eris.Wrapf(ErrLevelLoaded, "cannot load %s while %s is loaded", name, m.s.level.Level.Name)
	}
	if err := m.validate(); err != nil {
		return err
	}
	resolved, err := m.manifest.Resolve(name)
	if err != nil {
		return err
	}
	for _, role := range []models.Role{models.RoleMob, models.RoleChest, models.RoleHero} {
		if !resolved.Has(role) {
			return eris.Wrapf(ErrMissingRole, "level %s has no %s template", name, role)
		}
	}
	heroTmpl, _ := resolved.Hero()
	chestTmpl, _ := resolved.Chest()

	s := &session{level: resolved}
	s.hero = NewHero(m.bus, heroTmpl, resolved.Level.Spawn, resolved.Level.MaxLevel)
	if m.opts.Autopilot {
		s.hero.SetAutopilot(NewWander(m.opts.Seed, m.opts.WanderInterval))
	}

	s.heart = heart.New(m.bus, m.logger)
	if err := s.heart.BuildStandard(m.opts.Heart); err != nil {
		return err
	}
	s.clock = heart.NewClock(s.heart, m.bus, m.logger, m.opts.Heart.Ramp)

	spawnCfg := m.opts.Spawn
	if spawnCfg.Seed == 0 {
		spawnCfg.Seed = m.opts.Seed
	}
	s.spawner = spawn.NewSpawner(m.bus, m.logger, s.hero, resolved.Table, spawnCfg)
	s.streamer = world.NewStreamer(m.bus, m.logger, s.hero, resolved.Map)
	s.xp = xp.NewSettler(m.bus, m.logger)
	chestCfg := m.opts.Chest
	if chestCfg.Seed == 0 {
		chestCfg.Seed = m.opts.Seed
	}
	s.chests = chest.NewSpawner(m.bus, m.logger, s.hero, chestTmpl, chestCfg)
	if m.metrics != nil {
		s.spawner.AddObserver(m.metrics)
		s.streamer.AddObserver(m.metrics)
	}

	s.systems = system.NewGroup(m.logger)
	if err := s.systems.Register(s.clock, s.streamer, s.spawner, s.xp, s.chests); err != nil {
		return err
	}
	if err := s.systems.AttachAll(); err != nil {
		return err
	}
	s.binder = bus.NewBinder(m.bus).
		On(events.PulseTimeout, m.onPulse).
		On(events.StartingTimeout, m.onStarted).
		On(events.GameTimeout, m.onGameMinute).
		On(events.PlayerSpawn, m.onHeroSpawned).
		On(events.PlayerDefeat, m.onDefeat).
		On(events.PlayerVictory, m.onVictory).
		OnData(events.PlayerGainedXP, m.onXP).
		OnData(events.MobDied, m.onMobDied).
		OnData(events.ChestSpawned, m.onChestSpawned)
	if err := s.binder.Err(); err != nil {
		s.systems.DetachAll()
		return eris.Wrap(err, "attach manager")
	}

	m.s = s
	m.playing.Store(true)
	m.logger.Info("level loaded",
		log.String("level", name),
		log.Stringer("type", resolved.Level.Type),
		log.Stringer("tier", resolved.Level.Tier),
		log.Int("mobs", len(resolved.Table)),
	)
	m.bus.Publish(events.PlayerSpawn)
	m.bus.Publish(events.Init)
	m.publishSnapshot()
	return nil
}

// UnloadLevel stops the timers, detaches every system and clears the bus.
func (m *Manager) UnloadLevel() {
	s := m.s
	if s == nil {
		return
	}
	s.clock.Reset()
	s.systems.DetachAll()
	_ = s.binder.Release()
	m.bus.UnsubscribeAll()
	m.s = nil
	m.playing.Store(false)
	m.publishSnapshot()
	m.logger.Info("level unloaded", log.String("level", s.level.Level.Name))
}

// Loaded reports whether a level is loaded.
func (m *Manager) Loaded() bool { return m.s != nil }

func (m *Manager) Playing() bool { return m.playing.Load() }

// TogglePause flips between playing and paused and returns the new playing
// state. A defeated or finished session cannot resume.
func (m *Manager) TogglePause() bool {
	s := m.s
	if s == nil || s.hero.Defeated() || s.victory {
		return false
	}
	if m.playing.Load() {
		m.playing.Store(false)
		s.clock.Pause()
		m.logger.Info("paused")
	} else {
		m.playing.Store(true)
		s.clock.Resume()
		m.logger.Info("resumed")
	}
	m.publishSnapshot()
	return m.playing.Load()
}

// Tick advances the session by delta. It does nothing while no level is
// loaded or the game is paused.
func (m *Manager) Tick(delta time.Duration) {
	s := m.s
	if s == nil || !m.playing.Load() || delta <= 0 {
		return
	}
	start := time.Now()
	s.hero.Tick(delta)
	s.heart.Tick(delta)
	s.ticks++
	s.simulated += delta
	m.publishSnapshot()
	if m.metrics != nil {
		m.metrics.ObserveTick(time.Since(start))
	}
}

// DamageHero applies damage to the hero.
func (m *Manager) DamageHero(amount uint32) error {
	if m.s == nil {
		return ErrNoLevel
	}
	m.s.hero.Damage(amount)
	return nil
}

// DamageMob applies damage to an active mob and reports whether it was hit.
func (m *Manager) DamageMob(id string, amount uint32) bool {
	if m.s == nil {
		return false
	}
	return m.s.spawner.Damage(id, amount)
}

func (m *Manager) Hero() *Hero {
	if m.s == nil {
		return nil
	}
	return m.s.hero
}

func (m *Manager) onPulse() {
	s := m.s
	interval, ok := s.heart.Interval(heart.PulseTimer)
	if !ok {
		return
	}
	s.spawner.Tick(interval)
	s.streamer.Update()
	if m.metrics != nil {
		m.metrics.ObservePool(s.spawner.Stats())
	}
}

func (m *Manager) onStarted() {
	m.s.started = true
	m.logger.Info("session started", log.String("level", m.s.level.Level.Name))
}

func (m *Manager) onGameMinute() {
	s := m.s
	s.minutes++
	maxTime := s.level.Level.MaxTime
	if maxTime <= 0 || s.victory {
		return
	}
	if time.Duration(s.minutes)*m.opts.Heart.Game >= maxTime {
		s.victory = true
		m.playing.Store(false)
		s.clock.Pause()
		m.bus.Publish(events.PlayerVictory)
	}
}

func (m *Manager) onHeroSpawned() {
	pos := m.s.hero.Position()
	m.logger.Debug("hero spawned",
		log.Float64("x", pos.X),
		log.Float64("y", pos.Y),
	)
}

func (m *Manager) onVictory() {
	m.logger.Info("level survived",
		log.Int("minutes", m.s.minutes),
		log.Uint64("kills", m.s.kills),
	)
}

func (m *Manager) onDefeat() {
	m.playing.Store(false)
	m.s.clock.Pause()
	m.logger.Info("hero defeated", log.Uint64("xp", m.s.hero.XP()))
}

func (m *Manager) onXP(p events.Payload) {
	e, ok := p.(events.PlayerGainedXPEvent)
	if !ok {
		return
	}
	if levels := m.s.hero.GainXP(e.Amount); levels > 0 {
		m.logger.Info("hero levelled up", log.Uint32("level", m.s.hero.Level()))
	}
	if m.metrics != nil {
		m.metrics.AddXP(e.Amount)
	}
}

func (m *Manager) onMobDied(p events.Payload) {
	e, ok := p.(events.MobDiedEvent)
	if !ok {
		return
	}
	m.s.kills++
	if m.metrics != nil {
		m.metrics.OnMobDied(e.Template)
	}
}

func (m *Manager) onChestSpawned(p events.Payload) {
	e, ok := p.(events.ChestSpawnedEvent)
	if !ok {
		return
	}
	m.s.drops++
	if m.metrics != nil {
		m.metrics.OnChestSpawned(e.Template)
	}
}
