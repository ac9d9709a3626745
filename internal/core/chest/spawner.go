// Package chest places loot chests on a ring around the player.
package chest

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/spawn"
	"github.com/zeusync/arena/pkg/geom"
)

var ErrMissingChestTemplate = eris.New("chest template is missing")

const (
	pathRadius = 400
	pathPoints = 10
)

var pathOffset = geom.V(200, 200)

type Config struct {
	// MaxChests caps the live chests; the oldest is evicted first.
	MaxChests int    `yaml:"max_chests"`
	Seed      uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{MaxChests: 32}
}

// Subject is the entity chests are placed around.
type Subject interface {
	Position() geom.Vec2
}

// Chest is one placed chest.
type Chest struct {
	ID       string        `json:"id"`
	Template string        `json:"template"`
	Rarity   models.Rarity `json:"rarity"`
	Position geom.Vec2     `json:"position"`
	Health   uint32        `json:"health"`
}

type Spawner struct {
	bus      bus.EventBus
	logger   log.Log
	subject  Subject
	template *models.ChestTemplate
	cfg      Config
	rng      *rand.Rand
	binder   *bus.Binder

	path        spawn.SpawnPath
	chests      []Chest
	spawned     uint64
	initialized bool
}

func NewSpawner(b bus.EventBus, logger log.Log, subject Subject, template *models.ChestTemplate, cfg Config) *Spawner {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	if cfg.MaxChests <= 0 {
		cfg.MaxChests = DefaultConfig().MaxChests
	}
	return &Spawner{
		bus:      b,
		logger:   logger.Named("chest"),
		subject:  subject,
		template: template,
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(seed, ^seed)),
	}
}

func (s *Spawner) Attach() error {
	s.binder = bus.NewBinder(s.bus).
		On(events.Init, s.OnInit).
		On(events.ChestSpawnTimeout, s.OnChestSpawnTimeout)
	return s.binder.Err()
}

func (s *Spawner) Name() string { return "chests" }

func (s *Spawner) Detach() {
	if s.binder != nil {
		_ = s.binder.Release()
		s.binder = nil
	}
}

func (s *Spawner) IsInitialized() bool { return s.initialized }

func (s *Spawner) OnInit() {
	if s.initialized {
		s.logger.Warn("chest spawner already initialized, ignoring Init")
		return
	}
	if s.template == nil {
		s.logger.Error("chest spawner has no template", log.Error(ErrMissingChestTemplate))
		return
	}
	s.path = spawn.SpawnPath{
		Name:   "chest_ring",
		Path:   spawn.Circle(pathRadius, pathPoints),
		Offset: pathOffset,
	}
	s.initialized = true
}

// OnChestSpawnTimeout places one chest at a random point of the ring around
// the subject's current position.
func (s *Spawner) OnChestSpawnTimeout() {
	if !s.initialized {
		return
	}
	c := Chest{
		ID:       uuid.NewString(),
		Template: s.template.Name,
		Rarity:   s.template.Rarity,
		Position: s.path.Point(s.subject.Position(), s.rng.Float64()),
		Health:   s.template.Health,
	}
	if len(s.chests) >= s.cfg.MaxChests {
		evicted := s.chests[0]
		s.chests = append(s.chests[:0], s.chests[1:]...)
		s.logger.Debug("evicted oldest chest", log.String("chest", evicted.ID))
	}
	s.chests = append(s.chests, c)
	s.spawned++
	s.bus.PublishData(events.ChestSpawnedEvent{ChestID: c.ID, Template: c.Template, Position: c.Position})
}

// Remove takes a chest out of play, e.g. once it has been opened.
func (s *Spawner) Remove(id string) bool {
	for i, c := range s.chests {
		if c.ID == id {
			s.chests = append(s.chests[:i], s.chests[i+1:]...)
			return true
		}
	}
	return false
}

// Chests returns the live chests, oldest first.
func (s *Spawner) Chests() []Chest {
	out := make([]Chest, len(s.chests))
	copy(out, s.chests)
	return out
}

// Spawned returns how many chests have been placed this session.
func (s *Spawner) Spawned() uint64 { return s.spawned }
