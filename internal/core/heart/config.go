package heart

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/events"
)

// Standing timer names.
const (
	PulseTimer      = "PulseTimer"
	SlowPulseTimer  = "SlowPulseTimer"
	MobSpawnTimer   = "MobSpawnTimer"
	ChestSpawnTimer = "ChestSpawnTimer"
	GameTimer       = "GameTimer"
	StartingTimer   = "StartingTimer"
)

// Config holds the intervals of the standing timers and the difficulty ramp.
type Config struct {
	Pulse      time.Duration `yaml:"pulse"`
	SlowPulse  time.Duration `yaml:"slow_pulse"`
	MobSpawn   time.Duration `yaml:"mob_spawn"`
	ChestSpawn time.Duration `yaml:"chest_spawn"`
	Game       time.Duration `yaml:"game"`
	Starting   time.Duration `yaml:"starting"`
	Ramp       RampConfig    `yaml:"ramp"`
}

// RampConfig shortens the spawn intervals every game minute down to a floor.
type RampConfig struct {
	MobSpawnStep    time.Duration `yaml:"mob_spawn_step"`
	MobSpawnFloor   time.Duration `yaml:"mob_spawn_floor"`
	ChestSpawnStep  time.Duration `yaml:"chest_spawn_step"`
	ChestSpawnFloor time.Duration `yaml:"chest_spawn_floor"`
}

func DefaultConfig() Config {
	return Config{
		Pulse:      50 * time.Millisecond,
		SlowPulse:  200 * time.Millisecond,
		MobSpawn:   5 * time.Second,
		ChestSpawn: 10 * time.Second,
		Game:       60 * time.Second,
		Starting:   3 * time.Second,
		Ramp: RampConfig{
			MobSpawnStep:    250 * time.Millisecond,
			MobSpawnFloor:   500 * time.Millisecond,
			ChestSpawnStep:  500 * time.Millisecond,
			ChestSpawnFloor: time.Second,
		},
	}
}

func (c Config) Validate() error {
	for name, d := range map[string]time.Duration{
		"pulse":       c.Pulse,
		"slow_pulse":  c.SlowPulse,
		"mob_spawn":   c.MobSpawn,
		"chest_spawn": c.ChestSpawn,
		"game":        c.Game,
		"starting":    c.Starting,
	} {
		if d <= 0 {
			return eris.Wrapf(ErrInvalidTimer, "heart.%s must be positive, got %s", name, d)
		}
	}
	if c.Ramp.MobSpawnStep < 0 || c.Ramp.ChestSpawnStep < 0 {
		return eris.Wrap(ErrInvalidTimer, "heart.ramp steps must not be negative")
	}
	if c.Ramp.MobSpawnFloor <= 0 || c.Ramp.ChestSpawnFloor <= 0 {
		return eris.Wrap(ErrInvalidTimer, "heart.ramp floors must be positive")
	}
	return nil
}

// BuildStandard builds the standing timers of a session. None of them
// autostart; the Clock starts them on Init.
func (h *Heart) BuildStandard(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	specs := []struct {
		name     string
		interval time.Duration
		oneShot  bool
		kind     events.Kind
	}{
		{PulseTimer, cfg.Pulse, false, events.PulseTimeout},
		{SlowPulseTimer, cfg.SlowPulse, false, events.SlowPulseTimeout},
		{MobSpawnTimer, cfg.MobSpawn, false, events.MobSpawnTimeout},
		{ChestSpawnTimer, cfg.ChestSpawn, false, events.ChestSpawnTimeout},
		{GameTimer, cfg.Game, false, events.GameTimeout},
		{StartingTimer, cfg.Starting, true, events.StartingTimeout},
	}
	for _, s := range specs {
		if err := h.BuildTimer(s.name, s.interval, s.oneShot, false, s.kind); err != nil {
			return err
		}
	}
	return nil
}
