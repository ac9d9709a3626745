// Package config loads the arena host configuration from YAML with
// environment fallbacks.
package config

import (
	"bytes"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/arena/internal/core/chest"
	"github.com/zeusync/arena/internal/core/heart"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/spawn"
	"github.com/zeusync/arena/internal/game"
)

// Environment variables read by Load.
const (
	EnvConfig   = "ARENA_CONFIG"
	EnvListen   = "ARENA_LISTEN"
	EnvLogLevel = "ARENA_LOG_LEVEL"
	EnvLevel    = "ARENA_LEVEL"
	EnvSeed     = "ARENA_SEED"
)

var ErrInvalidConfig = eris.New("invalid configuration")

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Encoding is "json" or "console".
	Encoding string `yaml:"encoding"`
}

type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	// SnapshotInterval is how often /ws clients receive the session state.
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
}

type GameConfig struct {
	// Manifest is a level manifest file. Empty uses the built-in manifest.
	Manifest string `yaml:"manifest"`
	Level    string `yaml:"level"`
	// TickRate is the number of host ticks per second.
	TickRate       int           `yaml:"tick_rate"`
	Autopilot      bool          `yaml:"autopilot"`
	WanderInterval time.Duration `yaml:"wander_interval"`
	Seed           uint64        `yaml:"seed"`
	Heart          heart.Config  `yaml:"heart"`
	Spawn          spawn.Config  `yaml:"spawn"`
	Chest          chest.Config  `yaml:"chest"`
}

func Default() *Config {
	opts := game.DefaultOptions()
	return &Config{
		Log: LogConfig{Level: "info", Encoding: "json"},
		Server: ServerConfig{
			Enabled:          true,
			Listen:           "127.0.0.1:8080",
			SnapshotInterval: 250 * time.Millisecond,
			ShutdownTimeout:  5 * time.Second,
		},
		Game: GameConfig{
			Level:          "forest",
			TickRate:       60,
			Autopilot:      true,
			WanderInterval: opts.WanderInterval,
			Heart:          opts.Heart,
			Spawn:          opts.Spawn,
			Chest:          opts.Chest,
		},
	}
}

// Load reads path, or the file named by ARENA_CONFIG when path is empty, on
// top of Default. With neither set the defaults are used. Environment
// overrides are applied last and the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read config %s", path)
		}
		if err := cfg.decode(data); err != nil {
			return nil, eris.Wrapf(err, "config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return eris.Wrap(err, "decode yaml")
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvListen); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLevel); v != "" {
		c.Game.Level = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return eris.Wrapf(ErrInvalidConfig, "%s=%q is not a seed", EnvSeed, v)
		}
		c.Game.Seed = seed
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return eris.Wrapf(ErrInvalidConfig, "log.encoding must be json or console, got %q", c.Log.Encoding)
	}
	if c.Server.Enabled {
		if c.Server.Listen == "" {
			return eris.Wrap(ErrInvalidConfig, "server.listen is required")
		}
		if c.Server.SnapshotInterval <= 0 {
			return eris.Wrap(ErrInvalidConfig, "server.snapshot_interval must be positive")
		}
	}
	if c.Game.Level == "" {
		return eris.Wrap(ErrInvalidConfig, "game.level is required")
	}
	if c.Game.TickRate <= 0 || c.Game.TickRate > 1000 {
		return eris.Wrapf(ErrInvalidConfig, "game.tick_rate must be in 1..1000, got %d", c.Game.TickRate)
	}
	if err := c.Game.Heart.Validate(); err != nil {
		return eris.Wrap(err, "game.heart")
	}
	// The heart fires a timer at most once per host tick.
	if c.TickInterval() > c.Game.Heart.Pulse {
		return eris.Wrapf(ErrInvalidConfig, "game.tick_rate %d ticks every %s, slower than game.heart.pulse %s",
			c.Game.TickRate, c.TickInterval(), c.Game.Heart.Pulse)
	}
	if err := c.Game.Spawn.Validate(); err != nil {
		return eris.Wrap(err, "game.spawn")
	}
	if c.Game.Chest.MaxChests <= 0 {
		return eris.Wrap(ErrInvalidConfig, "game.chest.max_chests must be positive")
	}
	return nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() log.Level {
	return log.ParseLevel(c.Log.Level)
}

// TickInterval is the wall time between two host ticks.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickRate)
}

// Options converts the game section into session options.
func (c *Config) Options() game.Options {
	return game.Options{
		Heart:          c.Game.Heart,
		Spawn:          c.Game.Spawn,
		Chest:          c.Game.Chest,
		Autopilot:      c.Game.Autopilot,
		WanderInterval: c.Game.WanderInterval,
		Seed:           c.Game.Seed,
	}
}
