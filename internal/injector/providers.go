package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/arena/internal/config"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/level"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/observability/metrics"
	"github.com/zeusync/arena/internal/game"
	"github.com/zeusync/arena/internal/server"
)

// App holds everything the host process runs.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Manager *game.Manager
	Metrics *metrics.Collector
	// Server is nil when the debug server is disabled.
	Server *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideBus,
	ProvideManifest,
	ProvideMetrics,
	ProvideManager,
	wire.Bind(new(server.SnapshotSource), new(*game.Manager)),
	ProvideServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	logger, err := log.NewWithOptions(cfg.LogLevel(), log.Options{Encoding: cfg.Log.Encoding})
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideBus(logger log.Log) bus.EventBus {
	return bus.New(logger)
}

// ProvideManifest loads the configured manifest file or the built-in one.
func ProvideManifest(cfg *config.Config) (*level.Manifest, error) {
	var (
		manifest *level.Manifest
		err      error
	)
	if cfg.Game.Manifest != "" {
		manifest, err = level.LoadFile(cfg.Game.Manifest)
	} else {
		manifest, err = level.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func ProvideMetrics() *metrics.Collector {
	return metrics.New()
}

func ProvideManager(cfg *config.Config, b bus.EventBus, logger log.Log, manifest *level.Manifest, collector *metrics.Collector) *game.Manager {
	return game.NewManager(b, logger, manifest, cfg.Options(), collector)
}

func ProvideServer(cfg *config.Config, logger log.Log, source server.SnapshotSource, collector *metrics.Collector) (*server.Server, error) {
	if !cfg.Server.Enabled {
		return nil, nil
	}
	return server.NewServer(server.Config{
		Listen:           cfg.Server.Listen,
		SnapshotInterval: cfg.Server.SnapshotInterval,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	}, logger, source, collector.Handler())
}
