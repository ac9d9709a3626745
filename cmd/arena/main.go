package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/arena/internal/config"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/game"
	"github.com/zeusync/arena/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (defaults to $ARENA_CONFIG)")
	levelName := flag.String("level", "", "level to load, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
	if *levelName != "" {
		cfg.Game.Level = *levelName
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()
	logger := app.Logger.Named("main")

	if err := app.Manager.LoadLevel(cfg.Game.Level); err != nil {
		logger.Fatal("failed to load level", log.String("level", cfg.Game.Level), log.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return run(ctx, app.Manager, cfg.TickInterval(), logger)
	})
	if app.Server != nil {
		g.Go(func() error {
			return app.Server.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("arena stopped with error", log.Error(err))
	}
	app.Manager.UnloadLevel()
	logger.Info("arena stopped")
}

// run drives the manager with the wall time elapsed between ticks until ctx
// is cancelled.
func run(ctx context.Context, m *game.Manager, interval time.Duration, logger log.Log) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("simulation running", log.Duration("interval", interval))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			m.Tick(now.Sub(last))
			last = now
			if snap := m.Snapshot(); snap.Loaded && !snap.Playing && (snap.Victory || snap.Hero.Defeated) {
				logger.Info("session over",
					log.Bool("victory", snap.Victory),
					log.Uint64("xp", snap.Hero.XP),
					log.Uint32("level", snap.Hero.Level),
				)
				return nil
			}
		}
	}
}
