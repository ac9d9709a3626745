// Package server exposes the debug surface of a running session: Prometheus
// metrics, a health probe and a websocket feed of session snapshots.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/game"
)

// SnapshotSource hands out the latest session state. It must be safe to call
// from any goroutine.
type SnapshotSource interface {
	Snapshot() game.Snapshot
}

type Config struct {
	Listen           string
	SnapshotInterval time.Duration
	ShutdownTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Listen:           "127.0.0.1:8080",
		SnapshotInterval: 250 * time.Millisecond,
		ShutdownTimeout:  5 * time.Second,
	}
}

// Server is the debug HTTP server.
type Server struct {
	config  Config
	logger  log.Log
	source  SnapshotSource
	metrics http.Handler
	mux     *http.ServeMux

	running atomic.Bool
	clients atomic.Int64
	done    chan struct{}
}

// NewServer builds the routes. metrics may be nil, in which case /metrics is
// not served.
func NewServer(config Config, logger log.Log, source SnapshotSource, metrics http.Handler) (*Server, error) {
	if config.Listen == "" {
		return nil, eris.Wrap(ErrInvalidConfig, "listen address is required")
	}
	if config.SnapshotInterval <= 0 {
		return nil, eris.Wrap(ErrInvalidConfig, "snapshot interval must be positive")
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	s := &Server{
		config:  config,
		logger:  logger.Named("server"),
		source:  source,
		metrics: metrics,
		mux:     http.NewServeMux(),
		done:    make(chan struct{}),
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	if metrics != nil {
		s.mux.Handle("GET /metrics", metrics)
	}
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.mux }

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int64 { return s.clients.Load() }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.running.Load() {
		return ErrServerAlreadyRunning
	}
	listener, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return eris.Wrapf(err, "listen on %s", s.config.Listen)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if !s.running.CompareAndSwap(false, true) {
		_ = listener.Close()
		return ErrServerAlreadyRunning
	}
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("debug server listening", log.String("addr", listener.Addr().String()))
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		close(s.done)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "serve debug http")
	case <-ctx.Done():
	}

	close(s.done)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutdown debug http")
	}
	s.logger.Info("debug server stopped")
	return nil
}

type health struct {
	Status  string `json:"status"`
	Loaded  bool   `json:"loaded"`
	Playing bool   `json:"playing"`
	Tick    uint64 `json:"tick"`
	Clients int64  `json:"clients"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Snapshot()
	s.writeJSON(w, health{
		Status:  "ok",
		Loaded:  snap.Loaded,
		Playing: snap.Playing,
		Tick:    snap.Tick,
		Clients: s.clients.Load(),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.source.Snapshot())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", log.Error(err))
	}
}
