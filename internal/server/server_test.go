package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/observability/metrics"
	"github.com/zeusync/arena/internal/game"
)

type fakeSource struct {
	tick atomic.Uint64
}

func (f *fakeSource) Snapshot() game.Snapshot {
	return game.Snapshot{Level: "forest", Loaded: true, Playing: true, Tick: f.tick.Load()}
}

func newTestServer(t *testing.T, source SnapshotSource) (*Server, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SnapshotInterval = 10 * time.Millisecond
	srv, err := NewServer(cfg, log.NewNop(), source, metrics.New().Handler())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestNewServerValidates(t *testing.T) {
	_, err := NewServer(Config{}, log.NewNop(), &fakeSource{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewServer(Config{Listen: ":0"}, log.NewNop(), &fakeSource{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHealth(t *testing.T) {
	source := &fakeSource{}
	source.tick.Store(7)
	_, ts := newTestServer(t, source)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h health
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "ok", h.Status)
	assert.True(t, h.Loaded)
	assert.Equal(t, uint64(7), h.Tick)
}

func TestSnapshotEndpoint(t *testing.T) {
	_, ts := newTestServer(t, &fakeSource{})

	resp, err := http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap game.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "forest", snap.Level)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, &fakeSource{})

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestWebSocketFeed(t *testing.T) {
	source := &fakeSource{}
	srv, ts := newTestServer(t, source)

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	var snap game.Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "forest", snap.Level)
	assert.Zero(t, snap.Tick)
	assert.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 5*time.Millisecond)

	source.tick.Store(3)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, uint64(3), snap.Tick)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return srv.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	srv, err := NewServer(cfg, log.NewNop(), &fakeSource{}, nil)
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.ErrorIs(t, srv.Run(context.Background()), ErrServerAlreadyRunning)
}
