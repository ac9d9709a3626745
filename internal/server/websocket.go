package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/arena/internal/core/observability/log"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
}

// handleWebSocket streams a snapshot right after the upgrade and then one per
// SnapshotInterval while the tick counter moves. Clients only read; anything
// they send is discarded.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	defer conn.Close()

	total := s.clients.Add(1)
	defer s.clients.Add(-1)
	clientLogger := s.logger.With(log.String("remote_addr", conn.RemoteAddr().String()))
	clientLogger.Debug("feed client connected", log.Int64("clients", total))

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.config.SnapshotInterval)
	defer ticker.Stop()

	var lastTick uint64
	first := true
	for {
		snap := s.source.Snapshot()
		if first || snap.Tick != lastTick {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				clientLogger.Debug("feed write failed", log.Error(err))
				return
			}
			first, lastTick = false, snap.Tick
		}

		select {
		case <-ticker.C:
		case <-closed:
			clientLogger.Debug("feed client disconnected")
			return
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case <-r.Context().Done():
			return
		}
	}
}
