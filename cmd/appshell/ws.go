package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/filedrop-dev/appshell/pkg/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed carries no secrets (tokens are reduced to presence flags)
	// and the demo server has no cross-origin deployment story.
	CheckOrigin: func(*http.Request) bool { return true },
}

const (
	writeTimeout = 10 * time.Second

	// stateFeedBuffer absorbs bursts of store mutations; when a client
	// falls further behind, intermediate states are dropped in favor of
	// newer ones.
	stateFeedBuffer = 16
)

// handleStateFeed streams session state snapshots over a WebSocket. The
// client receives the current state on connect and a new snapshot after
// every store mutation.
func (s *shellServer) handleStateFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates := make(chan store.State, stateFeedBuffer)
	updates <- s.app.Store().Snapshot()

	unsubscribe := s.app.Store().Subscribe(func(st store.State) {
		select {
		case updates <- st:
		default:
			// Client is behind; drop this snapshot, a newer one follows.
		}
	})
	defer unsubscribe()

	// Reader goroutine: the feed is write-only, but reading is how the
	// websocket surface learns the peer went away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case st := <-updates:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(stateView(st)); err != nil {
				return
			}
		}
	}
}
