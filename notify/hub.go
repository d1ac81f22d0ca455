// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Hub fans a data-free "results changed" signal out to WebSocket
// subscribers grouped by poll. Consumers re-fetch on the signal; a slow
// or dead subscriber is dropped, never allowed to block a vote.
type Hub struct {
	mu       sync.Mutex
	subs     map[string]map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Join upgrades the request to a WebSocket and subscribes it to the
// poll's group until the client disconnects.
func (h *Hub) Join(w http.ResponseWriter, r *http.Request, pollID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		slog.Warn("websocket upgrade failed", "error", err, "poll_id", pollID)
		return
	}

	h.add(pollID, conn)
	slog.Info("poll subscriber joined", "poll_id", pollID)

	// Clients never send data; the read loop only detects disconnects.
	go func() {
		defer h.drop(pollID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast signals every subscriber of the poll that results changed.
func (h *Hub) Broadcast(pollID string) {
	event := map[string]string{"event": "poll_updated"}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subs[pollID] {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			delete(h.subs[pollID], conn)
			conn.Close()
		}
	}
}

// Subscribers reports the current group size for a poll.
func (h *Hub) Subscribers(pollID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[pollID])
}

func (h *Hub) add(pollID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[pollID] == nil {
		h.subs[pollID] = make(map[*websocket.Conn]bool)
	}
	h.subs[pollID][conn] = true
}

func (h *Hub) drop(pollID string, conn *websocket.Conn) {
	h.mu.Lock()
	if group, ok := h.subs[pollID]; ok {
		delete(group, conn)
		if len(group) == 0 {
			delete(h.subs, pollID)
		}
	}
	h.mu.Unlock()
	conn.Close()
}
