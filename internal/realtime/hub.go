// Package realtime pushes leaderboard snapshots to websocket
// subscribers whenever a scan or measure pass rebuilds the view.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	sendBufferSize = 8
)

// Hub fans a rebuilt leaderboard out to all connected subscribers.
// A newly connected client immediately receives the latest snapshot.
// SSOT: websocket lifecycle management lives here
type Hub struct {
	logger   *logger.Logger
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	clients  map[*client]struct{}
	lastView *contracts.LeaderboardView
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a websocket hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger: log.WithField("module", "realtime"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The API is same-origin or proxied; origin enforcement
			// belongs to the fronting proxy
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: map[*client]struct{}{},
	}
}

// PublishLeaderboard broadcasts a snapshot to every subscriber.
// Slow clients that cannot drain their buffer are dropped.
func (h *Hub) PublishLeaderboard(view *contracts.LeaderboardView) {
	payload, err := json.Marshal(view)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal leaderboard snapshot")
		return
	}

	h.mu.Lock()
	h.lastView = view
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
	subscribers := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("subscribers", subscribers).Debug("Published leaderboard snapshot")
}

// Subscribers returns the current connection count
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and attaches the client to the hub
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.lastView != nil {
		if payload, err := json.Marshal(h.lastView); err == nil {
			c.send <- payload
		}
	}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
}

// writeLoop drains the send channel and keeps the connection alive
func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards inbound messages and detects disconnects
func (h *Hub) readLoop(c *client) {
	defer h.detach(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) detach(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}
