// Package realtime fans Postgres row-change notifications out to the
// dashboard over websockets. Delivery is at-least-once with no ordering
// guarantee; clients re-fetch the full post list on any event.
package realtime

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Max concurrent dashboard connections.
const maxConns = 256

type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) register(conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.conns) >= maxConns {
		return errors.New("connection limit reached")
	}
	h.conns[conn] = struct{}{}
	return nil
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// Broadcast sends payload to every connected client. Send failures drop the
// connection; the client reconnects and re-fetches.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Info("dropping websocket client", "error", err.Error())
			h.unregister(conn)
			conn.Close()
		}
	}
}

// ClientCount reports the number of connected dashboard clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Upgrade gates the websocket route behind a protocol-upgrade check.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler accepts a dashboard connection and holds it open until the client
// goes away. Inbound messages are discarded; the feed is one-way.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		if err := h.register(conn); err != nil {
			slog.Info(err.Error())
			conn.Close()
			return
		}
		defer func() {
			h.unregister(conn)
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
