// Package transport streams RenderContext snapshots to WebSocket
// spectators — live battles and recorded replays alike, since both are
// just "a sequence of render.RenderContext values pushed over time" from
// this package's point of view. Grounded on the teacher's
// internal/server Client readPump/writePump pairing
// (internal/server/client.go) and its Hub-per-connection fan-out.
package transport

import (
	"sync"

	"github.com/pfassina/grimdark/internal/render"
)

// Hub fans a stream of RenderContext snapshots out to every registered
// spectator. One Hub serves one battle (live or replayed); a host
// running several concurrent battles owns one Hub per battle.
type Hub struct {
	mu       sync.Mutex
	clients  map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds a spectator to the broadcast set. Each client's send
// buffer is made with 256 slots in NewClient (the teacher's Client.Send
// sizing) so a slow spectator doesn't block Broadcast for everyone else.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast pushes one snapshot to every registered spectator.
// Non-blocking per client: a spectator whose send buffer is full is
// dropped rather than stalling the whole battle on a stuck connection.
func (h *Hub) Broadcast(ctx render.RenderContext) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ctx:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// ClientCount reports how many spectators are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
