// Package realtime pushes catalog snapshots to connected seller and admin
// terminals over websockets.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/killjoy47/MniseCosmetics/models"
)

const writeWait = 5 * time.Second

// stockUpdate is the wire envelope every terminal receives.
type stockUpdate struct {
	Event    string           `json:"event"`
	Products []models.Product `json:"products"`
}

// Hub fans snapshots out to every registered session. Delivery is
// fire-and-forget: a session that cannot keep up is closed and dropped,
// and catches up with a fresh snapshot when it reconnects.
//
// A single broadcaster goroutine drains a one-slot channel holding the
// newest pending snapshot. Publishing replaces a stale pending payload
// instead of queueing behind it, so bursts coalesce and every session
// sees snapshots in publish order, last write wins.
type Hub struct {
	mu       sync.Mutex
	sessions map[*websocket.Conn]struct{}

	latest chan []byte
	quit   chan struct{}
	once   sync.Once
}

func NewHub() *Hub {
	h := &Hub{
		sessions: make(map[*websocket.Conn]struct{}),
		latest:   make(chan []byte, 1),
		quit:     make(chan struct{}),
	}
	go h.run()
	return h
}

// Close stops the broadcaster. Pending snapshots are dropped.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.quit) })
}

// Subscribe sends the catch-up snapshot to a new session and registers it
// for future broadcasts.
func (h *Hub) Subscribe(conn *websocket.Conn, products []models.Product) {
	data, err := json.Marshal(stockUpdate{Event: "stock_update", Products: products})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		conn.Close()
		return
	}
	h.sessions[conn] = struct{}{}
}

// Unsubscribe removes a session, typically after its read loop ends.
func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[conn]; ok {
		delete(h.sessions, conn)
		conn.Close()
	}
}

// PublishProducts hands the current catalog to the broadcaster and returns
// immediately: a slow terminal can never stall the write that triggered
// it. When a snapshot is still pending it is replaced by this newer one.
func (h *Hub) PublishProducts(products []models.Product) {
	data, err := json.Marshal(stockUpdate{Event: "stock_update", Products: products})
	if err != nil {
		log.Printf("❌ Diffusion stock impossible: %v", err)
		return
	}

	for {
		select {
		case h.latest <- data:
			return
		default:
			// Slot occupied: drop the stale payload and retry with ours.
			select {
			case <-h.latest:
			default:
			}
		}
	}
}

func (h *Hub) run() {
	for {
		select {
		case data := <-h.latest:
			h.fanOut(data)
		case <-h.quit:
			return
		}
	}
}

func (h *Hub) fanOut(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.sessions {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.sessions, conn)
			conn.Close()
		}
	}
}

// Count reports the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}
