package websocket

import (
	"encoding/json"
	"sync"

	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/cricbytes/cricbytes/internal/logger"
)

// Hub fans live score updates out to every connected client. Clients never
// send application messages; the connection is push-only.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the hub.
					go h.Unregister(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop shuts the hub down and waits for Run() to exit.
func (h *Hub) Stop() {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	close(h.stop)
	<-h.done
}

type scoreUpdate struct {
	Type string          `json:"type"`
	Data []*domain.Match `json:"data"`
}

// BroadcastMatches pushes a score_update message to every connected client.
func (h *Hub) BroadcastMatches(matches []*domain.Match) {
	payload, err := json.Marshal(scoreUpdate{Type: "score_update", Data: matches})
	if err != nil {
		logger.Log.Errorw("failed to marshal score update", "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	case <-h.done:
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
