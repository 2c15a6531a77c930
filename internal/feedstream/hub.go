package feedstream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thekizzer/microblog/pkg/log"
)

// EventType marks the kind of frame sent down a feed stream connection.
type EventType string

const (
	TypePost EventType = "post"
	TypePing EventType = "ping"
)

type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// FollowerSource resolves who should receive a post at broadcast time, so
// the hub never caches the social graph.
type FollowerSource interface {
	FollowerIDs(userID uint) ([]uint, error)
}

// Hub fans newly created posts out to the websocket connections of the
// author's followers (and the author's own connections, mirroring the
// home feed's self-inclusion).
type Hub struct {
	clients map[uuid.UUID]*Client

	// Connections by user ID; one user may hold several.
	userClients map[uint]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *PostEvent

	followers FollowerSource

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// PostEvent is a rendered post ready for fan-out.
type PostEvent struct {
	AuthorID uint
	Payload  []byte
}

func NewHub(followers FollowerSource) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uint]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *PostEvent, 64),
		followers:   followers,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run drives the hub until Stop is called.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.fanOut(event)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop shuts the hub down and closes every connection.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastPost queues a new post for delivery to the author's followers.
// Dropping the event when the queue is full keeps post creation from
// blocking on slow stream consumers.
func (h *Hub) BroadcastPost(authorID uint, payload []byte) {
	select {
	case h.broadcast <- &PostEvent{AuthorID: authorID, Payload: payload}:
	default:
		l := log.L()
		l.Warn().Uint("author_id", authorID).Msg("feed stream broadcast queue full, dropping event")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	l := log.L()
	l.Debug().Str("client_id", client.ID.String()).Uint("user_id", client.UserID).Msg("feed stream client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	l := log.L()
	l.Debug().Str("client_id", client.ID.String()).Uint("user_id", client.UserID).Msg("feed stream client unregistered")
}

func (h *Hub) fanOut(event *PostEvent) {
	followerIDs, err := h.followers.FollowerIDs(event.AuthorID)
	if err != nil {
		l := log.L()
		l.Error().Err(err).Uint("author_id", event.AuthorID).Msg("feed stream follower lookup failed")
		return
	}

	frame := Event{Type: TypePost, Data: event.Payload, Timestamp: time.Now()}
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToUser(event.AuthorID, data)
	for _, id := range followerIDs {
		h.sendToUser(id, data)
	}
}

// sendToUser requires h.mu to be held.
func (h *Hub) sendToUser(userID uint, message []byte) {
	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- message:
		default:
			l := log.L()
			l.Debug().Str("client_id", client.ID.String()).Msg("feed stream client send buffer full")
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(Event{Type: TypePing, Timestamp: time.Now()})
	if err != nil {
		return
	}

	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// IsOnline reports whether the user has at least one live feed connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.userClients[userID]
	return ok
}
