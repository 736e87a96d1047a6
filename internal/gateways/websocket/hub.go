package websocket

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"

	"discord-backend/internal/observability"
	"discord-backend/internal/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const sendBuffer = 32

type Client struct {
	hub  *Hub
	conn ClientConn
	ID   string
	Key  string
	send chan []byte
}

type ClientConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

func generateClientID() string {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "xxxxx"
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

func NewClient(hub *Hub, conn ClientConn, key string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		ID:   generateClientID(),
		Key:  key,
		send: make(chan []byte, sendBuffer),
	}
}

// RoomKey maps a realtime event such as "chat:<id>:messages:update" to the
// "chat:<id>" key clients subscribe with.
func RoomKey(event string) (string, bool) {
	if !strings.HasPrefix(event, "chat:") {
		return "", false
	}
	for _, suffix := range []string{":messages:update", ":messages"} {
		if strings.HasSuffix(event, suffix) {
			key := strings.TrimSuffix(event, suffix)
			return key, key != "chat:"
		}
	}
	return "", false
}

type outbound struct {
	key     string
	event   string
	payload []byte
}

type Hub struct {
	rooms      map[string]map[*Client]struct{}
	mu         sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}
	logger     *zap.SugaredLogger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 256),
		done:       make(chan struct{}),
		logger:     logger.Sugar(),
	}
}

// HandleEvent is an event bus handler. Events that do not belong to a chat room are ignored.
func (h *Hub) HandleEvent(e utils.Event) {
	key, ok := RoomKey(e.Event)
	if !ok {
		return
	}
	payload, err := json.Marshal(e)
	if err != nil {
		h.logger.Errorw("Failed to encode realtime event", "event", e.Event, "error", err)
		return
	}
	select {
	case h.broadcast <- outbound{key: key, event: e.Event, payload: payload}:
	case <-h.done:
	default:
		h.logger.Warnw("Hub broadcast queue full, dropping event", "event", e.Event)
	}
}

// Size is the number of clients subscribed to key.
func (h *Hub) Size(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[key])
}

// Register returns false when the hub has already stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("WebSocket Hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info("WebSocket Hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.Key]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.Key] = room
			}
			room[client] = struct{}{}
			count := len(room)
			h.mu.Unlock()

			observability.IncRealtimeActive("websocket")
			h.logger.Infow("Client connected",
				"client_id", client.ID,
				"key", client.Key,
				"clients_count", count,
			)

		case client := <-h.unregister:
			if h.remove(client) {
				h.logger.Infow("Client disconnected",
					"client_id", client.ID,
					"key", client.Key,
				)
			}

		case msg := <-h.broadcast:
			observability.IncRealtimeEvent("websocket", msg.event)
			h.fanOut(msg)
		}
	}
}

func (h *Hub) fanOut(msg outbound) {
	var slow []*Client

	h.mu.RLock()
	for client := range h.rooms[msg.key] {
		select {
		case client.send <- msg.payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		if h.remove(client) {
			h.logger.Warnw("Dropping slow client", "client_id", client.ID, "key", client.Key)
		}
	}
}

func (h *Hub) remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.Key]
	if !ok {
		return false
	}
	if _, ok := room[client]; !ok {
		return false
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.Key)
	}
	close(client.send)
	observability.DecRealtimeActive("websocket")
	return true
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, room := range h.rooms {
		for client := range room {
			close(client.send)
			observability.DecRealtimeActive("websocket")
		}
		delete(h.rooms, key)
	}
}

// writePump drains the send queue until the hub closes it.
func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.hub.logger.Debugw("WebSocket write failed", "client_id", c.ID, "error", err)
			return
		}
	}
}

// readPump blocks until the peer goes away. Inbound frames are ignored.
func (c *Client) readPump() {
	defer c.hub.Unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
