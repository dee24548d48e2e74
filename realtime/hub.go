package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"catering-backend/logging"
)

// Event is a named payload pushed to connected dashboards and customers.
type Event struct {
	Name string         `json:"event"`
	Data map[string]any `json:"data"`
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub tracks websocket connections by channel. Admin dashboards join the
// "admins" channel; each logged-in customer joins "customer:<id>". A write
// failure drops the connection.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[*client]bool)}
}

// AdminChannel is the channel every admin dashboard joins.
const AdminChannel = "admins"

// CustomerChannel returns the per-customer channel name.
func CustomerChannel(customerID int64) string {
	return fmt.Sprintf("customer:%d", customerID)
}

// Register adds a connection to the given channels and returns a handle used
// to remove it when the connection closes.
func (h *Hub) Register(conn *websocket.Conn, channels ...string) *Subscription {
	c := &client{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range channels {
		if h.channels[ch] == nil {
			h.channels[ch] = make(map[*client]bool)
		}
		h.channels[ch][c] = true
	}
	return &Subscription{hub: h, client: c, channels: channels}
}

// Publish sends the event to every connection on the channel. Dead
// connections are removed; errors are logged and never returned.
func (h *Hub) Publish(channel string, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logging.L().Error("marshal event", zap.Error(err), zap.String("event", ev.Name))
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.channels[channel]))
	for c := range h.channels[channel] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(msg); err != nil {
			logging.L().Warn("drop websocket client",
				zap.String("channel", channel), zap.Error(err))
			h.remove(c)
			c.conn.Close()
		}
	}
}

// Broadcast sends the event to every connection on every channel.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	names := make([]string, 0, len(h.channels))
	for ch := range h.channels {
		names = append(names, ch)
	}
	h.mu.RUnlock()
	for _, ch := range names {
		h.Publish(ch, ev)
	}
}

// ClientCount reports how many connections are on the channel.
func (h *Hub) ClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch, set := range h.channels {
		delete(set, c)
		if len(set) == 0 {
			delete(h.channels, ch)
		}
	}
}

// Subscription removes its connection from the hub on Close.
type Subscription struct {
	hub      *Hub
	client   *client
	channels []string
}

func (s *Subscription) Close() {
	s.hub.remove(s.client)
}
