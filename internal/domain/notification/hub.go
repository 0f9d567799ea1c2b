package notification

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// Event is what stream clients receive.
type Event struct {
	Type         string       `json:"type"`
	Notification Notification `json:"notification"`
}

const EventNotification = "notification"

type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub fans committed notifications out to the owner's open websocket
// connections. A user may have several connections (tabs, devices).
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]map[*connection]struct{}
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[int64]map[*connection]struct{}),
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.userID]
	if !ok {
		set = make(map[*connection]struct{})
		h.connections[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; ok {
		delete(set, c)
		close(c.send)
	}
	if len(set) == 0 {
		delete(h.connections, c.userID)
	}
}

// Connected reports whether userID has at least one open stream.
func (h *Hub) Connected(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID]) > 0
}

// Publish pushes n to every stream of its owner. Slow clients are skipped.
func (h *Hub) Publish(n Notification) {
	data, err := json.Marshal(Event{Type: EventNotification, Notification: n})
	if err != nil {
		h.log.Warn("encode notification event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections[n.UserID] {
		select {
		case c.send <- data:
		default:
			h.log.Warn("notification stream full, dropping event",
				zap.Int64("user_id", n.UserID), zap.Int64("notification_id", n.ID))
		}
	}
}

// ServeWS registers conn for userID and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump only drains control frames; clients have nothing to say.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
