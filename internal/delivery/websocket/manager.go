// Package websocket pushes store-change notifications to connected UIs so
// the story list can refresh without polling.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"story-server/internal/models"
)

// Event types sent over the wire.
const (
	EventStoryCreated = "create"
	EventStoryUpdated = "update"
	EventStoryDeleted = "delete"
)

// Message is the frame broadcast to every connected client after a store
// mutation.
type Message struct {
	Type    string       `json:"type"`
	Topic   string       `json:"topic"`
	Payload models.Story `json:"payload"`
}

// Manager tracks the connected clients and fans out mutation events.
type Manager struct {
	clients    map[uuid.UUID]*client
	register   chan *client
	unregister chan *client
	broadcast  chan Message
	logger     *zap.Logger
	mu         sync.RWMutex
}

type client struct {
	id      uuid.UUID
	conn    *websocket.Conn
	manager *Manager
	send    chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API already fronts a configurable CORS policy; the socket accepts
	// the same origins the HTTP surface does.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewManager creates a Manager. Call Start before registering the handler.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		clients:    make(map[uuid.UUID]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Message, 16),
		logger:     logger.Named("WebSocketManager"),
	}
}

// Start runs the manager loop in its own goroutine.
func (m *Manager) Start() {
	go m.run()
}

func (m *Manager) run() {
	for {
		select {
		case c := <-m.register:
			m.mu.Lock()
			m.clients[c.id] = c
			m.mu.Unlock()
			m.logger.Debug("client connected", zap.String("clientID", c.id.String()))

		case c := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[c.id]; ok {
				close(c.send)
				delete(m.clients, c.id)
				m.logger.Debug("client disconnected", zap.String("clientID", c.id.String()))
			}
			m.mu.Unlock()

		case message := <-m.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				m.logger.Error("failed to marshal event", zap.Error(err))
				continue
			}

			m.mu.Lock()
			for id, c := range m.clients {
				select {
				case c.send <- data:
				default:
					// Slow consumer, drop it.
					close(c.send)
					delete(m.clients, id)
				}
			}
			m.mu.Unlock()
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Handler upgrades an incoming request to a WebSocket connection.
func (m *Manager) Handler() gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		conn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
		if err != nil {
			m.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		c := &client{
			id:      uuid.New(),
			conn:    conn,
			manager: m,
			send:    make(chan []byte, 256),
		}
		m.register <- c

		go c.readPump()
		go c.writePump()
	}
}

// StoryCreated broadcasts a creation event. Implements service.EventPublisher.
func (m *Manager) StoryCreated(story models.Story) {
	m.broadcast <- Message{Type: "story_event", Topic: EventStoryCreated, Payload: story}
}

// StoryUpdated broadcasts an update event.
func (m *Manager) StoryUpdated(story models.Story) {
	m.broadcast <- Message{Type: "story_event", Topic: EventStoryUpdated, Payload: story}
}

// StoryDeleted broadcasts a deletion event.
func (m *Manager) StoryDeleted(story models.Story) {
	m.broadcast <- Message{Type: "story_event", Topic: EventStoryDeleted, Payload: story}
}

// readPump drains incoming frames. Clients send nothing meaningful; the read
// loop only keeps the connection alive and detects closure.
func (c *client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.manager.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
