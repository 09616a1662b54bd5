package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"conflive/pkg/logger"
)

// Client is one UI WebSocket connection watching a translation session.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

// Manager tracks all active UI WebSocket connections, grouped by the
// translation session they watch.
type Manager struct {
	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = true
				m.mutex.Unlock()
				logger.Debug("State watcher registered for session %s", client.SessionID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client]; ok {
					delete(m.clients, client)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("State watcher unregistered for session %s", client.SessionID)

			case <-ctx.Done():
				m.mutex.Lock()
				for client := range m.clients {
					delete(m.clients, client)
					close(client.Send)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// SendToClient queues a payload for one watcher. It reports false once the
// client is no longer registered. Sends happen under the same lock that
// guards channel close, so a send can never hit a closed channel. A full
// buffer drops the payload; the watcher catches up on the next snapshot.
func (m *Manager) SendToClient(client *Client, payload []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if !m.clients[client] {
		return false
	}
	select {
	case client.Send <- payload:
	default:
		logger.Warn("Dropping snapshot for slow state watcher of session %s", client.SessionID)
	}
	return true
}

// WatcherCount reports how many connections watch the given session.
func (m *Manager) WatcherCount(sessionID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := 0
	for client := range m.clients {
		if client.SessionID == sessionID {
			count++
		}
	}
	return count
}

// ReadPump discards inbound messages; the state socket is one-way. It exists
// to detect closure and unregister the client.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("State watcher read error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued payloads to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("State watcher write error: %v", err)
			return
		}
	}
}
