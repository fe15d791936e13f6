package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"inventory-server/entities"
)

// client wraps a connection with a write lock. gorilla/websocket supports at
// most one concurrent writer per connection, and audit pushes arrive from
// whichever request goroutine performed the mutation.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *client) close() { _ = c.conn.Close() }

// Manager keeps track of active per-user websocket connections for the live
// audit feed.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*client // user DNI -> connection
}

func NewManager() *Manager {
	return &Manager{clients: make(map[string]*client)}
}

// Register registers a user connection, replacing any existing one.
func (m *Manager) Register(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.clients[userID]; ok && old.conn != conn {
		// close old connection to avoid leaks
		old.close()
	}
	m.clients[userID] = &client{conn: conn}
}

// Unregister removes a user connection.
func (m *Manager) Unregister(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cl, ok := m.clients[userID]; ok {
		cl.close()
		delete(m.clients, userID)
	}
}

// SendToUser sends a text message to a user if connected. Concurrent sends to
// the same user are serialized on the connection's write lock.
func (m *Manager) SendToUser(userID string, payload []byte) error {
	m.mu.RLock()
	cl, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok || cl == nil {
		return errors.New("user not connected")
	}
	return cl.send(payload)
}

// IsConnected returns whether a user currently has a feed open.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// List returns a copy of currently connected user ids.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	return ids
}

// NotifyAction pushes a freshly appended audit entry to its user's feed, if
// one is open. Implements the audit notifier hook.
func (m *Manager) NotifyAction(userID string, entry *entities.ActionHistory) {
	if !m.IsConnected(userID) {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := m.SendToUser(userID, payload); err != nil {
		slog.Debug("dropping audit feed message", "user_id", userID, "error", err)
	}
}
