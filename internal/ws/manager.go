package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"
)

// Manager tracks the set of live client connections. It is the only state
// shared across sessions; each server instance owns exactly one and injects
// it into every session.
//
// Each entry carries its own write mutex so that concurrent senders on one
// connection (the session loop and its heartbeat) never interleave frames.
type Manager struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex
}

func NewManager() *Manager {
	return &Manager{
		conns: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Register adds a connection to the active set.
func (m *Manager) Register(conn *websocket.Conn) {
	m.mu.Lock()
	m.conns[conn] = &sync.Mutex{}
	total := len(m.conns)
	m.mu.Unlock()

	logx.Infof("connection registered, total active: %d", total)
}

// Unregister removes a connection. Removing an absent connection is a no-op.
func (m *Manager) Unregister(conn *websocket.Conn) {
	m.mu.Lock()
	delete(m.conns, conn)
	total := len(m.conns)
	m.mu.Unlock()

	logx.Infof("connection closed, total active: %d", total)
}

// Contains reports whether conn is currently registered.
func (m *Manager) Contains(conn *websocket.Conn) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.conns[conn]
	return ok
}

// Count returns the number of active connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// TrySend attempts best-effort delivery of an envelope. It returns false and
// logs on any transport failure or when the connection is not registered;
// it never panics or propagates an error to the caller.
func (m *Manager) TrySend(conn *websocket.Conn, msg *Envelope) bool {
	m.mu.RLock()
	writeMu, ok := m.conns[conn]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := conn.WriteJSON(msg); err != nil {
		logx.Errorf("failed to send WebSocket message: %v", err)
		return false
	}
	return true
}

// SendError delivers a recoverable-error envelope to the client.
func (m *Manager) SendError(conn *websocket.Conn, errMsg, details string) {
	m.TrySend(conn, ErrorMessage(errMsg, details))
}
