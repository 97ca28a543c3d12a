package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

// Client is one live WebSocket session. A user may hold several.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager is the session registry behind the realtime delivery bridge.
// It tracks two fan-out targets: per-user personal channels and
// per-conversation rooms that active viewers join. Delivery is
// best-effort and non-blocking; slow or gone sessions are dropped.
type Manager struct {
	clients    map[string]map[*Client]bool // userID -> sessions
	rooms      map[string]map[*Client]bool // conversationID -> sessions
	membership map[*Client]map[string]bool // session -> joined rooms

	Register   chan *Client
	Unregister chan *Client

	mutex sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		membership: make(map[*Client]map[string]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the registration loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.addClient(client)
				logger.Info("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.removeClient(client)
				logger.Info("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) addClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.clients[client.UserID] == nil {
		m.clients[client.UserID] = make(map[*Client]bool)
	}
	m.clients[client.UserID][client] = true
}

func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	sessions, ok := m.clients[client.UserID]
	if !ok || !sessions[client] {
		return
	}

	delete(sessions, client)
	if len(sessions) == 0 {
		delete(m.clients, client.UserID)
	}

	// Room membership dies with the connection.
	for conversationID := range m.membership[client] {
		m.leaveLocked(conversationID, client)
	}
	delete(m.membership, client)

	close(client.Send)
}

// JoinConversation subscribes the session to a conversation room.
// Idempotent.
func (m *Manager) JoinConversation(conversationID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.rooms[conversationID] == nil {
		m.rooms[conversationID] = make(map[*Client]bool)
	}
	m.rooms[conversationID][client] = true

	if m.membership[client] == nil {
		m.membership[client] = make(map[string]bool)
	}
	m.membership[client][conversationID] = true
}

// LeaveConversation unsubscribes the session from a conversation room.
// Idempotent.
func (m *Manager) LeaveConversation(conversationID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.leaveLocked(conversationID, client)
	if joined, ok := m.membership[client]; ok {
		delete(joined, conversationID)
	}
}

func (m *Manager) leaveLocked(conversationID string, client *Client) {
	room, ok := m.rooms[conversationID]
	if !ok {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(m.rooms, conversationID)
	}
}

// SendToUser pushes a message to every live session of a user. Sessions
// that cannot keep up are skipped; the message is already durable.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.clients[userID] {
		m.deliver(client, message)
	}
}

// SendToConversation pushes a message to every session currently viewing
// the conversation, optionally excluding one user (typically the sender).
func (m *Manager) SendToConversation(conversationID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.rooms[conversationID] {
		if excludeUserID != "" && client.UserID == excludeUserID {
			continue
		}
		m.deliver(client, message)
	}
}

func (m *Manager) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		logger.Warn("WebSocket send buffer full for %s, dropping message", client.UserID)
	}
}
