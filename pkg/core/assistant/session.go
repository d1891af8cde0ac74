// Package assistant implements the client-facing AI chat: session
// bookkeeping and the grounding context that ties answers to the client's
// own validated figures.
package assistant

import (
	"sync"
	"time"

	"advisory_platform/pkg/core/records"

	"github.com/google/uuid"
)

// idleTimeout is how long a session may sit untouched before the cleanup
// pass drops it. Persisted history survives in the chat store regardless.
const idleTimeout = 30 * time.Minute

// Session is one client's live conversation.
type Session struct {
	ID        string
	ClientID  string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []records.ChatMessage
}

// SessionManager tracks live conversations in memory.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewSessionManager creates a manager and starts the background cleanup.
func NewSessionManager() *SessionManager {
	m := &SessionManager{
		sessions: make(map[string]*Session),
	}
	go m.cleanup()
	return m
}

// Start opens a new session for a client and returns its id.
func (m *SessionManager) Start(clientID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.sessions[s.ID] = s
	return s
}

// Get retrieves a live session by id.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Append records one turn on the session and refreshes its idle clock.
func (m *SessionManager) Append(id string, role, content string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	now := time.Now()
	s.Messages = append(s.Messages, records.ChatMessage{
		SessionID: id,
		ClientID:  s.ClientID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	})
	s.UpdatedAt = now
	return true
}

// ActiveCount reports how many sessions are live.
func (m *SessionManager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanup drops idle sessions once a minute.
func (m *SessionManager) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		m.expireIdle(time.Now())
	}
}

func (m *SessionManager) expireIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.Sub(s.UpdatedAt) > idleTimeout {
			delete(m.sessions, id)
		}
	}
}
