// Package chat exposes the assistant over HTTP and WebSocket and manages
// per-conversation session state.
package chat

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nkapoor/complaintdesk/internal/domain"
)

// Greeting is the assistant's opening message for a fresh session.
const Greeting = "Hello! I'm your customer support assistant. I can help you file complaints or retrieve complaint details. How can I assist you today?"

// SessionManager owns per-conversation state. Sessions are created on
// demand and live for the process lifetime; callers persist nothing.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*managedSession
}

// managedSession pairs a session with the mutex that serializes its
// turns. One utterance is processed fully before the next may start.
type managedSession struct {
	mu   sync.Mutex
	sess *domain.Session
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*managedSession)}
}

func (m *SessionManager) getOrCreate(id string) *managedSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ms, ok := m.sessions[id]; ok {
		return ms
	}

	sess := &domain.Session{ID: id, CreatedAt: time.Now()}
	sess.Append(domain.RoleAssistant, Greeting)
	ms := &managedSession{sess: sess}
	m.sessions[id] = ms
	slog.Info("chat session created", "session_id", id)
	return ms
}

// WithSession runs fn with exclusive access to the session's state. The
// engine mutates the transcript and draft inside fn, so no other turn of
// the same session may interleave.
func (m *SessionManager) WithSession(id string, fn func(sess *domain.Session)) {
	ms := m.getOrCreate(id)
	ms.mu.Lock()
	defer ms.mu.Unlock()
	fn(ms.sess)
}

// Snapshot returns a copy of the session's transcript and draft.
func (m *SessionManager) Snapshot(id string) ([]domain.Turn, domain.ComplaintDraft) {
	ms := m.getOrCreate(id)
	ms.mu.Lock()
	defer ms.mu.Unlock()

	turns := make([]domain.Turn, len(ms.sess.Turns))
	copy(turns, ms.sess.Turns)
	return turns, ms.sess.Draft
}

// Reset reinitializes a session to its empty defaults plus the greeting.
func (m *SessionManager) Reset(id string) {
	ms := m.getOrCreate(id)
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.sess.Reset()
	ms.sess.Append(domain.RoleAssistant, Greeting)
	slog.Info("chat session reset", "session_id", id)
}
