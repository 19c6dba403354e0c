package domain

import (
	"time"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single utterance in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds the state of one ongoing conversation: the transcript and
// the complaint draft being filled. A session is owned by exactly one
// caller-managed conversation and is never shared across turns in flight.
type Session struct {
	ID        string
	Turns     []Turn
	Draft     ComplaintDraft
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Append adds a turn to the transcript.
func (s *Session) Append(role, content string) {
	s.Turns = append(s.Turns, Turn{Role: role, Content: content})
	s.UpdatedAt = time.Now()
}

// RecentTurns returns the last n turns from the transcript.
func (s *Session) RecentTurns(n int) []Turn {
	if n >= len(s.Turns) {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// Reset clears the transcript and the draft.
func (s *Session) Reset() {
	s.Turns = nil
	s.Draft.Reset()
	s.UpdatedAt = time.Now()
}
