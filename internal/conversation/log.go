// Package conversation holds the ordered follow-up chat about one transcript.
package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/yoockh/chatrel/internal/models"
)

const (
	WelcomeID   = "welcome"
	WelcomeText = "Hi! I've analyzed the chat log. Ask me anything about the relationship dynamics, tone, or specific interactions."

	// ErrorReplyText stands in for a model turn that failed, so user and
	// model turns keep alternating.
	ErrorReplyText = "Sorry, I encountered an error answering that."
	// EmptyReplyText is recorded when the model answered with no text.
	EmptyReplyText = "I couldn't generate a response."
)

// Log is an append-only message list. Entries are never edited or removed;
// Reset is the only transition that drops them. Log is not safe for
// concurrent use; the owning session serializes access.
type Log struct {
	messages []models.ChatMessage
	now      func() time.Time
	newID    func() string
}

// New returns a log seeded with the welcome message.
func New() *Log {
	l := &Log{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	l.Reset()
	return l
}

// Reset discards every message and reseeds the single welcome message.
func (l *Log) Reset() {
	l.messages = []models.ChatMessage{{
		ID:        WelcomeID,
		Role:      models.RoleModel,
		Text:      WelcomeText,
		Timestamp: l.now(),
	}}
}

func (l *Log) Append(role models.Role, text string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        l.newID(),
		Role:      role,
		Text:      text,
		Timestamp: l.now(),
	}
	l.messages = append(l.messages, msg)
	return msg
}

// Messages returns a copy of the log in insertion order.
func (l *Log) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// History projects the log into role/text turns, preserving order exactly.
func (l *Log) History() []models.Turn {
	out := make([]models.Turn, len(l.messages))
	for i, m := range l.messages {
		out[i] = models.Turn{Role: m.Role, Text: m.Text}
	}
	return out
}

func (l *Log) Len() int { return len(l.messages) }
