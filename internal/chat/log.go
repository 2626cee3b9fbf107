// Package chat keeps the append-only message transcript of a workspace.
// Messages are held locally for the open view; there is no edit or delete.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/models"
)

// Log is one workspace's transcript. Sends append a locally-identified
// message immediately; received messages are appended as they arrive.
type Log struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

// NewLog creates an empty transcript.
func NewLog() *Log {
	return &Log{}
}

// Send appends an outgoing message. The content must be non-blank unless at
// least one attachment is included. Own messages start read.
func (l *Log) Send(sender string, role models.ChatRole, content string, attachments ...models.FileAttachment) (models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" && len(attachments) == 0 {
		return models.ChatMessage{}, apierrors.NewValidationError("content", "message cannot be empty")
	}

	msg := models.ChatMessage{
		ID:          uuid.NewString(),
		Sender:      sender,
		SenderRole:  role,
		Content:     content,
		Timestamp:   time.Now().UTC(),
		Attachments: attachments,
		IsRead:      true,
	}

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
	return msg, nil
}

// Receive appends an incoming message. A message without an ID gets a local
// one so the transcript can still address it.
func (l *Log) Receive(msg models.ChatMessage) models.ChatMessage {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
	return msg
}

// Messages returns the transcript in arrival order.
func (l *Log) Messages() []models.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Since returns the messages with a timestamp strictly after t.
func (l *Log) Since(t time.Time) []models.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.ChatMessage
	for _, m := range l.messages {
		if m.Timestamp.After(t) {
			out = append(out, m)
		}
	}
	return out
}

// UnreadCount counts messages not yet marked read.
func (l *Log) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.messages {
		if !m.IsRead {
			n++
		}
	}
	return n
}

// MarkAllRead marks every message in the transcript as read.
func (l *Log) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.messages {
		l.messages[i].IsRead = true
	}
}
