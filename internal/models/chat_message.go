package models

import "time"

type ChatRole string

const (
	ChatRoleClient     ChatRole = "client"
	ChatRoleFreelancer ChatRole = "freelancer"
)

// ChatMessage is one entry of a workspace transcript. Messages are
// append-only; there is no edit or delete.
type ChatMessage struct {
	ID          string           `json:"id"`
	Sender      string           `json:"sender"`
	SenderRole  ChatRole         `json:"sender_role"`
	Content     string           `json:"content"`
	Timestamp   time.Time        `json:"timestamp"`
	Attachments []FileAttachment `json:"attachments,omitempty"`
	IsRead      bool             `json:"is_read"`
}
