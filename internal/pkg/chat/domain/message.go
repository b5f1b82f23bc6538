package chat

import (
	"strings"
	"time"
)

// SeedMessageContent is the system-authored first message created alongside
// a new conversation, attributed to the user who opened it.
const SeedMessageContent = "Created this conversation."

// MessageTimeLayout is how message timestamps are rendered to clients:
// zero-padded day/month/year with a 24h clock.
const MessageTimeLayout = "02/01/2006 15:04:05"

// Message is an immutable log entry in a conversation.
type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversation_id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// MessageWithSender carries a message together with the sender's sanitized
// user record, as returned by message listings.
type MessageWithSender struct {
	Message
	Sender User
}

// NewMessage validates and normalizes a message ready to persist.
// Content is trimmed; a message that is empty after trimming is rejected.
// A zero timestamp is stamped with now.
func NewMessage(conversationID, senderID int64, content string, now time.Time) (Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Message{}, ErrEmptyMessage
	}

	ts := now
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return Message{
		ConversationID: conversationID,
		UserID:         senderID,
		Content:        trimmed,
		CreatedAt:      ts.UTC(),
	}, nil
}
