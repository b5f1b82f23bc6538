package repository

import (
	"context"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

// MessageRepository defines persistence operations for the message log.
type MessageRepository interface {
	// Append persists m and sets unread=true for every participant except
	// the sender, as one transaction. A reader must never observe the new
	// message without the matching unread flags, or the reverse.
	Append(ctx context.Context, m chat.Message) (*chat.Message, error)

	// ListByConversation returns all messages oldest to newest, each with
	// the sender attached.
	ListByConversation(ctx context.Context, conversationID int64) ([]chat.MessageWithSender, error)

	// LastByConversation returns the most recent message, or nil, nil when
	// the conversation has none.
	LastByConversation(ctx context.Context, conversationID int64) (*chat.Message, error)
}
