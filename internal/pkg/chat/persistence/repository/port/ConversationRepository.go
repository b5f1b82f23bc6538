package repository

import (
	"context"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

// ConversationRepository defines persistence operations for conversations and
// their participant membership. Relationship traversal is explicit: callers
// ask for participants or membership rows, nothing is lazily loaded.
type ConversationRepository interface {
	// FindByID returns nil, nil when the conversation does not exist.
	FindByID(ctx context.Context, id int64) (*chat.Conversation, error)

	// FindPairwise returns the existing two-party conversation between
	// userA and userB, or nil, nil when none exists. Argument order does
	// not matter.
	FindPairwise(ctx context.Context, userA, userB int64) (*chat.Conversation, error)

	// Create persists a conversation, its participants (unread=false) and
	// the seed message in one transaction. For two participants the
	// pairwise unique constraint applies; a collision is reported as
	// chat.ErrConversationExists so callers can re-fetch instead of
	// surfacing an error.
	Create(ctx context.Context, name string, participantIDs []int64, seed chat.Message) (*chat.Conversation, error)

	// Participants returns the sanitized users of a conversation, ordered by id.
	Participants(ctx context.Context, conversationID int64) ([]chat.User, error)

	// IsParticipant reports whether userID is a member of the conversation.
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)

	// ListByUser returns the membership rows of a user, carrying the per
	// conversation unread flag.
	ListByUser(ctx context.Context, userID int64) ([]chat.Participant, error)

	// MarkRead clears the unread flag for one participant of a conversation.
	MarkRead(ctx context.Context, conversationID, userID int64) error
}
