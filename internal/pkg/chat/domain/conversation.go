package chat

import (
	"fmt"
	"time"
)

// Conversation is a thread between two users (future-proof for groups).
type Conversation struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ConversationSummary is a conversation annotated for listing: the sanitized
// participant set, the requesting user's unread flag and the latest message.
// LastMessage is nil when the conversation has no messages yet.
type ConversationSummary struct {
	Conversation Conversation
	Participants []User
	Unread       bool
	LastMessage  *Message
}

// PairKey derives the dedup key for a two-party conversation. The key is
// independent of argument order so concurrent creates between the same pair
// collide on the unique index rather than producing a duplicate thread.
func PairKey(a, b int64) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("p:%d:%d", a, b)
}

// PairName derives the default conversation label from its two participants.
func PairName(requester, receiver User) string {
	return requester.Name + " and " + receiver.Name
}
