package chat

// Participant captures membership and read state.
// Primary key: (ConversationID, UserID).
type Participant struct {
	ConversationID int64 `db:"conversation_id"`
	UserID         int64 `db:"user_id"`
	Unread         bool  `db:"unread"`
}
