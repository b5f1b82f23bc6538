package chat

import "errors"

// Domain-level errors for chat behaviors.
var (
	ErrConversationNotFound = errors.New("chat: conversation not found")
	ErrReceiverNotFound     = errors.New("chat: receiver not found")
	ErrNotParticipant       = errors.New("chat: user is not a participant in the conversation")
	ErrEmptyMessage         = errors.New("chat: message content is empty")
	ErrSelfConversation     = errors.New("chat: conversation requires two distinct participants")

	// ErrConversationExists signals the pairwise unique constraint fired on
	// create. It is resolved internally by re-fetching the existing thread
	// and never reaches a caller.
	ErrConversationExists = errors.New("chat: conversation already exists for this pair")
)
