package usecase

import (
	"context"
	"fmt"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// ListMessagesUseCase returns all messages of a conversation oldest to
// newest and clears the reader's unread flag as a side effect.
type ListMessagesUseCase struct {
	Convs repository.ConversationRepository
	Msgs  repository.MessageRepository
}

func NewListMessagesUseCase(convs repository.ConversationRepository, msgs repository.MessageRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Convs: convs, Msgs: msgs}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, requesterID, conversationID int64) ([]chat.MessageWithSender, error) {
	conv, err := uc.Convs.FindByID(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, chat.ErrConversationNotFound
	}

	ok, err := uc.Convs.IsParticipant(ctx, conversationID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, chat.ErrNotParticipant
	}

	msgs, err := uc.Msgs.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Fetching messages marks the conversation read for this user only.
	if err := uc.Convs.MarkRead(ctx, conversationID, requesterID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return msgs, nil
}
