package usecase

import (
	"context"
	"fmt"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// ConversationDetail is a conversation with its sanitized participant list.
type ConversationDetail struct {
	Conversation chat.Conversation
	Participants []chat.User
}

// GetConversationUseCase fetches one conversation for a participant.
// Membership is checked against the live participant set at call time.
type GetConversationUseCase struct {
	Convs repository.ConversationRepository
}

func NewGetConversationUseCase(convs repository.ConversationRepository) *GetConversationUseCase {
	return &GetConversationUseCase{Convs: convs}
}

func (uc *GetConversationUseCase) Execute(ctx context.Context, requesterID, conversationID int64) (*ConversationDetail, error) {
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

	participants, err := uc.Convs.Participants(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &ConversationDetail{Conversation: *conv, Participants: participants}, nil
}
