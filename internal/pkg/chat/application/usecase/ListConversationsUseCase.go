package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsUseCase assembles the conversation overview for a user:
// every thread they participate in, annotated with the sanitized participant
// list, their unread flag and the latest message, most recently active first.
type ListConversationsUseCase struct {
	Convs repository.ConversationRepository
	Msgs  repository.MessageRepository
}

func NewListConversationsUseCase(convs repository.ConversationRepository, msgs repository.MessageRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Convs: convs, Msgs: msgs}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, requesterID int64) ([]chat.ConversationSummary, error) {
	memberships, err := uc.Convs.ListByUser(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	summaries := make([]chat.ConversationSummary, 0, len(memberships))
	for _, m := range memberships {
		conv, err := uc.Convs.FindByID(ctx, m.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if conv == nil {
			continue
		}
		participants, err := uc.Convs.Participants(ctx, m.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		last, err := uc.Msgs.LastByConversation(ctx, m.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		summaries = append(summaries, chat.ConversationSummary{
			Conversation: *conv,
			Participants: participants,
			Unread:       m.Unread,
			LastMessage:  last,
		})
	}

	// Most recently active first. A conversation without messages uses the
	// zero time and therefore always sorts after every conversation that
	// has at least one.
	sort.SliceStable(summaries, func(i, j int) bool {
		ti, idi := lastActivity(summaries[i])
		tj, idj := lastActivity(summaries[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})

	return summaries, nil
}

func lastActivity(s chat.ConversationSummary) (time.Time, int64) {
	if s.LastMessage == nil {
		return time.Time{}, 0
	}
	return s.LastMessage.CreatedAt, s.LastMessage.ID
}
