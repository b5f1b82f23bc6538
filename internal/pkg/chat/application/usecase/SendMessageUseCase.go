package usecase

import (
	"context"
	"fmt"
	"time"

	nport "github.com/oy2/quicktalk/internal/infrastructure/notify/port"
	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
	"github.com/oy2/quicktalk/pkg/logger"
)

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	ConversationID int64
	SenderID       int64
	Content        string
}

// SendMessageUseCase appends a message to a conversation. The append and the
// unread flips for the other participants commit together; the notification
// fan-out happens after commit and never fails the send.
type SendMessageUseCase struct {
	Convs    repository.ConversationRepository
	Msgs     repository.MessageRepository
	Notifier nport.Publisher
}

func NewSendMessageUseCase(convs repository.ConversationRepository, msgs repository.MessageRepository, notifier nport.Publisher) *SendMessageUseCase {
	return &SendMessageUseCase{Convs: convs, Msgs: msgs, Notifier: notifier}
}

// Execute returns the created message. Returning the body is a deliberate
// extension over a bare acknowledgment; callers that only need the ack can
// ignore it.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	msg, err := chat.NewMessage(in.ConversationID, in.SenderID, in.Content, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	conv, err := uc.Convs.FindByID(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, chat.ErrConversationNotFound
	}

	ok, err := uc.Convs.IsParticipant(ctx, in.ConversationID, in.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, chat.ErrNotParticipant
	}

	saved, err := uc.Msgs.Append(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	participants, err := uc.Convs.Participants(ctx, in.ConversationID)
	if err != nil {
		// The message is committed; report it even if the participant
		// lookup for the notification failed.
		logger.Warn().Err(err).Int64("conversation_id", in.ConversationID).Msg("chat: participant lookup for notification failed")
		return saved, nil
	}

	ids := make([]int64, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	if err := uc.Notifier.PublishNewMessage(ctx, nport.Event{
		ConversationID: in.ConversationID,
		ParticipantIDs: ids,
	}); err != nil {
		logger.Warn().Err(err).Int64("conversation_id", in.ConversationID).Msg("chat: notification publish failed")
	}

	return saved, nil
}
