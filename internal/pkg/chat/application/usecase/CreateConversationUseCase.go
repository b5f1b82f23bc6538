package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	nport "github.com/oy2/quicktalk/internal/infrastructure/notify/port"
	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
	"github.com/oy2/quicktalk/pkg/logger"
)

// CreateConversationOutput reports the resulting conversation and whether
// this call created it. Repeated calls for the same pair return the existing
// thread with Created=false.
type CreateConversationOutput struct {
	Conversation chat.Conversation
	Participants []chat.User
	Created      bool
}

// CreateConversationUseCase opens a two-party conversation, deduplicating on
// the unordered participant pair. A new thread gets both users as
// participants (unread=false), a seed message authored by the requester, and
// a new-message notification after the transaction commits.
type CreateConversationUseCase struct {
	Users    repository.UserRepository
	Convs    repository.ConversationRepository
	Notifier nport.Publisher
}

func NewCreateConversationUseCase(users repository.UserRepository, convs repository.ConversationRepository, notifier nport.Publisher) *CreateConversationUseCase {
	return &CreateConversationUseCase{Users: users, Convs: convs, Notifier: notifier}
}

func (uc *CreateConversationUseCase) Execute(ctx context.Context, requesterID, receiverID int64) (*CreateConversationOutput, error) {
	if requesterID == receiverID {
		return nil, chat.ErrSelfConversation
	}

	requester, err := uc.Users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if requester == nil {
		return nil, fmt.Errorf("%w: requester %d not found", ErrPersistence, requesterID)
	}
	receiver, err := uc.Users.FindByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if receiver == nil {
		return nil, chat.ErrReceiverNotFound
	}

	if existing, err := uc.finishExisting(ctx, requesterID, receiverID); err != nil || existing != nil {
		return existing, err
	}

	seed, err := chat.NewMessage(0, requesterID, chat.SeedMessageContent, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	conv, err := uc.Convs.Create(ctx, chat.PairName(*requester, *receiver), []int64{requesterID, receiverID}, seed)
	if errors.Is(err, chat.ErrConversationExists) {
		// Lost the create race; the other request's thread wins.
		existing, ferr := uc.finishExisting(ctx, requesterID, receiverID)
		if ferr != nil {
			return nil, ferr
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: pairwise conversation vanished after conflict", ErrPersistence)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	participants, err := uc.Convs.Participants(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Best-effort: the seed message is already committed, delivery failure
	// is logged and never surfaced.
	if err := uc.Notifier.PublishNewMessage(ctx, nport.Event{
		ConversationID: conv.ID,
		ParticipantIDs: []int64{requesterID, receiverID},
	}); err != nil {
		logger.Warn().Err(err).Int64("conversation_id", conv.ID).Msg("chat: notification publish failed")
	}

	return &CreateConversationOutput{Conversation: *conv, Participants: participants, Created: true}, nil
}

// finishExisting resolves the already-existing pairwise conversation, or nil
// when the pair has none yet.
func (uc *CreateConversationUseCase) finishExisting(ctx context.Context, requesterID, receiverID int64) (*CreateConversationOutput, error) {
	existing, err := uc.Convs.FindPairwise(ctx, requesterID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing == nil {
		return nil, nil
	}
	participants, err := uc.Convs.Participants(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &CreateConversationOutput{Conversation: *existing, Participants: participants, Created: false}, nil
}
