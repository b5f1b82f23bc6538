package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

func newCreateFixture() (*fakeDB, *fakeUserRepo, *fakeConvRepo, *fakePublisher, *CreateConversationUseCase) {
	db := newFakeDB()
	db.addUser(1, "Alice")
	db.addUser(2, "Bob")
	users := &fakeUserRepo{db: db}
	convs := &fakeConvRepo{db: db}
	pub := &fakePublisher{}
	return db, users, convs, pub, NewCreateConversationUseCase(users, convs, pub)
}

func TestCreateConversationCreatesThreadWithSeedMessage(t *testing.T) {
	db, _, _, pub, uc := newCreateFixture()

	out, err := uc.Execute(context.Background(), 1, 2)
	require.NoError(t, err)
	require.True(t, out.Created)

	assert.Equal(t, "Alice and Bob", out.Conversation.Name)
	require.Len(t, out.Participants, 2)
	assert.Equal(t, int64(1), out.Participants[0].ID)
	assert.Equal(t, int64(2), out.Participants[1].ID)

	// Seed message authored by the requester, both participants start read.
	require.Equal(t, 1, db.messageCount(out.Conversation.ID))
	seed := db.msgs[out.Conversation.ID][0]
	assert.Equal(t, chat.SeedMessageContent, seed.Content)
	assert.Equal(t, int64(1), seed.UserID)
	assert.False(t, db.unread(out.Conversation.ID, 1))
	assert.False(t, db.unread(out.Conversation.ID, 2))

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, out.Conversation.ID, events[0].ConversationID)
	assert.ElementsMatch(t, []int64{1, 2}, events[0].ParticipantIDs)
}

func TestCreateConversationIsIdempotentPerPair(t *testing.T) {
	db, _, _, pub, uc := newCreateFixture()

	first, err := uc.Execute(context.Background(), 1, 2)
	require.NoError(t, err)

	// Same pair again, both argument orders.
	second, err := uc.Execute(context.Background(), 1, 2)
	require.NoError(t, err)
	reversed, err := uc.Execute(context.Background(), 2, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)
	assert.Equal(t, first.Conversation.ID, reversed.Conversation.ID)
	assert.False(t, second.Created)
	assert.False(t, reversed.Created)
	assert.Equal(t, 1, db.conversationCount())

	// Only the creating call publishes.
	assert.Len(t, pub.published(), 1)
}

// racingConvRepo misses the existing pairwise conversation on its first
// lookup, reproducing two concurrent creates that both find nothing.
type racingConvRepo struct {
	*fakeConvRepo
	missedOnce bool
}

func (r *racingConvRepo) FindPairwise(ctx context.Context, a, b int64) (*chat.Conversation, error) {
	if !r.missedOnce {
		r.missedOnce = true
		return nil, nil
	}
	return r.fakeConvRepo.FindPairwise(ctx, a, b)
}

func TestCreateConversationResolvesCreateRaceByRefetch(t *testing.T) {
	db, users, convs, _, uc := newCreateFixture()

	existing, err := uc.Execute(context.Background(), 1, 2)
	require.NoError(t, err)

	racing := NewCreateConversationUseCase(users, &racingConvRepo{fakeConvRepo: convs}, &fakePublisher{})
	out, err := racing.Execute(context.Background(), 2, 1)
	require.NoError(t, err)

	assert.Equal(t, existing.Conversation.ID, out.Conversation.ID)
	assert.False(t, out.Created)
	assert.Equal(t, 1, db.conversationCount())
}

func TestCreateConversationReceiverNotFound(t *testing.T) {
	db, _, _, pub, uc := newCreateFixture()

	_, err := uc.Execute(context.Background(), 1, 99)
	assert.ErrorIs(t, err, chat.ErrReceiverNotFound)
	assert.Equal(t, 0, db.conversationCount())
	assert.Empty(t, pub.published())
}

func TestCreateConversationRejectsSelf(t *testing.T) {
	db, _, _, _, uc := newCreateFixture()

	_, err := uc.Execute(context.Background(), 1, 1)
	assert.ErrorIs(t, err, chat.ErrSelfConversation)
	assert.Equal(t, 0, db.conversationCount())
}

func TestCreateConversationSurvivesPublishFailure(t *testing.T) {
	db, users, convs, _, _ := newCreateFixture()
	pub := &fakePublisher{Err: assert.AnError}
	uc := NewCreateConversationUseCase(users, convs, pub)

	out, err := uc.Execute(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, 1, db.conversationCount())
}
