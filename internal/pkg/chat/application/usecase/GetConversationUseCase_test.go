package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

func TestGetConversationReturnsSanitizedParticipants(t *testing.T) {
	db := newFakeDB()
	db.addUser(1, "Alice")
	db.addUser(2, "Bob")
	db.addUser(3, "Carol")

	users := &fakeUserRepo{db: db}
	convs := &fakeConvRepo{db: db}
	create := NewCreateConversationUseCase(users, convs, &fakePublisher{})
	out, err := create.Execute(context.Background(), 1, 2)
	require.NoError(t, err)

	uc := NewGetConversationUseCase(convs)

	detail, err := uc.Execute(context.Background(), 2, out.Conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Conversation.ID, detail.Conversation.ID)
	require.Len(t, detail.Participants, 2)
	assert.Equal(t, []chat.User{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}, detail.Participants)

	_, err = uc.Execute(context.Background(), 1, 4242)
	assert.ErrorIs(t, err, chat.ErrConversationNotFound)

	_, err = uc.Execute(context.Background(), 3, out.Conversation.ID)
	assert.ErrorIs(t, err, chat.ErrNotParticipant)
}
