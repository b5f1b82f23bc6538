package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

// TestTwoUserConversationLifecycle walks the whole flow: open a thread,
// exchange a message, read it back.
func TestTwoUserConversationLifecycle(t *testing.T) {
	db := newFakeDB()
	db.addUser(1, "Alice")
	db.addUser(2, "Bob")

	users := &fakeUserRepo{db: db}
	convs := &fakeConvRepo{db: db}
	msgs := &fakeMsgRepo{db: db}
	pub := &fakePublisher{}

	create := NewCreateConversationUseCase(users, convs, pub)
	send := NewSendMessageUseCase(convs, msgs, pub)
	list := NewListMessagesUseCase(convs, msgs)

	ctx := context.Background()

	// Alice opens the conversation with Bob.
	out, err := create.Execute(ctx, 1, 2)
	require.NoError(t, err)
	require.True(t, out.Created)
	convID := out.Conversation.ID
	assert.ElementsMatch(t, []int64{1, 2}, []int64{out.Participants[0].ID, out.Participants[1].ID})
	assert.False(t, db.unread(convID, 1))
	assert.False(t, db.unread(convID, 2))

	// Alice sends a message; only Bob goes unread.
	_, err = send.Execute(ctx, SendMessageInput{ConversationID: convID, SenderID: 1, Content: "hello"})
	require.NoError(t, err)
	assert.True(t, db.unread(convID, 2))
	assert.False(t, db.unread(convID, 1))

	// Bob reads the thread: seed first, then the greeting, and his flag
	// resets.
	got, err := list.Execute(ctx, 2, convID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, chat.SeedMessageContent, got[0].Content)
	assert.Equal(t, "hello", got[1].Content)
	assert.False(t, db.unread(convID, 2))

	// One notification for the seed, one for the greeting.
	assert.Len(t, pub.published(), 2)
}
