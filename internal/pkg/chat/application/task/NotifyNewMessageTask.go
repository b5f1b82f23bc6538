package task

import (
	"context"
	"encoding/json"
	"time"

	nport "github.com/oy2/quicktalk/internal/infrastructure/notify/port"
	queueadapter "github.com/oy2/quicktalk/internal/infrastructure/queue/adapter"
	qport "github.com/oy2/quicktalk/internal/infrastructure/queue/port"
)

// NotifyNewMessageTaskType is the queue task name for fanning out a
// new-message notification after its transaction committed.
const NotifyNewMessageTaskType = "chat:notify_new_message"

// NotifyNewMessagePayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type NotifyNewMessagePayload struct {
	ConversationID int64   `json:"conversationId"`
	ParticipantIDs []int64 `json:"participantIds"`
}

// AsyncPublisher satisfies the notification publisher port by enqueueing a
// background task instead of publishing inline. The HTTP request never waits
// on, or fails because of, the actual channel delivery.
type AsyncPublisher struct {
	Q qport.Client
}

func NewAsyncPublisher(client qport.Client) *AsyncPublisher {
	return &AsyncPublisher{Q: client}
}

var _ nport.Publisher = (*AsyncPublisher)(nil)

func (p *AsyncPublisher) PublishNewMessage(ctx context.Context, ev nport.Event) error {
	payload := NotifyNewMessagePayload{
		ConversationID: ev.ConversationID,
		ParticipantIDs: ev.ParticipantIDs,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	opts := qport.EnqueueOption{Queue: queueadapter.NotifyQueue, MaxRetry: 10}
	_, err = p.Q.Enqueue(ctx, qport.Task{Type: NotifyNewMessageTaskType, Payload: b}, opts)
	return err
}

func (p *AsyncPublisher) Close() error {
	return p.Q.Close()
}

// RegisterNotifyNewMessageTask binds the task handler to the provided server.
// The handler performs the real channel publish through pub.
func RegisterNotifyNewMessageTask(srv qport.Server, pub nport.Publisher) {
	srv.Register(NotifyNewMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p NotifyNewMessagePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		return pub.PublishNewMessage(ctx, nport.Event{
			ConversationID: p.ConversationID,
			ParticipantIDs: p.ParticipantIDs,
		})
	})
}
