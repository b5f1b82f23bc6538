package port

import (
	"context"
	"fmt"
)

// ChannelPattern matches every per-user notification channel, for subscribers
// that fan traffic back out to local websocket sessions.
const ChannelPattern = "new-message-notification.*"

// ChannelFor names the private notification channel of a user. The name is
// deterministic so clients and publishers agree without coordination.
func ChannelFor(userID int64) string {
	return fmt.Sprintf("new-message-notification.%d", userID)
}

// Event describes a successful message append. The payload carries the
// conversation id only; subscribers refetch whatever state they need.
type Event struct {
	ConversationID int64   `json:"conversation_id"`
	ParticipantIDs []int64 `json:"participant_ids"`
}

// Publisher delivers a new-message event to the private channel of each
// participant. Delivery is best-effort from the caller's perspective: a
// failed publish is logged and retried by the adapter, never propagated to
// the operation that committed the message.
type Publisher interface {
	PublishNewMessage(ctx context.Context, ev Event) error
	Close() error
}
