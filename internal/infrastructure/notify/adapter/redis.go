package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/oy2/quicktalk/internal/infrastructure/notify/port"
)

// wireEvent is the payload written to each participant channel.
type wireEvent struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
}

// RedisPublisher satisfies port.Publisher by issuing one PUBLISH per
// participant channel.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher connects to redis at url and verifies the connection.
func NewRedisPublisher(url string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &RedisPublisher{client: c}, nil
}

var _ port.Publisher = (*RedisPublisher)(nil)

func (p *RedisPublisher) PublishNewMessage(ctx context.Context, ev port.Event) error {
	payload, err := json.Marshal(wireEvent{Type: "new_message", ConversationID: ev.ConversationID})
	if err != nil {
		return fmt.Errorf("notify: encode event: %w", err)
	}
	for _, uid := range ev.ParticipantIDs {
		if err := p.client.Publish(ctx, port.ChannelFor(uid), payload).Err(); err != nil {
			return fmt.Errorf("notify: publish to %s: %w", port.ChannelFor(uid), err)
		}
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
