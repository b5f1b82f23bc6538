package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/oy2/quicktalk/internal/infrastructure/notify/port"
	"github.com/oy2/quicktalk/internal/infrastructure/realtime"
	"github.com/oy2/quicktalk/pkg/logger"
)

// Subscriber bridges the redis notification channels to local websocket
// sessions. It pattern-subscribes to every per-user channel and forwards each
// payload to the matching user's connection, if one is attached here.
type Subscriber struct {
	client *redis.Client
	router *realtime.Router
}

func NewSubscriber(url string, router *realtime.Router) (*Subscriber, error) {
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
	return &Subscriber{client: c, router: router}, nil
}

// Run blocks consuming notification traffic until ctx is canceled.
func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.client.PSubscribe(ctx, port.ChannelPattern)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			userID := channelUserID(msg.Channel)
			if userID == "" {
				logger.Warn().Str("channel", msg.Channel).Msg("notify: unrecognized channel name")
				continue
			}
			s.router.NotifyUser(userID, []byte(msg.Payload))
		}
	}
}

func (s *Subscriber) Close() error {
	return s.client.Close()
}

// channelUserID extracts the user id suffix from a notification channel name.
func channelUserID(channel string) string {
	i := strings.LastIndex(channel, ".")
	if i < 0 || i == len(channel)-1 {
		return ""
	}
	return channel[i+1:]
}
