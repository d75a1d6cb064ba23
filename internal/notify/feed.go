package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Notification is the payload pushed to a user's live connections.
type Notification struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	SentAt  time.Time   `json:"sentAt"`
}

type Pusher interface {
	Push(ctx context.Context, userID uint, n Notification) error
}

// Subscriber streams raw notification payloads for one user. The channel is
// closed once ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, userID uint) (<-chan []byte, error)
}

// Channel is the Redis pub/sub channel carrying a user's notifications.
func Channel(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}

// Feed fans notifications out over Redis pub/sub so any API instance can
// deliver them to the user's open websocket.
type Feed struct {
	client *redis.Client
}

func NewFeed(client *redis.Client) *Feed {
	return &Feed{client: client}
}

func (f *Feed) Push(ctx context.Context, userID uint, n Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return f.client.Publish(ctx, Channel(userID), raw).Err()
}

func (f *Feed) Subscribe(ctx context.Context, userID uint) (<-chan []byte, error) {
	pubsub := f.client.Subscribe(ctx, Channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", Channel(userID), err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()

		in := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
