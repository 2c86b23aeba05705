package notifier

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const eventsChannel = "forum:events"

// RedisBroker implements Broker over redis pub/sub, so events reach hub
// instances on every node.
type RedisBroker struct {
	client *redis.Client
	pubsub *redis.PubSub
	ctx    context.Context
}

func NewRedisBroker(redisURL string) (*RedisBroker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisBroker{
		client: client,
		ctx:    ctx,
	}, nil
}

func (b *RedisBroker) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(b.ctx, eventsChannel, data).Err()
}

func (b *RedisBroker) Subscribe() (<-chan []byte, error) {
	b.pubsub = b.client.Subscribe(b.ctx, eventsChannel)

	out := make(chan []byte, 100)

	go func() {
		defer close(out)

		for msg := range b.pubsub.Channel() {
			out <- []byte(msg.Payload)
		}
	}()

	return out, nil
}

// Client exposes the underlying connection for components that share it
// (rate limiter).
func (b *RedisBroker) Client() *redis.Client {
	return b.client
}

func (b *RedisBroker) Close() error {
	if b.pubsub != nil {
		b.pubsub.Close()
	}
	return b.client.Close()
}
