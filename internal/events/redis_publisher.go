package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// RedisPublisher forwards events onto a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher returns a publisher; a nil client makes it a no-op.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Handle satisfies EventHandler.
func (p *RedisPublisher) Handle(ctx context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	return p.client.Publish(ctx, p.channel, data).Err()
}
