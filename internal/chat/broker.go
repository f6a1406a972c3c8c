package chat

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix prefixes every room channel name on the broker.
const ChannelPrefix = "room/"

// ChannelFor returns the broker channel for a room.
func ChannelFor(roomID string) string {
	return ChannelPrefix + roomID
}

// Broker publishes chat payloads to a named channel.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisBroker publishes over redis pub/sub so fan-out reaches subscribers on
// every instance.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker wraps the shared redis client.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Publish sends the payload to the channel.
func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.client.Publish(ctx, channel, payload).Err()
}
