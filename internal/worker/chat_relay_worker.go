package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/chat"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ChatRelayWorker bridges redis pub/sub into the local hub so messages
// published by any instance reach this instance's websocket subscribers.
type ChatRelayWorker struct {
	client *redis.Client
	hub    *chat.Hub
	logger *zap.Logger
}

// NewChatRelayWorker builds the worker.
func NewChatRelayWorker(client *redis.Client, hub *chat.Hub, logger *zap.Logger) *ChatRelayWorker {
	return &ChatRelayWorker{client: client, hub: hub, logger: logger}
}

// Start consumes room channels until the context is cancelled.
func (w *ChatRelayWorker) Start(ctx context.Context) {
	pubsub := w.client.PSubscribe(ctx, chat.ChannelPrefix+"*")

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				var msg domain.ChatMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					w.logger.Warn("chat message decode failed", zap.String("channel", m.Channel), zap.Error(err))
					continue
				}
				w.hub.Broadcast(msg)
			}
		}
	}()
}
