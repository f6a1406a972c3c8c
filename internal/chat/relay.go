package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// Relay receives inbound chat events and republishes them to the room channel.
type Relay struct {
	broker Broker
	logger *zap.Logger
}

// NewRelay builds the relay.
func NewRelay(broker Broker, logger *zap.Logger) *Relay {
	return &Relay{broker: broker, logger: logger}
}

// OnMessage processes one inbound chat event, fire-and-forget. ENTER messages
// have their body replaced with a join announcement; the client-supplied body
// is discarded, not merged. TALK messages pass through unmodified.
func (r *Relay) OnMessage(ctx context.Context, msg domain.ChatMessage) {
	if msg.Type == domain.ChatMessageEnter {
		msg.Body = msg.Sender + " has entered."
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		r.logger.Warn("chat message encode failed", zap.String("room_id", msg.RoomID), zap.Error(err))
		return
	}

	if err := r.broker.Publish(ctx, ChannelFor(msg.RoomID), payload); err != nil {
		r.logger.Warn("chat publish failed", zap.String("room_id", msg.RoomID), zap.Error(err))
	}
}
