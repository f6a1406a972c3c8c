package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/chat"
	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ChatHandler bridges HTTP and websocket clients to the chat relay.
type ChatHandler struct {
	relay  *chat.Relay
	hub    *chat.Hub
	logger *zap.Logger
}

// NewChatHandler constructs handler.
func NewChatHandler(relay *chat.Relay, hub *chat.Hub, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{relay: relay, hub: hub, logger: logger}
}

// Publish handles POST /chat/messages for clients without a socket.
func (h *ChatHandler) Publish(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := chatMessage(req)
	if err != nil {
		return err
	}

	h.relay.OnMessage(c.Context(), msg)
	return c.SendStatus(http.StatusAccepted)
}

// Subscribe serves GET /ws/chat/:roomID as a websocket stream. Inbound frames
// are chat events fed to the relay; outbound frames are the room's fan-out.
func (h *ChatHandler) Subscribe(conn *websocket.Conn) {
	roomID := conn.Params("roomID")
	id, ch := h.hub.Subscribe(roomID)
	defer h.hub.Unsubscribe(roomID, id)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}
	}()

	for {
		var req dto.ChatMessageRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		req.RoomID = roomID
		msg, err := chatMessage(req)
		if err != nil {
			h.logger.Debug("dropping invalid chat frame", zap.String("room_id", roomID))
			continue
		}
		h.relay.OnMessage(ctx, msg)
	}
}

func chatMessage(req dto.ChatMessageRequest) (domain.ChatMessage, error) {
	msgType := domain.ChatMessageType(req.Type)
	if msgType != domain.ChatMessageEnter && msgType != domain.ChatMessageTalk {
		return domain.ChatMessage{}, apperrors.NewValidationError("unknown message type", map[string]any{"type": req.Type})
	}
	if req.RoomID == "" || req.Sender == "" {
		return domain.ChatMessage{}, apperrors.NewValidationError("room_id and sender required", nil)
	}
	return domain.ChatMessage{
		RoomID: req.RoomID,
		Sender: req.Sender,
		Type:   msgType,
		Body:   req.Body,
	}, nil
}
