package dto

// ChatMessageRequest is an inbound chat event from a client.
type ChatMessageRequest struct {
	RoomID string `json:"room_id"`
	Sender string `json:"sender"`
	Type   string `json:"type"`
	Body   string `json:"body"`
}
