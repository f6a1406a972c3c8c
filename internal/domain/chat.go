package domain

import "time"

// ChatMessageType distinguishes room join announcements from regular talk.
type ChatMessageType string

const (
	ChatMessageEnter ChatMessageType = "ENTER"
	ChatMessageTalk  ChatMessageType = "TALK"
)

// ChatMessage is a transient chat event. Messages are not persisted by this
// service; they exist only for the duration of a fan-out.
type ChatMessage struct {
	ID     string          `json:"id"`
	RoomID string          `json:"room_id"`
	Sender string          `json:"sender"`
	Type   ChatMessageType `json:"type"`
	Body   string          `json:"body"`
	SentAt time.Time       `json:"sent_at"`
}
