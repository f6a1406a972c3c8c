package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// Hub is the in-process subscriber registry for room channels. Delivery is
// best-effort at-most-once: a subscriber whose buffer is full misses the
// message instead of stalling the publisher.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[string]chan domain.ChatMessage
	bufSize int
}

// NewHub creates a hub whose subscribers get buffers of the given size.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 16
	}
	return &Hub{
		rooms:   make(map[string]map[string]chan domain.ChatMessage),
		bufSize: bufSize,
	}
}

// Subscribe registers a new subscriber for the room and returns its id and
// receive channel. The channel is closed on Unsubscribe.
func (h *Hub) Subscribe(roomID string) (string, <-chan domain.ChatMessage) {
	id := uuid.NewString()
	ch := make(chan domain.ChatMessage, h.bufSize)

	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[roomID]
	if !ok {
		subs = make(map[string]chan domain.ChatMessage)
		h.rooms[roomID] = subs
	}
	subs[id] = ch
	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(roomID, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[roomID]
	if !ok {
		return
	}
	ch, ok := subs[id]
	if !ok {
		return
	}
	delete(subs, id)
	close(ch)
	if len(subs) == 0 {
		delete(h.rooms, roomID)
	}
}

// Broadcast delivers the message to every current subscriber of its room,
// skipping any subscriber that cannot accept it immediately. Sends happen
// under the read lock so a concurrent Unsubscribe cannot close a channel
// mid-send; the sends never block.
func (h *Hub) Broadcast(msg domain.ChatMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.rooms[msg.RoomID] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports the current number of subscribers in a room.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
