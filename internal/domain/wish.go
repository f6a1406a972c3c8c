package domain

import "time"

// Wish marks an item as wished by a member. Unique per (MemberID, ItemID).
type Wish struct {
	ID        string
	MemberID  string
	ItemID    string
	CreatedAt time.Time
}
