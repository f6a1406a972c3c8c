package domain

import "time"

// Follow is the relation between a follower member and a shop.
// At most one row exists per (FollowerID, ShopID) pair; the follows table
// carries a unique constraint on the pair.
type Follow struct {
	ID         string
	FollowerID string
	ShopID     string
	CreatedAt  time.Time
}

// FollowMember is the projection returned by follower/following listings.
type FollowMember struct {
	MemberID string
	Nickname string
	ShopID   string
	ShopName string
}
