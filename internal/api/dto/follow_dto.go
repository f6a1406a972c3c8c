package dto

// FollowResponse reports relation state after a toggle or status read.
type FollowResponse struct {
	ShopID    string `json:"shop_id"`
	FollowID  string `json:"follow_id,omitempty"`
	Following bool   `json:"following"`
}

// FollowMemberResponse is one entry in follower/following listings.
type FollowMemberResponse struct {
	MemberID string `json:"member_id"`
	Nickname string `json:"nickname"`
	ShopID   string `json:"shop_id"`
	ShopName string `json:"shop_name"`
}

// WishResponse reports wishlist state after a toggle or status read.
type WishResponse struct {
	ItemID string `json:"item_id"`
	Wished bool   `json:"wished"`
}
