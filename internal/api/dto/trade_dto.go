package dto

import "time"

// TradeCreateRequest payload for recording a trade.
type TradeCreateRequest struct {
	ItemID string `json:"item_id"`
}

// TradeResponse is one entry in order/sale listings.
type TradeResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	BuyerID   string    `json:"buyer_id"`
	SellerID  string    `json:"seller_id"`
	Price     int       `json:"price"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemResponse is one entry in item listings.
type ItemResponse struct {
	ID     string `json:"id"`
	ShopID string `json:"shop_id"`
	Name   string `json:"name"`
	Price  int    `json:"price"`
	State  string `json:"state"`
}
