package domain

// TradeState enumerates the lifecycle of a trade.
type TradeState string

const (
	TradeStateRequested TradeState = "REQUESTED"
	TradeStateCompleted TradeState = "COMPLETED"
	TradeStateCancelled TradeState = "CANCELLED"
)

// Trade records a purchase of an item between two members.
type Trade struct {
	ID       string
	ItemID   string
	BuyerID  string
	SellerID string
	Price    int
	State    TradeState
	Timestamps
}
