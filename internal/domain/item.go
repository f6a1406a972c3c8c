package domain

// ItemState enumerates sale states for listed items.
type ItemState string

const (
	ItemStateOnSale   ItemState = "ON_SALE"
	ItemStateReserved ItemState = "RESERVED"
	ItemStateSoldOut  ItemState = "SOLD_OUT"
)

// Item is a listing offered by a shop.
type Item struct {
	ID      string
	ShopID  string
	Name    string
	Price   int
	Comment string
	State   ItemState
	Timestamps
}
