package domain

// Shop is the storefront owned by a member. Every member has at most one shop.
type Shop struct {
	ID      string
	OwnerID string
	Name    string
	Intro   string
	Timestamps
}
