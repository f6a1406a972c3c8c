package domain

// MemberRole is the authority granted to a member account.
type MemberRole string

const (
	RoleUser  MemberRole = "ROLE_USER"
	RoleAdmin MemberRole = "ROLE_ADMIN"
)

// MemberStatus represents lifecycle states for a member account.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusSuspended MemberStatus = "SUSPENDED"
)

// Member is the domain model for marketplace accounts.
type Member struct {
	ID           string
	Username     string
	Nickname     string
	PasswordHash string
	Role         MemberRole
	Status       MemberStatus
	Timestamps
}

// Authorities returns the member's role set.
func (m *Member) Authorities() []MemberRole {
	if m.Role == RoleAdmin {
		return []MemberRole{RoleAdmin, RoleUser}
	}
	return []MemberRole{RoleUser}
}
