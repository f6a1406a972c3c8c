package domain

import "time"

// Timestamps is the audit value object embedded by persisted records.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
