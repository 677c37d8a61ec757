package domain

import "time"

// Schedule is one persisted shift assignment. At most one row may exist
// per (AnalystID, Date); the storage layer enforces this with a unique
// index in addition to the apply-time duplicate guard.
type Schedule struct {
	ID         string
	AnalystID  string
	Date       time.Time // calendar day, UTC midnight
	ShiftType  ShiftType
	IsScreener bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key returns the (analyst, day) identity used for duplicate detection.
func (s Schedule) Key() string {
	return s.AnalystID + "|" + s.Date.Format(DateLayout)
}
