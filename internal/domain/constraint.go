package domain

import "time"

// SchedulingConstraint blocks an analyst (or, with a nil AnalystID,
// every analyst) from assignment on overlapping dates while active.
type SchedulingConstraint struct {
	ID             string
	AnalystID      *string // nil = global constraint
	ConstraintType string
	StartDate      time.Time
	EndDate        time.Time
	IsActive       bool
	CreatedAt      time.Time
}

// Covers reports whether the constraint window includes the given day.
func (c SchedulingConstraint) Covers(day time.Time) bool {
	return c.IsActive && !day.Before(DateOnly(c.StartDate)) && !day.After(DateOnly(c.EndDate))
}

// AppliesTo reports whether the constraint binds the given analyst.
func (c SchedulingConstraint) AppliesTo(analystID string) bool {
	return c.AnalystID == nil || *c.AnalystID == analystID
}

type Vacation struct {
	ID         string
	AnalystID  string
	StartDate  time.Time
	EndDate    time.Time
	IsApproved bool
	CreatedAt  time.Time
}

// Covers reports whether an approved vacation includes the given day.
func (v Vacation) Covers(day time.Time) bool {
	return v.IsApproved && !day.Before(DateOnly(v.StartDate)) && !day.After(DateOnly(v.EndDate))
}
