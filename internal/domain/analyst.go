package domain

import "time"

type Analyst struct {
	ID        string
	Name      string
	ShiftType ShiftType
	IsActive  bool
	Skills    []string

	// CreatedAt doubles as the experience tie-break: earlier hires win
	// seniority-based picks (holidays, weekends).
	CreatedAt time.Time
	UpdatedAt time.Time
}
