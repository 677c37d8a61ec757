package testutil

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rota/internal/domain"
)

// Each fixture analyst gets a strictly increasing CreatedAt so that the
// natural population order used by the rotation is deterministic in tests.
var analystSeq atomic.Int64

// Analyst options
type AnalystOption func(*domain.Analyst)

func WithShiftType(st domain.ShiftType) AnalystOption {
	return func(a *domain.Analyst) {
		a.ShiftType = st
	}
}

func WithInactive() AnalystOption {
	return func(a *domain.Analyst) {
		a.IsActive = false
	}
}

func WithSkills(skills ...string) AnalystOption {
	return func(a *domain.Analyst) {
		a.Skills = skills
	}
}

func WithCreatedAt(t time.Time) AnalystOption {
	return func(a *domain.Analyst) {
		a.CreatedAt = t
	}
}

func NewTestAnalyst(name string, opts ...AnalystOption) *domain.Analyst {
	n := analystSeq.Add(1)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Hour)
	a := &domain.Analyst{
		ID:        uuid.New().String(),
		Name:      name,
		ShiftType: domain.ShiftMorning,
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Schedule options
type ScheduleOption func(*domain.Schedule)

func WithScheduleShift(st domain.ShiftType) ScheduleOption {
	return func(s *domain.Schedule) {
		s.ShiftType = st
	}
}

func WithScreener() ScheduleOption {
	return func(s *domain.Schedule) {
		s.IsScreener = true
	}
}

func NewTestSchedule(analystID string, date time.Time, opts ...ScheduleOption) *domain.Schedule {
	now := time.Now().UTC()
	s := &domain.Schedule{
		ID:        uuid.New().String(),
		AnalystID: analystID,
		Date:      domain.DateOnly(date),
		ShiftType: domain.ShiftMorning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestVacation(analystID string, start, end time.Time, approved bool) *domain.Vacation {
	return &domain.Vacation{
		ID:         uuid.New().String(),
		AnalystID:  analystID,
		StartDate:  domain.DateOnly(start),
		EndDate:    domain.DateOnly(end),
		IsApproved: approved,
		CreatedAt:  time.Now().UTC(),
	}
}

func NewTestConstraint(analystID *string, start, end time.Time) *domain.SchedulingConstraint {
	return &domain.SchedulingConstraint{
		ID:             uuid.New().String(),
		AnalystID:      analystID,
		ConstraintType: "BLACKOUT",
		StartDate:      domain.DateOnly(start),
		EndDate:        domain.DateOnly(end),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
}
