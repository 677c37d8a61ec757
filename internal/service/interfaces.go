package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

// GenerationService runs the scheduling algorithms. Preview is
// read-only and side-effect free; Apply persists schedules, advances
// rotation state, and triggers comp-off banking.
type GenerationService interface {
	Preview(ctx context.Context, input contract.GenerationInput) (*contract.GenerationResult, error)
	Apply(ctx context.Context, input contract.GenerationInput) (*contract.GenerationResult, error)
}

type AnalystService interface {
	Create(ctx context.Context, a *domain.Analyst) error
	GetByID(ctx context.Context, id string) (*domain.Analyst, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Analyst, error)
	Update(ctx context.Context, a *domain.Analyst) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ScheduleService interface {
	ListRange(ctx context.Context, start, end time.Time) ([]*domain.Schedule, error)
	ListAnalystRange(ctx context.Context, analystID string, start, end time.Time) ([]*domain.Schedule, error)
	SetScreener(ctx context.Context, id string, isScreener bool) error
	SetShiftType(ctx context.Context, id string, shift domain.ShiftType) error
	Delete(ctx context.Context, id string) error
}

type VacationService interface {
	Request(ctx context.Context, v *domain.Vacation) error
	ListByAnalyst(ctx context.Context, analystID string) ([]*domain.Vacation, error)
	Delete(ctx context.Context, id string) error
}

type ConstraintService interface {
	Create(ctx context.Context, c *domain.SchedulingConstraint) error
	ListOverlapping(ctx context.Context, start, end time.Time) ([]*domain.SchedulingConstraint, error)
	Delete(ctx context.Context, id string) error
}

// WorkloadService analyzes Sunday-anchored weeks and repairs overtime
// by banking comp-off.
type WorkloadService interface {
	AnalyzeWeek(ctx context.Context, analystID string, weekStart time.Time) (*domain.WeeklyWorkload, error)
	// ProcessOvertime credits comp-off for the week's overtime days.
	// Calling it again for an already-credited week is a no-op.
	ProcessOvertime(ctx context.Context, analystID string, weekStart time.Time) (*domain.WeeklyWorkload, error)
}

type CompOffService interface {
	Balance(ctx context.Context, analystID string) (decimal.Decimal, error)
	Transactions(ctx context.Context, analystID string, start, end time.Time) ([]*domain.CompOffTransaction, error)
	Bank(ctx context.Context, analystID string, amount decimal.Decimal, weekStart time.Time, note string) error
	Use(ctx context.Context, analystID string, amount decimal.Decimal, weekStart time.Time, note string) error
	// CreditOvertime banks auto-assigned comp-off for a week, topping
	// up to the given day count at most; idempotent per week.
	CreditOvertime(ctx context.Context, analystID string, weekStart time.Time, overtimeDays int) (decimal.Decimal, error)
}

// FairnessService scores the persisted schedules of a date range.
type FairnessService interface {
	Report(ctx context.Context, start, end time.Time) (*contract.FairnessMetrics, error)
}
