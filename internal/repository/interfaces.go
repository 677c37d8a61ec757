package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rota/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type AnalystRepo interface {
	Create(ctx context.Context, a *domain.Analyst) error
	GetByID(ctx context.Context, id string) (*domain.Analyst, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Analyst, error)
	ListByShiftType(ctx context.Context, shiftType domain.ShiftType, activeOnly bool) ([]*domain.Analyst, error)
	Update(ctx context.Context, a *domain.Analyst) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ScheduleRepo interface {
	Create(ctx context.Context, s *domain.Schedule) error
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	// GetByAnalystAndDate returns (nil, nil) when no schedule exists;
	// absence is an expected outcome for the duplicate-write guard.
	GetByAnalystAndDate(ctx context.Context, analystID string, date time.Time) (*domain.Schedule, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Schedule, error)
	ListByAnalystAndRange(ctx context.Context, analystID string, start, end time.Time) ([]*domain.Schedule, error)
	Update(ctx context.Context, s *domain.Schedule) error
	Delete(ctx context.Context, id string) error
}

type VacationRepo interface {
	Create(ctx context.Context, v *domain.Vacation) error
	ListByAnalyst(ctx context.Context, analystID string) ([]*domain.Vacation, error)
	// ListOverlapping returns approved vacations intersecting [start, end].
	ListOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Vacation, error)
	Delete(ctx context.Context, id string) error
}

type ConstraintRepo interface {
	Create(ctx context.Context, c *domain.SchedulingConstraint) error
	// ListActiveOverlapping returns active constraints intersecting
	// [start, end], including global (nil analyst) constraints.
	ListActiveOverlapping(ctx context.Context, start, end time.Time) ([]*domain.SchedulingConstraint, error)
	Delete(ctx context.Context, id string) error
}

type RotationStateRepo interface {
	// Get returns (nil, nil) when no state row exists for the key;
	// a missing row means "start the rotation fresh", not an error.
	Get(ctx context.Context, algo domain.AlgorithmType, shift domain.ShiftType) (*domain.RotationState, error)
	Upsert(ctx context.Context, state *domain.RotationState) error
}

type CompOffRepo interface {
	Create(ctx context.Context, t *domain.CompOffTransaction) error
	ListByAnalyst(ctx context.Context, analystID string) ([]*domain.CompOffTransaction, error)
	ListByAnalystPeriod(ctx context.Context, analystID string, start, end time.Time) ([]*domain.CompOffTransaction, error)
	ListByAnalystWeek(ctx context.Context, analystID string, weekStart time.Time) ([]*domain.CompOffTransaction, error)
	// Balance is the signed sum over the analyst's full ledger.
	Balance(ctx context.Context, analystID string) (decimal.Decimal, error)
}
