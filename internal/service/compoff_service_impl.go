package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

type compOffService struct {
	compOffs repository.CompOffRepo
	analysts repository.AnalystRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewCompOffService(compOffs repository.CompOffRepo, analysts repository.AnalystRepo, observers ...UseCaseObserver) CompOffService {
	return &compOffService{
		compOffs: compOffs,
		analysts: analysts,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *compOffService) Balance(ctx context.Context, analystID string) (decimal.Decimal, error) {
	return s.compOffs.Balance(ctx, analystID)
}

func (s *compOffService) Transactions(ctx context.Context, analystID string, start, end time.Time) ([]*domain.CompOffTransaction, error) {
	return s.compOffs.ListByAnalystPeriod(ctx, analystID, start, end)
}

func (s *compOffService) Bank(ctx context.Context, analystID string, amount decimal.Decimal, weekStart time.Time, note string) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("comp-off amount must be positive, got %s", amount)
	}
	if _, err := s.analysts.GetByID(ctx, analystID); err != nil {
		return err
	}
	return s.compOffs.Create(ctx, &domain.CompOffTransaction{
		ID:        uuid.New().String(),
		AnalystID: analystID,
		Type:      domain.CompOffEarned,
		Amount:    amount,
		IsBanked:  true,
		WeekStart: domain.WeekStart(weekStart),
		Note:      note,
		CreatedAt: s.now().UTC(),
	})
}

func (s *compOffService) Use(ctx context.Context, analystID string, amount decimal.Decimal, weekStart time.Time, note string) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("comp-off amount must be positive, got %s", amount)
	}
	balance, err := s.compOffs.Balance(ctx, analystID)
	if err != nil {
		return err
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("insufficient comp-off balance: have %s, want %s", balance, amount)
	}
	return s.compOffs.Create(ctx, &domain.CompOffTransaction{
		ID:        uuid.New().String(),
		AnalystID: analystID,
		Type:      domain.CompOffUsed,
		Amount:    amount,
		WeekStart: domain.WeekStart(weekStart),
		Note:      note,
		CreatedAt: s.now().UTC(),
	})
}

// CreditOvertime tops the week's auto-assigned comp-off up to
// overtimeDays. The ledger is append-only, so idempotency comes from
// crediting only the shortfall: a week already fully credited yields a
// zero-amount no-op, and re-applying the same schedules cannot
// double-credit.
func (s *compOffService) CreditOvertime(ctx context.Context, analystID string, weekStart time.Time, overtimeDays int) (decimal.Decimal, error) {
	if overtimeDays <= 0 {
		return decimal.Zero, nil
	}
	ws := domain.WeekStart(weekStart)

	existing, err := s.compOffs.ListByAnalystWeek(ctx, analystID, ws)
	if err != nil {
		return decimal.Zero, err
	}
	credited := decimal.Zero
	for _, t := range existing {
		if t.IsAutoAssigned && t.Type == domain.CompOffAutoAssigned {
			credited = credited.Add(t.Amount)
		}
	}

	target := decimal.NewFromInt(int64(overtimeDays))
	shortfall := target.Sub(credited)
	if shortfall.Sign() <= 0 {
		return decimal.Zero, nil
	}

	err = s.compOffs.Create(ctx, &domain.CompOffTransaction{
		ID:             uuid.New().String(),
		AnalystID:      analystID,
		Type:           domain.CompOffAutoAssigned,
		Amount:         shortfall,
		IsBanked:       true,
		IsAutoAssigned: true,
		WeekStart:      ws,
		Note:           fmt.Sprintf("auto comp-off for %d overtime day(s) in week of %s", overtimeDays, ws.Format(domain.DateLayout)),
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return decimal.Zero, err
	}
	return shortfall, nil
}
