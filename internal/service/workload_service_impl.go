package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rota/internal/cache"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/workload"
)

type workloadService struct {
	schedules repository.ScheduleRepo
	compOffs  repository.CompOffRepo
	bank      CompOffService
	cache     cache.Cache
	calendar  domain.HolidayCalendar
	observer  UseCaseObserver
	now       func() time.Time
}

func NewWorkloadService(
	schedules repository.ScheduleRepo,
	compOffs repository.CompOffRepo,
	bank CompOffService,
	c cache.Cache,
	calendar domain.HolidayCalendar,
	observers ...UseCaseObserver,
) WorkloadService {
	if calendar == nil {
		calendar = domain.USHolidayCalendar{}
	}
	return &workloadService{
		schedules: schedules,
		compOffs:  compOffs,
		bank:      bank,
		cache:     c,
		calendar:  calendar,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *workloadService) AnalyzeWeek(ctx context.Context, analystID string, weekStart time.Time) (*domain.WeeklyWorkload, error) {
	ws := domain.WeekStart(weekStart)

	if s.cache != nil {
		var cached domain.WeeklyWorkload
		if hit, err := s.cache.GetJSON(ctx, cache.WorkloadKey(analystID, ws), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	w, err := s.analyze(ctx, analystID, ws)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cache.WorkloadKey(analystID, ws), w, cache.AnalyticsTTL)
	}
	return w, nil
}

// ProcessOvertime analyzes the week and banks comp-off for any overtime
// found, then re-analyzes so the returned view reflects the credit.
// Safe to call repeatedly for the same week.
func (s *workloadService) ProcessOvertime(ctx context.Context, analystID string, weekStart time.Time) (*domain.WeeklyWorkload, error) {
	started := s.now()
	ws := domain.WeekStart(weekStart)

	w, err := s.analyze(ctx, analystID, ws)
	if err != nil {
		return nil, err
	}

	var credited bool
	if w.OvertimeDays > 0 {
		amount, err := s.bank.CreditOvertime(ctx, analystID, ws, w.OvertimeDays)
		if err != nil {
			return nil, err
		}
		credited = amount.Sign() > 0
		if credited {
			w, err = s.analyze(ctx, analystID, ws)
			if err != nil {
				return nil, err
			}
			if s.cache != nil {
				_ = s.cache.DeletePattern(ctx, cache.AnalyticsPattern)
			}
		}
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "workload.process_overtime",
		Duration:  s.now().Sub(started),
		Success:   true,
		StartedAt: started,
		Fields: map[string]any{
			"analyst":  analystID,
			"week":     ws.Format(domain.DateLayout),
			"overtime": w.OvertimeDays,
			"credited": credited,
		},
	})
	return w, nil
}

func (s *workloadService) analyze(ctx context.Context, analystID string, ws time.Time) (*domain.WeeklyWorkload, error) {
	// A week of slack on both sides feeds consecutive-day detection.
	schedules, err := s.schedules.ListByAnalystAndRange(ctx, analystID, ws.AddDate(0, 0, -7), ws.AddDate(0, 0, 13))
	if err != nil {
		return nil, err
	}
	ledger, err := s.compOffs.ListByAnalystWeek(ctx, analystID, ws)
	if err != nil {
		return nil, err
	}
	w := workload.Analyze(analystID, ws, schedules, ledger, s.calendar)
	return &w, nil
}
