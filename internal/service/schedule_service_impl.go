package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/cache"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

type scheduleService struct {
	schedules repository.ScheduleRepo
	cache     cache.Cache
	now       func() time.Time
}

func NewScheduleService(schedules repository.ScheduleRepo, c cache.Cache) ScheduleService {
	return &scheduleService{schedules: schedules, cache: c, now: time.Now}
}

func (s *scheduleService) ListRange(ctx context.Context, start, end time.Time) ([]*domain.Schedule, error) {
	start = domain.DateOnly(start)
	end = domain.DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: %s is after %s", start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	}

	if s.cache != nil {
		var cached []*domain.Schedule
		if hit, err := s.cache.GetJSON(ctx, cache.ScheduleRangeKey(start, end), &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.schedules.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cache.ScheduleRangeKey(start, end), rows, cache.SchedulesTTL)
	}
	return rows, nil
}

func (s *scheduleService) ListAnalystRange(ctx context.Context, analystID string, start, end time.Time) ([]*domain.Schedule, error) {
	return s.schedules.ListByAnalystAndRange(ctx, analystID, domain.DateOnly(start), domain.DateOnly(end))
}

func (s *scheduleService) SetScreener(ctx context.Context, id string, isScreener bool) error {
	row, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row.IsScreener == isScreener {
		return nil
	}
	row.IsScreener = isScreener
	row.UpdatedAt = s.now().UTC()
	if err := s.schedules.Update(ctx, row); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *scheduleService) SetShiftType(ctx context.Context, id string, shift domain.ShiftType) error {
	if !domain.ValidShiftTypes[string(shift)] {
		return fmt.Errorf("invalid shift type %q", shift)
	}
	row, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row.ShiftType == shift {
		return nil
	}
	row.ShiftType = shift
	row.UpdatedAt = s.now().UTC()
	if err := s.schedules.Update(ctx, row); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *scheduleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, cache.SchedulesPattern)
	_ = s.cache.DeletePattern(ctx, cache.AnalyticsPattern)
}
