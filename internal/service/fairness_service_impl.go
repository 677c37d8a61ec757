package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rota/internal/cache"
	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/rotation"
)

type fairnessService struct {
	schedules repository.ScheduleRepo
	analysts  repository.AnalystRepo
	cache     cache.Cache
}

func NewFairnessService(schedules repository.ScheduleRepo, analysts repository.AnalystRepo, c cache.Cache) FairnessService {
	return &fairnessService{schedules: schedules, analysts: analysts, cache: c}
}

// Report scores the persisted schedules of [start, end] with the same
// engine generation uses for proposals.
func (s *fairnessService) Report(ctx context.Context, start, end time.Time) (*contract.FairnessMetrics, error) {
	start = domain.DateOnly(start)
	end = domain.DateOnly(end)

	if s.cache != nil {
		var cached contract.FairnessMetrics
		if hit, err := s.cache.GetJSON(ctx, cache.FairnessKey(start, end), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.schedules.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	analysts, err := s.analysts.List(ctx, true)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(analysts))
	for _, a := range analysts {
		names[a.ID] = a.Name
	}
	assignments := make([]contract.ProposedSchedule, 0, len(rows))
	for _, r := range rows {
		assignments = append(assignments, contract.ProposedSchedule{
			Date:        r.Date,
			AnalystID:   r.AnalystID,
			AnalystName: names[r.AnalystID],
			ShiftType:   r.ShiftType,
			IsScreener:  r.IsScreener,
		})
	}

	metrics := rotation.CalculateFairness(assignments, analysts)
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cache.FairnessKey(start, end), metrics, cache.AnalyticsTTL)
	}
	return &metrics, nil
}
