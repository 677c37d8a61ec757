package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

type vacationService struct {
	vacations repository.VacationRepo
	analysts  repository.AnalystRepo
	now       func() time.Time
}

func NewVacationService(vacations repository.VacationRepo, analysts repository.AnalystRepo) VacationService {
	return &vacationService{vacations: vacations, analysts: analysts, now: time.Now}
}

func (s *vacationService) Request(ctx context.Context, v *domain.Vacation) error {
	start := domain.DateOnly(v.StartDate)
	end := domain.DateOnly(v.EndDate)
	if end.Before(start) {
		return fmt.Errorf("vacation end %s is before start %s", end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}
	if _, err := s.analysts.GetByID(ctx, v.AnalystID); err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	v.StartDate = start
	v.EndDate = end
	v.CreatedAt = s.now().UTC()
	return s.vacations.Create(ctx, v)
}

func (s *vacationService) ListByAnalyst(ctx context.Context, analystID string) ([]*domain.Vacation, error) {
	return s.vacations.ListByAnalyst(ctx, analystID)
}

func (s *vacationService) Delete(ctx context.Context, id string) error {
	return s.vacations.Delete(ctx, id)
}
