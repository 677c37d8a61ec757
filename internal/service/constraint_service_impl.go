package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

type constraintService struct {
	constraints repository.ConstraintRepo
	analysts    repository.AnalystRepo
	now         func() time.Time
}

func NewConstraintService(constraints repository.ConstraintRepo, analysts repository.AnalystRepo) ConstraintService {
	return &constraintService{constraints: constraints, analysts: analysts, now: time.Now}
}

func (s *constraintService) Create(ctx context.Context, c *domain.SchedulingConstraint) error {
	start := domain.DateOnly(c.StartDate)
	end := domain.DateOnly(c.EndDate)
	if end.Before(start) {
		return fmt.Errorf("constraint end %s is before start %s", end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}
	if c.ConstraintType == "" {
		return fmt.Errorf("constraint type is required")
	}
	if c.AnalystID != nil {
		if _, err := s.analysts.GetByID(ctx, *c.AnalystID); err != nil {
			return err
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.StartDate = start
	c.EndDate = end
	c.IsActive = true
	c.CreatedAt = s.now().UTC()
	return s.constraints.Create(ctx, c)
}

func (s *constraintService) ListOverlapping(ctx context.Context, start, end time.Time) ([]*domain.SchedulingConstraint, error) {
	return s.constraints.ListActiveOverlapping(ctx, domain.DateOnly(start), domain.DateOnly(end))
}

func (s *constraintService) Delete(ctx context.Context, id string) error {
	return s.constraints.Delete(ctx, id)
}
