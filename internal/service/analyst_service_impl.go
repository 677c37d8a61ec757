package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rota/internal/cache"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

type analystService struct {
	analysts repository.AnalystRepo
	cache    cache.Cache
	now      func() time.Time
}

func NewAnalystService(analysts repository.AnalystRepo, c cache.Cache) AnalystService {
	return &analystService{analysts: analysts, cache: c, now: time.Now}
}

func (s *analystService) Create(ctx context.Context, a *domain.Analyst) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("analyst name is required")
	}
	if !domain.ValidShiftTypes[string(a.ShiftType)] {
		return fmt.Errorf("invalid shift type %q", a.ShiftType)
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := s.now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.IsActive = true
	if err := s.analysts.Create(ctx, a); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *analystService) GetByID(ctx context.Context, id string) (*domain.Analyst, error) {
	if s.cache != nil {
		var cached domain.Analyst
		if hit, err := s.cache.GetJSON(ctx, cache.AnalystKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}
	a, err := s.analysts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cache.AnalystKey(id), a, cache.AnalystTTL)
	}
	return a, nil
}

func (s *analystService) List(ctx context.Context, includeInactive bool) ([]*domain.Analyst, error) {
	return s.analysts.List(ctx, includeInactive)
}

func (s *analystService) Update(ctx context.Context, a *domain.Analyst) error {
	if !domain.ValidShiftTypes[string(a.ShiftType)] {
		return fmt.Errorf("invalid shift type %q", a.ShiftType)
	}
	a.UpdatedAt = s.now().UTC()
	if err := s.analysts.Update(ctx, a); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *analystService) Deactivate(ctx context.Context, id string) error {
	if err := s.analysts.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *analystService) Delete(ctx context.Context, id string) error {
	if err := s.analysts.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *analystService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, cache.AnalystPattern)
	_ = s.cache.DeletePattern(ctx, cache.AnalyticsPattern)
}
