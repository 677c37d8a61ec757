package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rota/internal/cache"
	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/rotation"
)

type generationService struct {
	analysts    repository.AnalystRepo
	schedules   repository.ScheduleRepo
	vacations   repository.VacationRepo
	constraints repository.ConstraintRepo
	uow         db.UnitOfWork
	registry    *rotation.Registry
	stateMgr    *rotation.StateManager
	workloads   WorkloadService
	cache       cache.Cache
	calendar    domain.HolidayCalendar
	observer    UseCaseObserver

	// One apply at a time per algorithm type: concurrent applies would
	// race on the rotation state read-compute-advance sequence.
	mu         sync.Mutex
	applyLocks map[domain.AlgorithmType]*sync.Mutex

	now func() time.Time
}

func NewGenerationService(
	analysts repository.AnalystRepo,
	schedules repository.ScheduleRepo,
	vacations repository.VacationRepo,
	constraints repository.ConstraintRepo,
	states repository.RotationStateRepo,
	uow db.UnitOfWork,
	registry *rotation.Registry,
	workloads WorkloadService,
	c cache.Cache,
	calendar domain.HolidayCalendar,
	observers ...UseCaseObserver,
) GenerationService {
	if calendar == nil {
		calendar = domain.USHolidayCalendar{}
	}
	return &generationService{
		analysts:    analysts,
		schedules:   schedules,
		vacations:   vacations,
		constraints: constraints,
		uow:         uow,
		registry:    rotationRegistryOrDefault(registry),
		stateMgr:    rotation.NewStateManager(states),
		workloads:   workloads,
		cache:       c,
		calendar:    calendar,
		observer:    useCaseObserverOrNoop(observers),
		applyLocks:  make(map[domain.AlgorithmType]*sync.Mutex),
		now:         time.Now,
	}
}

func rotationRegistryOrDefault(r *rotation.Registry) *rotation.Registry {
	if r != nil {
		return r
	}
	return rotation.NewRegistry(rotation.NewWeekendRotationAlgorithm())
}

func (s *generationService) Preview(ctx context.Context, input contract.GenerationInput) (*contract.GenerationResult, error) {
	started := s.now()
	result, _, err := s.generate(ctx, input)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "generation.preview",
		Duration:  s.now().Sub(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields: map[string]any{
			"algorithm": string(input.AlgorithmType),
			"start":     input.StartDate.Format(domain.DateLayout),
			"end":       input.EndDate.Format(domain.DateLayout),
		},
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *generationService) Apply(ctx context.Context, input contract.GenerationInput) (*contract.GenerationResult, error) {
	lock := s.lockFor(input.AlgorithmType)
	lock.Lock()
	defer lock.Unlock()

	started := s.now()
	result, states, err := s.generate(ctx, input)
	if err == nil {
		err = s.reconcile(ctx, input, result, states)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "generation.apply",
		Duration:  s.now().Sub(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields: map[string]any{
			"algorithm": string(input.AlgorithmType),
			"start":     input.StartDate.Format(domain.DateLayout),
			"end":       input.EndDate.Format(domain.DateLayout),
			"overwrite": input.OverwriteExisting,
		},
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *generationService) lockFor(algo domain.AlgorithmType) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.applyLocks[algo]
	if !ok {
		lock = &sync.Mutex{}
		s.applyLocks[algo] = lock
	}
	return lock
}

// generate loads the generation window and runs the algorithm. The
// returned rotation states are in-memory only; reconcile persists them
// on apply and Preview drops them.
func (s *generationService) generate(ctx context.Context, input contract.GenerationInput) (*contract.GenerationResult, map[domain.ShiftType]*domain.RotationState, error) {
	algo, err := s.registry.Get(input.AlgorithmType)
	if err != nil {
		return nil, nil, err
	}

	start := domain.DateOnly(input.StartDate)
	end := domain.DateOnly(input.EndDate)

	analysts, err := s.analysts.List(ctx, false)
	if err != nil {
		return nil, nil, fmt.Errorf("load analysts: %w", err)
	}
	// Two days of slack on each side so adjacency checks can see the
	// weekend rows bordering the range.
	existing, err := s.schedules.ListByDateRange(ctx, start.AddDate(0, 0, -2), end.AddDate(0, 0, 2))
	if err != nil {
		return nil, nil, fmt.Errorf("load schedules: %w", err)
	}
	vacations, err := s.vacations.ListOverlapping(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("load vacations: %w", err)
	}
	constraints, err := s.constraints.ListActiveOverlapping(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("load constraints: %w", err)
	}

	states := make(map[domain.ShiftType]*domain.RotationState)
	for shift := range domain.ValidShiftTypes {
		st, err := s.stateMgr.Current(ctx, input.AlgorithmType, domain.ShiftType(shift))
		if err != nil {
			return nil, nil, fmt.Errorf("load rotation state: %w", err)
		}
		if st != nil {
			states[domain.ShiftType(shift)] = st
		}
	}

	result, next, err := algo.Generate(input, rotation.GenerationContext{
		Analysts:    analysts,
		Existing:    existing,
		Vacations:   vacations,
		Constraints: constraints,
		States:      states,
		Calendar:    s.calendar,
	})
	if err != nil {
		return nil, nil, err
	}
	return result, next, nil
}

// reconcile persists a generation: full resync when overwriting, per-row
// best-effort inserts with duplicate guards, per-week overtime
// processing, and finally the rotation state advance.
func (s *generationService) reconcile(ctx context.Context, input contract.GenerationInput, result *contract.GenerationResult, states map[domain.ShiftType]*domain.RotationState) error {
	start := domain.DateOnly(input.StartDate)
	end := domain.DateOnly(input.EndDate)

	s.recheckGuards(result)

	byKey := make(map[string]contract.ProposedSchedule, len(result.ProposedSchedules))
	fullKeys := make(map[string]bool, len(result.ProposedSchedules))
	for _, p := range result.ProposedSchedules {
		byKey[p.Key()] = p
		fullKeys[fullKey(p.AnalystID, p.Date, p.ShiftType, p.IsScreener)] = true
	}

	affected := make(map[string]analystWeek)
	touch := func(analystID string, d time.Time) {
		ws := domain.WeekStart(d)
		affected[analystID+"|"+ws.Format(domain.DateLayout)] = analystWeek{analystID: analystID, weekStart: ws}
	}

	applied := make(map[string]bool)

	if input.OverwriteExisting {
		// The stale-row sync runs in one transaction: a partial sync
		// would leave the range half old plan, half new.
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			schedules := repository.NewSQLiteScheduleRepo(tx)
			inRange, err := schedules.ListByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("load schedules for sync: %w", err)
			}
			for _, row := range inRange {
				if fullKeys[fullKey(row.AnalystID, row.Date, row.ShiftType, row.IsScreener)] {
					// Proposal reproduces the row exactly; keep it.
					applied[row.Key()] = true
					continue
				}
				if p, ok := byKey[row.Key()]; ok {
					row.ShiftType = p.ShiftType
					row.IsScreener = p.IsScreener
					if err := schedules.Update(ctx, row); err != nil {
						return fmt.Errorf("sync schedule %s: %w", row.ID, err)
					}
					applied[row.Key()] = true
					touch(row.AnalystID, row.Date)
					continue
				}
				if err := schedules.Delete(ctx, row.ID); err != nil {
					return fmt.Errorf("remove stale schedule %s: %w", row.ID, err)
				}
				touch(row.AnalystID, row.Date)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	for _, p := range result.ProposedSchedules {
		if applied[p.Key()] {
			continue
		}
		// Duplicate guard: in-batch set first, then the store itself.
		row, err := s.schedules.GetByAnalystAndDate(ctx, p.AnalystID, p.Date)
		if err != nil {
			s.captureRowError(result, p, err)
			continue
		}
		if row != nil {
			if !input.OverwriteExisting || (row.ShiftType == p.ShiftType && row.IsScreener == p.IsScreener) {
				applied[p.Key()] = true
				continue
			}
			row.ShiftType = p.ShiftType
			row.IsScreener = p.IsScreener
			if err := s.schedules.Update(ctx, row); err != nil {
				s.captureRowError(result, p, err)
				continue
			}
			applied[p.Key()] = true
			touch(p.AnalystID, p.Date)
			continue
		}
		now := s.now().UTC()
		if err := s.schedules.Create(ctx, &domain.Schedule{
			ID:         uuid.New().String(),
			AnalystID:  p.AnalystID,
			Date:       p.Date,
			ShiftType:  p.ShiftType,
			IsScreener: p.IsScreener,
			CreatedAt:  now,
			UpdatedAt:  now,
		}); err != nil {
			s.captureRowError(result, p, err)
			continue
		}
		applied[p.Key()] = true
		touch(p.AnalystID, p.Date)
	}

	// Per affected analyst-week: recompute workload and bank comp-off
	// for overtime. CreditOvertime is idempotent, so reprocessing a
	// week that multiple writes touched cannot double-credit.
	for _, ws := range affected {
		if _, err := s.workloads.ProcessOvertime(ctx, ws.analystID, ws.weekStart); err != nil {
			result.Conflicts = append(result.Conflicts, contract.Conflict{
				Type:     domain.ConflictConstraintViolation,
				Severity: domain.SeverityHigh,
				Message:  fmt.Sprintf("overtime processing failed for %s week %s: %v", ws.analystID, ws.weekStart.Format(domain.DateLayout), err),
				Date:     ws.weekStart,
			})
		}
	}

	// Rotation state advances last, and only on apply.
	for _, st := range states {
		if st == nil {
			continue
		}
		if err := s.stateMgr.Advance(ctx, st); err != nil {
			return fmt.Errorf("advance rotation state: %w", err)
		}
	}

	if s.cache != nil {
		for _, pattern := range []string{cache.SchedulesPattern, cache.AnalyticsPattern} {
			if err := s.cache.DeletePattern(ctx, pattern); err != nil {
				s.observer.ObserveUseCase(ctx, UseCaseEvent{
					Name: "generation.cache_invalidate", Success: false, Err: err,
				})
			}
		}
	}

	result.Applied = true
	return nil
}

// recheckGuards re-runs the adjacency rules over the final proposal set
// and drops violators. Generation already enforces the rules, but apply
// is the last line of defense and its drops must surface as coalesced
// conflicts.
func (s *generationService) recheckGuards(result *contract.GenerationResult) {
	daysByAnalyst := make(map[string]map[string]bool)
	for _, p := range result.ProposedSchedules {
		m := daysByAnalyst[p.AnalystID]
		if m == nil {
			m = make(map[string]bool)
			daysByAnalyst[p.AnalystID] = m
		}
		m[p.Date.Format(domain.DateLayout)] = true
	}

	var blocked []rotation.BlockedAssignment
	kept := result.ProposedSchedules[:0]
	for _, p := range result.ProposedSchedules {
		days := daysByAnalyst[p.AnalystID]
		key := p.Date.Format(domain.DateLayout)
		delete(days, key)
		if rule, hit := rotation.CheckAdjacency(days, p.Date); hit {
			blocked = append(blocked, rotation.BlockedAssignment{AnalystID: p.AnalystID, Date: p.Date, Rule: rule})
			continue
		}
		days[key] = true
		kept = append(kept, p)
	}
	result.ProposedSchedules = kept
	result.Conflicts = append(result.Conflicts, rotation.CoalesceGuardConflicts(blocked)...)
}

func (s *generationService) captureRowError(result *contract.GenerationResult, p contract.ProposedSchedule, err error) {
	result.Conflicts = append(result.Conflicts, contract.Conflict{
		Type:       domain.ConflictConstraintViolation,
		Severity:   domain.SeverityHigh,
		Message:    fmt.Sprintf("failed to apply %s %s for %s: %v", p.ShiftType, p.Date.Format(domain.DateLayout), p.AnalystID, err),
		Date:       p.Date,
		ShiftType:  p.ShiftType,
		AnalystIDs: []string{p.AnalystID},
	})
}

func fullKey(analystID string, d time.Time, shift domain.ShiftType, screener bool) string {
	return fmt.Sprintf("%s|%s|%s|%t", analystID, d.Format(domain.DateLayout), shift, screener)
}

type analystWeek struct {
	analystID string
	weekStart time.Time
}
