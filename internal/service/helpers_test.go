package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/cache"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db          *sql.DB
	analysts    *repository.SQLiteAnalystRepo
	schedules   *repository.SQLiteScheduleRepo
	vacations   *repository.SQLiteVacationRepo
	constraints *repository.SQLiteConstraintRepo
	states      *repository.SQLiteRotationStateRepo
	compOffs    *repository.SQLiteCompOffRepo
	cache       *cache.MemoryCache
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:          database,
		analysts:    repository.NewSQLiteAnalystRepo(database),
		schedules:   repository.NewSQLiteScheduleRepo(database),
		vacations:   repository.NewSQLiteVacationRepo(database),
		constraints: repository.NewSQLiteConstraintRepo(database),
		states:      repository.NewSQLiteRotationStateRepo(database),
		compOffs:    repository.NewSQLiteCompOffRepo(database),
		cache:       cache.NewMemoryCache(),
	}
}

func (e *testEnv) compOffService() CompOffService {
	return NewCompOffService(e.compOffs, e.analysts)
}

func (e *testEnv) workloadService() WorkloadService {
	return NewWorkloadService(e.schedules, e.compOffs, e.compOffService(), e.cache, domain.NoHolidays{})
}

func (e *testEnv) generationService() GenerationService {
	return e.generationServiceWithUoW(testutil.NewTestUoW(e.db))
}

func (e *testEnv) generationServiceWithUoW(uow db.UnitOfWork) GenerationService {
	return NewGenerationService(
		e.analysts, e.schedules, e.vacations, e.constraints, e.states,
		uow, nil, e.workloadService(), e.cache, domain.NoHolidays{},
	)
}

func (e *testEnv) analystService() AnalystService {
	return NewAnalystService(e.analysts, e.cache)
}

func (e *testEnv) scheduleService() ScheduleService {
	return NewScheduleService(e.schedules, e.cache)
}

func (e *testEnv) vacationService() VacationService {
	return NewVacationService(e.vacations, e.analysts)
}

func (e *testEnv) constraintService() ConstraintService {
	return NewConstraintService(e.constraints, e.analysts)
}

func (e *testEnv) fairnessService() FairnessService {
	return NewFairnessService(e.schedules, e.analysts, e.cache)
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedAnalysts(t *testing.T, env *testEnv, shift domain.ShiftType, n int) []*domain.Analyst {
	t.Helper()
	ctx := context.Background()
	out := make([]*domain.Analyst, n)
	for i := range out {
		a := testutil.NewTestAnalyst(fmt.Sprintf("%s analyst %d", shift, i+1), testutil.WithShiftType(shift))
		require.NoError(t, env.analysts.Create(ctx, a))
		out[i] = a
	}
	return out
}
