package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekInput(start, end string) contract.GenerationInput {
	return contract.NewGenerationInput(day(start), day(end), domain.AlgorithmWeekendRotation)
}

func TestPreview_NoPersistenceSideEffects(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedAnalysts(t, env, domain.ShiftMorning, 3)
	svc := env.generationService()

	result, err := svc.Preview(ctx, weekInput("2025-06-02", "2025-06-06"))
	require.NoError(t, err)
	require.Len(t, result.ProposedSchedules, 5)
	assert.False(t, result.Applied)

	// Nothing written: no schedules, no rotation state.
	rows, err := env.schedules.ListByDateRange(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	state, err := env.states.Get(ctx, domain.AlgorithmWeekendRotation, domain.ShiftMorning)
	require.NoError(t, err)
	assert.Nil(t, state)

	// Repeated previews yield identical proposals.
	again, err := svc.Preview(ctx, weekInput("2025-06-02", "2025-06-06"))
	require.NoError(t, err)
	assert.Equal(t, result.ProposedSchedules, again.ProposedSchedules)
}

func TestApply_PersistsSchedulesAndAdvancesState(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedAnalysts(t, env, domain.ShiftMorning, 3)
	svc := env.generationService()

	result, err := svc.Apply(ctx, weekInput("2025-06-02", "2025-06-06"))
	require.NoError(t, err)
	assert.True(t, result.Applied)

	rows, err := env.schedules.ListByDateRange(ctx, day("2025-06-02"), day("2025-06-06"))
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	state, err := env.states.Get(ctx, domain.AlgorithmWeekendRotation, domain.ShiftMorning)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.False(t, state.LastUpdated.IsZero())
}

func TestApply_ReapplySameRangeIsDuplicateSafe(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedAnalysts(t, env, domain.ShiftMorning, 3)
	svc := env.generationService()

	_, err := svc.Apply(ctx, weekInput("2025-06-02", "2025-06-06"))
	require.NoError(t, err)
	_, err = svc.Apply(ctx, weekInput("2025-06-02", "2025-06-06"))
	require.NoError(t, err)

	rows, err := env.schedules.ListByDateRange(ctx, day("2025-06-02"), day("2025-06-06"))
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	seen := make(map[string]bool)
	for _, r := range rows {
		require.False(t, seen[r.Key()], "duplicate row for %s", r.Key())
		seen[r.Key()] = true
	}
}

func TestApply_OverwriteSyncRemovesStaleRows(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 3)
	svc := env.generationService()

	// A stray weekend-typed row inside the range that regeneration will
	// not reproduce.
	stale := testutil.NewTestSchedule(roster[0].ID, day("2025-06-03"), testutil.WithScheduleShift(domain.ShiftWeekend))
	require.NoError(t, env.schedules.Create(ctx, stale))

	in := weekInput("2025-06-02", "2025-06-06")
	in.OverwriteExisting = true
	_, err := svc.Apply(ctx, in)
	require.NoError(t, err)

	rows, err := env.schedules.ListByDateRange(ctx, day("2025-06-02"), day("2025-06-06"))
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	for _, r := range rows {
		assert.Equal(t, domain.ShiftMorning, r.ShiftType)
	}
}

func TestApply_WithoutOverwriteKeepsExistingRows(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 3)
	svc := env.generationService()

	kept := testutil.NewTestSchedule(roster[0].ID, day("2025-06-03"), testutil.WithScreener())
	require.NoError(t, env.schedules.Create(ctx, kept))

	_, err := svc.Apply(ctx, weekInput("2025-06-02", "2025-06-06"))
	require.NoError(t, err)

	row, err := env.schedules.GetByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.True(t, row.IsScreener)
	assert.Equal(t, kept.ShiftType, row.ShiftType)
}

func TestApply_WeekendOvertimeBanksCompOffOnce(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftWeekend, 1)
	svc := env.generationService()

	// One analyst holds both tracks: Sun-Thu plus Sat is six days, one
	// day of overtime.
	_, err := svc.Apply(ctx, weekInput("2025-06-01", "2025-06-07"))
	require.NoError(t, err)

	balance, err := env.compOffs.Balance(ctx, roster[0].ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1)), "expected 1 comp-off day, got %s", balance)

	// A retried apply must not double-credit the same week.
	_, err = svc.Apply(ctx, weekInput("2025-06-01", "2025-06-07"))
	require.NoError(t, err)

	balance, err = env.compOffs.Balance(ctx, roster[0].ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1)), "re-apply double-credited: %s", balance)
}

func TestPreview_UnknownAlgorithm(t *testing.T) {
	env := setupEnv(t)
	seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.generationService()

	in := weekInput("2025-06-02", "2025-06-06")
	in.AlgorithmType = "FANCY_ROTATION"

	_, err := svc.Preview(context.Background(), in)
	var genErr *contract.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, contract.ErrUnknownAlgorithm, genErr.Code)
}

func TestPreview_NoEligibleAnalysts(t *testing.T) {
	env := setupEnv(t)
	svc := env.generationService()

	_, err := svc.Preview(context.Background(), weekInput("2025-06-02", "2025-06-06"))
	var genErr *contract.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, contract.ErrNoEligibleAnalysts, genErr.Code)
}

func TestApply_OverwriteSyncRollsBackOnFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	analysts := seedAnalysts(t, env, domain.ShiftMorning, 1)

	stale := []*domain.Schedule{
		testutil.NewTestSchedule(analysts[0].ID, day("2025-06-03"), testutil.WithScheduleShift(domain.ShiftWeekend)),
		testutil.NewTestSchedule(analysts[0].ID, day("2025-06-04"), testutil.WithScheduleShift(domain.ShiftWeekend)),
	}
	for _, row := range stale {
		require.NoError(t, env.schedules.Create(ctx, row))
	}

	svc := env.generationServiceWithUoW(&testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 2,
		Err:    errors.New("disk I/O error"),
	})

	in := weekInput("2025-06-02", "2025-06-06")
	in.OverwriteExisting = true
	_, err := svc.Apply(ctx, in)
	require.Error(t, err)

	// The failed sync rolled back whole: both stale rows survive with
	// their original shift, and the rotation never advanced.
	for _, row := range stale {
		got, err := env.schedules.GetByID(ctx, row.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ShiftWeekend, got.ShiftType)
	}
	state, err := env.states.Get(ctx, domain.AlgorithmWeekendRotation, domain.ShiftMorning)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestApply_WeekendOnlyRangeLeavesWeekdayCycleUntouched(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.generationService()

	// 2025-03-01 is a Saturday: the range holds no weekday slot, so the
	// MORNING cycle never starts. Apply must still complete cleanly.
	result, err := svc.Apply(ctx, weekInput("2025-03-01", "2025-03-02"))
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Empty(t, result.ProposedSchedules)

	state, err := env.states.Get(ctx, domain.AlgorithmWeekendRotation, domain.ShiftMorning)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestApply_GuardInvariantHolds(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedAnalysts(t, env, domain.ShiftWeekend, 2)
	seedAnalysts(t, env, domain.ShiftMorning, 3)
	svc := env.generationService()

	_, err := svc.Apply(ctx, weekInput("2025-06-01", "2025-06-14"))
	require.NoError(t, err)

	rows, err := env.schedules.ListByDateRange(ctx, day("2025-06-01"), day("2025-06-14"))
	require.NoError(t, err)

	byAnalyst := make(map[string]map[string]bool)
	for _, r := range rows {
		if byAnalyst[r.AnalystID] == nil {
			byAnalyst[r.AnalystID] = make(map[string]bool)
		}
		byAnalyst[r.AnalystID][r.Date.Format(domain.DateLayout)] = true
	}
	for id, days := range byAnalyst {
		for _, wk := range []string{"2025-06-01", "2025-06-08"} {
			sunday := day(wk)
			if days[sunday.Format(domain.DateLayout)] {
				friday := sunday.AddDate(0, 0, 5)
				assert.False(t, days[friday.Format(domain.DateLayout)],
					"analyst %s works both Sunday %s and Friday", id, wk)
			}
			saturday := sunday.AddDate(0, 0, 6)
			if days[saturday.Format(domain.DateLayout)] {
				monday := saturday.AddDate(0, 0, 2)
				assert.False(t, days[monday.Format(domain.DateLayout)],
					"analyst %s works Saturday %s and the next Monday", id, saturday.Format(domain.DateLayout))
			}
		}
	}
}
