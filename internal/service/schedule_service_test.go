package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleListRange_CachedAndInvalidatedByWrites(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.scheduleService()

	row := testutil.NewTestSchedule(roster[0].ID, day("2025-06-02"))
	require.NoError(t, env.schedules.Create(ctx, row))

	first, err := svc.ListRange(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].IsScreener)

	require.NoError(t, svc.SetScreener(ctx, row.ID, true))

	fresh, err := svc.ListRange(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.True(t, fresh[0].IsScreener)
}

func TestScheduleListRange_RejectsInvertedRange(t *testing.T) {
	env := setupEnv(t)
	svc := env.scheduleService()

	_, err := svc.ListRange(context.Background(), day("2025-06-07"), day("2025-06-01"))
	assert.Error(t, err)
}

func TestScheduleSetShiftType(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.scheduleService()

	row := testutil.NewTestSchedule(roster[0].ID, day("2025-06-02"))
	require.NoError(t, env.schedules.Create(ctx, row))

	require.Error(t, svc.SetShiftType(ctx, row.ID, "NIGHT"))
	require.NoError(t, svc.SetShiftType(ctx, row.ID, domain.ShiftEvening))

	got, err := env.schedules.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftEvening, got.ShiftType)
}

func TestScheduleSetScreener_NoOpKeepsUpdatedAt(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.scheduleService()

	row := testutil.NewTestSchedule(roster[0].ID, day("2025-06-02"))
	require.NoError(t, env.schedules.Create(ctx, row))
	before, err := env.schedules.GetByID(ctx, row.ID)
	require.NoError(t, err)

	require.NoError(t, svc.SetScreener(ctx, row.ID, false))

	after, err := env.schedules.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestScheduleDelete(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.scheduleService()

	row := testutil.NewTestSchedule(roster[0].ID, day("2025-06-02"))
	require.NoError(t, env.schedules.Create(ctx, row))
	require.NoError(t, svc.Delete(ctx, row.ID))

	rows, err := svc.ListRange(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
