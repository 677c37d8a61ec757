package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFairnessReport_EvenLoadScoresHigh(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 2)
	seedWorkDays(t, env, roster[0].ID, domain.ShiftMorning, "2025-06-02", "2025-06-03")
	seedWorkDays(t, env, roster[1].ID, domain.ShiftMorning, "2025-06-04", "2025-06-05")
	svc := env.fairnessService()

	metrics, err := svc.Report(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	require.Len(t, metrics.IndividualScores, 2)
	assert.InDelta(t, 1.0, metrics.OverallFairnessScore, 1e-9)
	for _, s := range metrics.IndividualScores {
		assert.NotEmpty(t, s.AnalystName)
		assert.InDelta(t, 1.0, s.Score, 1e-9)
	}
}

func TestFairnessReport_SkewedLoadRecommends(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 2)
	seedWorkDays(t, env, roster[0].ID, domain.ShiftMorning,
		"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06")
	seedWorkDays(t, env, roster[1].ID, domain.ShiftMorning, "2025-06-02")
	svc := env.fairnessService()

	metrics, err := svc.Report(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.Less(t, metrics.OverallFairnessScore, 1.0)
	assert.NotEmpty(t, metrics.Recommendations)
}

func TestFairnessReport_EmptyRangeSentinel(t *testing.T) {
	env := setupEnv(t)
	seedAnalysts(t, env, domain.ShiftMorning, 2)
	svc := env.fairnessService()

	metrics, err := svc.Report(context.Background(), day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, metrics.OverallFairnessScore, 1e-9)
}

func TestFairnessReport_CachedUntilInvalidated(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 2)
	seedWorkDays(t, env, roster[0].ID, domain.ShiftMorning, "2025-06-02")
	seedWorkDays(t, env, roster[1].ID, domain.ShiftMorning, "2025-06-03")
	svc := env.fairnessService()

	first, err := svc.Report(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)

	// Heavier load for one analyst, but the cached report still serves.
	seedWorkDays(t, env, roster[0].ID, domain.ShiftMorning, "2025-06-04", "2025-06-05", "2025-06-06")
	cached, err := svc.Report(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.Equal(t, first.OverallFairnessScore, cached.OverallFairnessScore)

	require.NoError(t, env.cache.DeletePattern(ctx, "analytics:*"))
	fresh, err := svc.Report(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.Less(t, fresh.OverallFairnessScore, first.OverallFairnessScore)
}
