package rotation

import (
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeightedWorkload_AdditiveModel(t *testing.T) {
	// Monday morning, plain: base only.
	assert.Equal(t, 1.0, WeightedWorkload([]contract.ProposedSchedule{
		{Date: day("2025-06-02"), ShiftType: domain.ShiftMorning},
	}))

	// Saturday evening screener: base + weekend + screener + evening.
	assert.Equal(t, 3.5, WeightedWorkload([]contract.ProposedSchedule{
		{Date: day("2025-06-07"), ShiftType: domain.ShiftEvening, IsScreener: true},
	}))
}

func TestWeightedWorkload_ConsecutiveScreenerPenalty(t *testing.T) {
	// Two back-to-back weekday morning screener days: (1+1) + (1+1+1).
	load := WeightedWorkload([]contract.ProposedSchedule{
		{Date: day("2025-06-02"), ShiftType: domain.ShiftMorning, IsScreener: true},
		{Date: day("2025-06-03"), ShiftType: domain.ShiftMorning, IsScreener: true},
	})
	assert.Equal(t, 5.0, load)

	// Same days, input order reversed: detection sorts internally.
	reversed := WeightedWorkload([]contract.ProposedSchedule{
		{Date: day("2025-06-03"), ShiftType: domain.ShiftMorning, IsScreener: true},
		{Date: day("2025-06-02"), ShiftType: domain.ShiftMorning, IsScreener: true},
	})
	assert.Equal(t, load, reversed)

	// A one-day gap breaks the streak.
	gapped := WeightedWorkload([]contract.ProposedSchedule{
		{Date: day("2025-06-02"), ShiftType: domain.ShiftMorning, IsScreener: true},
		{Date: day("2025-06-04"), ShiftType: domain.ShiftMorning, IsScreener: true},
	})
	assert.Equal(t, 4.0, gapped)
}

func TestIndividualFairnessScore_Bounds(t *testing.T) {
	assert.Equal(t, 1.0, IndividualFairnessScore(5, 5))
	assert.Equal(t, 1.0, IndividualFairnessScore(0, 0))
	assert.Equal(t, 0.0, IndividualFairnessScore(20, 5))
	assert.InDelta(t, 0.8, IndividualFairnessScore(4, 5), 1e-9)
}

func TestCalculateFairness_EmptySetReturnsSentinel(t *testing.T) {
	metrics := CalculateFairness(nil, nil)
	assert.Equal(t, 1.0, metrics.OverallFairnessScore)
	assert.Empty(t, metrics.IndividualScores)
}

func TestCalculateFairness_EvenDistribution(t *testing.T) {
	schedules := []contract.ProposedSchedule{
		{Date: day("2025-06-02"), AnalystID: "a-1", AnalystName: "Ada", ShiftType: domain.ShiftMorning},
		{Date: day("2025-06-03"), AnalystID: "a-2", AnalystName: "Ben", ShiftType: domain.ShiftMorning},
	}
	analysts := []*domain.Analyst{
		{ID: "a-1", Name: "Ada"},
		{ID: "a-2", Name: "Ben"},
	}

	metrics := CalculateFairness(schedules, analysts)

	assert.Equal(t, 1.0, metrics.OverallFairnessScore)
	require.Len(t, metrics.IndividualScores, 2)
	for _, s := range metrics.IndividualScores {
		assert.Equal(t, 1.0, s.Score)
	}
	assert.Empty(t, metrics.Recommendations)
}

func TestCalculateFairness_SkewedLoadRecommends(t *testing.T) {
	// a-1 carries a weekend screener block, a-2 one plain weekday.
	schedules := []contract.ProposedSchedule{
		{Date: day("2025-06-07"), AnalystID: "a-1", AnalystName: "Ada", ShiftType: domain.ShiftWeekend, IsScreener: true},
		{Date: day("2025-06-08"), AnalystID: "a-1", AnalystName: "Ada", ShiftType: domain.ShiftWeekend, IsScreener: true},
		{Date: day("2025-06-02"), AnalystID: "a-2", AnalystName: "Ben", ShiftType: domain.ShiftMorning},
	}

	metrics := CalculateFairness(schedules, nil)

	assert.Less(t, metrics.OverallFairnessScore, 1.0)
	assert.GreaterOrEqual(t, metrics.OverallFairnessScore, 0.0)
	assert.NotEmpty(t, metrics.Recommendations)

	// Scores stay ordered by analyst id regardless of map iteration.
	require.Len(t, metrics.IndividualScores, 2)
	assert.Equal(t, "a-1", metrics.IndividualScores[0].AnalystID)
	assert.Equal(t, "a-2", metrics.IndividualScores[1].AnalystID)
}
