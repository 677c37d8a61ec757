package rotation

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

// Fairness scoring is pure and deterministic: no I/O, no clock.
//
// Weighted workload per assignment: 1.0 base, +1.0 on a weekend day,
// +1.0 for screener duty, +0.5 for an evening shift, and +1.0 extra
// when the analyst was also screener the previous calendar day.

const (
	weightBase                = 1.0
	weightWeekend             = 1.0
	weightScreener            = 1.0
	weightEvening             = 0.5
	weightConsecutiveScreener = 1.0
)

// Recommendation thresholds (weighted-load spread and per-analyst score).
const (
	spreadThreshold    = 2.0
	lowScoreThreshold  = 0.7
	overallOKThreshold = 0.8
)

// WeightedWorkload computes the weighted load of one analyst's
// assignments. The slice may be in any order; consecutive-screener
// detection sorts by date internally.
func WeightedWorkload(assignments []contract.ProposedSchedule) float64 {
	sorted := make([]contract.ProposedSchedule, len(assignments))
	copy(sorted, assignments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	var load float64
	for i, a := range sorted {
		load += weightBase
		if domain.IsWeekendDay(a.Date) {
			load += weightWeekend
		}
		if a.IsScreener {
			load += weightScreener
			if i > 0 && sorted[i-1].IsScreener &&
				sorted[i-1].Date.AddDate(0, 0, 1).Equal(domain.DateOnly(a.Date)) {
				load += weightConsecutiveScreener
			}
		}
		if a.ShiftType == domain.ShiftEvening {
			load += weightEvening
		}
	}
	return load
}

// IndividualFairnessScore scores one analyst's weighted load against the
// team mean: 1.0 means perfectly aligned, decaying toward 0 as the load
// diverges. With a zero team mean there is nothing to diverge from, so
// the score is the 1.0 sentinel.
func IndividualFairnessScore(load, teamMean float64) float64 {
	if teamMean == 0 {
		return 1.0
	}
	score := 1.0 - math.Abs(load-teamMean)/teamMean
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// CalculateFairness scores the full proposed set. Analysts with no
// assignments are excluded from the mean; an empty schedule set returns
// the 1.0 sentinel rather than NaN from an empty average.
func CalculateFairness(schedules []contract.ProposedSchedule, analysts []*domain.Analyst) contract.FairnessMetrics {
	if len(schedules) == 0 {
		return contract.FairnessMetrics{OverallFairnessScore: 1.0}
	}

	byAnalyst := make(map[string][]contract.ProposedSchedule)
	for _, s := range schedules {
		byAnalyst[s.AnalystID] = append(byAnalyst[s.AnalystID], s)
	}

	names := make(map[string]string, len(analysts))
	for _, a := range analysts {
		names[a.ID] = a.Name
	}

	ids := make([]string, 0, len(byAnalyst))
	loads := make(map[string]float64, len(byAnalyst))
	var total float64
	for id, list := range byAnalyst {
		ids = append(ids, id)
		loads[id] = WeightedWorkload(list)
		total += loads[id]
	}
	sort.Strings(ids)
	mean := total / float64(len(ids))

	metrics := contract.FairnessMetrics{
		IndividualScores: make([]contract.IndividualScore, 0, len(ids)),
	}
	var scoreSum, minLoad, maxLoad float64
	minLoad = math.Inf(1)
	lowestIdx := 0
	for i, id := range ids {
		score := IndividualFairnessScore(loads[id], mean)
		name := names[id]
		if name == "" {
			// Proposals carry the name; fall back to it for analysts
			// missing from the roster snapshot.
			name = byAnalyst[id][0].AnalystName
		}
		metrics.IndividualScores = append(metrics.IndividualScores,
			contract.IndividualScore{AnalystID: id, AnalystName: name, Score: score})
		scoreSum += score
		if loads[id] < minLoad {
			minLoad = loads[id]
		}
		if loads[id] > maxLoad {
			maxLoad = loads[id]
		}
		if score < metrics.IndividualScores[lowestIdx].Score {
			lowestIdx = i
		}
	}
	metrics.OverallFairnessScore = scoreSum / float64(len(ids))

	if maxLoad-minLoad > spreadThreshold {
		metrics.Recommendations = append(metrics.Recommendations,
			fmt.Sprintf("Weighted workload spread is %.1f; shift weekend or screener duty from the most loaded analysts to the least loaded", maxLoad-minLoad))
	}
	if lowest := metrics.IndividualScores[lowestIdx]; lowest.Score < lowScoreThreshold {
		metrics.Recommendations = append(metrics.Recommendations,
			fmt.Sprintf("%s deviates most from the team average; review their weekend and screener share", lowest.AnalystName))
	}
	if metrics.OverallFairnessScore < overallOKThreshold {
		metrics.Recommendations = append(metrics.Recommendations,
			"Overall fairness is below target; consider regenerating with a wider date range to let the rotation even out")
	}
	return metrics
}
