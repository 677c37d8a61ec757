package workload

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rota/internal/domain"
)

// Pure weekly workload analysis. The caller loads the analyst's
// schedules and comp-off ledger; everything here is deterministic
// arithmetic over those rows.

// Consecutive-day runs longer than this trip the excessive-days
// violation.
const maxConsecutiveDays = 6

// UnbalancedWeekFloor is the minimum total work days below which a
// non-empty week counts as unbalanced.
const UnbalancedWeekFloor = 3

// Analyze computes one analyst's workload for the Sunday-anchored week
// containing weekStart. The schedules slice may extend beyond the week;
// out-of-week rows only feed consecutive-day detection.
func Analyze(analystID string, weekStart time.Time, schedules []*domain.Schedule, ledger []*domain.CompOffTransaction, calendar domain.HolidayCalendar) domain.WeeklyWorkload {
	if calendar == nil {
		calendar = domain.USHolidayCalendar{}
	}
	start := domain.WeekStart(weekStart)
	end := domain.WeekEnd(weekStart)

	w := domain.WeeklyWorkload{
		AnalystID: analystID,
		WeekStart: start,
		WeekEnd:   end,
	}

	seen := make(map[string]bool)
	var allDays []time.Time
	for _, s := range schedules {
		if s.AnalystID != analystID {
			continue
		}
		d := domain.DateOnly(s.Date)
		key := d.Format(domain.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		allDays = append(allDays, d)

		if d.Before(start) || d.After(end) {
			continue
		}
		w.ScheduledWorkDays++
		if domain.IsWeekendDay(d) {
			w.WeekendWorkDays++
		}
		if calendar.IsHoliday(d) {
			w.HolidayWorkDays++
		}
	}

	auto, banked := compOffDays(ledger, analystID, start)
	w.AutoCompOffDays = auto
	w.BankedCompOffDays = banked
	w.TotalWorkDays = w.ScheduledWorkDays

	w.OvertimeDays = w.ScheduledWorkDays - w.AutoCompOffDays - domain.WorkWeekDays
	if w.OvertimeDays < 0 {
		w.OvertimeDays = 0
	}

	w.Violations = DetectViolations(w, longestRun(allDays, start, end))
	w.IsBalanced = len(w.Violations) == 0
	return w
}

// DetectViolations evaluates the policy checks for one analyzed week,
// in priority order.
func DetectViolations(w domain.WeeklyWorkload, consecutiveDays int) []domain.WorkloadViolation {
	var out []domain.WorkloadViolation

	if w.OvertimeDays > 0 {
		sev := domain.SeverityHigh
		if w.OvertimeDays > 2 {
			sev = domain.SeverityCritical
		}
		out = append(out, domain.WorkloadViolation{
			Type:         domain.ViolationOvertime,
			Severity:     sev,
			Description:  fmt.Sprintf("%d overtime day(s) in week of %s", w.OvertimeDays, w.WeekStart.Format(domain.DateLayout)),
			SuggestedFix: "credit comp-off for the overtime days or move shifts to an adjacent week",
		})
	}

	if w.WeekendWorkDays > 0 && w.AutoCompOffDays == 0 && w.BankedCompOffDays == 0 {
		out = append(out, domain.WorkloadViolation{
			Type:         domain.ViolationMissingCompOff,
			Severity:     domain.SeverityCritical,
			Description:  fmt.Sprintf("%d weekend day(s) worked without any comp-off", w.WeekendWorkDays),
			SuggestedFix: "bank a comp-off day for the weekend work",
		})
	}

	if w.TotalWorkDays > 0 && w.TotalWorkDays < UnbalancedWeekFloor {
		out = append(out, domain.WorkloadViolation{
			Type:         domain.ViolationUnbalancedWeek,
			Severity:     domain.SeverityMedium,
			Description:  fmt.Sprintf("only %d work day(s) scheduled", w.TotalWorkDays),
			SuggestedFix: "spread assignments more evenly across weeks",
		})
	}

	if consecutiveDays > maxConsecutiveDays {
		out = append(out, domain.WorkloadViolation{
			Type:         domain.ViolationExcessiveConsecutive,
			Severity:     domain.SeverityHigh,
			Description:  fmt.Sprintf("%d consecutive scheduled days", consecutiveDays),
			SuggestedFix: "insert a rest day into the run",
		})
	}
	return out
}

// compOffDays sums the auto-assigned and banked comp-off day counts for
// one week of the ledger. Amounts are truncated to whole days.
func compOffDays(ledger []*domain.CompOffTransaction, analystID string, weekStart time.Time) (auto, banked int) {
	autoSum := decimal.Zero
	bankedSum := decimal.Zero
	for _, t := range ledger {
		if t.AnalystID != analystID || t.Type == domain.CompOffUsed {
			continue
		}
		if !domain.WeekStart(t.WeekStart).Equal(weekStart) {
			continue
		}
		if t.IsAutoAssigned {
			autoSum = autoSum.Add(t.Amount)
		}
		if t.IsBanked {
			bankedSum = bankedSum.Add(t.Amount)
		}
	}
	return int(autoSum.IntPart()), int(bankedSum.IntPart())
}

// longestRun returns the longest consecutive-day run that touches the
// [start, end] window.
func longestRun(days []time.Time, start, end time.Time) int {
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 0, 1
	runStart := days[0]
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			continue
		}
		if touches(runStart, days[i-1], start, end) && run > best {
			best = run
		}
		run = 1
		runStart = days[i]
	}
	if touches(runStart, days[len(days)-1], start, end) && run > best {
		best = run
	}
	return best
}

func touches(runStart, runEnd, start, end time.Time) bool {
	return !runEnd.Before(start) && !runStart.After(end)
}
