package rotation

import (
	"time"

	"github.com/alexanderramin/rota/internal/domain"
)

// The adjacency guard rules are hard constraints, not preferences:
//   - an analyst who works Sunday of a week may not work Friday of the
//     same (Sunday-anchored) week, and vice versa;
//   - an analyst who works Saturday may not work the following Monday,
//     and vice versa.
// Checks are pairwise so the invariant holds regardless of which day of
// the pair is proposed first.

// CheckAdjacency reports the guard rule a candidate day would violate
// given the analyst's other assigned days (DateLayout-keyed set).
// Returns ("", false) when the assignment is allowed.
func CheckAdjacency(assignedDays map[string]bool, candidate time.Time) (domain.GuardRule, bool) {
	day := domain.DateOnly(candidate)
	has := func(t time.Time) bool {
		return assignedDays[t.Format(domain.DateLayout)]
	}

	switch day.Weekday() {
	case time.Friday:
		// Sunday of the same week is five days back.
		if has(domain.WeekStart(day)) {
			return domain.GuardFridayAfterSunday, true
		}
	case time.Sunday:
		if has(day.AddDate(0, 0, 5)) {
			return domain.GuardFridayAfterSunday, true
		}
	case time.Monday:
		// Saturday of the previous week is two days back.
		if has(day.AddDate(0, 0, -2)) {
			return domain.GuardMondayAfterSaturday, true
		}
	case time.Saturday:
		if has(day.AddDate(0, 0, 2)) {
			return domain.GuardMondayAfterSaturday, true
		}
	}
	return "", false
}

// BlockedAssignment records an assignment dropped by a guard rule,
// the raw material for coalesced conflict reporting.
type BlockedAssignment struct {
	AnalystID string
	Date      time.Time
	Rule      domain.GuardRule
}

// GuardWeek returns the Sunday-anchored week a blocked assignment is
// coalesced under. Monday-after-Saturday blocks belong to the week of
// the Saturday, so both ends of the pair land in the same bucket.
func (b BlockedAssignment) GuardWeek() time.Time {
	day := domain.DateOnly(b.Date)
	if b.Rule == domain.GuardMondayAfterSaturday && day.Weekday() == time.Monday {
		return domain.WeekStart(day.AddDate(0, 0, -2))
	}
	return domain.WeekStart(day)
}
