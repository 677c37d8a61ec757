package rotation

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

// CoalesceGuardConflicts folds blocked assignments into one conflict per
// (week, rule) pair listing every affected analyst, never one conflict
// per blocked assignment.
func CoalesceGuardConflicts(blocked []BlockedAssignment) []contract.Conflict {
	type bucket struct {
		week     time.Time
		rule     domain.GuardRule
		analysts map[string]bool
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, b := range blocked {
		week := b.GuardWeek()
		key := week.Format(domain.DateLayout) + "|" + string(b.Rule)
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{week: week, rule: b.Rule, analysts: make(map[string]bool)}
			buckets[key] = bk
			order = append(order, key)
		}
		bk.analysts[b.AnalystID] = true
	}
	sort.Strings(order)

	conflicts := make([]contract.Conflict, 0, len(order))
	for _, key := range order {
		bk := buckets[key]
		ids := make([]string, 0, len(bk.analysts))
		for id := range bk.analysts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		conflicts = append(conflicts, contract.Conflict{
			Type:       domain.ConflictGuardRuleViolation,
			Severity:   domain.SeverityMedium,
			Message:    guardMessage(bk.rule, bk.week, len(ids)),
			Date:       bk.week,
			Rule:       bk.rule,
			AnalystIDs: ids,
		})
	}
	return conflicts
}

func guardMessage(rule domain.GuardRule, week time.Time, n int) string {
	var desc string
	switch rule {
	case domain.GuardFridayAfterSunday:
		desc = "Friday assignment blocked for analysts working Sunday"
	case domain.GuardMondayAfterSaturday:
		desc = "Monday assignment blocked for analysts working the preceding Saturday"
	default:
		desc = "adjacency rule blocked assignments"
	}
	return fmt.Sprintf("%s in week of %s (%d analyst(s) affected)", desc, week.Format(domain.DateLayout), n)
}
