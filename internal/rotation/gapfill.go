package rotation

import (
	"time"

	"github.com/alexanderramin/rota/internal/domain"
)

// Gap is a weekday slot with no coverage from either proposed or
// pre-existing schedules.
type Gap struct {
	Date  time.Time
	Shift domain.ShiftType
}

// FindGaps scans the weekdays of [start,end] and reports every
// (day, shift) slot among MORNING and EVENING with zero coverage.
// Shifts whose pool is empty are not reported; there is nobody to ask.
func FindGaps(arena *Arena, existing *ExistingIndex, pools map[domain.ShiftType][]*domain.Analyst, start, end time.Time) []Gap {
	var gaps []Gap
	for day := domain.DateOnly(start); !day.After(domain.DateOnly(end)); day = day.AddDate(0, 0, 1) {
		if domain.IsWeekendDay(day) {
			continue
		}
		for _, shift := range []domain.ShiftType{domain.ShiftMorning, domain.ShiftEvening} {
			if len(pools[shift]) == 0 {
				continue
			}
			if len(arena.EntriesFor(day, shift)) > 0 || existing.CountForDayShift(day, shift) > 0 {
				continue
			}
			gaps = append(gaps, Gap{Date: day, Shift: shift})
		}
	}
	return gaps
}

// FillGaps runs one repair round over the given gaps: for each, the
// first pool candidate who is available, not already assigned that day,
// and not blocked by an adjacency guard is proposed. Guard-blocked
// candidates are dropped and recorded for conflict coalescing, then the
// search moves on to the next candidate. Returns the number of
// assignments added.
func FillGaps(arena *Arena, gaps []Gap, pools map[domain.ShiftType][]*domain.Analyst, elig *Eligibility, existing *ExistingIndex) (int, []BlockedAssignment) {
	added := 0
	var blocked []BlockedAssignment
	for _, g := range gaps {
		for _, a := range pools[g.Shift] {
			if !elig.Available(a, g.Date) || arena.Has(a.ID, g.Date) || existing.Has(a.ID, g.Date) {
				continue
			}
			if rule, hit := CheckAdjacency(arena.DatesFor(a.ID, existing.All()), g.Date); hit {
				blocked = append(blocked, BlockedAssignment{AnalystID: a.ID, Date: g.Date, Rule: rule})
				continue
			}
			arena.Add(proposal(a, g.Date, g.Shift))
			added++
			break
		}
	}
	return added, blocked
}
