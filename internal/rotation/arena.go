package rotation

import (
	"time"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

// Arena holds proposed assignments in an indexed collection. Screener
// promotion mutates the IsScreener flag of an existing entry in place;
// a duplicate (analyst, day) add is rejected, never stored twice.
type Arena struct {
	entries    []contract.ProposedSchedule
	byKey      map[string]int
	byDayShift map[string][]int
}

func NewArena() *Arena {
	return &Arena{
		byKey:      make(map[string]int),
		byDayShift: make(map[string][]int),
	}
}

func dayShiftKey(date time.Time, shift domain.ShiftType) string {
	return date.Format(domain.DateLayout) + "|" + string(shift)
}

// Add appends a proposal and indexes it. Returns false if the analyst
// already has an entry for that day.
func (a *Arena) Add(p contract.ProposedSchedule) bool {
	key := p.Key()
	if _, exists := a.byKey[key]; exists {
		return false
	}
	idx := len(a.entries)
	a.entries = append(a.entries, p)
	a.byKey[key] = idx
	dsk := dayShiftKey(p.Date, p.ShiftType)
	a.byDayShift[dsk] = append(a.byDayShift[dsk], idx)
	return true
}

// Has reports whether the analyst is already assigned on the given day.
func (a *Arena) Has(analystID string, date time.Time) bool {
	_, ok := a.byKey[analystID+"|"+date.Format(domain.DateLayout)]
	return ok
}

// EntriesFor returns the indices of proposals for a (day, shift) slot.
func (a *Arena) EntriesFor(date time.Time, shift domain.ShiftType) []int {
	return a.byDayShift[dayShiftKey(date, shift)]
}

// PromoteScreener flips the IsScreener flag on the entry at idx.
func (a *Arena) PromoteScreener(idx int) {
	a.entries[idx].IsScreener = true
}

// At returns the entry at idx.
func (a *Arena) At(idx int) contract.ProposedSchedule {
	return a.entries[idx]
}

// Len returns the number of proposals.
func (a *Arena) Len() int {
	return len(a.entries)
}

// Entries returns a copy of all proposals in insertion order.
func (a *Arena) Entries() []contract.ProposedSchedule {
	out := make([]contract.ProposedSchedule, len(a.entries))
	copy(out, a.entries)
	return out
}

// DatesFor returns the set of days the analyst is assigned, from both
// this arena and the provided pre-existing schedules.
func (a *Arena) DatesFor(analystID string, existing []*domain.Schedule) map[string]bool {
	days := make(map[string]bool)
	for _, e := range a.entries {
		if e.AnalystID == analystID {
			days[e.Date.Format(domain.DateLayout)] = true
		}
	}
	for _, s := range existing {
		if s.AnalystID == analystID {
			days[s.Date.Format(domain.DateLayout)] = true
		}
	}
	return days
}
