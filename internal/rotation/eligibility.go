package rotation

import (
	"time"

	"github.com/alexanderramin/rota/internal/domain"
)

// Eligibility answers per-day availability questions for the candidate
// pool: approved vacations and active constraints block assignment,
// inactive analysts are never available.
type Eligibility struct {
	vacations   map[string][]*domain.Vacation
	constraints []*domain.SchedulingConstraint
}

func NewEligibility(vacations []*domain.Vacation, constraints []*domain.SchedulingConstraint) *Eligibility {
	byAnalyst := make(map[string][]*domain.Vacation)
	for _, v := range vacations {
		byAnalyst[v.AnalystID] = append(byAnalyst[v.AnalystID], v)
	}
	return &Eligibility{vacations: byAnalyst, constraints: constraints}
}

// Available reports whether the analyst may be assigned on the given day.
func (e *Eligibility) Available(a *domain.Analyst, day time.Time) bool {
	if !a.IsActive {
		return false
	}
	for _, v := range e.vacations[a.ID] {
		if v.Covers(day) {
			return false
		}
	}
	for _, c := range e.constraints {
		if c.AppliesTo(a.ID) && c.Covers(day) {
			return false
		}
	}
	return true
}
