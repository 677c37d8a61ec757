package rotation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

// StateManager owns the persisted rotation pointers. The critical
// invariant: state advances only when a generation is applied, never on
// preview, so repeated previews are idempotent and side-effect free.
type StateManager struct {
	states repository.RotationStateRepo
	now    func() time.Time
}

func NewStateManager(states repository.RotationStateRepo) *StateManager {
	return &StateManager{states: states, now: time.Now}
}

// Current loads the persisted state for a key. A nil result is not an
// error; it signals "start fresh" from natural population order.
func (m *StateManager) Current(ctx context.Context, algo domain.AlgorithmType, shift domain.ShiftType) (*domain.RotationState, error) {
	return m.states.Get(ctx, algo, shift)
}

// Advance persists the post-apply state for a key.
func (m *StateManager) Advance(ctx context.Context, state *domain.RotationState) error {
	if state.ID == "" {
		state.ID = uuid.New().String()
	}
	state.LastUpdated = m.now().UTC()
	return m.states.Upsert(ctx, state)
}

// TrackAssignment names the analysts holding the two weekend tracks for
// one rotation step.
type TrackAssignment struct {
	SunThuAnalyst string
	TueSatAnalyst string
}

// NextTracks picks the analysts next in line for the two weekend tracks
// and returns the advanced state alongside. Pure: the caller decides
// whether the new state is ever persisted (apply) or discarded (preview).
//
// Round-robin-without-repeat: every eligible analyst must appear in
// InProgressAnalysts or CompletedAnalysts before anyone is picked a
// second time. When the cycle exhausts, completed analysts are cleared
// and the rotation restarts in population order.
func NextTracks(state *domain.RotationState, algo domain.AlgorithmType, shift domain.ShiftType, eligible []*domain.Analyst) (TrackAssignment, *domain.RotationState) {
	next := &domain.RotationState{
		AlgorithmType: algo,
		ShiftType:     shift,
	}
	if state != nil {
		next.ID = state.ID
		next.CompletedAnalysts = append(next.CompletedAnalysts, state.CompletedAnalysts...)
		// Whoever held a track last period has now finished it.
		for _, id := range state.InProgressAnalysts {
			if !next.HasCompleted(id) {
				next.CompletedAnalysts = append(next.CompletedAnalysts, id)
			}
		}
	}

	// Drop completed analysts no longer in the eligible pool.
	next.CompletedAnalysts = intersect(next.CompletedAnalysts, eligible)

	pick := func() string {
		for _, a := range eligible {
			if !next.HasCompleted(a.ID) && !next.IsInProgress(a.ID) {
				return a.ID
			}
		}
		// Cycle complete: restart, preferring analysts not already
		// holding the other track this period.
		next.CompletedAnalysts = nil
		for _, a := range eligible {
			if !next.IsInProgress(a.ID) {
				return a.ID
			}
		}
		if len(eligible) > 0 {
			return eligible[0].ID
		}
		return ""
	}

	assignment := TrackAssignment{}
	if len(eligible) > 0 {
		assignment.SunThuAnalyst = pick()
		next.InProgressAnalysts = append(next.InProgressAnalysts, assignment.SunThuAnalyst)
		assignment.TueSatAnalyst = pick()
		if assignment.TueSatAnalyst != assignment.SunThuAnalyst {
			next.InProgressAnalysts = append(next.InProgressAnalysts, assignment.TueSatAnalyst)
		}
	}
	next.CurrentSunThuAnalyst = assignment.SunThuAnalyst
	next.CurrentTueSatAnalyst = assignment.TueSatAnalyst
	return assignment, next
}

// NextEligibleInCycle picks the next analyst for one weekday slot in a
// single-track round-robin: the first pool member not yet completed in
// the current cycle who passes ok. A pick completes immediately (a
// weekday slot is a one-day commitment); when every pool member has
// completed, the cycle resets. Analysts skipped by ok stay pending and
// so keep priority on later days. If only completed analysts pass ok,
// one of them takes the extra slot without disturbing the cycle.
// Returns "" when nobody passes ok.
func NextEligibleInCycle(state *domain.RotationState, algo domain.AlgorithmType, shift domain.ShiftType, pool []*domain.Analyst, ok func(*domain.Analyst) bool) (string, *domain.RotationState) {
	next := &domain.RotationState{
		AlgorithmType: algo,
		ShiftType:     shift,
	}
	if state != nil {
		next.ID = state.ID
		next.CompletedAnalysts = append(next.CompletedAnalysts, state.CompletedAnalysts...)
	}
	next.CompletedAnalysts = intersect(next.CompletedAnalysts, pool)

	for _, a := range pool {
		if next.HasCompleted(a.ID) || !ok(a) {
			continue
		}
		next.CompletedAnalysts = append(next.CompletedAnalysts, a.ID)
		next.CurrentSunThuAnalyst = a.ID
		if len(next.CompletedAnalysts) >= len(pool) {
			next.CompletedAnalysts = nil
		}
		return a.ID, next
	}

	// Everyone still pending is blocked; hand the slot to a completed
	// analyst if any is available.
	for _, a := range pool {
		if ok(a) {
			next.CurrentSunThuAnalyst = a.ID
			return a.ID, next
		}
	}
	return "", next
}

func intersect(ids []string, eligible []*domain.Analyst) []string {
	pool := make(map[string]bool, len(eligible))
	for _, a := range eligible {
		pool[a.ID] = true
	}
	var out []string
	for _, id := range ids {
		if pool[id] {
			out = append(out, id)
		}
	}
	return out
}
