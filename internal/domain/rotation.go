package domain

import "time"

// RotationState is the persisted pointer for one (algorithm, shift type)
// rotation. CompletedAnalysts is an ordered set: every eligible analyst
// must pass through InProgressAnalysts or CompletedAnalysts before any
// analyst is picked a second time.
//
// The two track fields are named for the weekend rotation. Single-track
// rotations (the weekday shifts) keep their one cursor in
// CurrentSunThuAnalyst and leave CurrentTueSatAnalyst empty.
type RotationState struct {
	ID                   string
	AlgorithmType        AlgorithmType
	ShiftType            ShiftType
	CurrentSunThuAnalyst string // empty = unassigned
	CurrentTueSatAnalyst string
	CompletedAnalysts    []string
	InProgressAnalysts   []string
	LastUpdated          time.Time
}

// HasCompleted reports whether the analyst already finished a full
// rotation slot in the current cycle.
func (r *RotationState) HasCompleted(analystID string) bool {
	for _, id := range r.CompletedAnalysts {
		if id == analystID {
			return true
		}
	}
	return false
}

// IsInProgress reports whether the analyst currently holds a track.
func (r *RotationState) IsInProgress(analystID string) bool {
	for _, id := range r.InProgressAnalysts {
		if id == analystID {
			return true
		}
	}
	return false
}
