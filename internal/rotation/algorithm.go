package rotation

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

// ExistingIndex wraps the pre-existing schedule rows of the generation
// window for key and slot lookups.
type ExistingIndex struct {
	all        []*domain.Schedule
	byKey      map[string]*domain.Schedule
	byDayShift map[string]int
}

func NewExistingIndex(schedules []*domain.Schedule) *ExistingIndex {
	idx := &ExistingIndex{
		all:        schedules,
		byKey:      make(map[string]*domain.Schedule, len(schedules)),
		byDayShift: make(map[string]int),
	}
	for _, s := range schedules {
		idx.byKey[s.Key()] = s
		idx.byDayShift[dayShiftKey(s.Date, s.ShiftType)]++
	}
	return idx
}

// Lookup returns the existing row for an (analyst, day), or nil.
func (x *ExistingIndex) Lookup(analystID string, day time.Time) *domain.Schedule {
	return x.byKey[analystID+"|"+day.Format(domain.DateLayout)]
}

// Has reports whether the analyst already has a row on the given day.
func (x *ExistingIndex) Has(analystID string, day time.Time) bool {
	return x.Lookup(analystID, day) != nil
}

// CountForDayShift returns how many existing rows cover a (day, shift) slot.
func (x *ExistingIndex) CountForDayShift(day time.Time, shift domain.ShiftType) int {
	return x.byDayShift[dayShiftKey(day, shift)]
}

// All returns the underlying rows.
func (x *ExistingIndex) All() []*domain.Schedule {
	return x.all
}

// GenerationContext carries the pre-loaded data a generation run works
// on. The algorithm itself performs no I/O; the service layer loads
// everything up front and decides afterwards whether the advanced
// rotation states are persisted (apply) or discarded (preview).
type GenerationContext struct {
	Analysts    []*domain.Analyst // ordered by CreatedAt: population order doubles as seniority
	Existing    []*domain.Schedule
	Vacations   []*domain.Vacation
	Constraints []*domain.SchedulingConstraint
	States      map[domain.ShiftType]*domain.RotationState
	Calendar    domain.HolidayCalendar
}

// WeekendRotationAlgorithm assigns analysts to shifts across a date
// range: weekend coverage rotates over two overlapping tracks
// (Sunday-Thursday and Tuesday-Saturday) so each analyst's weekend work
// spans a contiguous block, and weekday morning/evening coverage runs a
// per-day round-robin with seniority picks on holidays.
type WeekendRotationAlgorithm struct {
	now func() time.Time
}

func NewWeekendRotationAlgorithm() *WeekendRotationAlgorithm {
	return &WeekendRotationAlgorithm{now: time.Now}
}

func (w *WeekendRotationAlgorithm) Type() domain.AlgorithmType {
	return domain.AlgorithmWeekendRotation
}

// Track spans, as day offsets from the week's Sunday.
var (
	sunThuOffsets = []int{0, 1, 2, 3, 4}
	tueSatOffsets = []int{2, 3, 4, 5, 6}
)

// Generate produces a schedule proposal for [StartDate, EndDate]. It is
// pure with respect to persistence: rotation state advancement is
// simulated and returned alongside the result for the caller to persist
// on apply. Hard failures are limited to invalid input and an empty
// candidate pool; everything else lands in the result's Conflicts.
func (w *WeekendRotationAlgorithm) Generate(input contract.GenerationInput, gc GenerationContext) (*contract.GenerationResult, map[domain.ShiftType]*domain.RotationState, error) {
	began := w.now()

	start := domain.DateOnly(input.StartDate)
	end := domain.DateOnly(input.EndDate)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, nil, &contract.GenerationError{
			Code:    contract.ErrInvalidDateRange,
			Message: fmt.Sprintf("invalid date range %s..%s", start.Format(domain.DateLayout), end.Format(domain.DateLayout)),
		}
	}

	calendar := gc.Calendar
	if calendar == nil {
		calendar = domain.USHolidayCalendar{}
	}
	elig := NewEligibility(gc.Vacations, gc.Constraints)

	// Overwrite mode regenerates the range from scratch: in-range rows
	// stop counting as coverage and are reconciled against the proposal
	// afterwards. Rows outside the range always survive and keep
	// feeding duplicate and adjacency checks.
	var inRange, outside []*domain.Schedule
	for _, s := range gc.Existing {
		d := domain.DateOnly(s.Date)
		if d.Before(start) || d.After(end) {
			outside = append(outside, s)
		} else {
			inRange = append(inRange, s)
		}
	}
	effective := gc.Existing
	if input.OverwriteExisting {
		effective = outside
	}
	existing := NewExistingIndex(effective)
	resync := NewExistingIndex(inRange)

	pools := buildPools(gc.Analysts)
	if err := checkEligiblePools(pools, elig, start, end); err != nil {
		return nil, nil, err
	}

	arena := NewArena()
	result := &contract.GenerationResult{
		GeneratedAt: began.UTC(),
		StartDate:   start,
		EndDate:     end,
	}
	nextStates := make(map[domain.ShiftType]*domain.RotationState)
	var blocked []BlockedAssignment

	// Weekend pass: one rotation step per Sunday-anchored week.
	if pool := pools[domain.ShiftWeekend]; len(pool) > 0 {
		state := gc.States[domain.ShiftWeekend]
		for week := domain.WeekStart(start); !week.After(end); week = week.AddDate(0, 0, 7) {
			var assignment TrackAssignment
			assignment, state = NextTracks(state, input.AlgorithmType, domain.ShiftWeekend, pool)
			coverTrack(arena, existing, elig, &blocked, pool, assignment.SunThuAnalyst, week, sunThuOffsets, start, end)
			coverTrack(arena, existing, elig, &blocked, pool, assignment.TueSatAnalyst, week, tueSatOffsets, start, end)
		}
		nextStates[domain.ShiftWeekend] = state
	}

	// Weekday pass: one analyst per day for each staffed weekday shift.
	for _, shift := range []domain.ShiftType{domain.ShiftMorning, domain.ShiftEvening} {
		pool := pools[shift]
		if len(pool) == 0 {
			continue
		}
		state := gc.States[shift]
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if domain.IsWeekendDay(day) {
				continue
			}
			if len(arena.EntriesFor(day, shift)) > 0 || existing.CountForDayShift(day, shift) > 0 {
				continue
			}
			ok := func(a *domain.Analyst) bool {
				if !elig.Available(a, day) || arena.Has(a.ID, day) || existing.Has(a.ID, day) {
					return false
				}
				_, hit := CheckAdjacency(arena.DatesFor(a.ID, existing.All()), day)
				return !hit
			}
			var picked string
			if calendar.IsHoliday(day) {
				// Holidays go to seniority; the pool is already in
				// CreatedAt order, so the first fit wins. The rotation
				// cycle is left untouched.
				for _, a := range pool {
					if ok(a) {
						picked = a.ID
						break
					}
				}
			} else {
				picked, state = NextEligibleInCycle(state, input.AlgorithmType, shift, pool, ok)
			}
			if picked == "" {
				continue // gap-fill retries, then reports shortage
			}
			arena.Add(proposal(analystByID(pool, picked), day, shift))
		}
		// A range with no weekday slots (weekend-only, all covered)
		// never touches the cycle; a nil state stays unpersisted.
		if state != nil {
			nextStates[shift] = state
		}
	}

	// Gap-filling: bounded repair rounds, early exit on no progress.
	rounds := input.Config.MaxGapFillRounds
	if rounds <= 0 {
		rounds = 3
	}
	for i := 0; i < rounds; i++ {
		gaps := FindGaps(arena, existing, pools, start, end)
		if len(gaps) == 0 {
			break
		}
		added, roundBlocked := FillGaps(arena, gaps, pools, elig, existing)
		blocked = append(blocked, roundBlocked...)
		if added == 0 {
			break
		}
	}

	// Whatever is still uncovered is a staffing shortage.
	for _, g := range FindGaps(arena, existing, pools, start, end) {
		result.Conflicts = append(result.Conflicts, contract.Conflict{
			Type:      domain.ConflictStaffingShortage,
			Severity:  domain.SeverityHigh,
			Message:   fmt.Sprintf("no %s coverage on %s", g.Shift, g.Date.Format(domain.DateLayout)),
			Date:      g.Date,
			ShiftType: g.Shift,
		})
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !domain.IsWeekendDay(day) || len(pools[domain.ShiftWeekend]) == 0 {
			continue
		}
		if len(arena.EntriesFor(day, domain.ShiftWeekend)) == 0 && existing.CountForDayShift(day, domain.ShiftWeekend) == 0 {
			result.Conflicts = append(result.Conflicts, contract.Conflict{
				Type:      domain.ConflictStaffingShortage,
				Severity:  domain.SeverityHigh,
				Message:   fmt.Sprintf("no %s coverage on %s", domain.ShiftWeekend, day.Format(domain.DateLayout)),
				Date:      day,
				ShiftType: domain.ShiftWeekend,
			})
		}
	}

	result.Conflicts = append(result.Conflicts, CoalesceGuardConflicts(blocked)...)

	if input.Config.AssignScreeners {
		assignScreeners(arena, existing, start, end)
	}

	result.ProposedSchedules = arena.Entries()
	finalizeOverwrites(result, resync)
	result.FairnessMetrics = CalculateFairness(result.ProposedSchedules, gc.Analysts)
	result.PerformanceMetrics = contract.PerformanceMetrics{
		AlgorithmExecutionMS: w.now().Sub(began).Milliseconds(),
	}
	return result, nextStates, nil
}

// coverTrack proposes the track holder for each span day inside the
// requested range, skipping days blocked by vacations, constraints,
// existing rows, or adjacency guards.
func coverTrack(arena *Arena, existing *ExistingIndex, elig *Eligibility, blocked *[]BlockedAssignment, pool []*domain.Analyst, analystID string, week time.Time, offsets []int, start, end time.Time) {
	analyst := analystByID(pool, analystID)
	if analyst == nil {
		return
	}
	for _, off := range offsets {
		day := week.AddDate(0, 0, off)
		if day.Before(start) || day.After(end) {
			continue
		}
		if !elig.Available(analyst, day) || arena.Has(analyst.ID, day) || existing.Has(analyst.ID, day) {
			continue
		}
		if rule, hit := CheckAdjacency(arena.DatesFor(analyst.ID, existing.All()), day); hit {
			*blocked = append(*blocked, BlockedAssignment{AnalystID: analyst.ID, Date: day, Rule: rule})
			continue
		}
		arena.Add(proposal(analyst, day, domain.ShiftWeekend))
	}
}

// finalizeOverwrites reconciles the finished proposal set against the
// in-range rows it would replace: proposals landing on an occupied
// (analyst, day) become OVERWRITE, and changed rows are reported.
func finalizeOverwrites(result *contract.GenerationResult, resync *ExistingIndex) {
	for i := range result.ProposedSchedules {
		p := &result.ProposedSchedules[i]
		row := resync.Lookup(p.AnalystID, p.Date)
		if row == nil {
			continue
		}
		p.Type = domain.ProposalOverwrite
		if row.ShiftType != p.ShiftType || row.IsScreener != p.IsScreener {
			result.Overwrites = append(result.Overwrites, contract.OverwriteEntry{
				ScheduleID:    row.ID,
				AnalystID:     p.AnalystID,
				Date:          p.Date,
				OldShiftType:  row.ShiftType,
				NewShiftType:  p.ShiftType,
				OldIsScreener: row.IsScreener,
				NewIsScreener: p.IsScreener,
			})
		}
	}
}

func proposal(a *domain.Analyst, day time.Time, shift domain.ShiftType) contract.ProposedSchedule {
	return contract.ProposedSchedule{
		Date:        day,
		AnalystID:   a.ID,
		AnalystName: a.Name,
		ShiftType:   shift,
		Type:        domain.ProposalNew,
	}
}

// assignScreeners walks the weekdays in order and makes sure each
// staffed morning/evening slot has exactly one screener, preferring an
// analyst other than the previous weekday's screener for the same
// shift. Promotion mutates an existing arena entry; it never creates a
// duplicate row.
func assignScreeners(arena *Arena, existing *ExistingIndex, start, end time.Time) {
	last := make(map[domain.ShiftType]string)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if domain.IsWeekendDay(day) {
			continue
		}
		for _, shift := range []domain.ShiftType{domain.ShiftMorning, domain.ShiftEvening} {
			if id, ok := slotScreener(arena, existing, day, shift); ok {
				last[shift] = id
				continue
			}
			indices := arena.EntriesFor(day, shift)
			if len(indices) == 0 {
				continue
			}
			pick := indices[0]
			for _, idx := range indices {
				if arena.At(idx).AnalystID != last[shift] {
					pick = idx
					break
				}
			}
			arena.PromoteScreener(pick)
			last[shift] = arena.At(pick).AnalystID
		}
	}
}

// slotScreener reports the analyst already holding screener duty for a
// (day, shift) slot, if any.
func slotScreener(arena *Arena, existing *ExistingIndex, day time.Time, shift domain.ShiftType) (string, bool) {
	for _, idx := range arena.EntriesFor(day, shift) {
		if e := arena.At(idx); e.IsScreener {
			return e.AnalystID, true
		}
	}
	for _, s := range existing.All() {
		if s.IsScreener && s.ShiftType == shift && s.Date.Equal(day) {
			return s.AnalystID, true
		}
	}
	return "", false
}

func buildPools(analysts []*domain.Analyst) map[domain.ShiftType][]*domain.Analyst {
	pools := make(map[domain.ShiftType][]*domain.Analyst)
	for _, a := range analysts {
		if !a.IsActive {
			continue
		}
		pools[a.ShiftType] = append(pools[a.ShiftType], a)
	}
	return pools
}

// checkEligiblePools fails the run when nobody can be scheduled: either
// no shift type has an active analyst at all, or a staffed shift type
// is fully blocked for every day of the range.
func checkEligiblePools(pools map[domain.ShiftType][]*domain.Analyst, elig *Eligibility, start, end time.Time) error {
	total := 0
	for _, pool := range pools {
		total += len(pool)
	}
	if total == 0 {
		return &contract.GenerationError{
			Code:    contract.ErrNoEligibleAnalysts,
			Message: "no active analysts for any shift type",
		}
	}
	for shift, pool := range pools {
		available := false
		for day := start; !day.After(end) && !available; day = day.AddDate(0, 0, 1) {
			for _, a := range pool {
				if elig.Available(a, day) {
					available = true
					break
				}
			}
		}
		if !available {
			return &contract.GenerationError{
				Code:    contract.ErrNoEligibleAnalysts,
				Message: fmt.Sprintf("no eligible %s analysts in range", shift),
			}
		}
	}
	return nil
}

func analystByID(pool []*domain.Analyst, id string) *domain.Analyst {
	for _, a := range pool {
		if a.ID == id {
			return a
		}
	}
	return nil
}
