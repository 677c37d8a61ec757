package contract

import (
	"time"

	"github.com/alexanderramin/rota/internal/domain"
)

// GenerationInput is the request for a schedule generation run, shared
// by preview (read-only) and apply.
type GenerationInput struct {
	StartDate     time.Time
	EndDate       time.Time
	AlgorithmType domain.AlgorithmType

	// OverwriteExisting requests a full resync: existing schedules in
	// range that the proposal does not reproduce are deleted, and
	// changed rows are updated in place. Only honored by apply.
	OverwriteExisting bool

	Config AlgorithmConfig
}

// AlgorithmConfig tunes the generation pass.
type AlgorithmConfig struct {
	// MaxGapFillRounds bounds the iterative gap-filling pass.
	MaxGapFillRounds int
	// AssignScreeners promotes one analyst per weekday shift to screener.
	AssignScreeners bool
}

// NewGenerationInput returns an input with the default configuration.
func NewGenerationInput(start, end time.Time, algo domain.AlgorithmType) GenerationInput {
	return GenerationInput{
		StartDate:     domain.DateOnly(start),
		EndDate:       domain.DateOnly(end),
		AlgorithmType: algo,
		Config: AlgorithmConfig{
			MaxGapFillRounds: 3,
			AssignScreeners:  true,
		},
	}
}

// ProposedSchedule is an ephemeral assignment produced by generation.
// Nothing is persisted until apply.
type ProposedSchedule struct {
	Date        time.Time
	AnalystID   string
	AnalystName string
	ShiftType   domain.ShiftType
	IsScreener  bool
	Type        domain.ProposalType
}

// Key returns the (analyst, day) identity used for duplicate detection.
func (p ProposedSchedule) Key() string {
	return p.AnalystID + "|" + p.Date.Format(domain.DateLayout)
}

// Conflict describes an unresolved scheduling problem. Guard-rule
// conflicts are coalesced: one record per (week, rule) listing every
// affected analyst, never one record per blocked assignment.
type Conflict struct {
	Type       domain.ConflictType
	Severity   domain.Severity
	Message    string
	Date       time.Time // day or week start the conflict refers to
	Rule       domain.GuardRule
	ShiftType  domain.ShiftType
	AnalystIDs []string
}

// OverwriteEntry records an existing schedule the proposal would change.
type OverwriteEntry struct {
	ScheduleID    string
	AnalystID     string
	Date          time.Time
	OldShiftType  domain.ShiftType
	NewShiftType  domain.ShiftType
	OldIsScreener bool
	NewIsScreener bool
}

// IndividualScore is one analyst's fairness score.
type IndividualScore struct {
	AnalystID   string
	AnalystName string
	Score       float64
}

type FairnessMetrics struct {
	OverallFairnessScore float64
	IndividualScores     []IndividualScore
	Recommendations      []string
}

type PerformanceMetrics struct {
	AlgorithmExecutionMS int64
}

// GenerationResult is the outcome of a preview or apply run. Expected
// business problems land in Conflicts; only validation failures and an
// empty candidate pool surface as errors.
type GenerationResult struct {
	GeneratedAt        time.Time
	StartDate          time.Time
	EndDate            time.Time
	Applied            bool
	ProposedSchedules  []ProposedSchedule
	Conflicts          []Conflict
	Overwrites         []OverwriteEntry
	FairnessMetrics    FairnessMetrics
	PerformanceMetrics PerformanceMetrics
}
