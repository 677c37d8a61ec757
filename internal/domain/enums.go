package domain

type ShiftType string

const (
	ShiftMorning ShiftType = "MORNING"
	ShiftEvening ShiftType = "EVENING"
	ShiftWeekend ShiftType = "WEEKEND"
)

// ValidShiftTypes is the canonical set of accepted shift type strings.
var ValidShiftTypes = map[string]bool{
	"MORNING": true, "EVENING": true, "WEEKEND": true,
}

type AlgorithmType string

const (
	AlgorithmWeekendRotation AlgorithmType = "WEEKEND_ROTATION"
)

type ProposalType string

const (
	ProposalNew       ProposalType = "NEW_SCHEDULE"
	ProposalOverwrite ProposalType = "OVERWRITE"
)

type ConflictType string

const (
	ConflictStaffingShortage    ConflictType = "STAFFING_SHORTAGE"
	ConflictConstraintViolation ConflictType = "CONSTRAINT_VIOLATION"
	ConflictGuardRuleViolation  ConflictType = "GUARD_RULE_VIOLATION"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type CompOffType string

const (
	CompOffEarned       CompOffType = "EARNED"
	CompOffAutoAssigned CompOffType = "AUTO_ASSIGNED"
	CompOffUsed         CompOffType = "USED"
)

type ViolationType string

const (
	ViolationOvertime             ViolationType = "OVERTIME"
	ViolationMissingCompOff       ViolationType = "MISSING_COMP_OFF"
	ViolationUnbalancedWeek       ViolationType = "UNBALANCED_WEEK"
	ViolationExcessiveConsecutive ViolationType = "EXCESSIVE_CONSECUTIVE_DAYS"
)

// GuardRule identifies a hard adjacency constraint on day pairs.
type GuardRule string

const (
	GuardFridayAfterSunday   GuardRule = "FRIDAY_AFTER_SUNDAY"
	GuardMondayAfterSaturday GuardRule = "MONDAY_AFTER_SATURDAY"
)
