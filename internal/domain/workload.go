package domain

import "time"

// WeeklyWorkload is a derived view of one analyst's Sunday-anchored week.
type WeeklyWorkload struct {
	AnalystID         string
	WeekStart         time.Time
	WeekEnd           time.Time
	ScheduledWorkDays int
	WeekendWorkDays   int
	HolidayWorkDays   int
	OvertimeDays      int
	AutoCompOffDays   int
	BankedCompOffDays int
	TotalWorkDays     int
	IsBalanced        bool
	Violations        []WorkloadViolation
}

type WorkloadViolation struct {
	Type         ViolationType
	Severity     Severity
	Description  string
	SuggestedFix string
}

// WorkWeekDays is the policy threshold above which scheduled days count
// as overtime.
const WorkWeekDays = 5
