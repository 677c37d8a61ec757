package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrBool(b bool) *bool { return &b }

func validMinimalRoster() *RosterSchema {
	return &RosterSchema{
		Analysts: []AnalystImport{
			{Name: "Alice", ShiftType: "MORNING"},
		},
	}
}

func validFullRoster() *RosterSchema {
	return &RosterSchema{
		Analysts: []AnalystImport{
			{Name: "Alice", ShiftType: "MORNING", Skills: []string{"triage"}},
			{Name: "Bob", ShiftType: "EVENING"},
			{Name: "Carol", ShiftType: "WEEKEND", Inactive: true},
		},
		Vacations: []VacationImport{
			{Analyst: "Alice", StartDate: "2025-07-01", EndDate: "2025-07-05"},
			{Analyst: "Bob", StartDate: "2025-08-10", EndDate: "2025-08-10", Approved: ptrBool(false)},
		},
		Constraints: []ConstraintImport{
			{Analyst: "Carol", Type: "TRAINING", StartDate: "2025-07-14", EndDate: "2025-07-18"},
			{Type: "OFFICE_CLOSED", StartDate: "2025-12-24", EndDate: "2025-12-26"},
		},
	}
}

func TestValidateRosterSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateRosterSchema(validMinimalRoster()))
}

func TestValidateRosterSchema_ValidFull(t *testing.T) {
	assert.Empty(t, ValidateRosterSchema(validFullRoster()))
}

func TestValidateRosterSchema_NoAnalysts(t *testing.T) {
	errs := ValidateRosterSchema(&RosterSchema{})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one analyst")
}

func TestValidateRosterSchema_AnalystErrors(t *testing.T) {
	schema := &RosterSchema{
		Analysts: []AnalystImport{
			{Name: "", ShiftType: "MORNING"},
			{Name: "Alice", ShiftType: "NIGHT"},
			{Name: "Alice", ShiftType: "MORNING"},
		},
	}
	errs := ValidateRosterSchema(schema)
	assert.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "analysts[0].name is required")
	assert.Contains(t, errs[1].Error(), `invalid value "NIGHT"`)
	assert.Contains(t, errs[2].Error(), "duplicated")
}

func TestValidateRosterSchema_VacationErrors(t *testing.T) {
	schema := validMinimalRoster()
	schema.Vacations = []VacationImport{
		{Analyst: "Nobody", StartDate: "2025-07-01", EndDate: "2025-07-05"},
		{Analyst: "Alice", StartDate: "07/01/2025", EndDate: "2025-07-05"},
		{Analyst: "Alice", StartDate: "2025-07-05", EndDate: "2025-07-01"},
		{Analyst: "Alice", StartDate: "", EndDate: "2025-07-05"},
	}
	errs := ValidateRosterSchema(schema)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), `unknown analyst "Nobody"`)
	assert.Contains(t, errs[1].Error(), "invalid date format")
	assert.Contains(t, errs[2].Error(), "must not be before")
	assert.Contains(t, errs[3].Error(), "start_date is required")
}

func TestValidateRosterSchema_ConstraintErrors(t *testing.T) {
	schema := validMinimalRoster()
	schema.Constraints = []ConstraintImport{
		{Analyst: "Ghost", Type: "TRAINING", StartDate: "2025-07-01", EndDate: "2025-07-02"},
		{Type: "", StartDate: "2025-07-01", EndDate: "2025-07-02"},
	}
	errs := ValidateRosterSchema(schema)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `unknown analyst "Ghost"`)
	assert.Contains(t, errs[1].Error(), "type is required")
}

func TestValidateRosterSchema_GlobalConstraintNeedsNoAnalyst(t *testing.T) {
	schema := validMinimalRoster()
	schema.Constraints = []ConstraintImport{
		{Type: "OFFICE_CLOSED", StartDate: "2025-12-24", EndDate: "2025-12-26"},
	}
	assert.Empty(t, ValidateRosterSchema(schema))
}
