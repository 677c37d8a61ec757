package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
)

// ValidateRosterSchema checks the roster schema for errors before
// conversion. Returns every validation error found, not only the first.
func ValidateRosterSchema(schema *RosterSchema) []error {
	var errs []error

	names := make(map[string]bool)
	errs = append(errs, validateAnalysts(schema.Analysts, names)...)
	errs = append(errs, validateVacations(schema.Vacations, names)...)
	errs = append(errs, validateConstraints(schema.Constraints, names)...)

	return errs
}

func validateAnalysts(analysts []AnalystImport, names map[string]bool) []error {
	var errs []error

	if len(analysts) == 0 {
		errs = append(errs, fmt.Errorf("analysts: at least one analyst is required"))
	}
	for i, a := range analysts {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("analysts[%d].name is required", i))
			continue
		}
		if names[a.Name] {
			errs = append(errs, fmt.Errorf("analysts[%d].name %q is duplicated", i, a.Name))
		}
		names[a.Name] = true
		if !domain.ValidShiftTypes[a.ShiftType] {
			errs = append(errs, fmt.Errorf("analysts[%d].shift_type: invalid value %q", i, a.ShiftType))
		}
	}

	return errs
}

func validateVacations(vacations []VacationImport, names map[string]bool) []error {
	var errs []error

	for i, v := range vacations {
		if v.Analyst == "" {
			errs = append(errs, fmt.Errorf("vacations[%d].analyst is required", i))
		} else if !names[v.Analyst] {
			errs = append(errs, fmt.Errorf("vacations[%d].analyst: unknown analyst %q", i, v.Analyst))
		}
		errs = append(errs, validateWindow(fmt.Sprintf("vacations[%d]", i), v.StartDate, v.EndDate)...)
	}

	return errs
}

func validateConstraints(constraints []ConstraintImport, names map[string]bool) []error {
	var errs []error

	for i, c := range constraints {
		if c.Analyst != "" && !names[c.Analyst] {
			errs = append(errs, fmt.Errorf("constraints[%d].analyst: unknown analyst %q", i, c.Analyst))
		}
		if c.Type == "" {
			errs = append(errs, fmt.Errorf("constraints[%d].type is required", i))
		}
		errs = append(errs, validateWindow(fmt.Sprintf("constraints[%d]", i), c.StartDate, c.EndDate)...)
	}

	return errs
}

func validateWindow(prefix, start, end string) []error {
	var errs []error

	var startDate, endDate time.Time
	var startOK, endOK bool

	if start == "" {
		errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
	} else if d, err := time.Parse(domain.DateLayout, start); err != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, start))
	} else {
		startDate, startOK = d, true
	}

	if end == "" {
		errs = append(errs, fmt.Errorf("%s.end_date is required", prefix))
	} else if d, err := time.Parse(domain.DateLayout, end); err != nil {
		errs = append(errs, fmt.Errorf("%s.end_date: invalid date format %q (expected YYYY-MM-DD)", prefix, end))
	} else {
		endDate, endOK = d, true
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, fmt.Errorf("%s: end_date %q must not be before start_date %q", prefix, end, start))
	}

	return errs
}
