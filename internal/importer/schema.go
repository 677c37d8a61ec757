package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// RosterSchema is the top-level JSON structure for roster import: a
// team of analysts plus their known vacations and scheduling
// constraints. Vacations and constraints reference analysts by name.
type RosterSchema struct {
	Analysts    []AnalystImport    `json:"analysts"`
	Vacations   []VacationImport   `json:"vacations,omitempty"`
	Constraints []ConstraintImport `json:"constraints,omitempty"`
}

// AnalystImport defines one analyst in the import file.
type AnalystImport struct {
	Name      string   `json:"name"`
	ShiftType string   `json:"shift_type"`
	Skills    []string `json:"skills,omitempty"`
	Inactive  bool     `json:"inactive,omitempty"`
}

// VacationImport defines an approved or pending vacation window.
type VacationImport struct {
	Analyst   string `json:"analyst"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Approved  *bool  `json:"approved,omitempty"` // default true
}

// ConstraintImport defines a scheduling constraint window. An empty
// analyst field makes the constraint global.
type ConstraintImport struct {
	Analyst   string `json:"analyst,omitempty"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// LoadRosterFile reads and parses a roster import file.
func LoadRosterFile(path string) (*RosterSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}
	var schema RosterSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing roster file: %w", err)
	}
	return &schema, nil
}
