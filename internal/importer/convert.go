package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rota/internal/domain"
)

// Roster holds converted domain objects ready for persistence.
type Roster struct {
	Analysts    []*domain.Analyst
	Vacations   []*domain.Vacation
	Constraints []*domain.SchedulingConstraint
}

// Convert transforms a validated RosterSchema into domain objects.
// Call ValidateRosterSchema first; Convert assumes the schema is valid.
func Convert(schema *RosterSchema) (*Roster, error) {
	now := time.Now().UTC()

	nameToID := make(map[string]string, len(schema.Analysts))

	analysts := make([]*domain.Analyst, 0, len(schema.Analysts))
	for _, a := range schema.Analysts {
		analyst := &domain.Analyst{
			ID:        uuid.New().String(),
			Name:      a.Name,
			ShiftType: domain.ShiftType(a.ShiftType),
			IsActive:  !a.Inactive,
			Skills:    a.Skills,
			CreatedAt: now,
			UpdatedAt: now,
		}
		nameToID[a.Name] = analyst.ID
		analysts = append(analysts, analyst)
	}

	vacations := make([]*domain.Vacation, 0, len(schema.Vacations))
	for _, v := range schema.Vacations {
		start, err := time.Parse(domain.DateLayout, v.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing vacation start_date: %w", err)
		}
		end, err := time.Parse(domain.DateLayout, v.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing vacation end_date: %w", err)
		}
		approved := true
		if v.Approved != nil {
			approved = *v.Approved
		}
		vacations = append(vacations, &domain.Vacation{
			ID:         uuid.New().String(),
			AnalystID:  nameToID[v.Analyst],
			StartDate:  start,
			EndDate:    end,
			IsApproved: approved,
			CreatedAt:  now,
		})
	}

	constraints := make([]*domain.SchedulingConstraint, 0, len(schema.Constraints))
	for _, c := range schema.Constraints {
		start, err := time.Parse(domain.DateLayout, c.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing constraint start_date: %w", err)
		}
		end, err := time.Parse(domain.DateLayout, c.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing constraint end_date: %w", err)
		}
		var analystID *string
		if c.Analyst != "" {
			id := nameToID[c.Analyst]
			analystID = &id
		}
		constraints = append(constraints, &domain.SchedulingConstraint{
			ID:             uuid.New().String(),
			AnalystID:      analystID,
			ConstraintType: c.Type,
			StartDate:      start,
			EndDate:        end,
			IsActive:       true,
			CreatedAt:      now,
		})
	}

	return &Roster{Analysts: analysts, Vacations: vacations, Constraints: constraints}, nil
}
