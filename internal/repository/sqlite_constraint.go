package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

const constraintColumns = `id, analyst_id, constraint_type, start_date, end_date, is_active, created_at`

// SQLiteConstraintRepo implements ConstraintRepo using a SQLite database.
type SQLiteConstraintRepo struct {
	db db.DBTX
}

// NewSQLiteConstraintRepo creates a new SQLiteConstraintRepo.
func NewSQLiteConstraintRepo(conn db.DBTX) *SQLiteConstraintRepo {
	return &SQLiteConstraintRepo{db: conn}
}

func (r *SQLiteConstraintRepo) Create(ctx context.Context, c *domain.SchedulingConstraint) error {
	var analystID interface{}
	if c.AnalystID != nil {
		analystID = *c.AnalystID
	}
	query := `INSERT INTO scheduling_constraints (id, analyst_id, constraint_type, start_date, end_date, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		analystID,
		c.ConstraintType,
		c.StartDate.Format(domain.DateLayout),
		c.EndDate.Format(domain.DateLayout),
		boolToInt(c.IsActive),
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting scheduling constraint: %w", err)
	}
	return nil
}

func (r *SQLiteConstraintRepo) ListActiveOverlapping(ctx context.Context, start, end time.Time) ([]*domain.SchedulingConstraint, error) {
	query := `SELECT ` + constraintColumns + ` FROM scheduling_constraints
		WHERE is_active = 1 AND start_date <= ? AND end_date >= ?
		ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query,
		end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing active constraints: %w", err)
	}
	defer rows.Close()
	return r.scanConstraints(rows)
}

func (r *SQLiteConstraintRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM scheduling_constraints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting scheduling constraint: %w", err)
	}
	return nil
}

func (r *SQLiteConstraintRepo) scanConstraints(rows *sql.Rows) ([]*domain.SchedulingConstraint, error) {
	var constraints []*domain.SchedulingConstraint
	for rows.Next() {
		var c domain.SchedulingConstraint
		var analystID sql.NullString
		var startStr, endStr, createdAtStr string
		var activeInt int
		if err := rows.Scan(&c.ID, &analystID, &c.ConstraintType, &startStr, &endStr, &activeInt, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning scheduling constraint: %w", err)
		}
		if analystID.Valid {
			id := analystID.String
			c.AnalystID = &id
		}
		var err error
		c.StartDate, err = time.Parse(domain.DateLayout, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing constraint start_date: %w", err)
		}
		c.EndDate, err = time.Parse(domain.DateLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("parsing constraint end_date: %w", err)
		}
		c.IsActive = intToBool(activeInt)
		c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		constraints = append(constraints, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scheduling constraints: %w", err)
	}
	return constraints, nil
}
