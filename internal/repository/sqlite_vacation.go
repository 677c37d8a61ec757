package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

const vacationColumns = `id, analyst_id, start_date, end_date, is_approved, created_at`

// SQLiteVacationRepo implements VacationRepo using a SQLite database.
type SQLiteVacationRepo struct {
	db db.DBTX
}

// NewSQLiteVacationRepo creates a new SQLiteVacationRepo.
func NewSQLiteVacationRepo(conn db.DBTX) *SQLiteVacationRepo {
	return &SQLiteVacationRepo{db: conn}
}

func (r *SQLiteVacationRepo) Create(ctx context.Context, v *domain.Vacation) error {
	query := `INSERT INTO vacations (id, analyst_id, start_date, end_date, is_approved, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.AnalystID,
		v.StartDate.Format(domain.DateLayout),
		v.EndDate.Format(domain.DateLayout),
		boolToInt(v.IsApproved),
		v.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting vacation: %w", err)
	}
	return nil
}

func (r *SQLiteVacationRepo) ListByAnalyst(ctx context.Context, analystID string) ([]*domain.Vacation, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations WHERE analyst_id = ? ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, analystID)
	if err != nil {
		return nil, fmt.Errorf("listing vacations by analyst: %w", err)
	}
	defer rows.Close()
	return r.scanVacations(rows)
}

func (r *SQLiteVacationRepo) ListOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Vacation, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations
		WHERE is_approved = 1 AND start_date <= ? AND end_date >= ?
		ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query,
		end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing overlapping vacations: %w", err)
	}
	defer rows.Close()
	return r.scanVacations(rows)
}

func (r *SQLiteVacationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vacations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting vacation: %w", err)
	}
	return nil
}

func (r *SQLiteVacationRepo) scanVacations(rows *sql.Rows) ([]*domain.Vacation, error) {
	var vacations []*domain.Vacation
	for rows.Next() {
		var v domain.Vacation
		var startStr, endStr, createdAtStr string
		var approvedInt int
		if err := rows.Scan(&v.ID, &v.AnalystID, &startStr, &endStr, &approvedInt, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning vacation: %w", err)
		}
		var err error
		v.StartDate, err = time.Parse(domain.DateLayout, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing vacation start_date: %w", err)
		}
		v.EndDate, err = time.Parse(domain.DateLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("parsing vacation end_date: %w", err)
		}
		v.IsApproved = intToBool(approvedInt)
		v.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		vacations = append(vacations, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vacations: %w", err)
	}
	return vacations, nil
}
