package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// analystColumns is the canonical SELECT column list for analysts.
const analystColumns = `id, name, shift_type, is_active, skills, created_at, updated_at`

// SQLiteAnalystRepo implements AnalystRepo using a SQLite database.
type SQLiteAnalystRepo struct {
	db db.DBTX
}

// NewSQLiteAnalystRepo creates a new SQLiteAnalystRepo.
func NewSQLiteAnalystRepo(conn db.DBTX) *SQLiteAnalystRepo {
	return &SQLiteAnalystRepo{db: conn}
}

func (r *SQLiteAnalystRepo) Create(ctx context.Context, a *domain.Analyst) error {
	query := `INSERT INTO analysts (id, name, shift_type, is_active, skills, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		string(a.ShiftType),
		boolToInt(a.IsActive),
		joinList(a.Skills),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting analyst: %w", err)
	}
	return nil
}

func (r *SQLiteAnalystRepo) GetByID(ctx context.Context, id string) (*domain.Analyst, error) {
	query := `SELECT ` + analystColumns + ` FROM analysts WHERE id = ?`
	return r.scanAnalyst(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteAnalystRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Analyst, error) {
	query := `SELECT ` + analystColumns + ` FROM analysts ORDER BY created_at, name`
	if !includeInactive {
		query = `SELECT ` + analystColumns + ` FROM analysts WHERE is_active = 1 ORDER BY created_at, name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing analysts: %w", err)
	}
	defer rows.Close()
	return r.scanAnalysts(rows)
}

func (r *SQLiteAnalystRepo) ListByShiftType(ctx context.Context, shiftType domain.ShiftType, activeOnly bool) ([]*domain.Analyst, error) {
	// Ordered by created_at so the natural population order doubles as
	// the initial rotation sequence.
	query := `SELECT ` + analystColumns + ` FROM analysts WHERE shift_type = ? ORDER BY created_at, name`
	if activeOnly {
		query = `SELECT ` + analystColumns + ` FROM analysts WHERE shift_type = ? AND is_active = 1 ORDER BY created_at, name`
	}
	rows, err := r.db.QueryContext(ctx, query, string(shiftType))
	if err != nil {
		return nil, fmt.Errorf("listing analysts by shift type: %w", err)
	}
	defer rows.Close()
	return r.scanAnalysts(rows)
}

func (r *SQLiteAnalystRepo) Update(ctx context.Context, a *domain.Analyst) error {
	query := `UPDATE analysts SET name = ?, shift_type = ?, is_active = ?, skills = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		a.Name,
		string(a.ShiftType),
		boolToInt(a.IsActive),
		joinList(a.Skills),
		time.Now().UTC().Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating analyst: %w", err)
	}
	return nil
}

func (r *SQLiteAnalystRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE analysts SET is_active = 0, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("deactivating analyst: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("analyst %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAnalystRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM analysts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting analyst: %w", err)
	}
	return nil
}

func (r *SQLiteAnalystRepo) scanAnalyst(row *sql.Row) (*domain.Analyst, error) {
	var a domain.Analyst
	var shiftStr, skillsStr, createdAtStr, updatedAtStr string
	var isActiveInt int

	err := row.Scan(&a.ID, &a.Name, &shiftStr, &isActiveInt, &skillsStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analyst: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning analyst: %w", err)
	}
	return r.populateAnalyst(&a, shiftStr, skillsStr, isActiveInt, createdAtStr, updatedAtStr)
}

func (r *SQLiteAnalystRepo) scanAnalysts(rows *sql.Rows) ([]*domain.Analyst, error) {
	var analysts []*domain.Analyst
	for rows.Next() {
		var a domain.Analyst
		var shiftStr, skillsStr, createdAtStr, updatedAtStr string
		var isActiveInt int
		if err := rows.Scan(&a.ID, &a.Name, &shiftStr, &isActiveInt, &skillsStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning analyst: %w", err)
		}
		analyst, err := r.populateAnalyst(&a, shiftStr, skillsStr, isActiveInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		analysts = append(analysts, analyst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysts: %w", err)
	}
	return analysts, nil
}

func (r *SQLiteAnalystRepo) populateAnalyst(a *domain.Analyst, shiftStr, skillsStr string, isActiveInt int, createdAtStr, updatedAtStr string) (*domain.Analyst, error) {
	a.ShiftType = domain.ShiftType(shiftStr)
	a.IsActive = intToBool(isActiveInt)
	a.Skills = splitList(skillsStr)

	var err error
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return a, nil
}
