package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// scheduleColumns is the canonical SELECT column list for schedules.
const scheduleColumns = `id, analyst_id, date, shift_type, is_screener, created_at, updated_at`

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

func (r *SQLiteScheduleRepo) Create(ctx context.Context, s *domain.Schedule) error {
	query := `INSERT INTO schedules (id, analyst_id, date, shift_type, is_screener, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.AnalystID,
		s.Date.Format(domain.DateLayout),
		string(s.ShiftType),
		boolToInt(s.IsScreener),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`
	s, err := r.scanSchedule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("schedule: %w", ErrNotFound)
	}
	return s, nil
}

func (r *SQLiteScheduleRepo) GetByAnalystAndDate(ctx context.Context, analystID string, date time.Time) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE analyst_id = ? AND date = ?`
	return r.scanSchedule(r.db.QueryRowContext(ctx, query, analystID, date.Format(domain.DateLayout)))
}

func (r *SQLiteScheduleRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules
		WHERE date >= ? AND date <= ?
		ORDER BY date, shift_type, analyst_id`
	rows, err := r.db.QueryContext(ctx, query,
		start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing schedules by range: %w", err)
	}
	defer rows.Close()
	return r.scanSchedules(rows)
}

func (r *SQLiteScheduleRepo) ListByAnalystAndRange(ctx context.Context, analystID string, start, end time.Time) ([]*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules
		WHERE analyst_id = ? AND date >= ? AND date <= ?
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, analystID,
		start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing schedules by analyst: %w", err)
	}
	defer rows.Close()
	return r.scanSchedules(rows)
}

func (r *SQLiteScheduleRepo) Update(ctx context.Context, s *domain.Schedule) error {
	query := `UPDATE schedules SET shift_type = ?, is_screener = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.ShiftType),
		boolToInt(s.IsScreener),
		time.Now().UTC().Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("schedule %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	return nil
}

// scanSchedule returns (nil, nil) on sql.ErrNoRows; callers that treat
// absence as an error wrap ErrNotFound themselves.
func (r *SQLiteScheduleRepo) scanSchedule(row *sql.Row) (*domain.Schedule, error) {
	var s domain.Schedule
	var dateStr, shiftStr, createdAtStr, updatedAtStr string
	var screenerInt int

	err := row.Scan(&s.ID, &s.AnalystID, &dateStr, &shiftStr, &screenerInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}
	return r.populateSchedule(&s, dateStr, shiftStr, screenerInt, createdAtStr, updatedAtStr)
}

func (r *SQLiteScheduleRepo) scanSchedules(rows *sql.Rows) ([]*domain.Schedule, error) {
	var schedules []*domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		var dateStr, shiftStr, createdAtStr, updatedAtStr string
		var screenerInt int
		if err := rows.Scan(&s.ID, &s.AnalystID, &dateStr, &shiftStr, &screenerInt, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		schedule, err := r.populateSchedule(&s, dateStr, shiftStr, screenerInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}
	return schedules, nil
}

func (r *SQLiteScheduleRepo) populateSchedule(s *domain.Schedule, dateStr, shiftStr string, screenerInt int, createdAtStr, updatedAtStr string) (*domain.Schedule, error) {
	var err error
	s.Date, err = time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule date: %w", err)
	}
	s.ShiftType = domain.ShiftType(shiftStr)
	s.IsScreener = intToBool(screenerInt)

	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return s, nil
}
