package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

const rotationStateColumns = `id, algorithm_type, shift_type, current_sun_thu_analyst,
		current_tue_sat_analyst, completed_analysts, in_progress_analysts, last_updated`

// SQLiteRotationStateRepo implements RotationStateRepo using a SQLite database.
type SQLiteRotationStateRepo struct {
	db db.DBTX
}

// NewSQLiteRotationStateRepo creates a new SQLiteRotationStateRepo.
func NewSQLiteRotationStateRepo(conn db.DBTX) *SQLiteRotationStateRepo {
	return &SQLiteRotationStateRepo{db: conn}
}

// Get returns (nil, nil) when the rotation has never run for this key.
func (r *SQLiteRotationStateRepo) Get(ctx context.Context, algo domain.AlgorithmType, shift domain.ShiftType) (*domain.RotationState, error) {
	query := `SELECT ` + rotationStateColumns + ` FROM rotation_states
		WHERE algorithm_type = ? AND shift_type = ?`
	row := r.db.QueryRowContext(ctx, query, string(algo), string(shift))

	var s domain.RotationState
	var algoStr, shiftStr, completedStr, inProgressStr, lastUpdatedStr string
	err := row.Scan(&s.ID, &algoStr, &shiftStr, &s.CurrentSunThuAnalyst,
		&s.CurrentTueSatAnalyst, &completedStr, &inProgressStr, &lastUpdatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning rotation state: %w", err)
	}

	s.AlgorithmType = domain.AlgorithmType(algoStr)
	s.ShiftType = domain.ShiftType(shiftStr)
	s.CompletedAnalysts = splitList(completedStr)
	s.InProgressAnalysts = splitList(inProgressStr)
	s.LastUpdated, err = time.Parse(time.RFC3339, lastUpdatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRotationStateRepo) Upsert(ctx context.Context, state *domain.RotationState) error {
	query := `INSERT INTO rotation_states (id, algorithm_type, shift_type, current_sun_thu_analyst,
			current_tue_sat_analyst, completed_analysts, in_progress_analysts, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(algorithm_type, shift_type) DO UPDATE SET
			current_sun_thu_analyst = excluded.current_sun_thu_analyst,
			current_tue_sat_analyst = excluded.current_tue_sat_analyst,
			completed_analysts      = excluded.completed_analysts,
			in_progress_analysts    = excluded.in_progress_analysts,
			last_updated            = excluded.last_updated`
	_, err := r.db.ExecContext(ctx, query,
		state.ID,
		string(state.AlgorithmType),
		string(state.ShiftType),
		state.CurrentSunThuAnalyst,
		state.CurrentTueSatAnalyst,
		joinList(state.CompletedAnalysts),
		joinList(state.InProgressAnalysts),
		state.LastUpdated.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting rotation state: %w", err)
	}
	return nil
}
