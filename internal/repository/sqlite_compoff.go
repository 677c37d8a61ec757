package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

const compOffColumns = `id, analyst_id, type, amount, is_banked, is_auto_assigned, week_start, note, created_at`

// SQLiteCompOffRepo implements CompOffRepo using a SQLite database.
// The ledger is append-only: there is no update or delete.
type SQLiteCompOffRepo struct {
	db db.DBTX
}

// NewSQLiteCompOffRepo creates a new SQLiteCompOffRepo.
func NewSQLiteCompOffRepo(conn db.DBTX) *SQLiteCompOffRepo {
	return &SQLiteCompOffRepo{db: conn}
}

func (r *SQLiteCompOffRepo) Create(ctx context.Context, t *domain.CompOffTransaction) error {
	query := `INSERT INTO comp_off_transactions (id, analyst_id, type, amount, is_banked,
			is_auto_assigned, week_start, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.AnalystID,
		string(t.Type),
		t.Amount.String(),
		boolToInt(t.IsBanked),
		boolToInt(t.IsAutoAssigned),
		t.WeekStart.Format(domain.DateLayout),
		t.Note,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting comp-off transaction: %w", err)
	}
	return nil
}

func (r *SQLiteCompOffRepo) ListByAnalyst(ctx context.Context, analystID string) ([]*domain.CompOffTransaction, error) {
	query := `SELECT ` + compOffColumns + ` FROM comp_off_transactions
		WHERE analyst_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, analystID)
	if err != nil {
		return nil, fmt.Errorf("listing comp-off transactions: %w", err)
	}
	defer rows.Close()
	return r.scanTransactions(rows)
}

func (r *SQLiteCompOffRepo) ListByAnalystPeriod(ctx context.Context, analystID string, start, end time.Time) ([]*domain.CompOffTransaction, error) {
	query := `SELECT ` + compOffColumns + ` FROM comp_off_transactions
		WHERE analyst_id = ? AND week_start >= ? AND week_start <= ?
		ORDER BY week_start, created_at`
	rows, err := r.db.QueryContext(ctx, query, analystID,
		start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing comp-off transactions by period: %w", err)
	}
	defer rows.Close()
	return r.scanTransactions(rows)
}

func (r *SQLiteCompOffRepo) ListByAnalystWeek(ctx context.Context, analystID string, weekStart time.Time) ([]*domain.CompOffTransaction, error) {
	query := `SELECT ` + compOffColumns + ` FROM comp_off_transactions
		WHERE analyst_id = ? AND week_start = ?
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, analystID, weekStart.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing comp-off transactions by week: %w", err)
	}
	defer rows.Close()
	return r.scanTransactions(rows)
}

// Balance sums the ledger in Go: amounts are stored as decimal strings,
// so SQL SUM over them would lose exactness.
func (r *SQLiteCompOffRepo) Balance(ctx context.Context, analystID string) (decimal.Decimal, error) {
	transactions, err := r.ListByAnalyst(ctx, analystID)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, t := range transactions {
		balance = balance.Add(t.Signed())
	}
	return balance, nil
}

func (r *SQLiteCompOffRepo) scanTransactions(rows *sql.Rows) ([]*domain.CompOffTransaction, error) {
	var transactions []*domain.CompOffTransaction
	for rows.Next() {
		var t domain.CompOffTransaction
		var typeStr, amountStr, weekStr, createdAtStr string
		var bankedInt, autoInt int
		if err := rows.Scan(&t.ID, &t.AnalystID, &typeStr, &amountStr, &bankedInt,
			&autoInt, &weekStr, &t.Note, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning comp-off transaction: %w", err)
		}
		t.Type = domain.CompOffType(typeStr)
		var err error
		t.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parsing comp-off amount: %w", err)
		}
		t.IsBanked = intToBool(bankedInt)
		t.IsAutoAssigned = intToBool(autoInt)
		t.WeekStart, err = time.Parse(domain.DateLayout, weekStr)
		if err != nil {
			return nil, fmt.Errorf("parsing week_start: %w", err)
		}
		t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comp-off transactions: %w", err)
	}
	return transactions, nil
}
