package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/testutil"
)

func compOffTx(analystID string, typ domain.CompOffType, amount string, weekStart time.Time, createdAt time.Time) *domain.CompOffTransaction {
	return &domain.CompOffTransaction{
		ID:             uuid.New().String(),
		AnalystID:      analystID,
		Type:           typ,
		Amount:         decimal.RequireFromString(amount),
		IsBanked:       typ != domain.CompOffUsed,
		IsAutoAssigned: typ == domain.CompOffAutoAssigned,
		WeekStart:      weekStart,
		CreatedAt:      createdAt,
	}
}

func TestCompOffRepo_CreateAndListByAnalyst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompOffRepo(database)
	ctx := context.Background()

	seedAnalystIDs(t, database, "analyst-1", "analyst-2")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	earned := compOffTx("analyst-1", domain.CompOffEarned, "1", day("2025-06-01"), base)
	used := compOffTx("analyst-1", domain.CompOffUsed, "0.5", day("2025-06-08"), base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, earned))
	require.NoError(t, repo.Create(ctx, used))
	require.NoError(t, repo.Create(ctx,
		compOffTx("analyst-2", domain.CompOffEarned, "2", day("2025-06-01"), base)))

	got, err := repo.ListByAnalyst(ctx, "analyst-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, earned.ID, got[0].ID)
	assert.Equal(t, used.ID, got[1].ID)
	assert.True(t, got[0].IsBanked)
	assert.False(t, got[1].IsBanked)
}

func TestCompOffRepo_AmountRoundTripsExactly(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompOffRepo(database)
	ctx := context.Background()

	seedAnalystIDs(t, database, "analyst-1")
	tx := compOffTx("analyst-1", domain.CompOffEarned, "0.1", day("2025-06-01"), time.Now().UTC())
	require.NoError(t, repo.Create(ctx, tx))

	got, err := repo.ListByAnalyst(ctx, "analyst-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("0.1")))
}

func TestCompOffRepo_BalanceSignsByType(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompOffRepo(database)
	ctx := context.Background()

	seedAnalystIDs(t, database, "analyst-1")
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx,
		compOffTx("analyst-1", domain.CompOffEarned, "2", day("2025-06-01"), now)))
	require.NoError(t, repo.Create(ctx,
		compOffTx("analyst-1", domain.CompOffAutoAssigned, "1", day("2025-06-08"), now)))
	require.NoError(t, repo.Create(ctx,
		compOffTx("analyst-1", domain.CompOffUsed, "0.5", day("2025-06-15"), now)))

	balance, err := repo.Balance(ctx, "analyst-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("2.5")), "got %s", balance)
}

func TestCompOffRepo_BalanceEmptyLedger(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompOffRepo(database)

	balance, err := repo.Balance(context.Background(), "analyst-1")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestCompOffRepo_ListByAnalystPeriod(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompOffRepo(database)
	ctx := context.Background()

	seedAnalystIDs(t, database, "analyst-1")
	now := time.Now().UTC()
	may := compOffTx("analyst-1", domain.CompOffEarned, "1", day("2025-05-25"), now)
	june := compOffTx("analyst-1", domain.CompOffEarned, "1", day("2025-06-08"), now)
	july := compOffTx("analyst-1", domain.CompOffEarned, "1", day("2025-07-06"), now)
	require.NoError(t, repo.Create(ctx, may))
	require.NoError(t, repo.Create(ctx, june))
	require.NoError(t, repo.Create(ctx, july))

	got, err := repo.ListByAnalystPeriod(ctx, "analyst-1", day("2025-06-01"), day("2025-06-30"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, june.ID, got[0].ID)
}

func TestCompOffRepo_ListByAnalystWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompOffRepo(database)
	ctx := context.Background()

	seedAnalystIDs(t, database, "analyst-1")
	now := time.Now().UTC()
	target := compOffTx("analyst-1", domain.CompOffAutoAssigned, "1", day("2025-06-01"), now)
	require.NoError(t, repo.Create(ctx, target))
	require.NoError(t, repo.Create(ctx,
		compOffTx("analyst-1", domain.CompOffAutoAssigned, "1", day("2025-06-08"), now)))

	got, err := repo.ListByAnalystWeek(ctx, "analyst-1", day("2025-06-01"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, target.ID, got[0].ID)
}
