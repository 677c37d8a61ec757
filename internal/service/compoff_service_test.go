package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompOff_BankAndUse(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.compOffService()
	ws := day("2025-06-01")

	require.NoError(t, svc.Bank(ctx, roster[0].ID, decimal.NewFromInt(2), ws, "weekend coverage"))

	balance, err := svc.Balance(ctx, roster[0].ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(2)))

	require.NoError(t, svc.Use(ctx, roster[0].ID, decimal.NewFromFloat(0.5), ws, "half day off"))

	balance, err = svc.Balance(ctx, roster[0].ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromFloat(1.5)), "got %s", balance)
}

func TestCompOff_UseRejectsOverdraft(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.compOffService()
	ws := day("2025-06-01")

	require.NoError(t, svc.Bank(ctx, roster[0].ID, decimal.NewFromInt(1), ws, ""))

	err := svc.Use(ctx, roster[0].ID, decimal.NewFromInt(2), ws, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient")

	balance, err := svc.Balance(ctx, roster[0].ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1)))
}

func TestCompOff_RejectsNonPositiveAmounts(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.compOffService()
	ws := day("2025-06-01")

	assert.Error(t, svc.Bank(ctx, roster[0].ID, decimal.Zero, ws, ""))
	assert.Error(t, svc.Bank(ctx, roster[0].ID, decimal.NewFromInt(-1), ws, ""))
	assert.Error(t, svc.Use(ctx, roster[0].ID, decimal.Zero, ws, ""))
}

func TestCompOff_BankUnknownAnalyst(t *testing.T) {
	env := setupEnv(t)
	svc := env.compOffService()

	err := svc.Bank(context.Background(), "nobody", decimal.NewFromInt(1), day("2025-06-01"), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompOff_CreditOvertimeIdempotent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftWeekend, 1)
	svc := env.compOffService()
	ws := day("2025-06-01")

	credited, err := svc.CreditOvertime(ctx, roster[0].ID, ws, 2)
	require.NoError(t, err)
	assert.True(t, credited.Equal(decimal.NewFromInt(2)))

	// Same week again: fully credited, nothing added.
	credited, err = svc.CreditOvertime(ctx, roster[0].ID, ws, 2)
	require.NoError(t, err)
	assert.True(t, credited.IsZero())

	// Overtime grew by a day: only the shortfall is credited.
	credited, err = svc.CreditOvertime(ctx, roster[0].ID, ws, 3)
	require.NoError(t, err)
	assert.True(t, credited.Equal(decimal.NewFromInt(1)))

	balance, err := svc.Balance(ctx, roster[0].ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(3)), "got %s", balance)
}

func TestCompOff_CreditOvertimeZeroDays(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftWeekend, 1)
	svc := env.compOffService()

	credited, err := svc.CreditOvertime(ctx, roster[0].ID, day("2025-06-01"), 0)
	require.NoError(t, err)
	assert.True(t, credited.IsZero())

	txs, err := svc.Transactions(ctx, roster[0].ID, day("2025-05-01"), day("2025-07-01"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCompOff_TransactionsFilterByPeriod(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftMorning, 1)
	svc := env.compOffService()

	require.NoError(t, svc.Bank(ctx, roster[0].ID, decimal.NewFromInt(1), day("2025-06-01"), "june"))
	require.NoError(t, svc.Bank(ctx, roster[0].ID, decimal.NewFromInt(1), day("2025-07-06"), "july"))

	txs, err := svc.Transactions(ctx, roster[0].ID, day("2025-06-01"), day("2025-06-30"))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "june", txs[0].Note)
}

func TestCompOff_UsedDaysDoNotCountAsCredit(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := seedAnalysts(t, env, domain.ShiftWeekend, 1)
	svc := env.compOffService()
	ws := day("2025-06-01")

	_, err := svc.CreditOvertime(ctx, roster[0].ID, ws, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Use(ctx, roster[0].ID, decimal.NewFromInt(1), ws, ""))

	// Spending the credit must not reopen the week for crediting.
	credited, err := svc.CreditOvertime(ctx, roster[0].ID, ws, 1)
	require.NoError(t, err)
	assert.True(t, credited.IsZero())
}
