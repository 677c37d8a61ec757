package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rota/internal/testutil"
)

func TestConstraintRepo_CreateAndListOverlapping(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteConstraintRepo(database)
	ctx := context.Background()

	seedAnalystIDs(t, database, "analyst-1")
	analystID := "analyst-1"
	scoped := testutil.NewTestConstraint(&analystID, day("2025-06-02"), day("2025-06-04"))
	global := testutil.NewTestConstraint(nil, day("2025-06-01"), day("2025-06-30"))
	outside := testutil.NewTestConstraint(&analystID, day("2025-07-10"), day("2025-07-12"))
	require.NoError(t, repo.Create(ctx, scoped))
	require.NoError(t, repo.Create(ctx, global))
	require.NoError(t, repo.Create(ctx, outside))

	got, err := repo.ListActiveOverlapping(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[string]bool{}
	for _, c := range got {
		byID[c.ID] = c.AnalystID == nil
	}
	// A NULL analyst_id round-trips as nil: the constraint is global.
	assert.True(t, byID[global.ID])
	assert.False(t, byID[scoped.ID])
}

func TestConstraintRepo_InactiveExcluded(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteConstraintRepo(database)
	ctx := context.Background()

	c := testutil.NewTestConstraint(nil, day("2025-06-01"), day("2025-06-07"))
	c.IsActive = false
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.ListActiveOverlapping(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConstraintRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteConstraintRepo(database)
	ctx := context.Background()

	c := testutil.NewTestConstraint(nil, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Delete(ctx, c.ID))

	got, err := repo.ListActiveOverlapping(ctx, day("2025-06-01"), day("2025-06-07"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
