package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rota/internal/testutil"
)

// seedAnalystIDs inserts parent analyst rows for the literal ids the
// repo tests reference, satisfying the schema's foreign keys.
func seedAnalystIDs(t *testing.T, database *sql.DB, ids ...string) {
	t.Helper()
	repo := NewSQLiteAnalystRepo(database)
	ctx := context.Background()
	for _, id := range ids {
		a := testutil.NewTestAnalyst(id)
		a.ID = id
		require.NoError(t, repo.Create(ctx, a))
	}
}
