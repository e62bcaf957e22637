package testdb_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/library-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countAuthors(t *testing.T, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}) int {
	t.Helper()
	var n int
	require.NoError(t, q.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM authors").Scan(&n))
	return n
}

func TestOpen_Migrated(t *testing.T) {
	db, _ := testdb.Open(t)

	assert.Equal(t, 0, countAuthors(t, db))
}

func TestOpen_Isolated(t *testing.T) {
	if testdb.IsIntegrationTestEnvironment() {
		t.Skip("PostgreSQL databases are shared between tests")
	}

	first, _ := testdb.Open(t)
	second, _ := testdb.Open(t)

	_, err := first.Exec("INSERT INTO authors (name) VALUES ('Ada')")
	require.NoError(t, err)

	assert.Equal(t, 1, countAuthors(t, first))
	assert.Equal(t, 0, countAuthors(t, second))
}

func TestWithTx_RollsBack(t *testing.T) {
	db, _ := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.Exec("INSERT INTO authors (name) VALUES ('Ada')")
		require.NoError(t, err)
		assert.Equal(t, 1, countAuthors(t, tx))
	})

	assert.Equal(t, 0, countAuthors(t, db))
}
