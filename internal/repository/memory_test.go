package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capturedQuery struct {
	sql  string
	vars []any
}

// dryRunDB renders statements with the postgres dialect without a server.
func dryRunDB(t *testing.T) (*gorm.DB, *[]capturedQuery) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=shadow dbname=shadow sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var captured []capturedQuery
	err = db.Callback().Row().After("gorm:row").Register("shadow:capture", func(tx *gorm.DB) {
		captured = append(captured, capturedQuery{
			sql:  tx.Statement.SQL.String(),
			vars: append([]any(nil), tx.Statement.Vars...),
		})
	})
	require.NoError(t, err)
	return db, &captured
}

func TestMemoryQueryFiltersByUserInSQL(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewMemoryRepo(db)

	// Dry run has no rows to scan, so the call itself reports an error.
	_, _ = repo.Query(context.Background(), "alice", []float32{0.1, 0.2, 0.3}, 5)

	require.Len(t, *captured, 1)
	q := (*captured)[0]
	assert.Contains(t, q.sql, "WHERE user_id = $2")
	assert.Contains(t, q.sql, "LIMIT $4")
	require.Len(t, q.vars, 4)
	assert.Equal(t, "alice", q.vars[1])
	assert.Equal(t, 5, q.vars[3])
}

func TestMemoryQuerySkipsEmptyVector(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewMemoryRepo(db)

	records, err := repo.Query(context.Background(), "alice", nil, 5)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, *captured)
}
