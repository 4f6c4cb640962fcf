package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/yoga-studio-admin/pkg/config"
)

func openMemory(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenSQLite(config.DatabaseConfig{Path: MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func courseColumns(t *testing.T, db *sqlx.DB) []string {
	t.Helper()
	var cols []string
	require.NoError(t, db.Select(&cols, `SELECT name FROM pragma_table_info('courses') ORDER BY cid`))
	return cols
}

func TestMigrateFreshDatabase(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db, nil))

	version, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
	assert.Contains(t, courseColumns(t, db), "price")
	assert.Contains(t, courseColumns(t, db), "difficulty")
	assert.Contains(t, courseColumns(t, db), "type")
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db, nil))
	require.NoError(t, Migrate(ctx, db, nil))

	var rows int
	require.NoError(t, db.Get(&rows, `SELECT COUNT(*) FROM schema_version`))
	assert.Equal(t, 1, rows)
}

func TestMigrateUpgradesVersionOne(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, CreateV1Schema(ctx, db))
	_, err := db.Exec(`INSERT INTO teachers (name) VALUES ('Jane')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO courses (name, teacher_id, day_of_week, time, duration, max_capacity) VALUES ('Flow', 1, 'Monday', '10:00', 60, 20)`)
	require.NoError(t, err)
	assert.NotContains(t, courseColumns(t, db), "price")

	require.NoError(t, Migrate(ctx, db, nil))

	version, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	var price float64
	require.NoError(t, db.Get(&price, `SELECT price FROM courses WHERE id = 1`))
	assert.Zero(t, price)
	assert.Contains(t, courseColumns(t, db), "type")
}

func TestResetDropsRows(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db, nil))
	_, err := db.Exec(`INSERT INTO teachers (name) VALUES ('Jane')`)
	require.NoError(t, err)

	require.NoError(t, Reset(ctx, db, nil))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM teachers`))
	assert.Zero(t, count)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(context.Background(), db, nil))

	_, err := db.Exec(`INSERT INTO courses (name, teacher_id, day_of_week, time, duration, max_capacity, price) VALUES ('Flow', 99, 'Monday', '10:00', 60, 20, 10)`)
	assert.Error(t, err)
}
