package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const createMirrorRowsTable = `CREATE TABLE IF NOT EXISTS mirror_rows (
	collection TEXT NOT NULL,
	row_id TEXT NOT NULL,
	payload JSONB NOT NULL,
	synced_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, row_id)
)`

// PostgresMirror stores mirrored rows as JSONB documents in mirror_rows.
type PostgresMirror struct {
	db *sqlx.DB
}

// NewPostgresMirror constructs a PostgresMirror.
func NewPostgresMirror(db *sqlx.DB) *PostgresMirror {
	return &PostgresMirror{db: db}
}

// EnsureSchema creates the mirror table when missing.
func (m *PostgresMirror) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createMirrorRowsTable); err != nil {
		return fmt.Errorf("create mirror_rows: %w", err)
	}
	return nil
}

// Put upserts a single row.
func (m *PostgresMirror) Put(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	const query = `INSERT INTO mirror_rows (collection, row_id, payload, synced_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (collection, row_id) DO UPDATE SET payload = EXCLUDED.payload, synced_at = NOW()`
	if _, err := m.db.ExecContext(ctx, query, collection, id, payload); err != nil {
		return fmt.Errorf("mirror %s/%s: %w", collection, id, err)
	}
	return nil
}

// Clear removes every mirrored row.
func (m *PostgresMirror) Clear(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM mirror_rows`); err != nil {
		return fmt.Errorf("clear postgres mirror: %w", err)
	}
	return nil
}
