package repository

import (
	"context"
	"fmt"
)

// Both statements are valid in Postgres and SQLite, which keeps local runs
// on the embedded driver identical to production.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS document_references (
		owner_id        TEXT PRIMARY KEY,
		storage_locator TEXT NOT NULL,
		display_name    TEXT NOT NULL,
		uploaded_at     TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS structured_records (
		owner_id        TEXT PRIMARY KEY,
		education       TEXT NOT NULL,
		work_experience TEXT NOT NULL,
		skills          TEXT NOT NULL,
		languages       TEXT NOT NULL,
		certifications  TEXT NOT NULL,
		extracted_at    TIMESTAMP NOT NULL
	)`,
}

// EnsureSchema creates the record-store tables when they do not exist yet.
func (d *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := d.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
