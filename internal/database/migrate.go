package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the schema. Statements are idempotent (IF NOT EXISTS), so
// running it against an existing database is safe.
func Migrate(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
