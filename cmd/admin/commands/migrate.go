package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harshsongara/timetable/internal/database"
)

// openDatabase connects using DATABASE_URL. The admin tool deliberately does
// not go through config.Load, which requires server-only settings like the
// token secret.
func openDatabase() (*database.DB, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := database.New(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long:  "Apply the embedded schema. All statements are idempotent, so re-running is safe.",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := database.Migrate(context.Background(), db); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}

			fmt.Println("Schema applied.")
			return nil
		},
	}
}
