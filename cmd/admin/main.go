package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harshsongara/timetable/cmd/admin/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "timetable-admin",
		Short: "Administration tool for the Timetable API",
		Long:  "CLI tool for applying the database schema and managing the achievement catalog",
	}

	rootCmd.AddCommand(commands.NewMigrateCmd())
	rootCmd.AddCommand(commands.NewAchievementsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
