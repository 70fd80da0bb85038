package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/models"
)

// achievementSeed is the YAML shape of a catalog entry.
type achievementSeed struct {
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	Icon             string `yaml:"icon"`
	Category         string `yaml:"category"`
	RequirementType  string `yaml:"requirement_type"`
	RequirementValue int    `yaml:"requirement_value"`
	Points           int    `yaml:"points"`
}

// defaultAchievements is the built-in catalog, used when no seed file is given.
var defaultAchievements = []achievementSeed{
	{"Getting Started", "Complete your first task", "🎯", "milestone", "total_tasks", 1, 5},
	{"Day 1", "Start your first streak", "🔥", "streak", "streak", 1, 10},
	{"Hot Streak", "3 days in a row!", "🔥", "streak", "streak", 3, 25},
	{"On Fire", "7 days in a row!", "🚀", "streak", "streak", 7, 50},
	{"Unstoppable", "30 days in a row!", "⚡", "streak", "streak", 30, 200},
	{"Legend", "100 days in a row!", "👑", "streak", "streak", 100, 500},
	{"Productive", "Complete 10 tasks", "📋", "milestone", "total_tasks", 10, 20},
	{"Task Master", "Complete 50 tasks", "🏆", "milestone", "total_tasks", 50, 100},
	{"Achiever", "Complete 100 tasks", "🎖️", "milestone", "total_tasks", 100, 250},
	{"Champion", "Complete 500 tasks", "🥇", "milestone", "total_tasks", 500, 1000},
	{"Goal Crusher", "Reach your daily goal", "🎯", "daily", "daily_goal", 3, 15},
	{"Overachiever", "Complete 5 tasks in one day", "⭐", "daily", "daily_goal", 5, 30},
	{"Productivity Beast", "Complete 10 tasks in one day", "🦾", "daily", "daily_goal", 10, 50},
}

// NewAchievementsCmd creates the achievements command with seed and list
// subcommands.
func NewAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Manage the achievement catalog",
	}
	cmd.AddCommand(newAchievementsSeedCmd())
	cmd.AddCommand(newAchievementsListCmd())
	return cmd
}

func newAchievementsSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the achievement catalog",
		Long:  "Upsert the built-in achievement catalog, or a YAML catalog given with --file. Existing entries are matched by name and updated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds := defaultAchievements
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
				seeds = nil
				if err := yaml.Unmarshal(data, &seeds); err != nil {
					return fmt.Errorf("parse seed file: %w", err)
				}
			}

			for i, s := range seeds {
				if err := validateSeed(s); err != nil {
					return fmt.Errorf("entry %d (%q): %w", i+1, s.Name, err)
				}
			}

			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			repo := database.NewAchievementRepository(db)
			ctx := context.Background()
			for _, s := range seeds {
				a := &models.Achievement{
					ID:               uuid.New(),
					Name:             s.Name,
					Description:      s.Description,
					Icon:             s.Icon,
					Category:         s.Category,
					RequirementType:  models.RequirementType(s.RequirementType),
					RequirementValue: s.RequirementValue,
					Points:           s.Points,
				}
				if err := repo.Upsert(ctx, a); err != nil {
					return fmt.Errorf("seed achievement %q: %w", s.Name, err)
				}
			}

			fmt.Printf("Seeded %d achievements.\n", len(seeds))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog file (defaults to the built-in catalog)")
	return cmd
}

func validateSeed(s achievementSeed) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch models.RequirementType(s.RequirementType) {
	case models.RequirementStreak, models.RequirementTotalTasks,
		models.RequirementDailyGoal, models.RequirementLongestStreak:
	default:
		return fmt.Errorf("invalid requirement_type: %s", s.RequirementType)
	}
	if s.RequirementValue < 1 {
		return fmt.Errorf("requirement_value must be at least 1")
	}
	return nil
}

func newAchievementsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the achievement catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			repo := database.NewAchievementRepository(db)
			all, err := repo.List(context.Background())
			if err != nil {
				return fmt.Errorf("list achievements: %w", err)
			}

			if len(all) == 0 {
				fmt.Println("No achievements in the catalog. Use 'achievements seed' to add the defaults.")
				return nil
			}
			for _, a := range all {
				fmt.Printf("%s %-20s %-12s %s=%d (%d pts)\n",
					a.Icon, a.Name, a.Category, a.RequirementType, a.RequirementValue, a.Points)
			}
			return nil
		},
	}
}
