package models

import (
	"time"

	"github.com/google/uuid"
)

// RequirementType names the user counter an achievement rule is tested against.
type RequirementType string

const (
	RequirementStreak        RequirementType = "streak"
	RequirementTotalTasks    RequirementType = "total_tasks"
	RequirementDailyGoal     RequirementType = "daily_goal"
	RequirementLongestStreak RequirementType = "longest_streak"
)

// Achievement is an unlock rule with a reward point value. Immutable
// reference data, seeded by the admin CLI.
type Achievement struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	Category         string          `json:"category"`
	RequirementType  RequirementType `json:"requirement_type"`
	RequirementValue int             `json:"requirement_value"`
	Points           int             `json:"points"`
}

// UserAchievement records that a user has unlocked an achievement. At most
// one row per (user, achievement), enforced by a unique constraint.
type UserAchievement struct {
	UserID        uuid.UUID `json:"user_id"`
	AchievementID uuid.UUID `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

// EarnedAchievement is a catalog entry joined with its unlock timestamp.
type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time `json:"earned_at"`
}
