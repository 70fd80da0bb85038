package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account with its gamification counters.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Timezone     string     `json:"timezone"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	// Gamification counters. LongestStreak is raised opportunistically
	// whenever CurrentStreak passes it; the two are not reconciled anywhere else.
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	LastActivityDate    *time.Time `json:"last_activity_date,omitempty"`
	DailyGoal           int        `json:"daily_goal"`
	TotalTasksCompleted int        `json:"total_tasks_completed"`
	StreakFreezeCount   int        `json:"streak_freeze_count"`
	NotificationEnabled bool       `json:"notification_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodayProgress reports completions against the daily goal.
type TodayProgress struct {
	Completed  int     `json:"completed"`
	Goal       int     `json:"goal"`
	Percentage float64 `json:"percentage"`
}
