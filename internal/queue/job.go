package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of notification job.
type JobType string

const (
	// JobTypeAchievementUnlocked notifies a user that they earned an achievement.
	JobTypeAchievementUnlocked JobType = "achievement_unlocked"
	// JobTypeStreakMilestone notifies a user that their streak hit a milestone.
	JobTypeStreakMilestone JobType = "streak_milestone"
)

// Job is a notification job.
type Job struct {
	ID            uuid.UUID      `json:"id"`
	Type          JobType        `json:"type"`
	UserID        uuid.UUID      `json:"user_id"`
	AchievementID *uuid.UUID     `json:"achievement_id,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	RetryCount    int            `json:"retry_count"`
	MaxRetries    int            `json:"max_retries"`
}

// NewJob creates a notification job.
func NewJob(jobType JobType, userID uuid.UUID, achievementID *uuid.UUID) *Job {
	return &Job{
		ID:            uuid.New(),
		Type:          jobType,
		UserID:        userID,
		AchievementID: achievementID,
		Metadata:      make(map[string]any),
		CreatedAt:     time.Now(),
		MaxRetries:    3,
	}
}

// CanRetry checks whether the job has retries left.
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count.
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
