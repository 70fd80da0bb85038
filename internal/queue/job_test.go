package queue

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	achievementID := uuid.New()
	job := NewJob(JobTypeAchievementUnlocked, userID, &achievementID)

	if job.Type != JobTypeAchievementUnlocked {
		t.Errorf("Type = %s, want %s", job.Type, JobTypeAchievementUnlocked)
	}
	if job.UserID != userID {
		t.Errorf("UserID = %s, want %s", job.UserID, userID)
	}
	if job.AchievementID == nil || *job.AchievementID != achievementID {
		t.Errorf("AchievementID = %v, want %s", job.AchievementID, achievementID)
	}
	if job.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", job.MaxRetries)
	}
	if job.Metadata == nil {
		t.Error("Metadata is nil, want initialized map")
	}
}

func TestJobRetry(t *testing.T) {
	t.Parallel()

	job := NewJob(JobTypeStreakMilestone, uuid.New(), nil)

	for i := 0; i < job.MaxRetries; i++ {
		if !job.CanRetry() {
			t.Fatalf("CanRetry() = false after %d retries, want true", i)
		}
		job.IncrementRetry()
	}

	if job.CanRetry() {
		t.Errorf("CanRetry() = true after %d retries, want false", job.RetryCount)
	}
}
