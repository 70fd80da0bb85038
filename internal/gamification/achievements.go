package gamification

import (
	"github.com/google/uuid"

	"github.com/harshsongara/timetable/internal/models"
)

// Counters is the snapshot of user counters achievement rules are evaluated
// against.
type Counters struct {
	CurrentStreak  int
	LongestStreak  int
	TotalCompleted int
	CompletedToday int
}

// Eligible reports whether the counters satisfy an achievement's requirement.
// Unknown requirement types never unlock.
func Eligible(a models.Achievement, c Counters) bool {
	switch a.RequirementType {
	case models.RequirementStreak:
		return c.CurrentStreak >= a.RequirementValue
	case models.RequirementTotalTasks:
		return c.TotalCompleted >= a.RequirementValue
	case models.RequirementDailyGoal:
		return c.CompletedToday >= a.RequirementValue
	case models.RequirementLongestStreak:
		return c.LongestStreak >= a.RequirementValue
	default:
		return false
	}
}

// NewlyUnlocked returns the achievements whose requirements the counters now
// satisfy and that the user has not already earned.
func NewlyUnlocked(all []models.Achievement, earned map[uuid.UUID]bool, c Counters) []models.Achievement {
	var unlocked []models.Achievement
	for _, a := range all {
		if earned[a.ID] {
			continue
		}
		if Eligible(a, c) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
