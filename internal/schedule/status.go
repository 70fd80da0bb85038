package schedule

import (
	"time"

	"github.com/harshsongara/timetable/internal/models"
)

// atRiskThreshold is the fraction of the total window below which a task is
// considered at risk.
const atRiskThreshold = 0.2

// Resolve derives a task's status from its timestamps. It is a pure read:
// completion and archival are set only by their explicit actions, never here.
//
// A task exactly at its deadline is not yet overdue, and a task with exactly
// 20% of its window remaining is not yet at risk; both comparisons are strict.
// Zero-duration windows (deadline == creation) are clamped to at_risk instead
// of dividing by zero.
func Resolve(t *models.Task, now time.Time) models.TaskStatus {
	if t.Archived {
		return models.TaskStatusArchived
	}
	if t.CompletedAt != nil {
		return models.TaskStatusCompleted
	}
	if now.After(t.Deadline) {
		return models.TaskStatusOverdue
	}

	total := t.Deadline.Sub(t.CreatedAt)
	if total <= 0 {
		return models.TaskStatusAtRisk
	}

	remaining := t.Deadline.Sub(now)
	if remaining.Seconds()/total.Seconds() < atRiskThreshold {
		return models.TaskStatusAtRisk
	}

	return models.TaskStatusActive
}

// ResolveAll stamps the derived status onto each task in place.
func ResolveAll(tasks []*models.Task, now time.Time) {
	for _, t := range tasks {
		t.Status = Resolve(t, now)
	}
}
