package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WindowType is the completion-time budget assigned to a task at creation.
type WindowType string

const (
	WindowDaily   WindowType = "daily"
	WindowWeekly  WindowType = "weekly"
	WindowMonthly WindowType = "monthly"
	WindowCustom  WindowType = "custom"
)

// TaskStatus is the deadline-derived state of a task. It is computed at read
// time from the task's timestamps and never written back to the store; only
// the archived flag is persisted.
type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusAtRisk    TaskStatus = "at_risk"
	TaskStatusOverdue   TaskStatus = "overdue"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusArchived  TaskStatus = "archived"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// CompletionQuality records whether a task was finished before or after its
// deadline. Set exactly once, at completion time.
type CompletionQuality string

const (
	CompletionOnTime CompletionQuality = "on_time"
	CompletionLate   CompletionQuality = "late"
)

// Task represents a tracked task with a flexible completion window.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	WindowType  WindowType `json:"window_type"`
	// WindowValue is the day count for custom windows, nil otherwise.
	WindowValue       *int               `json:"window_value,omitempty"`
	Deadline          time.Time          `json:"deadline"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
	Archived          bool               `json:"-"`
	Priority          Priority           `json:"priority"`
	Tags              []string           `json:"tags"`
	CompletionQuality *CompletionQuality `json:"completion_quality,omitempty"`

	IsRecurring        bool        `json:"is_recurring"`
	RecurrencePattern  *WindowType `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval int         `json:"recurrence_interval,omitempty"`
	ParentTaskID       *uuid.UUID  `json:"parent_task_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Status is derived by schedule.Resolve before the task leaves the API.
	Status TaskStatus `json:"status"`
}

// IsCompleted reports whether the task has a completion timestamp.
func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// IsOverdue reports whether the task's deadline has passed without completion.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted() {
		return false
	}
	return now.After(t.Deadline)
}

// ParseTags splits a comma-separated tag string into a cleaned list.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags renders a tag list back to the comma-separated storage form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
