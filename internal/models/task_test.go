package models

import (
	"reflect"
	"testing"
	"time"
)

func TestTaskIsCompleted(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	task := Task{}
	if task.IsCompleted() {
		t.Error("IsCompleted() = true for open task")
	}
	task.CompletedAt = &now
	if !task.IsCompleted() {
		t.Error("IsCompleted() = false for completed task")
	}
}

func TestTaskIsOverdue(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		completed bool
		now       time.Time
		want      bool
	}{
		{"before deadline", false, deadline.Add(-time.Hour), false},
		{"exactly at deadline", false, deadline, false},
		{"past deadline", false, deadline.Add(time.Second), true},
		{"completed tasks are never overdue", true, deadline.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task := Task{Deadline: deadline}
			if tt.completed {
				done := deadline.Add(-time.Hour)
				task.CompletedAt = &done
			}
			if got := task.IsOverdue(tt.now); got != tt.want {
				t.Errorf("IsOverdue(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "work", []string{"work"}},
		{"multiple with spaces", " work , home ,urgent", []string{"work", "home", "urgent"}},
		{"empty segments dropped", "work,,home,", []string{"work", "home"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseTags(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestJoinTags(t *testing.T) {
	t.Parallel()

	if got := JoinTags([]string{"work", "home"}); got != "work,home" {
		t.Errorf("JoinTags() = %q, want %q", got, "work,home")
	}
	if got := JoinTags(nil); got != "" {
		t.Errorf("JoinTags(nil) = %q, want empty", got)
	}
}
