package gamification

import (
	"testing"

	"github.com/google/uuid"

	"github.com/harshsongara/timetable/internal/models"
)

func TestEligible(t *testing.T) {
	t.Parallel()

	counters := Counters{
		CurrentStreak:  7,
		LongestStreak:  12,
		TotalCompleted: 50,
		CompletedToday: 3,
	}

	tests := []struct {
		name        string
		requirement models.RequirementType
		value       int
		want        bool
	}{
		{"streak met exactly", models.RequirementStreak, 7, true},
		{"streak not met", models.RequirementStreak, 8, false},
		{"total tasks met", models.RequirementTotalTasks, 50, true},
		{"total tasks not met", models.RequirementTotalTasks, 100, false},
		{"daily goal met", models.RequirementDailyGoal, 3, true},
		{"daily goal not met", models.RequirementDailyGoal, 5, false},
		{"longest streak met", models.RequirementLongestStreak, 10, true},
		{"longest streak not met", models.RequirementLongestStreak, 13, false},
		{"unknown requirement never unlocks", models.RequirementType("points"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := models.Achievement{RequirementType: tt.requirement, RequirementValue: tt.value}
			if got := Eligible(a, counters); got != tt.want {
				t.Errorf("Eligible(%s, %d) = %v, want %v", tt.requirement, tt.value, got, tt.want)
			}
		})
	}
}

func TestNewlyUnlocked(t *testing.T) {
	t.Parallel()

	first := models.Achievement{ID: uuid.New(), Name: "Getting Started", RequirementType: models.RequirementTotalTasks, RequirementValue: 1}
	tenth := models.Achievement{ID: uuid.New(), Name: "Productive", RequirementType: models.RequirementTotalTasks, RequirementValue: 10}
	streak3 := models.Achievement{ID: uuid.New(), Name: "Hot Streak", RequirementType: models.RequirementStreak, RequirementValue: 3}
	all := []models.Achievement{first, tenth, streak3}

	counters := Counters{CurrentStreak: 3, TotalCompleted: 5}

	t.Run("earned achievements are skipped", func(t *testing.T) {
		t.Parallel()
		earned := map[uuid.UUID]bool{first.ID: true}
		got := NewlyUnlocked(all, earned, counters)
		if len(got) != 1 || got[0].ID != streak3.ID {
			t.Errorf("NewlyUnlocked() = %v, want only %q", got, streak3.Name)
		}
	})

	t.Run("nothing earned unlocks all eligible", func(t *testing.T) {
		t.Parallel()
		got := NewlyUnlocked(all, map[uuid.UUID]bool{}, counters)
		if len(got) != 2 {
			t.Fatalf("NewlyUnlocked() returned %d achievements, want 2", len(got))
		}
	})

	t.Run("nothing eligible unlocks nothing", func(t *testing.T) {
		t.Parallel()
		got := NewlyUnlocked(all, map[uuid.UUID]bool{}, Counters{})
		if len(got) != 0 {
			t.Errorf("NewlyUnlocked() = %v, want empty", got)
		}
	})
}
