package stats

import (
	"testing"
	"time"

	"github.com/harshsongara/timetable/internal/models"
)

func qualityPtr(q models.CompletionQuality) *models.CompletionQuality {
	return &q
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-2 * time.Hour)
	future := now.Add(2 * time.Hour)

	t.Run("empty input yields zero rates", func(t *testing.T) {
		t.Parallel()
		got := Summarize(nil, now)
		if got.Total != 0 || got.CompletionRate != 0 || got.OnTimeRate != 0 {
			t.Errorf("Summarize(nil) = %+v, want zeroes", got)
		}
	})

	t.Run("mixed outcomes", func(t *testing.T) {
		t.Parallel()
		completedOnTime := past
		completedLate := past
		tasks := []*models.Task{
			{Deadline: future, CompletedAt: &completedOnTime, CompletionQuality: qualityPtr(models.CompletionOnTime)},
			{Deadline: past, CompletedAt: &completedLate, CompletionQuality: qualityPtr(models.CompletionLate)},
			{Deadline: past},   // overdue, still open
			{Deadline: future}, // open, not overdue
		}

		got := Summarize(tasks, now)
		if got.Total != 4 || got.Completed != 2 || got.OnTime != 1 || got.Late != 1 || got.Overdue != 1 {
			t.Errorf("Summarize() = %+v", got)
		}
		if got.CompletionRate != 50 {
			t.Errorf("CompletionRate = %v, want 50", got.CompletionRate)
		}
		if got.OnTimeRate != 25 {
			t.Errorf("OnTimeRate = %v, want 25", got.OnTimeRate)
		}
	})

	t.Run("rates are rounded to one decimal", func(t *testing.T) {
		t.Parallel()
		completed := past
		tasks := []*models.Task{
			{Deadline: future, CompletedAt: &completed},
			{Deadline: future},
			{Deadline: future},
		}

		got := Summarize(tasks, now)
		// 1/3 = 33.333... -> 33.3
		if got.CompletionRate != 33.3 {
			t.Errorf("CompletionRate = %v, want 33.3", got.CompletionRate)
		}
	})
}

func TestTrend(t *testing.T) {
	t.Parallel()

	// 2024-05-15 is a Wednesday.
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

	t.Run("buckets align oldest first", func(t *testing.T) {
		t.Parallel()
		completedToday := now.Add(-time.Hour)
		completedTwoDaysAgo := now.AddDate(0, 0, -2)
		tasks := []*models.Task{
			{CreatedAt: now.AddDate(0, 0, -6)},                                            // first bucket
			{CreatedAt: now.AddDate(0, 0, -2), CompletedAt: &completedTwoDaysAgo},         // fifth bucket
			{CreatedAt: now.AddDate(0, 0, -10), CompletedAt: &completedToday},             // created out of range
			{CreatedAt: now.Add(-time.Minute), CompletedAt: &completedToday},              // last bucket
		}

		points := Trend(tasks, now, 7)
		if len(points) != 7 {
			t.Fatalf("len(points) = %d, want 7", len(points))
		}

		wantLabels := []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}
		for i, p := range points {
			if p.Label != wantLabels[i] {
				t.Errorf("points[%d].Label = %s, want %s", i, p.Label, wantLabels[i])
			}
		}

		if points[0].Created != 1 {
			t.Errorf("points[0].Created = %d, want 1", points[0].Created)
		}
		if points[4].Created != 1 || points[4].Completed != 1 {
			t.Errorf("points[4] = %+v, want Created=1 Completed=1", points[4])
		}
		if points[6].Created != 1 || points[6].Completed != 2 {
			t.Errorf("points[6] = %+v, want Created=1 Completed=2", points[6])
		}
	})

	t.Run("windows past a week use dated labels", func(t *testing.T) {
		t.Parallel()
		points := Trend(nil, now, 14)
		if len(points) != 14 {
			t.Fatalf("len(points) = %d, want 14", len(points))
		}
		if points[0].Label != "May 2" {
			t.Errorf("points[0].Label = %s, want May 2", points[0].Label)
		}
		if points[13].Label != "May 15" {
			t.Errorf("points[13].Label = %s, want May 15", points[13].Label)
		}

		// Every label in the window is distinct, unlike repeating weekday names.
		seen := make(map[string]bool)
		for _, p := range points {
			if seen[p.Label] {
				t.Errorf("label %s repeats", p.Label)
			}
			seen[p.Label] = true
		}
	})

	t.Run("days below one clamps to one", func(t *testing.T) {
		t.Parallel()
		points := Trend(nil, now, 0)
		if len(points) != 1 {
			t.Errorf("len(points) = %d, want 1", len(points))
		}
	})
}

func TestRanges(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

	t.Run("day", func(t *testing.T) {
		t.Parallel()
		start, end := DayRange(now)
		if !start.Equal(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start = %v", start)
		}
		if !end.After(now) || !end.Before(time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("end = %v, want inside the same day", end)
		}
	})

	t.Run("week is trailing seven days", func(t *testing.T) {
		t.Parallel()
		start, end := WeekRange(now)
		if !start.Equal(time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start = %v, want 2024-05-09", start)
		}
		if end.Before(now) {
			t.Errorf("end = %v, want at or after now", end)
		}
	})

	t.Run("month is the calendar month", func(t *testing.T) {
		t.Parallel()
		start, end := MonthRange(now)
		if !start.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start = %v, want 2024-05-01", start)
		}
		if !end.Equal(time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)) {
			t.Errorf("end = %v, want 2024-05-31 23:59:59", end)
		}
	})
}
