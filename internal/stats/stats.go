// Package stats aggregates a user's tasks into completion summaries and
// day-bucketed trend series. All aggregation is pure: callers fetch the task
// slice and the functions here never touch the store.
package stats

import (
	"math"
	"time"

	"github.com/harshsongara/timetable/internal/models"
)

// Summary describes completion outcomes for tasks whose deadline fell inside
// a reporting period.
type Summary struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	OnTime         int     `json:"on_time"`
	Late           int     `json:"late"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completion_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
}

// TrendPoint is one calendar day of task creation and completion counts.
type TrendPoint struct {
	Label     string `json:"label"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// Summarize computes completion statistics over tasks already filtered to a
// deadline range (archived excluded). Overdue is evaluated against now, not
// any stored label. Rates are percentages rounded to one decimal; an empty
// slice yields zero rates rather than an error.
func Summarize(tasks []*models.Task, now time.Time) Summary {
	s := Summary{Total: len(tasks)}
	if s.Total == 0 {
		return s
	}

	for _, t := range tasks {
		if t.IsCompleted() {
			s.Completed++
		}
		if t.CompletionQuality != nil {
			switch *t.CompletionQuality {
			case models.CompletionOnTime:
				s.OnTime++
			case models.CompletionLate:
				s.Late++
			}
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}

	s.CompletionRate = round1(float64(s.Completed) / float64(s.Total) * 100)
	s.OnTimeRate = round1(float64(s.OnTime) / float64(s.Total) * 100)
	return s
}

// Trend buckets tasks by UTC calendar day over the trailing days ending at
// now's date, counting creations and completions per day. Buckets are keyed
// independently by created_at and completed_at; the deadline plays no part.
// Labels are short weekday names, oldest day first; windows longer than a
// week use dated labels since weekday names would repeat.
func Trend(tasks []*models.Task, now time.Time, days int) []TrendPoint {
	if days < 1 {
		days = 1
	}

	end := dateOf(now)
	start := end.AddDate(0, 0, -(days - 1))

	labelFormat := "Mon"
	if days > 7 {
		labelFormat = "Jan 2"
	}

	points := make([]TrendPoint, days)
	for i := range points {
		points[i].Label = start.AddDate(0, 0, i).Format(labelFormat)
	}

	bucket := func(t time.Time) (int, bool) {
		day := dateOf(t)
		if day.Before(start) || day.After(end) {
			return 0, false
		}
		return int(day.Sub(start).Hours() / 24), true
	}

	for _, t := range tasks {
		if i, ok := bucket(t.CreatedAt); ok {
			points[i].Created++
		}
		if t.CompletedAt != nil {
			if i, ok := bucket(*t.CompletedAt); ok {
				points[i].Completed++
			}
		}
	}

	return points
}

// DayRange returns the inclusive bounds of the UTC calendar day containing t.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := dateOf(t)
	return start, endOfDay(start)
}

// WeekRange returns the inclusive bounds of the trailing 7-day period ending
// on the day containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	day := dateOf(t)
	return day.AddDate(0, 0, -6), endOfDay(day)
}

// MonthRange returns the inclusive bounds of the calendar month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Second)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
