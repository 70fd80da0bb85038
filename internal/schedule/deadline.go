package schedule

import (
	"time"

	"github.com/harshsongara/timetable/internal/models"
)

const (
	// MinCustomDays and MaxCustomDays bound the day count of custom windows.
	MinCustomDays = 1
	MaxCustomDays = 365
)

// Deadline computes the absolute deadline for a task created at createdAt
// (UTC) with the given window. Daily windows end at 23:59:59 of the creation
// day in the user's location, converted back to UTC; every other window is
// timezone-naive. Unrecognized windows and custom windows without a valid day
// count fall back to one day — the calculator never fails.
func Deadline(createdAt time.Time, window models.WindowType, customDays int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	switch window {
	case models.WindowDaily:
		local := createdAt.In(loc)
		y, m, d := local.Date()
		return time.Date(y, m, d, 23, 59, 59, 0, loc).UTC()
	case models.WindowWeekly:
		return createdAt.AddDate(0, 0, 7)
	case models.WindowMonthly:
		// Flat 30-day approximation, deliberately not calendar-month-aware.
		return createdAt.AddDate(0, 0, 30)
	case models.WindowCustom:
		if customDays >= MinCustomDays && customDays <= MaxCustomDays {
			return createdAt.AddDate(0, 0, customDays)
		}
	}

	return createdAt.AddDate(0, 0, 1)
}

// NextOccurrence computes the deadline of the next instance of a recurring
// task. Returns the zero time and false for patterns that do not recur.
func NextOccurrence(deadline time.Time, pattern models.WindowType, interval int) (time.Time, bool) {
	if interval < 1 {
		interval = 1
	}

	switch pattern {
	case models.WindowDaily:
		return deadline.AddDate(0, 0, interval), true
	case models.WindowWeekly:
		return deadline.AddDate(0, 0, 7*interval), true
	case models.WindowMonthly:
		return deadline.AddDate(0, 0, 30*interval), true
	default:
		return time.Time{}, false
	}
}

// UserLocation resolves a stored IANA timezone name, falling back to UTC for
// empty or unknown names.
func UserLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
