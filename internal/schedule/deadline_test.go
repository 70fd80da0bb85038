package schedule

import (
	"testing"
	"time"

	"github.com/harshsongara/timetable/internal/models"
)

func TestDeadlineDaily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		created  time.Time
		location string
		want     time.Time
	}{
		{
			name:     "utc midday",
			created:  time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			location: "UTC",
			want:     time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "new york evening crosses utc date",
			created:  time.Date(2024, 1, 16, 2, 0, 0, 0, time.UTC), // Jan 15 21:00 in New York
			location: "America/New_York",
			want:     time.Date(2024, 1, 16, 4, 59, 59, 0, time.UTC), // Jan 15 23:59:59 EST
		},
		{
			name:     "tokyo morning ahead of utc date",
			created:  time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC), // Jan 16 07:00 in Tokyo
			location: "Asia/Tokyo",
			want:     time.Date(2024, 1, 16, 14, 59, 59, 0, time.UTC), // Jan 16 23:59:59 JST
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loc, err := time.LoadLocation(tt.location)
			if err != nil {
				t.Fatalf("LoadLocation(%q): %v", tt.location, err)
			}

			got := Deadline(tt.created, models.WindowDaily, 0, loc)
			if !got.Equal(tt.want) {
				t.Errorf("Deadline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeadlineFixedWindows(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		window     models.WindowType
		customDays int
		want       time.Time
	}{
		{"weekly", models.WindowWeekly, 0, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"monthly is a flat 30 days", models.WindowMonthly, 0, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"custom 5 days", models.WindowCustom, 5, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
		{"custom at lower bound", models.WindowCustom, 1, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"custom at upper bound", models.WindowCustom, 365, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"custom zero falls back to one day", models.WindowCustom, 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"custom above bound falls back to one day", models.WindowCustom, 366, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"unrecognized window falls back to one day", models.WindowType("yearly"), 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Deadline(created, tt.window, tt.customDays, time.UTC)
			if !got.Equal(tt.want) {
				t.Errorf("Deadline(%s, %d) = %v, want %v", tt.window, tt.customDays, got, tt.want)
			}
		})
	}
}

func TestDeadlineNilLocation(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC)
	got := Deadline(created, models.WindowDaily, 0, nil)
	want := time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Deadline() with nil location = %v, want %v", got, want)
	}
}

func TestDeadlineNeverBeforeCreation(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 3, 23, 59, 0, 0, time.UTC)
	for _, window := range []models.WindowType{models.WindowDaily, models.WindowWeekly, models.WindowMonthly, models.WindowCustom} {
		got := Deadline(created, window, 3, time.UTC)
		if got.Before(created) {
			t.Errorf("Deadline(%s) = %v is before creation %v", window, got, created)
		}
	}
}

func TestNextOccurrence(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pattern  models.WindowType
		interval int
		want     time.Time
		wantOK   bool
	}{
		{"daily", models.WindowDaily, 1, time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC), true},
		{"daily every third day", models.WindowDaily, 3, time.Date(2024, 2, 4, 12, 0, 0, 0, time.UTC), true},
		{"weekly", models.WindowWeekly, 1, time.Date(2024, 2, 8, 12, 0, 0, 0, time.UTC), true},
		{"weekly biweekly", models.WindowWeekly, 2, time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC), true},
		{"monthly", models.WindowMonthly, 1, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), true},
		{"zero interval clamps to one", models.WindowDaily, 0, time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC), true},
		{"custom does not recur", models.WindowCustom, 1, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := NextOccurrence(deadline, tt.pattern, tt.interval)
			if ok != tt.wantOK {
				t.Fatalf("NextOccurrence() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("NextOccurrence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserLocation(t *testing.T) {
	t.Parallel()

	if loc := UserLocation(""); loc != time.UTC {
		t.Errorf("UserLocation(\"\") = %v, want UTC", loc)
	}
	if loc := UserLocation("Not/AZone"); loc != time.UTC {
		t.Errorf("UserLocation(unknown) = %v, want UTC", loc)
	}
	if loc := UserLocation("Europe/Berlin"); loc.String() != "Europe/Berlin" {
		t.Errorf("UserLocation(Europe/Berlin) = %v", loc)
	}
}
