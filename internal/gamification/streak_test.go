package gamification

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestDateOf(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	// Jan 15 21:00 in New York is Jan 16 in UTC; day buckets are UTC days.
	got := DateOf(time.Date(2024, 1, 15, 21, 0, 0, 0, loc))
	if !got.Equal(day(2024, 1, 16)) {
		t.Errorf("DateOf() = %v, want %v", got, day(2024, 1, 16))
	}
}

func TestAdvanceWithCompletion(t *testing.T) {
	t.Parallel()

	today := day(2024, 3, 10)

	tests := []struct {
		name        string
		state       StreakState
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "first ever completion starts at one",
			state:       StreakState{},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "unbroken run increments",
			state:       StreakState{Current: 2, Longest: 2, LastActivity: dayPtr(2024, 3, 9)},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "gap restarts at one",
			state:       StreakState{Current: 5, Longest: 8, LastActivity: dayPtr(2024, 3, 7)},
			wantCurrent: 1,
			wantLongest: 8,
		},
		{
			name:        "longest only raised when passed",
			state:       StreakState{Current: 3, Longest: 10, LastActivity: dayPtr(2024, 3, 9)},
			wantCurrent: 4,
			wantLongest: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Advance(tt.state, today, true)
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", got.Longest, tt.wantLongest)
			}
			if got.LastActivity == nil || !got.LastActivity.Equal(today) {
				t.Errorf("LastActivity = %v, want %v", got.LastActivity, today)
			}
		})
	}
}

func TestAdvanceIdempotentPerDay(t *testing.T) {
	t.Parallel()

	today := day(2024, 3, 10)
	state := Advance(StreakState{Current: 1, Longest: 1, LastActivity: dayPtr(2024, 3, 9)}, today, true)

	// Second and third completions on the same day change nothing.
	again := Advance(state, today.Add(5*time.Hour), true)
	if again != state {
		t.Errorf("second completion changed state: %+v -> %+v", state, again)
	}
	noEvidence := Advance(state, today.Add(8*time.Hour), false)
	if noEvidence != state {
		t.Errorf("no-evidence call after completion changed state: %+v -> %+v", state, noEvidence)
	}
}

func TestAdvanceWithoutCompletion(t *testing.T) {
	t.Parallel()

	today := day(2024, 3, 10)

	tests := []struct {
		name         string
		state        StreakState
		wantCurrent  int
		wantTokens   int
		wantActivity *time.Time
	}{
		{
			name:         "yesterday active streak survives the open day",
			state:        StreakState{Current: 4, LastActivity: dayPtr(2024, 3, 9), FreezeTokens: 2},
			wantCurrent:  4,
			wantTokens:   2,
			wantActivity: dayPtr(2024, 3, 9),
		},
		{
			name:         "gap consumes a freeze token and marks the day",
			state:        StreakState{Current: 4, LastActivity: dayPtr(2024, 3, 8), FreezeTokens: 2},
			wantCurrent:  4,
			wantTokens:   1,
			wantActivity: dayPtr(2024, 3, 9),
		},
		{
			name:         "gap with no tokens resets the streak",
			state:        StreakState{Current: 4, LastActivity: dayPtr(2024, 3, 8), FreezeTokens: 0},
			wantCurrent:  0,
			wantTokens:   0,
			wantActivity: dayPtr(2024, 3, 8),
		},
		{
			name:        "no history is a no-op",
			state:       StreakState{FreezeTokens: 2},
			wantCurrent: 0,
			wantTokens:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Advance(tt.state, today, false)
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.FreezeTokens != tt.wantTokens {
				t.Errorf("FreezeTokens = %d, want %d", got.FreezeTokens, tt.wantTokens)
			}
			if tt.wantActivity != nil && (got.LastActivity == nil || !got.LastActivity.Equal(*tt.wantActivity)) {
				t.Errorf("LastActivity = %v, want %v", got.LastActivity, tt.wantActivity)
			}
		})
	}
}

func TestAdvanceFreezeChargedOncePerDay(t *testing.T) {
	t.Parallel()

	today := day(2024, 3, 10)
	state := StreakState{Current: 5, Longest: 5, LastActivity: dayPtr(2024, 3, 7), FreezeTokens: 2}

	// Repeated same-day views consume a single token, not the whole reserve.
	first := Advance(state, today, false)
	if first.FreezeTokens != 1 || first.Current != 5 {
		t.Fatalf("first call: tokens = %d, current = %d, want 1 and 5", first.FreezeTokens, first.Current)
	}
	second := Advance(first, today.Add(3*time.Hour), false)
	if second != first {
		t.Errorf("second call changed state: %+v -> %+v", first, second)
	}
	third := Advance(second, today.Add(9*time.Hour), false)
	if third != first {
		t.Errorf("third call changed state: %+v -> %+v", first, third)
	}
}

func TestAdvanceCompletionAfterFrozenDay(t *testing.T) {
	t.Parallel()

	frozen := Advance(StreakState{Current: 5, Longest: 5, LastActivity: dayPtr(2024, 3, 7), FreezeTokens: 1}, day(2024, 3, 9), false)
	if frozen.FreezeTokens != 0 {
		t.Fatalf("FreezeTokens = %d, want 0", frozen.FreezeTokens)
	}

	// The token bought a grace day; completing later the same day continues
	// the run instead of restarting it.
	got := Advance(frozen, day(2024, 3, 9).Add(10*time.Hour), true)
	if got.Current != 6 {
		t.Errorf("Current = %d, want 6", got.Current)
	}
	if got.LastActivity == nil || !got.LastActivity.Equal(day(2024, 3, 9)) {
		t.Errorf("LastActivity = %v, want %v", got.LastActivity, day(2024, 3, 9))
	}
}
