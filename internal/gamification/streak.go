package gamification

import "time"

// StreakState is the streak portion of a user's gamification counters,
// modeled as an explicit value object so the day-boundary rules can be
// exercised without persistence.
type StreakState struct {
	Current      int
	Longest      int
	LastActivity *time.Time
	FreezeTokens int
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Advance applies one day of completion evidence to a streak state and
// returns the next state. Idempotent per UTC calendar day: once LastActivity
// is today, further calls for the same day change nothing.
//
// With evidence (completedToday): an unbroken run from yesterday increments
// the streak, anything else restarts it at 1, and the longest streak is
// raised to match when passed.
//
// Without evidence: a gap of more than one day consumes a freeze token if one
// is available, otherwise the streak drops to zero. Consuming a token moves
// LastActivity to yesterday, so the charge lands at most once per calendar day
// and a completion on the following day continues the streak.
func Advance(s StreakState, today time.Time, completedToday bool) StreakState {
	today = DateOf(today)

	if s.LastActivity != nil && s.LastActivity.Equal(today) {
		return s
	}

	yesterday := today.AddDate(0, 0, -1)

	if completedToday {
		if s.LastActivity != nil && s.LastActivity.Equal(yesterday) {
			s.Current++
		} else {
			s.Current = 1
		}
		s.LastActivity = &today
		if s.Current > s.Longest {
			s.Longest = s.Current
		}
		return s
	}

	if s.LastActivity != nil && s.LastActivity.Before(yesterday) {
		if s.FreezeTokens > 0 {
			s.FreezeTokens--
			s.LastActivity = &yesterday
		} else {
			s.Current = 0
		}
	}

	return s
}
