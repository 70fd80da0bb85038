package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshsongara/timetable/internal/models"
)

// UserStore persists user gamification counters.
type UserStore interface {
	Update(ctx context.Context, user *models.User) error
}

// AchievementStore reads the achievement catalog and records unlocks.
type AchievementStore interface {
	List(ctx context.Context) ([]models.Achievement, error)
	EarnedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
	// RecordEarned inserts the unlock record, reporting false if the user
	// had already earned the achievement.
	RecordEarned(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
}

// CompletionCounter counts a user's completions inside a time range.
type CompletionCounter interface {
	CountCompletedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)
}

// Engine applies completion evidence to a user's streak counters and
// evaluates achievement unlock rules against them.
type Engine struct {
	users        UserStore
	achievements AchievementStore
	completions  CompletionCounter
	logger       *zap.Logger
}

// NewEngine creates a gamification engine.
func NewEngine(users UserStore, achievements AchievementStore, completions CompletionCounter, logger *zap.Logger) *Engine {
	return &Engine{
		users:        users,
		achievements: achievements,
		completions:  completions,
		logger:       logger,
	}
}

func streakOf(u *models.User) StreakState {
	return StreakState{
		Current:      u.CurrentStreak,
		Longest:      u.LongestStreak,
		LastActivity: u.LastActivityDate,
		FreezeTokens: u.StreakFreezeCount,
	}
}

func applyStreak(u *models.User, s StreakState) {
	u.CurrentStreak = s.Current
	u.LongestStreak = s.Longest
	u.LastActivityDate = s.LastActivity
	u.StreakFreezeCount = s.FreezeTokens
}

// RecordCompletion updates the user's counters for a completion that happened
// at now, persists them, and returns any achievements unlocked by the new
// counter values. Each achievement is recorded at most once per user; the
// unique join constraint backs this up under concurrent completions.
func (e *Engine) RecordCompletion(ctx context.Context, user *models.User, now time.Time) ([]models.Achievement, error) {
	today := DateOf(now)
	completedToday, err := e.completions.CountCompletedBetween(ctx, user.ID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("count completions for today: %w", err)
	}

	applyStreak(user, Advance(streakOf(user), now, true))
	user.TotalTasksCompleted++

	if err := e.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("persist gamification counters: %w", err)
	}

	return e.checkAchievements(ctx, user, Counters{
		CurrentStreak:  user.CurrentStreak,
		LongestStreak:  user.LongestStreak,
		TotalCompleted: user.TotalTasksCompleted,
		CompletedToday: completedToday,
	})
}

// RefreshStreak applies the no-completion-evidence rule for the current day:
// stale streaks consume a freeze token or reset. Invoked from dashboard
// views; a second call on the same day is a no-op.
func (e *Engine) RefreshStreak(ctx context.Context, user *models.User, now time.Time) error {
	before := streakOf(user)
	after := Advance(before, now, false)
	if after == before {
		return nil
	}

	applyStreak(user, after)
	if err := e.users.Update(ctx, user); err != nil {
		return fmt.Errorf("persist streak state: %w", err)
	}

	if after.FreezeTokens < before.FreezeTokens {
		e.logger.Info("streak_freeze_consumed",
			zap.String("user_id", user.ID.String()),
			zap.Int("tokens_remaining", after.FreezeTokens),
		)
	} else if after.Current == 0 && before.Current > 0 {
		e.logger.Info("streak_reset",
			zap.String("user_id", user.ID.String()),
			zap.Int("previous_streak", before.Current),
		)
	}

	return nil
}

// TodayProgress reports the user's completions today against their daily goal.
func (e *Engine) TodayProgress(ctx context.Context, user *models.User, now time.Time) (*models.TodayProgress, error) {
	today := DateOf(now)
	completed, err := e.completions.CountCompletedBetween(ctx, user.ID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("count completions for today: %w", err)
	}

	progress := &models.TodayProgress{Completed: completed, Goal: user.DailyGoal}
	if user.DailyGoal > 0 {
		pct := float64(completed) / float64(user.DailyGoal) * 100
		if pct > 100 {
			pct = 100
		}
		progress.Percentage = pct
	}
	return progress, nil
}

func (e *Engine) checkAchievements(ctx context.Context, user *models.User, counters Counters) ([]models.Achievement, error) {
	all, err := e.achievements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	earned, err := e.achievements.EarnedIDs(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list earned achievements: %w", err)
	}

	var unlocked []models.Achievement
	for _, a := range NewlyUnlocked(all, earned, counters) {
		inserted, err := e.achievements.RecordEarned(ctx, user.ID, a.ID)
		if err != nil {
			return nil, fmt.Errorf("record achievement %q: %w", a.Name, err)
		}
		if !inserted {
			// Lost a race with another request; the other one notifies.
			continue
		}
		e.logger.Info("achievement_unlocked",
			zap.String("user_id", user.ID.String()),
			zap.String("achievement", a.Name),
			zap.Int("points", a.Points),
		)
		unlocked = append(unlocked, a)
	}

	return unlocked, nil
}
