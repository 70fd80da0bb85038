package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harshsongara/timetable/internal/models"
)

// UserRepository handles user database operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, timezone, last_login,
	current_streak, longest_streak, last_activity_date, daily_goal,
	total_tasks_completed, streak_freeze_count, notification_enabled,
	created_at, updated_at`

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, timezone, daily_goal,
			streak_freeze_count, notification_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Timezone,
		user.DailyGoal,
		user.StreakFreezeCount,
		user.NotificationEnabled,
		now,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// Update persists all mutable user fields, including gamification counters.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, timezone = $3, last_login = $4, current_streak = $5,
			longest_streak = $6, last_activity_date = $7, daily_goal = $8,
			total_tasks_completed = $9, streak_freeze_count = $10,
			notification_enabled = $11, updated_at = $12
		WHERE id = $1
		RETURNING updated_at
	`

	var lastLogin, lastActivity sql.NullTime
	if user.LastLogin != nil {
		lastLogin = sql.NullTime{Time: *user.LastLogin, Valid: true}
	}
	if user.LastActivityDate != nil {
		lastActivity = sql.NullTime{Time: *user.LastActivityDate, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		user.Timezone,
		lastLogin,
		user.CurrentStreak,
		user.LongestStreak,
		lastActivity,
		user.DailyGoal,
		user.TotalTasksCompleted,
		user.StreakFreezeCount,
		user.NotificationEnabled,
		time.Now(),
	).Scan(&user.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("user not found: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var lastLogin, lastActivity sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Timezone,
		&lastLogin,
		&user.CurrentStreak,
		&user.LongestStreak,
		&lastActivity,
		&user.DailyGoal,
		&user.TotalTasksCompleted,
		&user.StreakFreezeCount,
		&user.NotificationEnabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	if lastActivity.Valid {
		activity := lastActivity.Time.UTC()
		user.LastActivityDate = &activity
	}

	return user, nil
}
