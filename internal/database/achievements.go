package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harshsongara/timetable/internal/models"
)

// AchievementRepository handles the achievement catalog and earned records.
type AchievementRepository struct {
	db *DB
}

// NewAchievementRepository creates a new achievement repository.
func NewAchievementRepository(db *DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

const achievementColumns = `id, name, description, icon, category,
	requirement_type, requirement_value, points`

// List returns the full achievement catalog.
func (r *AchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements ORDER BY requirement_type, requirement_value`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Description,
			&a.Icon,
			&a.Category,
			&a.RequirementType,
			&a.RequirementValue,
			&a.Points,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}

	return achievements, nil
}

// EarnedIDs returns the set of achievement IDs the user has already earned.
func (r *AchievementRepository) EarnedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	query := `SELECT achievement_id FROM user_achievements WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query earned achievements: %w", err)
	}
	defer rows.Close()

	earned := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan achievement ID: %w", err)
		}
		earned[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating earned achievements: %w", err)
	}

	return earned, nil
}

// RecordEarned records an unlock, reporting false if the user already had it.
// The primary key on (user_id, achievement_id) makes the insert race-safe.
func (r *AchievementRepository) RecordEarned(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, earned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, userID, achievementID, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to record earned achievement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ListRecentEarned returns the user's most recently earned achievements with
// their unlock timestamps.
func (r *AchievementRepository) ListRecentEarned(ctx context.Context, userID uuid.UUID, limit int) ([]models.EarnedAchievement, error) {
	query := `
		SELECT a.id, a.name, a.description, a.icon, a.category,
			a.requirement_type, a.requirement_value, a.points, ua.earned_at
		FROM user_achievements ua
		JOIN achievements a ON a.id = ua.achievement_id
		WHERE ua.user_id = $1
		ORDER BY ua.earned_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent achievements: %w", err)
	}
	defer rows.Close()

	var earned []models.EarnedAchievement
	for rows.Next() {
		var e models.EarnedAchievement
		err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Description,
			&e.Icon,
			&e.Category,
			&e.RequirementType,
			&e.RequirementValue,
			&e.Points,
			&e.EarnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan earned achievement: %w", err)
		}
		earned = append(earned, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent achievements: %w", err)
	}

	return earned, nil
}

// Upsert inserts or updates a catalog entry by name. Used by the seeder.
func (r *AchievementRepository) Upsert(ctx context.Context, a *models.Achievement) error {
	query := `
		INSERT INTO achievements (id, name, description, icon, category,
			requirement_type, requirement_value, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    icon = EXCLUDED.icon,
		    category = EXCLUDED.category,
		    requirement_type = EXCLUDED.requirement_type,
		    requirement_value = EXCLUDED.requirement_value,
		    points = EXCLUDED.points
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		a.ID,
		a.Name,
		a.Description,
		a.Icon,
		a.Category,
		a.RequirementType,
		a.RequirementValue,
		a.Points,
	).Scan(&a.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert achievement %q: %w", a.Name, err)
	}

	return nil
}
