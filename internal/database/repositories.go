package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harshsongara/timetable/internal/models"
)

// TaskRepositoryInterface defines the task repository operations the
// handlers depend on, enabling mock implementations in tests.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*models.Task, error)
	ListByDeadlineRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.Task, error)
	ListCompletedRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Task, error)
	CountCompletedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)
	Update(ctx context.Context, task *models.Task) error
	Archive(ctx context.Context, id uuid.UUID) error
}

// UserRepositoryInterface defines the user repository operations.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// AchievementRepositoryInterface defines the achievement repository operations.
type AchievementRepositoryInterface interface {
	List(ctx context.Context) ([]models.Achievement, error)
	EarnedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
	RecordEarned(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
	ListRecentEarned(ctx context.Context, userID uuid.UUID, limit int) ([]models.EarnedAchievement, error)
	Upsert(ctx context.Context, a *models.Achievement) error
}

// Ensure concrete types implement the interfaces.
var (
	_ TaskRepositoryInterface        = (*TaskRepository)(nil)
	_ UserRepositoryInterface        = (*UserRepository)(nil)
	_ AchievementRepositoryInterface = (*AchievementRepository)(nil)
)
