package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harshsongara/timetable/internal/models"
)

// TaskRepository handles task database operations.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, window_type, window_value,
	deadline, completed_at, archived, priority, tags, completion_quality,
	is_recurring, recurrence_pattern, recurrence_interval, parent_task_id,
	created_at, updated_at`

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, window_type, window_value,
			deadline, archived, priority, tags, is_recurring, recurrence_pattern,
			recurrence_interval, parent_task_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.WindowType,
		task.WindowValue,
		task.Deadline,
		task.Archived,
		task.Priority,
		models.JoinTags(task.Tags),
		task.IsRecurring,
		task.RecurrencePattern,
		task.RecurrenceInterval,
		task.ParentTaskID,
		now,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// ListByUser retrieves all of a user's tasks ordered by deadline, optionally
// including archived ones.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	if !includeArchived {
		query += ` AND archived = FALSE`
	}
	query += ` ORDER BY deadline ASC`

	return r.list(ctx, query, userID)
}

// ListByDeadlineRange retrieves a user's non-archived tasks whose deadline
// falls inside the inclusive [start, end] interval.
func (r *TaskRepository) ListByDeadlineRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND deadline >= $2 AND deadline <= $3 AND archived = FALSE
		ORDER BY deadline ASC`

	return r.list(ctx, query, userID, start, end)
}

// ListCompletedRecent retrieves a user's most recently completed tasks.
func (r *TaskRepository) ListCompletedRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND completed_at IS NOT NULL AND archived = FALSE
		ORDER BY completed_at DESC
		LIMIT $2`

	return r.list(ctx, query, userID, limit)
}

// CountCompletedBetween counts completions inside [start, end).
func (r *TaskRepository) CountCompletedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tasks
		WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	return count, nil
}

// Update persists all mutable task fields.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, window_type = $4, window_value = $5,
			deadline = $6, completed_at = $7, archived = $8, priority = $9,
			tags = $10, completion_quality = $11, updated_at = $12
		WHERE id = $1
		RETURNING updated_at
	`

	var completedAt sql.NullTime
	if task.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *task.CompletedAt, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.WindowType,
		task.WindowValue,
		task.Deadline,
		completedAt,
		task.Archived,
		task.Priority,
		models.JoinTags(task.Tags),
		task.CompletionQuality,
		time.Now(),
	).Scan(&task.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// Archive soft-deletes a task. Archived is terminal; the task is never
// hard-deleted.
func (r *TaskRepository) Archive(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tasks SET archived = TRUE, updated_at = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to archive task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task not found: %w", sql.ErrNoRows)
	}

	return nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var (
		completedAt       sql.NullTime
		tags              string
		completionQuality sql.NullString
		recurrencePattern sql.NullString
		windowValue       sql.NullInt64
		parentTaskID      uuid.NullUUID
	)

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.WindowType,
		&windowValue,
		&task.Deadline,
		&completedAt,
		&task.Archived,
		&task.Priority,
		&tags,
		&completionQuality,
		&task.IsRecurring,
		&recurrencePattern,
		&task.RecurrenceInterval,
		&parentTaskID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if windowValue.Valid {
		v := int(windowValue.Int64)
		task.WindowValue = &v
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	if completionQuality.Valid {
		q := models.CompletionQuality(completionQuality.String)
		task.CompletionQuality = &q
	}
	if recurrencePattern.Valid {
		p := models.WindowType(recurrencePattern.String)
		task.RecurrencePattern = &p
	}
	if parentTaskID.Valid {
		task.ParentTaskID = &parentTaskID.UUID
	}
	task.Tags = models.ParseTags(tags)

	return task, nil
}
