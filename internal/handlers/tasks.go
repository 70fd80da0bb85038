package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/gamification"
	"github.com/harshsongara/timetable/internal/models"
	"github.com/harshsongara/timetable/internal/queue"
	"github.com/harshsongara/timetable/internal/request"
	"github.com/harshsongara/timetable/internal/schedule"
	"github.com/harshsongara/timetable/internal/validation"
)

const (
	// DefaultPageSize is the default page size for task listings.
	DefaultPageSize = 50
	// MaxPageSize caps the page size for task listings.
	MaxPageSize = 200
)

// TaskHandler handles task CRUD and lifecycle actions.
type TaskHandler struct {
	tasks  database.TaskRepositoryInterface
	engine *gamification.Engine
	jobs   queue.JobQueue // nil when notifications are disabled
	logger *zap.Logger
}

// NewTaskHandler creates a task handler. jobs may be nil; achievement
// notifications are then skipped.
func NewTaskHandler(tasks database.TaskRepositoryInterface, engine *gamification.Engine, jobs queue.JobQueue, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, engine: engine, jobs: jobs, logger: logger}
}

// RegisterRoutes registers task routes on the given router. The router should
// already carry the /tasks prefix.
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PATCH")
	r.HandleFunc("/{id}", h.ArchiveTask).Methods("DELETE")
	r.HandleFunc("/{id}/complete", h.CompleteTask).Methods("POST")
	r.HandleFunc("/{id}/uncomplete", h.UncompleteTask).Methods("POST")
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title              string             `json:"title" validate:"required,min=1,max=200"`
	Description        string             `json:"description,omitempty" validate:"max=2000"`
	WindowType         string             `json:"window_type" validate:"required,window_type"`
	WindowValue        *int               `json:"window_value,omitempty"`
	Priority           string             `json:"priority,omitempty" validate:"omitempty,priority"`
	Tags               []string           `json:"tags,omitempty" validate:"max=20,dive,max=50"`
	IsRecurring        bool               `json:"is_recurring,omitempty"`
	RecurrencePattern  *models.WindowType `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval int                `json:"recurrence_interval,omitempty" validate:"omitempty,min=1,max=52"`
}

// UpdateTaskRequest is the payload for partially updating a task. A changed
// window recomputes the deadline from the task's original creation time.
type UpdateTaskRequest struct {
	Title              *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description        *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	WindowType         *string            `json:"window_type,omitempty" validate:"omitempty,window_type"`
	WindowValue        *int               `json:"window_value,omitempty"`
	Priority           *string            `json:"priority,omitempty" validate:"omitempty,priority"`
	Tags               *[]string          `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	IsRecurring        *bool              `json:"is_recurring,omitempty"`
	RecurrencePattern  *models.WindowType `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval *int               `json:"recurrence_interval,omitempty" validate:"omitempty,min=1,max=52"`
}

// ListTasksResponse is the paginated task listing.
type ListTasksResponse struct {
	Tasks      []*models.Task `json:"tasks"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// CompleteTaskResponse is returned from the complete action. NextTask is the
// freshly spawned instance when the completed task recurs.
type CompleteTaskResponse struct {
	Task                 *models.Task         `json:"task"`
	UnlockedAchievements []models.Achievement `json:"unlocked_achievements"`
	NextTask             *models.Task         `json:"next_task,omitempty"`
}

// ListTasks lists the user's tasks filtered by derived status. Without a
// status filter it returns active and at_risk tasks; "all" returns every
// non-archived task and "archived" only archived ones.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" {
		if err := validation.ValidateStatusFilter(statusFilter); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	pageSize := DefaultPageSize
	if ps := r.URL.Query().Get("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 {
			pageSize = parsed
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}

	includeArchived := statusFilter == "archived"
	tasks, err := h.tasks.ListByUser(r.Context(), user.ID, includeArchived)
	if err != nil {
		h.logger.Error("failed_to_list_tasks", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	// Status is derived at read time, so filtering happens here rather than
	// in SQL.
	now := time.Now().UTC()
	schedule.ResolveAll(tasks, now)
	filtered := filterByStatus(tasks, statusFilter)

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	respondJSON(w, http.StatusOK, ListTasksResponse{
		Tasks:      filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	})
}

func filterByStatus(tasks []*models.Task, filter string) []*models.Task {
	filtered := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case "":
			if t.Status == models.TaskStatusActive || t.Status == models.TaskStatusAtRisk {
				filtered = append(filtered, t)
			}
		case "all":
			filtered = append(filtered, t)
		default:
			if t.Status == models.TaskStatus(filter) {
				filtered = append(filtered, t)
			}
		}
	}
	return filtered
}

// CreateTask creates a task, computing its deadline from the requested window
// in the user's timezone.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	req.Description = validation.SanitizeText(req.Description)
	if !validateStruct(w, req) {
		return
	}
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title must not be empty")
		return
	}

	windowType := models.WindowType(req.WindowType)
	customDays := 0
	if windowType == models.WindowCustom {
		if req.WindowValue == nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "window_value is required for custom windows")
			return
		}
		if *req.WindowValue < schedule.MinCustomDays || *req.WindowValue > schedule.MaxCustomDays {
			respondJSONError(w, http.StatusBadRequest, "Bad Request",
				fmt.Sprintf("window_value must be between %d and %d days", schedule.MinCustomDays, schedule.MaxCustomDays))
			return
		}
		customDays = *req.WindowValue
	}

	if req.IsRecurring {
		if req.RecurrencePattern == nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "recurrence_pattern is required for recurring tasks")
			return
		}
		switch *req.RecurrencePattern {
		case models.WindowDaily, models.WindowWeekly, models.WindowMonthly:
		default:
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "recurrence_pattern must be 'daily', 'weekly', or 'monthly'")
			return
		}
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Title:              req.Title,
		Description:        req.Description,
		WindowType:         windowType,
		Deadline:           schedule.Deadline(now, windowType, customDays, schedule.UserLocation(user.Timezone)),
		Priority:           priority,
		Tags:               req.Tags,
		IsRecurring:        req.IsRecurring,
		RecurrencePattern:  req.RecurrencePattern,
		RecurrenceInterval: req.RecurrenceInterval,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if windowType == models.WindowCustom {
		task.WindowValue = req.WindowValue
	}
	if task.IsRecurring && task.RecurrenceInterval < 1 {
		task.RecurrenceInterval = 1
	}

	if err := h.tasks.Create(r.Context(), task); err != nil {
		h.logger.Error("failed_to_create_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create task")
		return
	}

	task.Status = schedule.Resolve(task, now)
	respondJSON(w, http.StatusCreated, task)
}

// loadOwnedTask fetches a task and verifies it belongs to the user, writing
// the error response itself on failure.
func (h *TaskHandler) loadOwnedTask(w http.ResponseWriter, r *http.Request, userID uuid.UUID) *models.Task {
	idStr := mux.Vars(r)["id"]
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return nil
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
			return nil
		}
		h.logger.Error("failed_to_get_task", zap.String("task_id", id.String()), zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve task")
		return nil
	}
	if task.UserID != userID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Task belongs to another user")
		return nil
	}
	return task
}

// GetTask returns a single task with its derived status.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task := h.loadOwnedTask(w, r, user.ID)
	if task == nil {
		return
	}

	task.Status = schedule.Resolve(task, time.Now().UTC())
	respondJSON(w, http.StatusOK, task)
}

// UpdateTask partially updates a task. Changing the window recomputes the
// deadline from the original creation time, not from now.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task := h.loadOwnedTask(w, r, user.ID)
	if task == nil {
		return
	}
	if task.Archived {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Archived tasks cannot be updated")
		return
	}

	var req UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateStruct(w, req) {
		return
	}

	if req.Title != nil {
		title := validation.SanitizeText(*req.Title)
		if title == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title must not be empty")
			return
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = validation.SanitizeText(*req.Description)
	}
	if req.Priority != nil {
		task.Priority = models.Priority(*req.Priority)
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.IsRecurring != nil {
		task.IsRecurring = *req.IsRecurring
	}
	if req.RecurrencePattern != nil {
		switch *req.RecurrencePattern {
		case models.WindowDaily, models.WindowWeekly, models.WindowMonthly:
			task.RecurrencePattern = req.RecurrencePattern
		default:
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "recurrence_pattern must be 'daily', 'weekly', or 'monthly'")
			return
		}
	}
	if req.RecurrenceInterval != nil {
		task.RecurrenceInterval = *req.RecurrenceInterval
	}

	if req.WindowType != nil || req.WindowValue != nil {
		windowType := task.WindowType
		if req.WindowType != nil {
			windowType = models.WindowType(*req.WindowType)
		}
		windowValue := task.WindowValue
		if req.WindowValue != nil {
			windowValue = req.WindowValue
		}

		customDays := 0
		if windowType == models.WindowCustom {
			if windowValue == nil {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", "window_value is required for custom windows")
				return
			}
			if *windowValue < schedule.MinCustomDays || *windowValue > schedule.MaxCustomDays {
				respondJSONError(w, http.StatusBadRequest, "Bad Request",
					fmt.Sprintf("window_value must be between %d and %d days", schedule.MinCustomDays, schedule.MaxCustomDays))
				return
			}
			customDays = *windowValue
		} else {
			windowValue = nil
		}

		task.WindowType = windowType
		task.WindowValue = windowValue
		task.Deadline = schedule.Deadline(task.CreatedAt, windowType, customDays, schedule.UserLocation(user.Timezone))
	}

	task.UpdatedAt = time.Now().UTC()
	if err := h.tasks.Update(r.Context(), task); err != nil {
		h.logger.Error("failed_to_update_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		return
	}

	task.Status = schedule.Resolve(task, time.Now().UTC())
	respondJSON(w, http.StatusOK, task)
}

// ArchiveTask soft-deletes a task. Archived tasks leave all listings and
// statistics but remain in the store.
func (h *TaskHandler) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task := h.loadOwnedTask(w, r, user.ID)
	if task == nil {
		return
	}

	if err := h.tasks.Archive(r.Context(), task.ID); err != nil {
		h.logger.Error("failed_to_archive_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to archive task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteTask marks a task complete, records quality against the deadline,
// advances the user's streak, and spawns the next instance for recurring
// tasks.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task := h.loadOwnedTask(w, r, user.ID)
	if task == nil {
		return
	}
	if task.Archived {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Archived tasks cannot be completed")
		return
	}
	if task.IsCompleted() {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Task is already completed")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	task.CompletedAt = &now
	quality := models.CompletionOnTime
	if now.After(task.Deadline) {
		quality = models.CompletionLate
	}
	task.CompletionQuality = &quality
	task.UpdatedAt = now

	if err := h.tasks.Update(ctx, task); err != nil {
		h.logger.Error("failed_to_complete_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to complete task")
		return
	}

	unlocked, err := h.engine.RecordCompletion(ctx, user, now)
	if err != nil {
		// The completion itself is already durable; counters catch up on the
		// next completion or dashboard view.
		h.logger.Error("failed_to_record_completion",
			zap.String("task_id", task.ID.String()),
			zap.Error(err),
		)
		unlocked = nil
	}

	h.notifyUnlocks(ctx, user.ID, unlocked)

	response := CompleteTaskResponse{
		Task:                 task,
		UnlockedAchievements: unlocked,
	}
	if response.UnlockedAchievements == nil {
		response.UnlockedAchievements = []models.Achievement{}
	}

	if task.IsRecurring && task.RecurrencePattern != nil {
		if next := h.spawnNextInstance(ctx, task, now); next != nil {
			response.NextTask = next
		}
	}

	task.Status = schedule.Resolve(task, now)
	h.logger.Info("task_completed",
		zap.String("task_id", task.ID.String()),
		zap.String("quality", string(quality)),
	)
	respondJSON(w, http.StatusOK, response)
}

// spawnNextInstance creates the follow-up task of a recurring task. Failure
// is logged but never fails the completion.
func (h *TaskHandler) spawnNextInstance(ctx context.Context, task *models.Task, now time.Time) *models.Task {
	nextDeadline, ok := schedule.NextOccurrence(task.Deadline, *task.RecurrencePattern, task.RecurrenceInterval)
	if !ok {
		return nil
	}

	parentID := task.ID
	next := &models.Task{
		ID:                 uuid.New(),
		UserID:             task.UserID,
		Title:              task.Title,
		Description:        task.Description,
		WindowType:         task.WindowType,
		WindowValue:        task.WindowValue,
		Deadline:           nextDeadline,
		Priority:           task.Priority,
		Tags:               task.Tags,
		IsRecurring:        true,
		RecurrencePattern:  task.RecurrencePattern,
		RecurrenceInterval: task.RecurrenceInterval,
		ParentTaskID:       &parentID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.tasks.Create(ctx, next); err != nil {
		h.logger.Error("failed_to_spawn_recurring_task",
			zap.String("parent_task_id", task.ID.String()),
			zap.Error(err),
		)
		return nil
	}

	next.Status = schedule.Resolve(next, now)
	h.logger.Info("recurring_task_spawned",
		zap.String("parent_task_id", task.ID.String()),
		zap.String("task_id", next.ID.String()),
	)
	return next
}

func (h *TaskHandler) notifyUnlocks(ctx context.Context, userID uuid.UUID, unlocked []models.Achievement) {
	if h.jobs == nil || len(unlocked) == 0 {
		return
	}
	for _, a := range unlocked {
		achievementID := a.ID
		job := queue.NewJob(queue.JobTypeAchievementUnlocked, userID, &achievementID)
		job.Metadata["achievement_name"] = a.Name
		job.Metadata["points"] = a.Points
		if err := h.jobs.Enqueue(ctx, job); err != nil {
			h.logger.Error("failed_to_enqueue_notification",
				zap.String("achievement", a.Name),
				zap.Error(err),
			)
		}
	}
}

// UncompleteTask reverts a completed task to its deadline-derived state.
// Streak and achievement counters are left as they are; uncompleting is a
// correction, not a rollback of earned progress.
func (h *TaskHandler) UncompleteTask(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task := h.loadOwnedTask(w, r, user.ID)
	if task == nil {
		return
	}
	if task.Archived {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Archived tasks cannot be uncompleted")
		return
	}
	if !task.IsCompleted() {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Task is not completed")
		return
	}

	now := time.Now().UTC()
	task.CompletedAt = nil
	task.CompletionQuality = nil
	task.UpdatedAt = now

	if err := h.tasks.Update(r.Context(), task); err != nil {
		h.logger.Error("failed_to_uncomplete_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to uncomplete task")
		return
	}

	task.Status = schedule.Resolve(task, now)
	respondJSON(w, http.StatusOK, task)
}
