package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/gamification"
	"github.com/harshsongara/timetable/internal/models"
	"github.com/harshsongara/timetable/internal/request"
	"github.com/harshsongara/timetable/internal/schedule"
	"github.com/harshsongara/timetable/internal/stats"
)

const (
	// DefaultTrendDays is the trend window when none is requested.
	DefaultTrendDays = 7
	// MaxTrendDays caps the trend window.
	MaxTrendDays = 90

	upcomingTaskCount       = 5
	recentCompletedCount    = 5
	recentAchievementsCount = 3
)

// DashboardHandler serves aggregated progress views.
type DashboardHandler struct {
	tasks        database.TaskRepositoryInterface
	achievements database.AchievementRepositoryInterface
	engine       *gamification.Engine
	logger       *zap.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(tasks database.TaskRepositoryInterface, achievements database.AchievementRepositoryInterface, engine *gamification.Engine, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{tasks: tasks, achievements: achievements, engine: engine, logger: logger}
}

// RegisterRoutes registers dashboard routes. The router should already carry
// the /dashboard prefix.
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.Overview).Methods("GET")
	r.HandleFunc("/trend", h.Trend).Methods("GET")
	r.HandleFunc("/daily", h.periodSummary(stats.DayRange)).Methods("GET")
	r.HandleFunc("/weekly", h.periodSummary(stats.WeekRange)).Methods("GET")
	r.HandleFunc("/monthly", h.periodSummary(stats.MonthRange)).Methods("GET")
}

// StreakInfo is the streak block of the dashboard.
type StreakInfo struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	FreezeTokens int        `json:"freeze_tokens"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// OverviewResponse is the aggregated dashboard payload.
type OverviewResponse struct {
	Today              stats.Summary              `json:"today"`
	Week               stats.Summary              `json:"week"`
	Month              stats.Summary              `json:"month"`
	StatusCounts       map[string]int             `json:"status_counts"`
	Upcoming           []*models.Task             `json:"upcoming"`
	RecentlyCompleted  []*models.Task             `json:"recently_completed"`
	Streak             StreakInfo                 `json:"streak"`
	TodayProgress      *models.TodayProgress      `json:"today_progress"`
	RecentAchievements []models.EarnedAchievement `json:"recent_achievements"`
}

// TrendResponse is the day-bucketed creation/completion series.
type TrendResponse struct {
	Labels    []string `json:"labels"`
	Created   []int    `json:"created"`
	Completed []int    `json:"completed"`
}

// Overview returns the full dashboard. Viewing the dashboard also settles the
// streak for days without completions, consuming a freeze token or resetting.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	if err := h.engine.RefreshStreak(ctx, user, now); err != nil {
		h.logger.Warn("failed_to_refresh_streak",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	response := OverviewResponse{
		Upcoming:           []*models.Task{},
		RecentlyCompleted:  []*models.Task{},
		RecentAchievements: []models.EarnedAchievement{},
		Streak: StreakInfo{
			Current:      user.CurrentStreak,
			Longest:      user.LongestStreak,
			FreezeTokens: user.StreakFreezeCount,
			LastActivity: user.LastActivityDate,
		},
	}

	for _, period := range []struct {
		dst       *stats.Summary
		makeRange func(time.Time) (time.Time, time.Time)
	}{
		{&response.Today, stats.DayRange},
		{&response.Week, stats.WeekRange},
		{&response.Month, stats.MonthRange},
	} {
		start, end := period.makeRange(now)
		tasks, err := h.tasks.ListByDeadlineRange(ctx, user.ID, start, end)
		if err != nil {
			h.logger.Error("failed_to_load_period_tasks", zap.Error(err))
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load dashboard")
			return
		}
		*period.dst = stats.Summarize(tasks, now)
	}

	all, err := h.tasks.ListByUser(ctx, user.ID, false)
	if err != nil {
		h.logger.Error("failed_to_list_tasks", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load dashboard")
		return
	}
	schedule.ResolveAll(all, now)

	response.StatusCounts = map[string]int{
		string(models.TaskStatusActive):    0,
		string(models.TaskStatusAtRisk):    0,
		string(models.TaskStatusOverdue):   0,
		string(models.TaskStatusCompleted): 0,
	}
	for _, t := range all {
		response.StatusCounts[string(t.Status)]++
		if !t.IsCompleted() && len(response.Upcoming) < upcomingTaskCount {
			// ListByUser orders by deadline, so the first open tasks are the
			// most urgent.
			response.Upcoming = append(response.Upcoming, t)
		}
	}

	recent, err := h.tasks.ListCompletedRecent(ctx, user.ID, recentCompletedCount)
	if err != nil {
		h.logger.Error("failed_to_list_recent_completed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load dashboard")
		return
	}
	schedule.ResolveAll(recent, now)
	response.RecentlyCompleted = recent

	progress, err := h.engine.TodayProgress(ctx, user, now)
	if err != nil {
		h.logger.Error("failed_to_compute_today_progress", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load dashboard")
		return
	}
	response.TodayProgress = progress

	earned, err := h.achievements.ListRecentEarned(ctx, user.ID, recentAchievementsCount)
	if err != nil {
		h.logger.Error("failed_to_list_recent_achievements", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load dashboard")
		return
	}
	response.RecentAchievements = earned

	respondJSON(w, http.StatusOK, response)
}

// Trend returns per-day creation and completion counts for the trailing
// ?days= window.
func (h *DashboardHandler) Trend(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	days := DefaultTrendDays
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 1 || parsed > MaxTrendDays {
			respondJSONError(w, http.StatusBadRequest, "Bad Request",
				"days must be an integer between 1 and 90")
			return
		}
		days = parsed
	}

	tasks, err := h.tasks.ListByUser(r.Context(), user.ID, false)
	if err != nil {
		h.logger.Error("failed_to_list_tasks", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load trend")
		return
	}

	points := stats.Trend(tasks, time.Now().UTC(), days)
	response := TrendResponse{
		Labels:    make([]string, len(points)),
		Created:   make([]int, len(points)),
		Completed: make([]int, len(points)),
	}
	for i, p := range points {
		response.Labels[i] = p.Label
		response.Created[i] = p.Created
		response.Completed[i] = p.Completed
	}

	respondJSON(w, http.StatusOK, response)
}

// periodSummary builds a handler returning completion statistics for one
// reporting period.
func (h *DashboardHandler) periodSummary(makeRange func(time.Time) (time.Time, time.Time)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := request.UserFromContext(r)
		if user == nil {
			respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
			return
		}

		now := time.Now().UTC()
		start, end := makeRange(now)
		tasks, err := h.tasks.ListByDeadlineRange(r.Context(), user.ID, start, end)
		if err != nil {
			h.logger.Error("failed_to_load_period_tasks", zap.Error(err))
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load statistics")
			return
		}

		respondJSON(w, http.StatusOK, stats.Summarize(tasks, now))
	}
}
