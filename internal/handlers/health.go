package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/middleware"
	"github.com/harshsongara/timetable/internal/queue"
)

// HealthChecker handles health check requests.
type HealthChecker struct {
	db    *database.DB
	redis *middleware.RedisRateLimiter
	jobs  queue.JobQueue // nil when notifications are disabled
}

// NewHealthChecker creates a health checker. redis and jobs may be nil; the
// corresponding checks are then skipped.
func NewHealthChecker(db *database.DB, redis *middleware.RedisRateLimiter, jobs queue.JobQueue) *HealthChecker {
	return &HealthChecker{db: db, redis: redis, jobs: jobs}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles /healthz. The basic mode only reports the process is
// up; ?mode=extended pings the database, Redis and the notification queue.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if r.URL.Query().Get("mode") == "extended" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := make(map[string]string)

		if err := h.db.PingContext(ctx); err != nil {
			response.Status = "unhealthy"
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}

		if h.redis != nil {
			if err := h.redis.Ping(ctx); err != nil {
				response.Status = "unhealthy"
				checks["redis"] = "unhealthy: " + err.Error()
			} else {
				checks["redis"] = "healthy"
			}
		}

		if h.jobs != nil {
			if err := h.jobs.HealthCheck(ctx); err != nil {
				response.Status = "unhealthy"
				checks["queue"] = "unhealthy: " + err.Error()
			} else {
				checks["queue"] = "healthy"
			}
		}

		response.Checks = checks
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
