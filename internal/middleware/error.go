package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrorResponse is the JSON body returned for recovered panics.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// ErrorHandler recovers panics, logs them server-side and returns a generic
// 500 without leaking internals.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic_recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					response := ErrorResponse{
						Success:   false,
						Error:     "Internal Server Error",
						Message:   "An unexpected error occurred",
						Timestamp: time.Now().UTC().Format(time.RFC3339),
						Path:      r.URL.Path,
					}
					if err := json.NewEncoder(w).Encode(response); err != nil {
						logger.Error("failed_to_encode_error_response", zap.Error(err))
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
