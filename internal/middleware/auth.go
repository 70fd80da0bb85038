package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/request"
	"github.com/harshsongara/timetable/internal/services/token"
)

// Auth validates the bearer token and loads the authenticated user into the
// request context.
func Auth(users database.UserRepositoryInterface, tokens *token.Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondAuthError(w, http.StatusUnauthorized, "Missing Authorization header", logger)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondAuthError(w, http.StatusUnauthorized, "Invalid Authorization header format", logger)
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				logger.Debug("token_verification_failed", zap.Error(err))
				respondAuthError(w, http.StatusUnauthorized, "Invalid or expired token", logger)
				return
			}

			ctx := r.Context()
			user, err := users.GetByID(ctx, userID)
			if err != nil {
				// A valid token for a user we cannot load is treated as
				// unauthorized, not a server error: the account may have
				// been deleted after the token was issued.
				logger.Warn("failed_to_load_token_user",
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				respondAuthError(w, http.StatusUnauthorized, "Unknown user", logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.WithUser(ctx, user)))
		})
	}
}

func respondAuthError(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success": false,
		"error":   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed_to_encode_auth_error", zap.Error(err))
	}
}
