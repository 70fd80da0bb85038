package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/models"
	"github.com/harshsongara/timetable/internal/request"
	"github.com/harshsongara/timetable/internal/services/token"
	"github.com/harshsongara/timetable/internal/validation"
)

const (
	defaultDailyGoal         = 3
	defaultStreakFreezeCount = 2
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	users  database.UserRepositoryInterface
	tokens *token.Service
	logger *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users database.UserRepositoryInterface, tokens *token.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

// RegisterPublicRoutes registers the unauthenticated auth routes.
func (h *AuthHandler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *AuthHandler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/me", h.Me).Methods("GET")
	r.HandleFunc("/me", h.UpdateMe).Methods("PATCH")
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Timezone string `json:"timezone,omitempty" validate:"omitempty,max=50"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse pairs a bearer token with the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Username = validation.SanitizeText(req.Username)
	req.Email = validation.SanitizeText(req.Email)

	if !validateStruct(w, req) {
		return
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	} else if _, err := time.LoadLocation(timezone); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Unknown timezone: %s", timezone))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed_to_hash_password", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create account")
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:                  uuid.New(),
		Username:            req.Username,
		Email:               req.Email,
		PasswordHash:        string(hash),
		Timezone:            timezone,
		DailyGoal:           defaultDailyGoal,
		StreakFreezeCount:   defaultStreakFreezeCount,
		NotificationEnabled: true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if database.IsUniqueViolation(err, "users_username_key") {
			respondJSONError(w, http.StatusConflict, "Conflict", "Username is already taken")
			return
		}
		if database.IsUniqueViolation(err, "users_email_key") {
			respondJSONError(w, http.StatusConflict, "Conflict", "Email is already registered")
			return
		}
		h.logger.Error("failed_to_create_user", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create account")
		return
	}

	tok, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("failed_to_issue_token", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to issue token")
		return
	}

	h.logger.Info("user_registered", zap.String("user_id", user.ID.String()))
	respondJSON(w, http.StatusCreated, AuthResponse{Token: tok, User: user})
}

// Login verifies credentials and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateStruct(w, req) {
		return
	}

	ctx := r.Context()
	user, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		// Same response as a bad password so usernames cannot be probed.
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Invalid username or password")
		return
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := h.users.Update(ctx, user); err != nil {
		h.logger.Warn("failed_to_update_last_login",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	tok, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("failed_to_issue_token", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to issue token")
		return
	}

	h.logger.Info("user_logged_in", zap.String("user_id", user.ID.String()))
	respondJSON(w, http.StatusOK, AuthResponse{Token: tok, User: user})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateMeRequest carries the account settings a user may change.
type UpdateMeRequest struct {
	Email               *string `json:"email,omitempty" validate:"omitempty,email,max=120"`
	Timezone            *string `json:"timezone,omitempty" validate:"omitempty,max=50"`
	DailyGoal           *int    `json:"daily_goal,omitempty" validate:"omitempty,min=1,max=100"`
	NotificationEnabled *bool   `json:"notification_enabled,omitempty"`
}

// UpdateMe changes account settings for the authenticated user.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req UpdateMeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateStruct(w, req) {
		return
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Unknown timezone: %s", *req.Timezone))
			return
		}
		user.Timezone = *req.Timezone
	}
	if req.Email != nil {
		user.Email = validation.SanitizeText(*req.Email)
	}
	if req.DailyGoal != nil {
		user.DailyGoal = *req.DailyGoal
	}
	if req.NotificationEnabled != nil {
		user.NotificationEnabled = *req.NotificationEnabled
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			respondJSONError(w, http.StatusConflict, "Conflict", "Email is already registered")
			return
		}
		h.logger.Error("failed_to_update_user", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update account")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// decodeBody decodes a JSON request body, writing the error response itself
// when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large",
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return false
	}
	return true
}

// validateStruct runs struct validation, writing the error response itself
// when validation fails.
func validateStruct(w http.ResponseWriter, s any) bool {
	if err := validation.Validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request",
				fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return false
	}
	return true
}
