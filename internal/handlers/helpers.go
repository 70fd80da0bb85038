package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// respondJSON sends a success envelope with the given payload.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondJSONError sends an error envelope. Messages are truncated so long
// driver errors never leak wholesale to clients.
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if len(message) > 200 {
		message = message[:200] + "..."
	}

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
