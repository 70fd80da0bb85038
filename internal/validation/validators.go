package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/harshsongara/timetable/internal/models"
)

// Validate is the shared validator instance.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("window_type", validateWindowType); err != nil {
		panic(fmt.Sprintf("failed to register window_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
}

func validateWindowType(fl validator.FieldLevel) bool {
	return ValidateWindowType(fl.Field().String()) == nil
}

func validatePriority(fl validator.FieldLevel) bool {
	return ValidatePriority(fl.Field().String()) == nil
}

// ValidateWindowType checks a WindowType string value.
func ValidateWindowType(value string) error {
	switch models.WindowType(value) {
	case models.WindowDaily, models.WindowWeekly, models.WindowMonthly, models.WindowCustom:
		return nil
	default:
		return fmt.Errorf("invalid window_type: %s (must be 'daily', 'weekly', 'monthly', or 'custom')", value)
	}
}

// ValidatePriority checks a Priority string value.
func ValidatePriority(value string) error {
	switch models.Priority(value) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	default:
		return fmt.Errorf("invalid priority: %s (must be 'low', 'medium', or 'high')", value)
	}
}

// ValidateStatusFilter checks a task list status filter value.
func ValidateStatusFilter(value string) error {
	switch value {
	case "all", "active", "at_risk", "overdue", "completed", "archived":
		return nil
	default:
		return fmt.Errorf("invalid status filter: %s", value)
	}
}

// SanitizeText trims whitespace and strips control characters except newline
// and tab.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
