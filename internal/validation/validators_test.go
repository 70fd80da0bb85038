package validation

import (
	"testing"
)

func TestValidateWindowType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"daily", "weekly", "monthly", "custom"} {
		if err := ValidateWindowType(valid); err != nil {
			t.Errorf("ValidateWindowType(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "yearly", "Daily", "DAILY"} {
		if err := ValidateWindowType(invalid); err == nil {
			t.Errorf("ValidateWindowType(%q) = nil, want error", invalid)
		}
	}
}

func TestValidatePriority(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"low", "medium", "high"} {
		if err := ValidatePriority(valid); err != nil {
			t.Errorf("ValidatePriority(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "urgent", "High"} {
		if err := ValidatePriority(invalid); err == nil {
			t.Errorf("ValidatePriority(%q) = nil, want error", invalid)
		}
	}
}

func TestValidateStatusFilter(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"all", "active", "at_risk", "overdue", "completed", "archived"} {
		if err := ValidateStatusFilter(valid); err != nil {
			t.Errorf("ValidateStatusFilter(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "open", "done"} {
		if err := ValidateStatusFilter(invalid); err == nil {
			t.Errorf("ValidateStatusFilter(%q) = nil, want error", invalid)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips control characters", "he\x00llo\x1b", "hello"},
		{"keeps newlines and tabs", "line1\n\tline2", "line1\n\tline2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCustomValidators(t *testing.T) {
	t.Parallel()

	type payload struct {
		Window   string `validate:"required,window_type"`
		Priority string `validate:"required,priority"`
	}

	if err := Validate.Struct(payload{Window: "weekly", Priority: "high"}); err != nil {
		t.Errorf("valid payload failed validation: %v", err)
	}
	if err := Validate.Struct(payload{Window: "yearly", Priority: "high"}); err == nil {
		t.Error("invalid window_type passed validation")
	}
	if err := Validate.Struct(payload{Window: "weekly", Priority: "urgent"}); err == nil {
		t.Error("invalid priority passed validation")
	}
}
