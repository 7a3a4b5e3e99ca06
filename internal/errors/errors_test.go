package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("underlying error")

	err := New(Unauthorized, "missing bearer token", cause)

	if err.Code != Unauthorized {
		t.Errorf("Code = %v, want %v", err.Code, Unauthorized)
	}
	if err.Message != "missing bearer token" {
		t.Errorf("Message = %q, want %q", err.Message, "missing bearer token")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
}

func TestLuminaError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      JournalUnavailable,
			message:   "journal write failed",
			cause:     errors.New("database is locked"),
			wantParts: []string{"JOURNAL_UNAVAILABLE", "journal write failed", "database is locked"},
		},
		{
			name:      "without cause",
			code:      InvalidRequest,
			message:   "Missing required field: code",
			cause:     nil,
			wantParts: []string{"INVALID_REQUEST", "Missing required field: code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.cause)
			got := err.Error()

			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestLuminaError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(InternalError, "something went wrong", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}

	errNoCause := New(Timeout, "request timed out", nil)
	if errNoCause.Unwrap() != nil {
		t.Errorf("Unwrap() on error without cause should return nil")
	}
}

func TestLuminaError_As(t *testing.T) {
	var wrapped error = New(PayloadTooLarge, "code too large", nil)

	var le *LuminaError
	if !errors.As(wrapped, &le) {
		t.Fatal("errors.As should find *LuminaError")
	}
	if le.Code != PayloadTooLarge {
		t.Errorf("Code = %v, want %v", le.Code, PayloadTooLarge)
	}
}

func TestLuminaError_WithDetails(t *testing.T) {
	err := New(PayloadTooLarge, "code too large", nil)
	details := map[string]int{"size": 10000, "limit": 4000}

	result := err.WithDetails(details)

	if result != err {
		t.Error("WithDetails should return the same error for chaining")
	}
	if err.Details == nil {
		t.Error("Details should be set")
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		wantNil bool
		wantLen int
	}{
		{Unauthorized, false, 1},
		{JournalUnavailable, false, 1},
		{PayloadTooLarge, false, 1},
		{ConfigInvalid, false, 1},
		{InvalidRequest, true, 0},
		{NotFound, true, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			fixes := GetSuggestedFixes(tt.code)

			if tt.wantNil && fixes != nil {
				t.Errorf("GetSuggestedFixes(%v) = %v, want nil", tt.code, fixes)
			}
			if !tt.wantNil && len(fixes) != tt.wantLen {
				t.Errorf("GetSuggestedFixes(%v) len = %d, want %d", tt.code, len(fixes), tt.wantLen)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		InvalidRequest,
		PayloadTooLarge,
		MethodNotAllowed,
		Unauthorized,
		NotFound,
		JournalUnavailable,
		Timeout,
		ConfigInvalid,
		InternalError,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %v", code)
		}
		seen[code] = true

		if string(code) == "" {
			t.Error("Error code should not be empty")
		}
	}
}

func TestErrorActionsMap(t *testing.T) {
	for code, fixes := range ErrorActions {
		if len(fixes) == 0 {
			t.Errorf("ErrorActions[%v] has no fix actions", code)
		}
		for i, fix := range fixes {
			if fix.Type == "" {
				t.Errorf("ErrorActions[%v][%d].Type is empty", code, i)
			}
			if fix.Type == EditConfig && fix.Key == "" {
				t.Errorf("ErrorActions[%v][%d] edits config without a key", code, i)
			}
		}
	}
}
