package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes of the host
// layer. The analysis engine itself never fails.
type ErrorCode string

const (
	// InvalidRequest indicates a malformed or incomplete request body
	InvalidRequest ErrorCode = "INVALID_REQUEST"
	// PayloadTooLarge indicates the submitted code exceeds the configured limit
	PayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	// MethodNotAllowed indicates the HTTP method is not supported on a route
	MethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// Unauthorized indicates a missing or invalid bearer token
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// NotFound indicates an unknown route
	NotFound ErrorCode = "NOT_FOUND"
	// JournalUnavailable indicates the analysis journal is disabled or failing
	JournalUnavailable ErrorCode = "JOURNAL_UNAVAILABLE"
	// Timeout indicates the request was cancelled before completing
	Timeout ErrorCode = "TIMEOUT"
	// ConfigInvalid indicates a configuration problem
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// EditConfig suggests changing a configuration value
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Key         string        `json:"key,omitempty"`
}

// LuminaError represents an error with code, message, and suggestions
type LuminaError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a LuminaError with the default suggested fixes for code.
func New(code ErrorCode, message string, cause error) *LuminaError {
	return &LuminaError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *LuminaError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *LuminaError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *LuminaError) WithDetails(details interface{}) *LuminaError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	Unauthorized: {
		{
			Type:        RunCommand,
			Command:     "lumina token generate",
			Safe:        true,
			Description: "Generate a token and store its hash under auth.tokenHash",
		},
	},
	JournalUnavailable: {
		{
			Type:        EditConfig,
			Key:         "journal.enabled",
			Description: "Enable the analysis journal",
		},
	},
	PayloadTooLarge: {
		{
			Type:        EditConfig,
			Key:         "analysis.maxCodeBytes",
			Description: "Raise the accepted code size",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "lumina config show",
			Safe:        true,
			Description: "Inspect the effective configuration",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
