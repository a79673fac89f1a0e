package clierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/apiclient"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/session"
)

// Exit codes by failure class.
const (
	ExitSuccess    = 0 // Operation completed successfully
	ExitGeneral    = 1 // Unknown/unhandled error
	ExitAuth       = 2 // Not signed in, session expired, bad credentials
	ExitForbidden  = 3 // Signed in but role does not permit the operation
	ExitNotFound   = 4 // Resource doesn't exist
	ExitConnection = 5 // Backend unreachable or returning server errors
)

// Error codes (strings) for programmatic error handling
const (
	CodeNotAuthenticated = "NOT_AUTHENTICATED"
	CodeAuthError        = "AUTH_ERROR"
	CodeSessionExpired   = "SESSION_EXPIRED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConnectionFailed = "CONNECTION_FAILED"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// CLIError represents a structured error for CLI output.
type CLIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Hint      string `json:"hint,omitempty"`
	Retryable bool   `json:"retryable"`
	ExitCode  int    `json:"-"` // Not serialized, used for os.Exit
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// NotAuthenticated creates an error for commands that require a session.
func NotAuthenticated() *CLIError {
	return &CLIError{
		Code:      CodeNotAuthenticated,
		Message:   "not signed in",
		Hint:      "Run 'parcelctl login' to authenticate",
		Retryable: false,
		ExitCode:  ExitAuth,
	}
}

// InvalidCredentials creates an error for rejected login attempts.
func InvalidCredentials() *CLIError {
	return &CLIError{
		Code:      CodeAuthError,
		Message:   "invalid email or password",
		Hint:      "Check your credentials and try again",
		Retryable: false,
		ExitCode:  ExitAuth,
	}
}

// SessionExpired creates an error when a stored session can no longer be refreshed.
func SessionExpired() *CLIError {
	return &CLIError{
		Code:      CodeSessionExpired,
		Message:   "session has expired",
		Hint:      "Run 'parcelctl login' to sign in again",
		Retryable: false,
		ExitCode:  ExitAuth,
	}
}

// Forbidden creates an error for role-gated operations.
func Forbidden(resource string) *CLIError {
	return &CLIError{
		Code:      CodeForbidden,
		Message:   fmt.Sprintf("not allowed to access '%s'", resource),
		Hint:      "This operation requires an admin account",
		Retryable: false,
		ExitCode:  ExitForbidden,
	}
}

// NotFound creates an error when a resource doesn't exist.
func NotFound(resource, id string) *CLIError {
	return &CLIError{
		Code:      CodeNotFound,
		Message:   fmt.Sprintf("%s '%s' not found", resource, id),
		Hint:      fmt.Sprintf("Check the %s id with 'parcelctl %s list'", resource, resource),
		Retryable: false,
		ExitCode:  ExitNotFound,
	}
}

// ConnectionFailed creates an error for unreachable or failing backends.
func ConnectionFailed(target string) *CLIError {
	return &CLIError{
		Code:      CodeConnectionFailed,
		Message:   fmt.Sprintf("failed to reach '%s'", target),
		Hint:      "Check network connectivity and the server URL",
		Retryable: true,
		ExitCode:  ExitConnection,
	}
}

// Validation creates an error for rejected input.
func Validation(msg string) *CLIError {
	return &CLIError{
		Code:      CodeValidationError,
		Message:   msg,
		Retryable: false,
		ExitCode:  ExitGeneral,
	}
}

// InternalError creates an error for unexpected internal errors.
func InternalError(err error) *CLIError {
	msg := "an unexpected internal error occurred"
	if err != nil {
		msg = fmt.Sprintf("internal error: %s", err.Error())
	}
	return &CLIError{
		Code:      CodeInternalError,
		Message:   msg,
		Retryable: false,
		ExitCode:  ExitGeneral,
	}
}

// FromError maps a package error to a structured CLI error. Already
// structured errors pass through unchanged.
func FromError(err error) *CLIError {
	if err == nil {
		return nil
	}
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		return SessionExpired()
	case errors.Is(err, authapi.ErrInvalidCredentials):
		return InvalidCredentials()
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, authapi.ErrUnauthenticated),
		errors.Is(err, apiclient.ErrUnauthenticated):
		return NotAuthenticated()
	case errors.Is(err, apiclient.ErrForbidden):
		return Forbidden("this resource")
	case errors.Is(err, apiclient.ErrNotFound):
		return &CLIError{
			Code:      CodeNotFound,
			Message:   err.Error(),
			Retryable: false,
			ExitCode:  ExitNotFound,
		}
	case errors.Is(err, apiclient.ErrUnavailable), errors.Is(err, authapi.ErrUnavailable):
		return &CLIError{
			Code:      CodeConnectionFailed,
			Message:   err.Error(),
			Hint:      "Check network connectivity and the server URL",
			Retryable: true,
			ExitCode:  ExitConnection,
		}
	}
	return InternalError(err)
}

// FormatError returns the error formatted for the given output format.
// Supported formats: "json" for JSON output, anything else for human-readable output.
func FormatError(err *CLIError, outputFormat string) string {
	if outputFormat == "json" {
		data, jsonErr := json.MarshalIndent(err, "", "  ")
		if jsonErr != nil {
			// Fallback to simple JSON if marshaling fails
			return fmt.Sprintf(`{"code":"%s","message":"%s"}`, err.Code, err.Message)
		}
		return string(data)
	}

	output := fmt.Sprintf("Error [%s]: %s", err.Code, err.Message)
	if err.Hint != "" {
		output += fmt.Sprintf("\nHint: %s", err.Hint)
	}
	return output
}

// PrintError prints the error to stderr in the appropriate format.
func PrintError(err *CLIError, outputFormat string) {
	fmt.Fprintln(os.Stderr, FormatError(err, outputFormat))
}
