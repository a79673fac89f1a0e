package clierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/apiclient"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/session"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitGeneral", ExitGeneral, 1},
		{"ExitAuth", ExitAuth, 2},
		{"ExitForbidden", ExitForbidden, 3},
		{"ExitNotFound", ExitNotFound, 4},
		{"ExitConnection", ExitConnection, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"CodeNotAuthenticated", CodeNotAuthenticated, "NOT_AUTHENTICATED"},
		{"CodeAuthError", CodeAuthError, "AUTH_ERROR"},
		{"CodeSessionExpired", CodeSessionExpired, "SESSION_EXPIRED"},
		{"CodeForbidden", CodeForbidden, "FORBIDDEN"},
		{"CodeNotFound", CodeNotFound, "NOT_FOUND"},
		{"CodeConnectionFailed", CodeConnectionFailed, "CONNECTION_FAILED"},
		{"CodeValidationError", CodeValidationError, "VALIDATION_ERROR"},
		{"CodeInternalError", CodeInternalError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestCLIError_Error(t *testing.T) {
	t.Parallel()
	err := &CLIError{
		Code:    CodeNotFound,
		Message: "parcel 'PCL-1042' not found",
	}

	if err.Error() != "parcel 'PCL-1042' not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "parcel 'PCL-1042' not found")
	}
}

func TestNotAuthenticated(t *testing.T) {
	t.Parallel()
	err := NotAuthenticated()

	if err.Code != CodeNotAuthenticated {
		t.Errorf("Code = %q, want %q", err.Code, CodeNotAuthenticated)
	}
	if err.ExitCode != ExitAuth {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitAuth)
	}
	if err.Hint == "" {
		t.Error("Hint should not be empty")
	}
	if err.Retryable {
		t.Error("Retryable should be false when not signed in")
	}
}

func TestInvalidCredentials(t *testing.T) {
	t.Parallel()
	err := InvalidCredentials()

	if err.Code != CodeAuthError {
		t.Errorf("Code = %q, want %q", err.Code, CodeAuthError)
	}
	if err.ExitCode != ExitAuth {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitAuth)
	}
	if err.Retryable {
		t.Error("Retryable should be false for rejected credentials")
	}
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()
	err := SessionExpired()

	if err.Code != CodeSessionExpired {
		t.Errorf("Code = %q, want %q", err.Code, CodeSessionExpired)
	}
	if err.ExitCode != ExitAuth {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitAuth)
	}
	if err.Hint == "" {
		t.Error("Hint should not be empty")
	}
}

func TestForbidden(t *testing.T) {
	t.Parallel()
	err := Forbidden("users")

	if err.Code != CodeForbidden {
		t.Errorf("Code = %q, want %q", err.Code, CodeForbidden)
	}
	if err.ExitCode != ExitForbidden {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitForbidden)
	}
	if !strings.Contains(err.Message, "users") {
		t.Errorf("Message should contain resource, got %q", err.Message)
	}
	if err.Retryable {
		t.Error("Retryable should be false for forbidden errors")
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	err := NotFound("parcel", "PCL-1042")

	if err.Code != CodeNotFound {
		t.Errorf("Code = %q, want %q", err.Code, CodeNotFound)
	}
	if err.ExitCode != ExitNotFound {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitNotFound)
	}
	if !strings.Contains(err.Message, "PCL-1042") {
		t.Errorf("Message should contain id, got %q", err.Message)
	}
	if err.Retryable {
		t.Error("Retryable should be false for not found errors")
	}
}

func TestConnectionFailed(t *testing.T) {
	t.Parallel()
	err := ConnectionFailed("https://api.example.com/api")

	if err.Code != CodeConnectionFailed {
		t.Errorf("Code = %q, want %q", err.Code, CodeConnectionFailed)
	}
	if err.ExitCode != ExitConnection {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitConnection)
	}
	if !strings.Contains(err.Message, "https://api.example.com/api") {
		t.Errorf("Message should contain target, got %q", err.Message)
	}
	if !err.Retryable {
		t.Error("Retryable should be true for connection errors")
	}
}

func TestValidation(t *testing.T) {
	t.Parallel()
	err := Validation("amount must be positive")

	if err.Code != CodeValidationError {
		t.Errorf("Code = %q, want %q", err.Code, CodeValidationError)
	}
	if err.ExitCode != ExitGeneral {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitGeneral)
	}
	if err.Message != "amount must be positive" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestInternalError(t *testing.T) {
	t.Parallel()
	err := InternalError(nil)

	if err.Code != CodeInternalError {
		t.Errorf("Code = %q, want %q", err.Code, CodeInternalError)
	}
	if err.ExitCode != ExitGeneral {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitGeneral)
	}
	if err.Retryable {
		t.Error("Retryable should be false for internal errors")
	}

	err2 := InternalError(errors.New("config dir unwritable"))
	if !strings.Contains(err2.Message, "config dir unwritable") {
		t.Errorf("Message should contain original error, got %q", err2.Message)
	}
}

func TestFromError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		code     string
		exitCode int
	}{
		{"session expired", session.ErrSessionExpired, CodeSessionExpired, ExitAuth},
		{"invalid credentials", authapi.ErrInvalidCredentials, CodeAuthError, ExitAuth},
		{"not authenticated", session.ErrNotAuthenticated, CodeNotAuthenticated, ExitAuth},
		{"api unauthenticated", apiclient.ErrUnauthenticated, CodeNotAuthenticated, ExitAuth},
		{"forbidden", apiclient.ErrForbidden, CodeForbidden, ExitForbidden},
		{"not found", apiclient.ErrNotFound, CodeNotFound, ExitNotFound},
		{"api unavailable", apiclient.ErrUnavailable, CodeConnectionFailed, ExitConnection},
		{"auth unavailable", authapi.ErrUnavailable, CodeConnectionFailed, ExitConnection},
		{"unknown", errors.New("boom"), CodeInternalError, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := FromError(tt.err)
			if ce.Code != tt.code {
				t.Errorf("Code = %q, want %q", ce.Code, tt.code)
			}
			if ce.ExitCode != tt.exitCode {
				t.Errorf("ExitCode = %d, want %d", ce.ExitCode, tt.exitCode)
			}
		})
	}
}

func TestFromError_Wrapped(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("refresh session: %w", session.ErrSessionExpired)
	ce := FromError(wrapped)
	if ce.Code != CodeSessionExpired {
		t.Errorf("Code = %q, want %q", ce.Code, CodeSessionExpired)
	}
}

func TestFromError_Passthrough(t *testing.T) {
	t.Parallel()
	orig := Forbidden("settings")
	ce := FromError(orig)
	if ce != orig {
		t.Error("structured errors should pass through unchanged")
	}
}

func TestFromError_Nil(t *testing.T) {
	t.Parallel()
	if FromError(nil) != nil {
		t.Error("FromError(nil) should return nil")
	}
}

func TestCLIError_JSONSerialization(t *testing.T) {
	t.Parallel()
	err := &CLIError{
		Code:      CodeNotFound,
		Message:   "parcel 'PCL-1042' not found",
		Hint:      "check the parcel id with 'parcelctl parcels list'",
		Retryable: false,
		ExitCode:  ExitNotFound,
	}

	data, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("json.Marshal failed: %v", jsonErr)
	}

	var parsed map[string]interface{}
	if jsonErr := json.Unmarshal(data, &parsed); jsonErr != nil {
		t.Fatalf("json.Unmarshal failed: %v", jsonErr)
	}

	if parsed["code"] != CodeNotFound {
		t.Errorf("JSON code = %v, want %v", parsed["code"], CodeNotFound)
	}
	if parsed["message"] != "parcel 'PCL-1042' not found" {
		t.Errorf("JSON message = %v", parsed["message"])
	}
	if parsed["retryable"] != false {
		t.Errorf("JSON retryable = %v, want false", parsed["retryable"])
	}

	// ExitCode should NOT be in JSON (json:"-" tag)
	if _, exists := parsed["ExitCode"]; exists {
		t.Error("ExitCode should not be serialized to JSON")
	}
}

func TestCLIError_JSONSerialization_OmitEmptyHint(t *testing.T) {
	t.Parallel()
	err := &CLIError{
		Code:     CodeInternalError,
		Message:  "unexpected error",
		ExitCode: ExitGeneral,
	}

	data, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("json.Marshal failed: %v", jsonErr)
	}

	var parsed map[string]interface{}
	if jsonErr := json.Unmarshal(data, &parsed); jsonErr != nil {
		t.Fatalf("json.Unmarshal failed: %v", jsonErr)
	}

	if _, exists := parsed["hint"]; exists {
		t.Error("Empty hint should be omitted from JSON")
	}
}

func TestFormatError_JSON(t *testing.T) {
	t.Parallel()
	err := NotFound("parcel", "PCL-1042")

	output := FormatError(err, "json")

	var parsed map[string]interface{}
	if jsonErr := json.Unmarshal([]byte(output), &parsed); jsonErr != nil {
		t.Fatalf("FormatError(json) produced invalid JSON: %v\nOutput: %s", jsonErr, output)
	}

	if parsed["code"] != CodeNotFound {
		t.Errorf("JSON code = %v, want %v", parsed["code"], CodeNotFound)
	}
	if !strings.Contains(parsed["message"].(string), "PCL-1042") {
		t.Errorf("JSON message should contain id, got %v", parsed["message"])
	}
}

func TestFormatError_Table(t *testing.T) {
	t.Parallel()
	err := NotFound("parcel", "PCL-1042")

	output := FormatError(err, "table")

	if strings.HasPrefix(output, "{") {
		t.Error("Table format should not produce JSON")
	}
	if !strings.Contains(output, "PCL-1042") {
		t.Errorf("Output should contain id, got %q", output)
	}
	if !strings.Contains(output, CodeNotFound) {
		t.Errorf("Output should contain error code, got %q", output)
	}
}

func TestFormatError_TableWithHint(t *testing.T) {
	t.Parallel()
	err := SessionExpired()

	output := FormatError(err, "table")

	if !strings.Contains(output, err.Hint) {
		t.Errorf("Output should contain hint, got %q", output)
	}
}

func TestFormatError_DefaultToTable(t *testing.T) {
	t.Parallel()
	err := NotFound("parcel", "PCL-1042")

	tableOutput := FormatError(err, "table")
	unknownOutput := FormatError(err, "yaml") // yaml not supported for errors

	if unknownOutput != tableOutput {
		t.Error("Unknown format should default to table output")
	}
}
