package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", err.ExitCode)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeConnectionFailed, "no route")
	if !err.Retryable {
		t.Error("CONNECTION_FAILED should be retryable")
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := DatabaseError(cause)
	if !strings.Contains(err.Error(), "underlying") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := Validation("bad input").WithDetail("field", "quantity")
	if err.Details["field"] != "quantity" {
		t.Errorf("expected detail field=quantity, got %v", err.Details["field"])
	}
}

func TestAppError_WithDetails_Merges(t *testing.T) {
	err := Validation("bad input").
		WithDetail("a", 1).
		WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("expected merged details, got %v", err.Details)
	}
}

func TestProcessFailed(t *testing.T) {
	err := ProcessFailed("migrate", 2, "dial tcp: connection refused")
	if err.Code != ErrCodeProcessFailed {
		t.Errorf("expected PROCESS_FAILED, got %s", err.Code)
	}
	if err.Details["binary"] != "migrate" {
		t.Errorf("expected binary=migrate, got %v", err.Details["binary"])
	}
	if err.Details["exit_code"] != 2 {
		t.Errorf("expected exit_code=2, got %v", err.Details["exit_code"])
	}
	if err.ExitCode != 1 {
		t.Errorf("a failed child maps to exit 1, got %d", err.ExitCode)
	}
	if err.Retryable {
		t.Error("child failures are not retryable")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"app error", ProcessFailed("seed-instruments", 3, ""), 1},
		{"wrapped app error", fmt.Errorf("run: %w", DatabaseError(fmt.Errorf("x"))), 1},
		{"plain error", fmt.Errorf("boom"), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("ExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStderr(t *testing.T) {
	err := ProcessFailed("migrate", 1, "FATAL: role does not exist")
	if got := Stderr(err); got != "FATAL: role does not exist" {
		t.Errorf("Stderr() = %q", got)
	}
	if got := Stderr(fmt.Errorf("plain")); got != "" {
		t.Errorf("expected empty stderr for plain error, got %q", got)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Validation("x")) {
		t.Error("expected IsAppError true for AppError")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("expected IsAppError false for plain error")
	}
	wrapped := fmt.Errorf("wrap: %w", NotFound("user", "test_user_001"))
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError true for wrapped AppError")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(ConnectionFailed("database")) {
		t.Error("connection failures should be retryable")
	}
	if IsRetryable(Validation("x")) {
		t.Error("validation failures should not be retryable")
	}
	if IsRetryable(fmt.Errorf("plain")) {
		t.Error("plain errors should not be retryable")
	}
}
