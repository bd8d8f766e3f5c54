package testutil

import (
	"errors"
	"testing"

	apperrors "tradedesk/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertNotFound fails the test unless err is a NOT_FOUND AppError carrying message.
func AssertNotFound(t *testing.T, err error, message string) {
	t.Helper()

	AssertAppError(t, err, "NOT_FOUND")
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != message {
		t.Errorf("expected message %q, got %q", message, appErr.Message)
	}
}
