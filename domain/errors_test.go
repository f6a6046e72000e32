package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{name: "nil", err: nil, expected: KindInternal},
		{name: "unknown", err: errors.New("boom"), expected: KindInternal},
		{name: "invalid role", err: ErrInvalidRole, expected: KindValidation},
		{name: "expired code", err: ErrCodeExpired, expected: KindValidation},
		{name: "reset token", err: ErrResetTokenInvalid, expected: KindValidation},
		{name: "file type", err: ErrUnsupportedFileType, expected: KindValidation},
		{name: "bad credentials", err: ErrInvalidCredentials, expected: KindAuthentication},
		{name: "expired token", err: ErrTokenExpired, expected: KindAuthentication},
		{name: "unverified", err: ErrEmailNotVerified, expected: KindAuthorization},
		{name: "role", err: ErrInsufficientRole, expected: KindAuthorization},
		{name: "user missing", err: ErrUserNotFound, expected: KindNotFound},
		{name: "no sets", err: ErrNoSetsForCategory, expected: KindNotFound},
		{name: "duplicate email", err: ErrUserAlreadyExists, expected: KindConflict},
		{name: "duplicate passport", err: ErrPassportAlreadyExists, expected: KindConflict},
		{name: "attempts", err: ErrTooManyAttempts, expected: KindRateLimited},
		{name: "wrapped", err: fmt.Errorf("delete set 7: %w", ErrSetNotFound), expected: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{}
	for _, errs := range kinds {
		all = append(all, errs...)
	}

	seen := make(map[string]bool)
	for _, err := range all {
		if seen[err.Error()] {
			t.Errorf("duplicate error message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}
