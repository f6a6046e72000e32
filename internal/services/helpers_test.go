package services

import (
	"testing"
	"time"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/mocks"
)

// authDeps bundles the mocks behind an AuthService under test
type authDeps struct {
	userRepo   *mocks.MockUserRepository
	verifyRepo *mocks.MockVerificationRepository
	throttle   *mocks.MockThrottleRepository
	password   *mocks.MockPasswordService
	token      *mocks.MockTokenService
	notifier   *mocks.MockNotificationService
	audit      *mocks.MockAuditLogger
}

func newAuthDeps(t *testing.T) *authDeps {
	t.Helper()

	return &authDeps{
		userRepo:   mocks.NewMockUserRepository(),
		verifyRepo: mocks.NewMockVerificationRepository(),
		throttle:   mocks.NewMockThrottleRepository(),
		password:   mocks.NewMockPasswordService(),
		token:      mocks.NewMockTokenService(),
		notifier:   mocks.NewMockNotificationService(),
		audit:      mocks.NewMockAuditLogger(),
	}
}

var testAuthConfig = AuthConfig{
	CodeTTL:        15 * time.Minute,
	CodeLength:     6,
	ResetTokenTTL:  time.Hour,
	ResetWindow:    time.Minute,
	VerifyWindow:   time.Minute,
	VerifyAttempts: 3,
	FrontendURL:    "http://localhost:3000/",
}

// createAuthServiceForTest wires an AuthServiceImpl whose clock is pinned to now
func createAuthServiceForTest(t *testing.T, deps *authDeps, now time.Time) *AuthServiceImpl {
	t.Helper()

	svc := NewAuthService(
		deps.userRepo,
		deps.verifyRepo,
		deps.throttle,
		deps.password,
		deps.token,
		deps.notifier,
		deps.audit,
		testAuthConfig,
	).(*AuthServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

// createValidUser creates a verified driver for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Email:        "test@example.com",
		Phone:        "+1234567890",
		Name:         "Test Driver",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleDriver,
		IsVerified:   true,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createUnverifiedUser creates a user who has not confirmed their email
func createUnverifiedUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.IsVerified = false
	return user
}

func strPtr(s string) *string { return &s }
