package mocks

import (
	"context"

	"github.com/HariStrange/drive-Vault/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, in domain.RegisterInput) (*domain.User, error)
	LoginFunc                func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	VerifyEmailFunc          func(ctx context.Context, email, code string) error
	ResendVerificationFunc   func(ctx context.Context, email string) error
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	ResetPasswordFunc        func(ctx context.Context, token, newPassword string) error
	AdminResetPasswordFunc   func(ctx context.Context, userID uint, newPassword string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	// Default behavior: return a mock user
	return &domain.User{ID: 1, Email: in.Email, Phone: in.Phone, Name: in.Name, Role: in.Role}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		User:        &domain.User{ID: 1, Email: email, Role: domain.RoleDriver, IsVerified: true},
		AccessToken: "mock_access_token",
		ExpiresIn:   86400,
	}, nil
}

// VerifyEmail confirms an email with a code
func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return nil
}

// ResendVerification issues a new code
func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	if m.ResendVerificationFunc != nil {
		return m.ResendVerificationFunc(ctx, email)
	}
	return nil
}

// RequestPasswordReset issues a reset token
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return nil
}

// ResetPassword consumes a reset token
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return nil
}

// AdminResetPassword overwrites a user's password
func (m *MockAuthService) AdminResetPassword(ctx context.Context, userID uint, newPassword string) (*domain.User, error) {
	if m.AdminResetPasswordFunc != nil {
		return m.AdminResetPasswordFunc(ctx, userID, newPassword)
	}
	return &domain.User{ID: userID, Email: "user@example.com", Role: domain.RoleDriver}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
