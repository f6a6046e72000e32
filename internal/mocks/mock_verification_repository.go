package mocks

import (
	"context"

	"github.com/HariStrange/drive-Vault/domain"
)

// MockVerificationRepository implements domain.VerificationRepository interface for testing
type MockVerificationRepository struct {
	CreateCodeFunc         func(ctx context.Context, code *domain.VerificationCode) error
	LatestCodeForEmailFunc func(ctx context.Context, email string) (*domain.VerificationCode, error)
	ConsumeCodeFunc        func(ctx context.Context, code *domain.VerificationCode) error
	CreateResetTokenFunc   func(ctx context.Context, token *domain.PasswordResetToken) error
	FindResetTokenFunc     func(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	ConsumeResetTokenFunc  func(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error
}

// NewMockVerificationRepository creates a new MockVerificationRepository with default behaviors
func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{}
}

// CreateCode stores a verification code
func (m *MockVerificationRepository) CreateCode(ctx context.Context, code *domain.VerificationCode) error {
	if m.CreateCodeFunc != nil {
		return m.CreateCodeFunc(ctx, code)
	}
	return nil
}

// LatestCodeForEmail returns the newest code for the email's owner
func (m *MockVerificationRepository) LatestCodeForEmail(ctx context.Context, email string) (*domain.VerificationCode, error) {
	if m.LatestCodeForEmailFunc != nil {
		return m.LatestCodeForEmailFunc(ctx, email)
	}
	return nil, domain.ErrCodeNotFound
}

// ConsumeCode marks the owner verified and deletes the code
func (m *MockVerificationRepository) ConsumeCode(ctx context.Context, code *domain.VerificationCode) error {
	if m.ConsumeCodeFunc != nil {
		return m.ConsumeCodeFunc(ctx, code)
	}
	return nil
}

// CreateResetToken stores a reset token
func (m *MockVerificationRepository) CreateResetToken(ctx context.Context, token *domain.PasswordResetToken) error {
	if m.CreateResetTokenFunc != nil {
		return m.CreateResetTokenFunc(ctx, token)
	}
	return nil
}

// FindResetToken looks up a reset token
func (m *MockVerificationRepository) FindResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	if m.FindResetTokenFunc != nil {
		return m.FindResetTokenFunc(ctx, token)
	}
	return nil, domain.ErrResetTokenInvalid
}

// ConsumeResetToken stores the new hash and removes the owner's tokens
func (m *MockVerificationRepository) ConsumeResetToken(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error {
	if m.ConsumeResetTokenFunc != nil {
		return m.ConsumeResetTokenFunc(ctx, token, passwordHash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.VerificationRepository = (*MockVerificationRepository)(nil)
