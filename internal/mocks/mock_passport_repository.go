package mocks

import (
	"context"

	"github.com/HariStrange/drive-Vault/domain"
)

// MockPassportRepository implements domain.PassportRepository interface for testing
type MockPassportRepository struct {
	CreateFunc       func(ctx context.Context, passport *domain.Passport) error
	FindByUserIDFunc func(ctx context.Context, userID uint) (*domain.Passport, error)
	ListFunc         func(ctx context.Context) ([]*domain.PassportWithOwner, error)
	UpdateFunc       func(ctx context.Context, userID uint, patch *domain.PassportPatch) (*domain.Passport, *domain.Passport, error)
	DeleteFunc       func(ctx context.Context, id uint) (*domain.Passport, error)
}

// NewMockPassportRepository creates a new MockPassportRepository with default behaviors
func NewMockPassportRepository() *MockPassportRepository {
	return &MockPassportRepository{}
}

// Create inserts a passport record
func (m *MockPassportRepository) Create(ctx context.Context, passport *domain.Passport) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, passport)
	}
	passport.ID = 1
	return nil
}

// FindByUserID returns the user's record
func (m *MockPassportRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Passport, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrPassportNotFound
}

// List returns every record with owner details
func (m *MockPassportRepository) List(ctx context.Context) ([]*domain.PassportWithOwner, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.PassportWithOwner{}, nil
}

// Update applies a patch
func (m *MockPassportRepository) Update(ctx context.Context, userID uint, patch *domain.PassportPatch) (*domain.Passport, *domain.Passport, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, patch)
	}
	return nil, nil, domain.ErrPassportNotFound
}

// Delete removes a record by id
func (m *MockPassportRepository) Delete(ctx context.Context, id uint) (*domain.Passport, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, domain.ErrPassportNotFound
}

// Compile-time interface compliance verification
var _ domain.PassportRepository = (*MockPassportRepository)(nil)
