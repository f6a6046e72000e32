package services

import (
	"context"

	"github.com/HariStrange/drive-Vault/domain"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository) domain.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetProfile implements domain.UserService
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ListUsers returns non-admin users. A role outside the self-service set is ignored.
func (s *UserServiceImpl) ListUsers(ctx context.Context, role string) ([]*domain.User, error) {
	if !domain.IsSelfServiceRole(role) {
		role = ""
	}
	return s.userRepo.List(ctx, role)
}

// Stats implements domain.UserService
func (s *UserServiceImpl) Stats(ctx context.Context) (*domain.UserStats, error) {
	return s.userRepo.Stats(ctx)
}
