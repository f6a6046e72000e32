package mocks

import (
	"context"
	"time"

	"github.com/HariStrange/drive-Vault/domain"
)

// MockThrottleRepository implements domain.ThrottleRepository interface for testing
type MockThrottleRepository struct {
	AcquireFunc func(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error)
	CountFunc   func(ctx context.Context, key string, window time.Duration) (int64, error)
	ResetFunc   func(ctx context.Context, key string) error
}

// NewMockThrottleRepository creates a new MockThrottleRepository with default behaviors
func NewMockThrottleRepository() *MockThrottleRepository {
	return &MockThrottleRepository{}
}

// Acquire reports whether the action may proceed
func (m *MockThrottleRepository) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, key, window)
	}
	// Default behavior: never throttled
	return true, 0, nil
}

// Count increments a counter
func (m *MockThrottleRepository) Count(ctx context.Context, key string, window time.Duration) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, key, window)
	}
	return 1, nil
}

// Reset clears a counter
func (m *MockThrottleRepository) Reset(ctx context.Context, key string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, key)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.ThrottleRepository = (*MockThrottleRepository)(nil)
