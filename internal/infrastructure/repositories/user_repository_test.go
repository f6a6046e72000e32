package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/HariStrange/drive-Vault/domain"
	"gorm.io/gorm"
)

func TestUserRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupData     func(db *gorm.DB)
		user          *domain.User
		expectedError error
	}{
		{
			name:      "successful create",
			setupData: func(db *gorm.DB) {},
			user: &domain.User{
				Email:        "driver@example.com",
				Name:         "Dee River",
				PasswordHash: "hash",
				Role:         domain.RoleDriver,
			},
		},
		{
			name: "duplicate email maps to conflict",
			setupData: func(db *gorm.DB) {
				db.Create(&DBUser{Email: "taken@example.com", PasswordHash: "h", Role: domain.RoleWelder})
			},
			user: &domain.User{
				Email:        "taken@example.com",
				PasswordHash: "hash",
				Role:         domain.RoleDriver,
			},
			expectedError: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			tt.setupData(db)
			repo := NewUserRepository(db)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				var count int64
				db.Model(&DBUser{}).Where("email = ?", tt.user.Email).Count(&count)
				if count != 1 {
					t.Errorf("expected exactly one row for %s, got %d", tt.user.Email, count)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.user.ID == 0 {
				t.Error("expected ID to be assigned")
			}
			if tt.user.CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be populated")
			}
		})
	}
}

func TestUserRepositoryImpl_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedUser(t, db, "find@example.com", domain.RoleStudent, true)
	repo := NewUserRepository(db)

	user, err := repo.FindByEmail(context.Background(), "find@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != seeded.ID || user.Role != domain.RoleStudent || !user.IsVerified {
		t.Errorf("unexpected user %+v", user)
	}
	if user.PasswordHash != "hashed_password" {
		t.Errorf("expected password hash to be loaded, got %q", user.PasswordHash)
	}

	if _, err := repo.FindByEmail(context.Background(), "missing@example.com"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_FindByID(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedUser(t, db, "id@example.com", domain.RoleWelder, false)
	repo := NewUserRepository(db)

	user, err := repo.FindByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "id@example.com" {
		t.Errorf("expected email id@example.com, got %s", user.Email)
	}

	if _, err := repo.FindByID(context.Background(), 999); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedUser(t, db, "pw@example.com", domain.RoleDriver, true)
	repo := NewUserRepository(db)

	if err := repo.UpdatePassword(context.Background(), seeded.ID, "new_hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var row DBUser
	db.First(&row, seeded.ID)
	if row.PasswordHash != "new_hash" {
		t.Errorf("expected new hash, got %q", row.PasswordHash)
	}

	if err := repo.UpdatePassword(context.Background(), 999, "x"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_ListAndStats(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "d1@example.com", domain.RoleDriver, true)
	seedUser(t, db, "d2@example.com", domain.RoleDriver, false)
	seedUser(t, db, "w1@example.com", domain.RoleWelder, true)
	seedUser(t, db, "s1@example.com", domain.RoleStudent, false)
	seedUser(t, db, "admin@example.com", domain.RoleAdmin, true)
	repo := NewUserRepository(db)

	tests := []struct {
		name     string
		role     string
		expected []string
	}{
		{name: "all non-admin users newest first", role: "", expected: []string{"s1@example.com", "w1@example.com", "d2@example.com", "d1@example.com"}},
		{name: "drivers only", role: domain.RoleDriver, expected: []string{"d2@example.com", "d1@example.com"}},
		{name: "admin filter returns nothing", role: domain.RoleAdmin, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.List(context.Background(), tt.role)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(users) != len(tt.expected) {
				t.Fatalf("expected %d users, got %d", len(tt.expected), len(users))
			}
			for i, u := range users {
				if u.Email != tt.expected[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.expected[i], u.Email)
				}
			}
		})
	}

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := domain.UserStats{TotalUsers: 4, Drivers: 2, Welders: 1, Students: 1, VerifiedUsers: 2}
	if *stats != expected {
		t.Errorf("expected stats %+v, got %+v", expected, *stats)
	}
}
