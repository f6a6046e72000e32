package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/mocks"
)

func newPassportServiceForTest(t *testing.T) (domain.PassportService, *mocks.MockPassportRepository, *mocks.MockFileStorage, *mocks.MockAuditLogger) {
	t.Helper()

	repo := mocks.NewMockPassportRepository()
	storage := mocks.NewMockFileStorage()
	audit := mocks.NewMockAuditLogger()
	return NewPassportService(repo, storage, audit), repo, storage, audit
}

func TestPassportServiceImpl_Create(t *testing.T) {
	files := domain.PassportFiles{Photo: "photo.png", Signature: "sig.png"}

	t.Run("stores fields and files", func(t *testing.T) {
		svc, _, storage, _ := newPassportServiceForTest(t)
		fields := domain.PassportFields{FullName: strPtr("Ada"), DateOfBirth: strPtr("1990-04-12")}

		passport, err := svc.Create(context.Background(), 5, fields, files)
		require.NoError(t, err)
		assert.Equal(t, uint(5), passport.UserID)
		assert.Equal(t, "photo.png", *passport.PassportPhoto)
		assert.Nil(t, passport.Address)
		assert.Empty(t, storage.Removed(domain.PassportUploadDir))
	})

	t.Run("bad date discards uploads", func(t *testing.T) {
		svc, repo, storage, _ := newPassportServiceForTest(t)
		repo.CreateFunc = func(ctx context.Context, p *domain.Passport) error {
			t.Error("repository should not be reached")
			return nil
		}

		_, err := svc.Create(context.Background(), 5, domain.PassportFields{DateOfExpiry: strPtr("12/31/2030")}, files)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
		assert.ElementsMatch(t, []string{"photo.png", "sig.png"}, storage.Removed(domain.PassportUploadDir))
	})

	t.Run("duplicate record discards uploads", func(t *testing.T) {
		svc, repo, storage, _ := newPassportServiceForTest(t)
		repo.CreateFunc = func(ctx context.Context, p *domain.Passport) error {
			return domain.ErrPassportAlreadyExists
		}

		_, err := svc.Create(context.Background(), 5, domain.PassportFields{}, files)
		assert.ErrorIs(t, err, domain.ErrPassportAlreadyExists)
		assert.Len(t, storage.Removed(domain.PassportUploadDir), 2)
	})
}

func TestPassportServiceImpl_Update(t *testing.T) {
	before := &domain.Passport{ID: 1, UserID: 5, PassportPhoto: strPtr("old-photo.png"), Signature: strPtr("old-sig.png")}

	tests := []struct {
		name          string
		patch         func() *domain.PassportPatch
		repoErr       error
		expectedError error
		removed       []string
	}{
		{
			name:          "empty patch",
			patch:         domain.NewPassportPatch,
			expectedError: domain.ErrNoFieldsToUpdate,
		},
		{
			name: "invalid date in patch",
			patch: func() *domain.PassportPatch {
				p := domain.NewPassportPatch()
				p.Fields["date_of_issue"] = domain.SetTo("2020-13-01")
				p.Files.Photo = "new-photo.png"
				return p
			},
			expectedError: domain.ErrInvalidDate,
			removed:       []string{"new-photo.png"},
		},
		{
			name: "clearing a date skips validation",
			patch: func() *domain.PassportPatch {
				p := domain.NewPassportPatch()
				p.Fields["date_of_issue"] = domain.Clear()
				return p
			},
		},
		{
			name: "replaced photo removed after commit",
			patch: func() *domain.PassportPatch {
				p := domain.NewPassportPatch()
				p.Files.Photo = "new-photo.png"
				return p
			},
			removed: []string{"old-photo.png"},
		},
		{
			name: "missing record discards new upload",
			patch: func() *domain.PassportPatch {
				p := domain.NewPassportPatch()
				p.Files.Signature = "new-sig.png"
				return p
			},
			repoErr:       domain.ErrPassportNotFound,
			expectedError: domain.ErrPassportNotFound,
			removed:       []string{"new-sig.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, storage, _ := newPassportServiceForTest(t)
			repo.UpdateFunc = func(ctx context.Context, userID uint, patch *domain.PassportPatch) (*domain.Passport, *domain.Passport, error) {
				if tt.repoErr != nil {
					return nil, nil, tt.repoErr
				}
				after := *before
				patch.Apply(&after)
				return before, &after, nil
			}

			_, err := svc.Update(context.Background(), 5, tt.patch())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.ElementsMatch(t, tt.removed, storage.Removed(domain.PassportUploadDir))
		})
	}
}

func TestPassportServiceImpl_Delete(t *testing.T) {
	t.Run("removes files and audits", func(t *testing.T) {
		svc, repo, storage, audit := newPassportServiceForTest(t)
		repo.DeleteFunc = func(ctx context.Context, id uint) (*domain.Passport, error) {
			return &domain.Passport{ID: id, UserID: 5, PassportPhoto: strPtr("p.png")}, nil
		}

		require.NoError(t, svc.Delete(context.Background(), 3))
		assert.Equal(t, []string{"p.png"}, storage.Removed(domain.PassportUploadDir))
		assert.Len(t, audit.Events(domain.PassportDeletedEvent), 1)
	})

	t.Run("cleanup failure is not an error", func(t *testing.T) {
		svc, repo, storage, _ := newPassportServiceForTest(t)
		repo.DeleteFunc = func(ctx context.Context, id uint) (*domain.Passport, error) {
			return &domain.Passport{ID: id, Signature: strPtr("s.png")}, nil
		}
		storage.RemoveFunc = func(dir, name string) error { return errors.New("read-only fs") }

		assert.NoError(t, svc.Delete(context.Background(), 3))
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _, _ := newPassportServiceForTest(t)
		assert.ErrorIs(t, svc.Delete(context.Background(), 3), domain.ErrPassportNotFound)
	})
}
