package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/HariStrange/drive-Vault/domain"
)

const dateLayout = "2006-01-02"

// PassportServiceImpl implements domain.PassportService
type PassportServiceImpl struct {
	passportRepo domain.PassportRepository
	storage      domain.FileStorage
	audit        domain.AuditLogger
}

// NewPassportService creates a new passport service
func NewPassportService(passportRepo domain.PassportRepository, storage domain.FileStorage, audit domain.AuditLogger) domain.PassportService {
	return &PassportServiceImpl{
		passportRepo: passportRepo,
		storage:      storage,
		audit:        audit,
	}
}

// Create stores a record for userID. Uploaded files are removed again if the record is rejected.
func (s *PassportServiceImpl) Create(ctx context.Context, userID uint, fields domain.PassportFields, files domain.PassportFiles) (*domain.Passport, error) {
	for _, col := range domain.PassportDateColumns {
		if err := validateDate(fields.Get(col)); err != nil {
			s.discard(files)
			return nil, err
		}
	}

	passport := &domain.Passport{
		UserID:         userID,
		PassportFields: fields,
		PassportPhoto:  optional(files.Photo),
		Signature:      optional(files.Signature),
	}
	if err := s.passportRepo.Create(ctx, passport); err != nil {
		s.discard(files)
		return nil, err
	}
	return passport, nil
}

// GetMine implements domain.PassportService
func (s *PassportServiceImpl) GetMine(ctx context.Context, userID uint) (*domain.Passport, error) {
	return s.passportRepo.FindByUserID(ctx, userID)
}

// GetAll implements domain.PassportService
func (s *PassportServiceImpl) GetAll(ctx context.Context) ([]*domain.PassportWithOwner, error) {
	return s.passportRepo.List(ctx)
}

// Update applies patch to the caller's record. Files replaced by the patch
// are deleted from storage once the update has committed.
func (s *PassportServiceImpl) Update(ctx context.Context, userID uint, patch *domain.PassportPatch) (*domain.Passport, error) {
	if patch.Empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	for _, col := range domain.PassportDateColumns {
		if f, ok := patch.Fields[col]; ok && f.Set {
			if err := validateDate(f.Value); err != nil {
				s.discard(patch.Files)
				return nil, err
			}
		}
	}

	before, after, err := s.passportRepo.Update(ctx, userID, patch)
	if err != nil {
		s.discard(patch.Files)
		return nil, err
	}

	if patch.Files.Photo != "" {
		s.remove(before.PassportPhoto, patch.Files.Photo)
	}
	if patch.Files.Signature != "" {
		s.remove(before.Signature, patch.Files.Signature)
	}
	return after, nil
}

// Delete removes the record and then its files
func (s *PassportServiceImpl) Delete(ctx context.Context, id uint) error {
	deleted, err := s.passportRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.remove(deleted.PassportPhoto, "")
	s.remove(deleted.Signature, "")

	if s.audit != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PassportDeletedEvent, deleted.UserID).
			WithMetadata("passport_id", deleted.ID))
	}
	return nil
}

func (s *PassportServiceImpl) remove(old *string, replacement string) {
	if old == nil || *old == "" || *old == replacement {
		return
	}
	if err := s.storage.Remove(domain.PassportUploadDir, *old); err != nil {
		log.Printf("EVENT: file_cleanup_failed dir=%s file=%s error=%q", domain.PassportUploadDir, *old, err)
	}
}

func (s *PassportServiceImpl) discard(files domain.PassportFiles) {
	s.remove(optional(files.Photo), "")
	s.remove(optional(files.Signature), "")
}

func validateDate(v *string) error {
	if v == nil {
		return nil
	}
	if _, err := time.Parse(dateLayout, *v); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDate, *v)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
