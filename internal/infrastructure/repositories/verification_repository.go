package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/HariStrange/drive-Vault/domain"
)

// VerificationRepositoryImpl implements domain.VerificationRepository using GORM
type VerificationRepositoryImpl struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) domain.VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

// CreateCode implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) CreateCode(ctx context.Context, code *domain.VerificationCode) error {
	row := &DBVerificationCode{
		UserID:    code.UserID,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
		CreatedAt: code.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	code.ID = row.ID
	code.CreatedAt = row.CreatedAt
	return nil
}

// LatestCodeForEmail returns the most recently issued code of the account with email
func (r *VerificationRepositoryImpl) LatestCodeForEmail(ctx context.Context, email string) (*domain.VerificationCode, error) {
	db := r.db.WithContext(ctx)
	owner := db.Model(&DBUser{}).Select("id").Where("email = ?", email)

	var row DBVerificationCode
	err := db.Where("user_id = (?)", owner).Order("created_at DESC, id DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	return &domain.VerificationCode{
		ID:        row.ID,
		UserID:    row.UserID,
		Code:      row.Code,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ConsumeCode implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) ConsumeCode(ctx context.Context, code *domain.VerificationCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", code.ID).Delete(&DBVerificationCode{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCodeNotFound
		}
		return tx.Model(&DBUser{}).Where("id = ?", code.UserID).Update("is_verified", true).Error
	})
}

// CreateResetToken implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) CreateResetToken(ctx context.Context, token *domain.PasswordResetToken) error {
	row := &DBPasswordResetToken{
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	token.ID = row.ID
	token.CreatedAt = row.CreatedAt
	return nil
}

// FindResetToken implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) FindResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	var row DBPasswordResetToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return &domain.PasswordResetToken{
		ID:        row.ID,
		UserID:    row.UserID,
		Token:     row.Token,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ConsumeResetToken implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) ConsumeResetToken(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("token = ?", token.Token).Delete(&DBPasswordResetToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrResetTokenInvalid
		}
		if err := tx.Model(&DBUser{}).Where("id = ?", token.UserID).Update("password", passwordHash).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", token.UserID).Delete(&DBPasswordResetToken{}).Error
	})
}
