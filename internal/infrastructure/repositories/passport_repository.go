package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/HariStrange/drive-Vault/domain"
)

// PassportRepositoryImpl implements domain.PassportRepository using GORM
type PassportRepositoryImpl struct {
	db *gorm.DB
}

// NewPassportRepository creates a new passport repository
func NewPassportRepository(db *gorm.DB) domain.PassportRepository {
	return &PassportRepositoryImpl{db: db}
}

// Create implements domain.PassportRepository
func (r *PassportRepositoryImpl) Create(ctx context.Context, passport *domain.Passport) error {
	row := &DBPassport{
		UserID:         passport.UserID,
		PassportFields: passport.PassportFields,
		PassportPhoto:  passport.PassportPhoto,
		Signature:      passport.Signature,
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPassportAlreadyExists
		}
		return err
	}
	passport.ID = row.ID
	passport.CreatedAt = row.CreatedAt
	passport.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByUserID implements domain.PassportRepository
func (r *PassportRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.Passport, error) {
	return r.findOne(r.db.WithContext(ctx), "user_id = ?", userID)
}

func (r *PassportRepositoryImpl) findOne(db *gorm.DB, query string, arg interface{}) (*domain.Passport, error) {
	var row DBPassport
	if err := db.Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPassportNotFound
		}
		return nil, err
	}
	return dbToPassport(&row), nil
}

// List returns every record joined with its owner, newest first
func (r *PassportRepositoryImpl) List(ctx context.Context) ([]*domain.PassportWithOwner, error) {
	var rows []DBPassport
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.PassportWithOwner, 0, len(rows))
	for i := range rows {
		out = append(out, &domain.PassportWithOwner{
			Passport: *dbToPassport(&rows[i]),
			Email:    rows[i].User.Email,
			Name:     rows[i].User.Name,
			Phone:    rows[i].User.Phone,
		})
	}
	return out, nil
}

// Update implements domain.PassportRepository
func (r *PassportRepositoryImpl) Update(ctx context.Context, userID uint, patch *domain.PassportPatch) (*domain.Passport, *domain.Passport, error) {
	var before, after *domain.Passport
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.findOne(tx, "user_id = ?", userID)
		if err != nil {
			return err
		}

		updates := patchColumns(current, patch)
		if len(updates) > 0 {
			if err := tx.Model(&DBPassport{}).Where("id = ?", current.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		before = current
		after, err = r.findOne(tx, "id = ?", current.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// Delete implements domain.PassportRepository
func (r *PassportRepositoryImpl) Delete(ctx context.Context, id uint) (*domain.Passport, error) {
	var deleted *domain.Passport
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.findOne(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&DBPassport{}, current.ID).Error; err != nil {
			return err
		}
		deleted = current
		return nil
	})
	return deleted, err
}

// patchColumns applies patch to a copy of current and returns the touched
// columns; cleared fields become NULL
func patchColumns(current *domain.Passport, patch *domain.PassportPatch) map[string]interface{} {
	next := *current
	patch.Apply(&next)

	updates := make(map[string]interface{})
	for _, col := range domain.PassportColumns {
		if f, ok := patch.Fields[col]; !ok || !f.Set {
			continue
		}
		if v := next.Get(col); v != nil {
			updates[col] = *v
		} else {
			updates[col] = gorm.Expr("NULL")
		}
	}
	if patch.Files.Photo != "" {
		updates["passport_photo"] = *next.PassportPhoto
	}
	if patch.Files.Signature != "" {
		updates["signature"] = *next.Signature
	}
	return updates
}

func dbToPassport(row *DBPassport) *domain.Passport {
	return &domain.Passport{
		ID:             row.ID,
		UserID:         row.UserID,
		PassportFields: row.PassportFields,
		PassportPhoto:  row.PassportPhoto,
		Signature:      row.Signature,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
