package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/HariStrange/drive-Vault/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns non-admin users, newest first, optionally narrowed to one role
func (r *UserRepositoryImpl) List(ctx context.Context, role string) ([]*domain.User, error) {
	query := r.db.WithContext(ctx).Where("role <> ?", domain.RoleAdmin)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var rows []DBUser
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, r.dbToDomain(&rows[i]))
	}
	return users, nil
}

// Stats counts non-admin users by role and verification state
func (r *UserRepositoryImpl) Stats(ctx context.Context) (*domain.UserStats, error) {
	var stats domain.UserStats
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Select(
			"COUNT(*) AS total_users, "+
				"COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0) AS drivers, "+
				"COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0) AS welders, "+
				"COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0) AS students, "+
				"COALESCE(SUM(CASE WHEN is_verified = ? THEN 1 ELSE 0 END), 0) AS verified_users",
			domain.RoleDriver, domain.RoleWelder, domain.RoleStudent, true,
		).
		Where("role <> ?", domain.RoleAdmin).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		Phone:        user.Phone,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		IsVerified:   user.IsVerified,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		Phone:        dbUser.Phone,
		Name:         dbUser.Name,
		PasswordHash: dbUser.PasswordHash,
		Role:         dbUser.Role,
		IsVerified:   dbUser.IsVerified,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
