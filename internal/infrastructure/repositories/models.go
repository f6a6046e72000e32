package repositories

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/HariStrange/drive-Vault/domain"
)

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	Phone        string    `gorm:"size:32"`
	Name         string    `gorm:"size:255"`
	PasswordHash string    `gorm:"column:password;not null"`
	Role         string    `gorm:"index;size:32;not null"`
	IsVerified   bool      `gorm:"index"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (DBUser) TableName(n schema.Namer) string { return n.TableName("User") }

type DBVerificationCode struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Code      string `gorm:"size:16;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time `gorm:"index"`
}

func (DBVerificationCode) TableName(n schema.Namer) string { return n.TableName("VerificationCode") }

type DBPasswordResetToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Token     string `gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (DBPasswordResetToken) TableName(n schema.Namer) string { return n.TableName("PasswordResetToken") }

// DBPassport stores the textual columns through the embedded domain fields
type DBPassport struct {
	ID                    uint `gorm:"primaryKey"`
	UserID                uint `gorm:"uniqueIndex;not null"`
	domain.PassportFields `gorm:"embedded"`
	PassportPhoto         *string
	Signature             *string
	CreatedAt             time.Time `gorm:"index"`
	UpdatedAt             time.Time
	User                  DBUser `gorm:"foreignKey:UserID"`
}

func (DBPassport) TableName(n schema.Namer) string { return n.TableName("PassportDetail") }

type DBQuestionSet struct {
	ID             uint   `gorm:"primaryKey"`
	SetName        string `gorm:"size:255;not null"`
	Category       string `gorm:"index;size:64;not null"`
	CreatedBy      uint   `gorm:"index"`
	TotalQuestions int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

func (DBQuestionSet) TableName(n schema.Namer) string { return n.TableName("QuestionSet") }

type DBQuestion struct {
	ID               uint    `gorm:"primaryKey"`
	QuestionSetID    uint    `gorm:"index;not null"`
	QuestionText     *string `gorm:"type:text"`
	QuestionImageURL *string `gorm:"size:255"`
	QuestionType     string  `gorm:"size:16;not null"`
	CreatedAt        time.Time
	Options          []DBQuestionOption `gorm:"foreignKey:QuestionID"`
}

func (DBQuestion) TableName(n schema.Namer) string { return n.TableName("Question") }

type DBQuestionOption struct {
	ID         uint   `gorm:"primaryKey"`
	QuestionID uint   `gorm:"index;not null"`
	OptionText string `gorm:"type:text;not null"`
	IsCorrect  bool
}

func (DBQuestionOption) TableName(n schema.Namer) string { return n.TableName("QuestionOption") }

type DBAssignment struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"index;not null"`
	QuestionSetID uint      `gorm:"index;not null"`
	AssignedAt    time.Time `gorm:"autoCreateTime"`
}

func (DBAssignment) TableName(n schema.Namer) string { return n.TableName("UserQuestionSetAssignment") }

// Models lists every table owned by the service, in migration order
func Models() []interface{} {
	return []interface{}{
		&DBUser{},
		&DBVerificationCode{},
		&DBPasswordResetToken{},
		&DBPassport{},
		&DBQuestionSet{},
		&DBQuestion{},
		&DBQuestionOption{},
		&DBAssignment{},
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
