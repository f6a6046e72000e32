package domain

import (
	"context"
	"io"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	List(ctx context.Context, role string) ([]*User, error)
	Stats(ctx context.Context) (*UserStats, error)
}

// VerificationRepository persists verification codes and password-reset tokens
type VerificationRepository interface {
	CreateCode(ctx context.Context, code *VerificationCode) error
	LatestCodeForEmail(ctx context.Context, email string) (*VerificationCode, error)
	// ConsumeCode marks the owner verified and deletes the code in one transaction.
	// It returns ErrCodeNotFound when the code was already consumed.
	ConsumeCode(ctx context.Context, code *VerificationCode) error
	CreateResetToken(ctx context.Context, token *PasswordResetToken) error
	FindResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	// ConsumeResetToken stores the new hash and deletes every reset token of the owner.
	ConsumeResetToken(ctx context.Context, token *PasswordResetToken, passwordHash string) error
}

// PassportRepository defines passport record data access
type PassportRepository interface {
	Create(ctx context.Context, passport *Passport) error
	FindByUserID(ctx context.Context, userID uint) (*Passport, error)
	List(ctx context.Context) ([]*PassportWithOwner, error)
	// Update applies patch to the user's record and returns the record before and after.
	Update(ctx context.Context, userID uint, patch *PassportPatch) (before, after *Passport, err error)
	Delete(ctx context.Context, id uint) (*Passport, error)
}

// QuizRepository defines question set, question, option and assignment data access
type QuizRepository interface {
	CreateSet(ctx context.Context, set *QuestionSet) error
	ListSets(ctx context.Context) ([]*QuestionSet, error)
	FindSet(ctx context.Context, id uint) (*QuestionSet, error)
	// DeleteSet removes the set and its dependents, returning the image names its questions referenced.
	DeleteSet(ctx context.Context, id uint) ([]string, error)
	// CreateQuestion inserts the question and bumps the owning set's total_questions.
	CreateQuestion(ctx context.Context, question *Question) error
	FindQuestion(ctx context.Context, id uint) (*Question, error)
	ListQuestions(ctx context.Context, setID uint) ([]*Question, error)
	AddOptions(ctx context.Context, questionID uint, options []NewOption) ([]QuestionOption, error)
	SetIDsByCategory(ctx context.Context, category string) ([]uint, error)
	CreateAssignment(ctx context.Context, assignment *Assignment) error
	SetQuestions(ctx context.Context, setID uint) ([]QuestionWithOptions, error)
}

// ThrottleRepository rate-limits repeated actions per key
type ThrottleRepository interface {
	// Acquire reports whether the action may proceed, and how long to wait otherwise.
	Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error)
	// Count increments the counter under key and returns it. The counter
	// lives for window from its first increment.
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

// FileStorage stores uploaded attachments
type FileStorage interface {
	Save(dir, field, originalName string, src io.Reader) (string, error)
	Remove(dir, name string) error
}

// AuthService defines identity business logic
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	AdminResetPassword(ctx context.Context, userID uint, newPassword string) (*User, error)
}

// RegisterInput carries registration fields
type RegisterInput struct {
	Email    string
	Phone    string
	Name     string
	Password string
	Role     string
}

// UserService defines profile and admin user queries
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*User, error)
	ListUsers(ctx context.Context, role string) ([]*User, error)
	Stats(ctx context.Context) (*UserStats, error)
}

// PassportService defines passport record business logic
type PassportService interface {
	Create(ctx context.Context, userID uint, fields PassportFields, files PassportFiles) (*Passport, error)
	GetMine(ctx context.Context, userID uint) (*Passport, error)
	GetAll(ctx context.Context) ([]*PassportWithOwner, error)
	Update(ctx context.Context, userID uint, patch *PassportPatch) (*Passport, error)
	Delete(ctx context.Context, id uint) error
}

// QuizService defines quiz content business logic
type QuizService interface {
	CreateSet(ctx context.Context, name, category string, authorID uint) (*QuestionSet, error)
	ListSets(ctx context.Context) ([]*QuestionSet, error)
	DeleteSet(ctx context.Context, id uint) error
	CreateQuestion(ctx context.Context, in CreateQuestionInput) (*Question, error)
	ListQuestions(ctx context.Context, setID uint) ([]*Question, error)
	AddOptions(ctx context.Context, questionID uint, options []NewOption) ([]QuestionOption, error)
}

// CreateQuestionInput carries question fields; Image is a stored file name or empty
type CreateQuestionInput struct {
	SetID uint
	Text  string
	Image string
	Type  string
}

// AssignmentService defines random set assignment and scored retrieval
type AssignmentService interface {
	AssignRandomSet(ctx context.Context, userID uint, category string) (*Assignment, error)
	GetSetQuestions(ctx context.Context, setID uint) ([]QuestionWithOptions, error)
	ScoreSet(ctx context.Context, setID uint, answers []Answer) (*ScoreResult, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(ctx context.Context, to, message string) error
	SendEmail(ctx context.Context, to, subject, body string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
