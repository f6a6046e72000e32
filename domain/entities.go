package domain

import "time"

// Roles recognised by the system. Admin accounts are never self-registered.
const (
	RoleDriver  = "driver"
	RoleWelder  = "welder"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Question types
const (
	QuestionTypeText  = "text"
	QuestionTypeImage = "image"
)

// Upload directories below the storage root
const (
	PassportUploadDir = "passports"
	QuestionUploadDir = "questions"
)

// SelfServiceRoles lists the roles a user may pick at registration
var SelfServiceRoles = []string{RoleDriver, RoleWelder, RoleStudent}

// IsSelfServiceRole reports whether role can be chosen at registration
func IsSelfServiceRole(role string) bool {
	for _, r := range SelfServiceRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a user account
type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VerificationCode is the short-lived numeric code proving email ownership
type VerificationCode struct {
	ID        uint
	UserID    uint
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is no longer usable at now
func (v *VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// PasswordResetToken is a single-use token issued by forgot-password
type PasswordResetToken struct {
	ID        uint
	UserID    uint
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer usable at now
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// AuthResult represents a successful login
type AuthResult struct {
	User        *User
	AccessToken string
	ExpiresIn   int64
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// UserStats aggregates non-admin account counts
type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	Drivers       int64 `json:"drivers"`
	Welders       int64 `json:"welders"`
	Students      int64 `json:"students"`
	VerifiedUsers int64 `json:"verifiedUsers"`
}

// PassportFields holds the textual columns of a passport record.
// A nil pointer means the column is NULL.
type PassportFields struct {
	PassportType   *string `json:"passport_type"`
	CountryCode    *string `json:"country_code"`
	PassportNumber *string `json:"passport_number"`
	FullName       *string `json:"full_name"`
	Nationality    *string `json:"nationality"`
	Sex            *string `json:"sex"`
	DateOfBirth    *string `json:"date_of_birth"`
	PlaceOfBirth   *string `json:"place_of_birth"`
	DateOfIssue    *string `json:"date_of_issue"`
	DateOfExpiry   *string `json:"date_of_expiry"`
	PlaceOfIssue   *string `json:"place_of_issue"`
	FatherName     *string `json:"father_name"`
	SpouseName     *string `json:"spouse_name"`
	Address        *string `json:"address"`
}

// Passport is the passport-detail record owned by one user
type Passport struct {
	ID     uint `json:"id"`
	UserID uint `json:"user_id"`
	PassportFields
	PassportPhoto *string   `json:"passport_photo"`
	Signature     *string   `json:"signature"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PassportWithOwner is a passport joined with its owner's contact details
type PassportWithOwner struct {
	Passport
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PassportFiles carries stored attachment names for a create or update.
// Empty strings mean no file was uploaded.
type PassportFiles struct {
	Photo     string
	Signature string
}

// QuestionSet is a named, categorized collection of questions
type QuestionSet struct {
	ID             uint      `json:"id"`
	SetName        string    `json:"set_name"`
	Category       string    `json:"category"`
	CreatedBy      uint      `json:"created_by"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// Question belongs to exactly one question set
type Question struct {
	ID               uint      `json:"id"`
	QuestionSetID    uint      `json:"question_set_id"`
	QuestionText     *string   `json:"question_text"`
	QuestionImageURL *string   `json:"question_image_url"`
	QuestionType     string    `json:"question_type"`
	CreatedAt        time.Time `json:"created_at"`
}

// QuestionOption is an answer option flagged correct or incorrect
type QuestionOption struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// NewOption is the input shape for addOptions
type NewOption struct {
	Text      string
	IsCorrect bool
}

// QuestionWithOptions is a question with its ordered option list
type QuestionWithOptions struct {
	Question
	Options []QuestionOption `json:"options"`
}

// Assignment binds one question set to one user
type Assignment struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	QuestionSetID uint      `json:"question_set_id"`
	AssignedAt    time.Time `json:"assigned_at"`
}

// Answer is one submitted choice for a question
type Answer struct {
	QuestionID uint
	OptionID   uint
}

// ScoreResult summarizes graded answers for a set
type ScoreResult struct {
	SetID          uint `json:"set_id"`
	TotalQuestions int  `json:"total_questions"`
	Answered       int  `json:"answered"`
	Correct        int  `json:"correct"`
}
