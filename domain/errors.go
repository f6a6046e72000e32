package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidRole        = errors.New("role must be driver, welder, or student")
)

// Verification errors
var (
	ErrCodeNotFound = errors.New("verification code not found")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeInvalid  = errors.New("invalid verification code")

	ErrTooManyAttempts = errors.New("too many verification attempts")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrResetTokenExpired = errors.New("reset token expired")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
	ErrInvalidPolicy    = errors.New("role, resource and action are required")
)

// Passport errors
var (
	ErrPassportNotFound      = errors.New("passport record not found")
	ErrPassportAlreadyExists = errors.New("passport record already exists")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")
	ErrInvalidDate           = errors.New("dates must use YYYY-MM-DD")
)

// Quiz errors
var (
	ErrSetNotFound         = errors.New("question set not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrNoSetsForCategory   = errors.New("no sets found for this category")
	ErrSetNameRequired     = errors.New("set_name and category are required")
	ErrOptionsRequired     = errors.New("options array required")
	ErrOptionTextRequired  = errors.New("option_text is required")
	ErrImageRequired       = errors.New("question_type image requires question_image")
	ErrInvalidQuestionType = errors.New("question_type must be text or image")
)

// Upload errors
var (
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedFileType = errors.New("only image files are allowed (.jpeg, .jpg, .png, .webp)")
)

// ErrorKind classifies errors for translation at the transport boundary
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindRateLimited
)

var kinds = map[ErrorKind][]error{
	KindValidation: {
		ErrInvalidRole, ErrCodeNotFound, ErrCodeExpired, ErrCodeInvalid,
		ErrResetTokenInvalid, ErrResetTokenExpired, ErrNoFieldsToUpdate, ErrInvalidDate,
		ErrSetNameRequired, ErrOptionsRequired, ErrOptionTextRequired, ErrImageRequired,
		ErrInvalidQuestionType, ErrFileTooLarge, ErrUnsupportedFileType, ErrInvalidPolicy,
	},
	KindAuthentication: {ErrInvalidCredentials, ErrTokenInvalid, ErrTokenExpired, ErrTokenMalformed, ErrUnauthorized},
	KindAuthorization:  {ErrEmailNotVerified, ErrInsufficientRole},
	KindNotFound: {
		ErrUserNotFound, ErrPassportNotFound, ErrSetNotFound, ErrQuestionNotFound, ErrNoSetsForCategory,
	},
	KindConflict:    {ErrUserAlreadyExists, ErrPassportAlreadyExists},
	KindRateLimited: {ErrTooManyAttempts},
}

// KindOf returns the kind of err, looking through wrapped errors.
// Anything unrecognised is internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	for kind, errs := range kinds {
		for _, target := range errs {
			if errors.Is(err, target) {
				return kind
			}
		}
	}
	return KindInternal
}
