package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
)

var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindAuthentication: http.StatusUnauthorized,
	domain.KindAuthorization:  http.StatusForbidden,
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindConflict:       http.StatusConflict,
	domain.KindRateLimited:    http.StatusTooManyRequests,
}

// Client-facing wording; anything absent falls back to the sentinel text
var messages = map[error]string{
	domain.ErrUserAlreadyExists:     "Email already registered",
	domain.ErrInvalidCredentials:    "Invalid email or password",
	domain.ErrEmailNotVerified:      "Please verify your email before logging in",
	domain.ErrInvalidRole:           "Role must be driver, welder, or student",
	domain.ErrCodeNotFound:          "Verification code not found. Please register again.",
	domain.ErrCodeExpired:           "Verification code expired. Please request a new one.",
	domain.ErrCodeInvalid:           "Invalid verification code.",
	domain.ErrTooManyAttempts:       "Too many attempts. Please request a new code.",
	domain.ErrResetTokenInvalid:     "Invalid or expired reset token",
	domain.ErrResetTokenExpired:     "Reset token expired",
	domain.ErrUserNotFound:          "User not found",
	domain.ErrPassportNotFound:      "Passport record not found",
	domain.ErrPassportAlreadyExists: "Passport details already submitted",
	domain.ErrNoFieldsToUpdate:      "No fields to update",
	domain.ErrNoSetsForCategory:     "No sets found for this category",
	domain.ErrOptionsRequired:       "Options array required",
}

// respondError writes err as JSON. Internal errors are logged and replaced by fallback.
func respondError(c *gin.Context, err error, fallback string) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		log.Printf("EVENT: request_failed method=%s path=%s error=%q", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": publicMessage(err)})
}

func publicMessage(err error) string {
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
