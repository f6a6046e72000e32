package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
)

// AuthHandlers handles the identity endpoints
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,recruitrole"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest represents an email verification request
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// EmailRequest carries a bare email address
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest represents a token-based password reset
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// AdminResetPasswordRequest represents an admin password overwrite
type AdminResetPasswordRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

const resetRequestedMessage = "If the email exists, a reset link has been sent"

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req, "Email, name, password, and role are required") {
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email for verification code.",
		"userId":  user.ID,
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req, "Email and password are required") {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      result.AccessToken,
		"expires_in": result.ExpiresIn,
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
			"name":  result.User.Name,
			"phone": result.User.Phone,
			"role":  result.User.Role,
		},
	})
}

// VerifyEmail confirms ownership of an email with the mailed code
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if !bindJSON(c, &req, "Email and verification code are required") {
		return
	}

	if err := h.authSvc.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		respondError(c, err, "Email verification failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully. You can now log in."})
}

// ResendVerification mails a fresh code; the answer never reveals whether the email exists
func (h *AuthHandlers) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if !bindJSON(c, &req, "Email is required") {
		return
	}

	if err := h.authSvc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to resend verification code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists and is unverified, a new code has been sent"})
}

// ForgotPassword starts the reset flow
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if !bindJSON(c, &req, "Email is required") {
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Password reset request failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
}

// ResetPassword consumes a reset token
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req, "Token and new password are required") {
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondError(c, err, "Password reset failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful. You can now login with your new password."})
}

// AdminResetPassword overwrites another user's password
func (h *AuthHandlers) AdminResetPassword(c *gin.Context) {
	var req AdminResetPasswordRequest
	if !bindJSON(c, &req, "userId and newPassword are required") {
		return
	}

	user, err := h.authSvc.AdminResetPassword(c.Request.Context(), req.UserID, req.NewPassword)
	if err != nil {
		respondError(c, err, "Password reset failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
