package e2e

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/auth"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/repositories"
)

const testPassword = "Test123!@#"

var emailSeq atomic.Int64

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s%d@example.com", prefix, emailSeq.Add(1))
}

// CreateAdmin inserts a verified admin directly; admins cannot self-register
func (s *TestServer) CreateAdmin(t *testing.T) *domain.User {
	t.Helper()
	hash, err := auth.NewPasswordService(bcrypt.MinCost).Hash(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	row := &repositories.DBUser{
		Email:        uniqueEmail("admin"),
		Name:         "Admin",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsVerified:   true,
	}
	if err := s.Container.DB.Create(row).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return &domain.User{ID: row.ID, Email: row.Email, Role: row.Role, IsVerified: true}
}

// RegisterVerified walks register and verify-email for a new account and returns its id
func (s *TestServer) RegisterVerified(t *testing.T, role string) (uint, string) {
	t.Helper()
	email := uniqueEmail(role)

	resp := s.JSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": email, "name": "Candidate", "password": testPassword, "role": role, "phone": "+15550001111",
	})
	if resp.Status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d %v", resp.Status, resp.Body)
	}
	userID := uint(resp.Body["userId"].(float64))

	resp = s.JSON(t, http.MethodPost, "/auth/verify-email", "", map[string]string{
		"email": email, "code": s.LatestCode(t, email),
	})
	if resp.Status != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d %v", resp.Status, resp.Body)
	}
	return userID, email
}

// LatestCode reads the newest verification code stored for email
func (s *TestServer) LatestCode(t *testing.T, email string) string {
	t.Helper()
	code, err := s.Container.VerificationRepo.LatestCodeForEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("latest code for %s: %v", email, err)
	}
	return code.Code
}

// ResetToken reads the newest reset token issued to userID
func (s *TestServer) ResetToken(t *testing.T, userID uint) string {
	t.Helper()
	var row repositories.DBPasswordResetToken
	if err := s.Container.DB.Where("user_id = ?", userID).Order("id DESC").First(&row).Error; err != nil {
		t.Fatalf("reset token for %d: %v", userID, err)
	}
	return row.Token
}

// Login returns a bearer token for email
func (s *TestServer) Login(t *testing.T, email, password string) string {
	t.Helper()
	resp := s.JSON(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	if resp.Status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d %v", email, resp.Status, resp.Body)
	}
	return resp.String("token")
}

// pngBytes encodes a 1x1 PNG, enough for content sniffing
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
