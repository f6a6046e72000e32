package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/HariStrange/drive-Vault/domain"
)

func TestVerificationRepositoryImpl_LatestCodeForEmail(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "verify@example.com", domain.RoleDriver, false)
	other := seedUser(t, db, "other@example.com", domain.RoleDriver, false)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	issued := time.Now().Add(-time.Minute)
	older := &domain.VerificationCode{UserID: user.ID, Code: "111111", ExpiresAt: issued.Add(15 * time.Minute), CreatedAt: issued}
	newer := &domain.VerificationCode{UserID: user.ID, Code: "222222", ExpiresAt: time.Now().Add(15 * time.Minute), CreatedAt: time.Now()}
	foreign := &domain.VerificationCode{UserID: other.ID, Code: "333333", ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now().Add(time.Second)}
	for _, c := range []*domain.VerificationCode{older, newer, foreign} {
		if err := repo.CreateCode(ctx, c); err != nil {
			t.Fatalf("failed to create code: %v", err)
		}
	}

	code, err := repo.LatestCodeForEmail(ctx, "verify@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code.Code != "222222" {
		t.Errorf("expected newest code 222222, got %s", code.Code)
	}

	if _, err := repo.LatestCodeForEmail(ctx, "nobody@example.com"); err != domain.ErrCodeNotFound {
		t.Errorf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestVerificationRepositoryImpl_ConsumeCode(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "consume@example.com", domain.RoleWelder, false)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	code := &domain.VerificationCode{UserID: user.ID, Code: "654321", ExpiresAt: time.Now().Add(15 * time.Minute), CreatedAt: time.Now()}
	if err := repo.CreateCode(ctx, code); err != nil {
		t.Fatalf("failed to create code: %v", err)
	}

	if err := repo.ConsumeCode(ctx, code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var row DBUser
	db.First(&row, user.ID)
	if !row.IsVerified {
		t.Error("expected user to be verified")
	}
	var count int64
	db.Model(&DBVerificationCode{}).Where("id = ?", code.ID).Count(&count)
	if count != 0 {
		t.Error("expected consumed code to be deleted")
	}

	// A racing second attempt finds nothing to consume
	if err := repo.ConsumeCode(ctx, code); err != domain.ErrCodeNotFound {
		t.Errorf("expected ErrCodeNotFound on reuse, got %v", err)
	}
}

func TestVerificationRepositoryImpl_ResetTokens(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "reset@example.com", domain.RoleStudent, true)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	first := &domain.PasswordResetToken{UserID: user.ID, Token: "aaaa", ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now()}
	second := &domain.PasswordResetToken{UserID: user.ID, Token: "bbbb", ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now()}
	for _, tok := range []*domain.PasswordResetToken{first, second} {
		if err := repo.CreateResetToken(ctx, tok); err != nil {
			t.Fatalf("failed to create token: %v", err)
		}
	}

	found, err := repo.FindResetToken(ctx, "aaaa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != user.ID {
		t.Errorf("expected owner %d, got %d", user.ID, found.UserID)
	}

	if err := repo.ConsumeResetToken(ctx, found, "rehashed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var row DBUser
	db.First(&row, user.ID)
	if row.PasswordHash != "rehashed" {
		t.Errorf("expected password to be updated, got %q", row.PasswordHash)
	}
	var remaining int64
	db.Model(&DBPasswordResetToken{}).Where("user_id = ?", user.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected every token of the user to be deleted, %d remain", remaining)
	}

	if _, err := repo.FindResetToken(ctx, "aaaa"); err != domain.ErrResetTokenInvalid {
		t.Errorf("expected ErrResetTokenInvalid after use, got %v", err)
	}
	if err := repo.ConsumeResetToken(ctx, found, "again"); err != domain.ErrResetTokenInvalid {
		t.Errorf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}
}
