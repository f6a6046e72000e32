package config

import (
	"testing"
	"time"

	"github.com/HariStrange/drive-Vault/internal/config"
)

// TestJWTSecret signs every token issued by test servers
const TestJWTSecret = "e2e-test-secret"

// NewTestConfig returns a config for in-process servers backed by SQLite and
// miniredis. Uploads go to a per-test temporary directory.
func NewTestConfig(t *testing.T, redisAddr string) *config.Config {
	t.Helper()

	return &config.Config{
		Port:           "0",
		GinMode:        "test",
		FrontendURL:    "http://localhost:3000",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		DSN:            "file::memory:",
		RedisAddr:      redisAddr,
		JWTSecret:      TestJWTSecret,
		JWTIssuer:      "recruitsvc-test",
		AccessTTL:      time.Hour,
		CodeTTL:        15 * time.Minute,
		CodeLength:     6,
		ResetTokenTTL:  time.Hour,
		ResetWindow:    time.Minute,
		VerifyWindow:   time.Minute,
		UploadRoot:     t.TempDir(),
		UploadMaxBytes: 3 << 20,
	}
}
