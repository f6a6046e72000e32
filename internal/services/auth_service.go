package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/HariStrange/drive-Vault/domain"
)

// AuthConfig holds the identity lifetimes and throttle windows.
// VerifyAttempts caps code submissions per email while a code is live.
type AuthConfig struct {
	CodeTTL        time.Duration
	CodeLength     int
	ResetTokenTTL  time.Duration
	ResetWindow    time.Duration
	VerifyWindow   time.Duration
	VerifyAttempts int
	FrontendURL    string
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	verifyRepo      domain.VerificationRepository
	throttleRepo    domain.ThrottleRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	audit           domain.AuditLogger
	config          AuthConfig
	now             func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	verifyRepo domain.VerificationRepository,
	throttleRepo domain.ThrottleRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	audit domain.AuditLogger,
	config AuthConfig,
) domain.AuthService {
	if config.CodeLength <= 0 {
		config.CodeLength = 6
	}
	if config.VerifyAttempts <= 0 {
		config.VerifyAttempts = 5
	}
	return &AuthServiceImpl{
		userRepo:        userRepo,
		verifyRepo:      verifyRepo,
		throttleRepo:    throttleRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		audit:           audit,
		config:          config,
		now:             time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if !domain.IsSelfServiceRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	email := normalizeEmail(in.Email)

	// Check if user already exists
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hashedPassword,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A racing duplicate surfaces here as ErrUserAlreadyExists from the unique index
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	code, err := s.issueCode(ctx, user)
	if err != nil {
		return nil, err
	}
	s.sendCode(ctx, user, code)

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(user.Email).
		WithMetadata("role", user.Role))
	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// same bcrypt cost as a wrong password
			s.passwordSvc.Verify(s.unknownUserHash(), password)
			s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).WithEmail(email).WithError(domain.ErrInvalidCredentials))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	// Checked after the password so unverified accounts are not disclosed to guessers
	if !user.IsVerified {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).WithEmail(email).WithError(domain.ErrEmailNotVerified))
		return nil, domain.ErrEmailNotVerified
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(email))
	return &domain.AuthResult{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	if !s.withinAttempts(ctx, email) {
		s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerifyFailureEvent, 0).WithEmail(email).WithError(domain.ErrTooManyAttempts))
		return domain.ErrTooManyAttempts
	}

	record, err := s.verifyRepo.LatestCodeForEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerifyFailureEvent, 0).WithEmail(email).WithError(err))
			return err
		}
		return fmt.Errorf("failed to load verification code: %w", err)
	}

	if record.Expired(s.now()) {
		s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerifyFailureEvent, record.UserID).WithEmail(email).WithError(domain.ErrCodeExpired))
		return domain.ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(strings.TrimSpace(code))) != 1 {
		s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerifyFailureEvent, record.UserID).WithEmail(email).WithError(domain.ErrCodeInvalid))
		return domain.ErrCodeInvalid
	}

	if err := s.verifyRepo.ConsumeCode(ctx, record); err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			return err
		}
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	s.resetAttempts(ctx, email)

	s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerifiedEvent, record.UserID).WithEmail(email))
	return nil
}

// ResendVerification issues a fresh code to an unverified account.
// Unknown, verified and throttled emails succeed silently.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !s.allow(ctx, "verification:"+email, s.config.VerifyWindow) {
		return nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.IsVerified {
		return nil
	}

	code, err := s.issueCode(ctx, user)
	if err != nil {
		return err
	}
	s.sendCode(ctx, user, code)
	return nil
}

// RequestPasswordReset implements domain.AuthService. The outcome is the same
// whether or not the email belongs to an account.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !s.allow(ctx, "reset:"+email, s.config.ResetWindow) {
		return nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	raw, err := randomHex(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	now := s.now()
	token := &domain.PasswordResetToken{
		UserID:    user.ID,
		Token:     raw,
		ExpiresAt: now.Add(s.config.ResetTokenTTL),
		CreatedAt: now,
	}
	if err := s.verifyRepo.CreateResetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.config.FrontendURL, "/"), raw)
	body := fmt.Sprintf("Use the link below to reset your password. It expires in %d minutes.\n\n%s\n", int(s.config.ResetTokenTTL.Minutes()), link)
	if err := s.notificationSvc.SendEmail(ctx, user.Email, "Password reset", body); err != nil {
		s.notificationFailed(ctx, user, "email", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.PasswordResetRequestEvent, user.ID).WithEmail(user.Email))
	return nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	record, err := s.verifyRepo.FindResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			return err
		}
		return fmt.Errorf("failed to load reset token: %w", err)
	}
	if record.Expired(s.now()) {
		return domain.ErrResetTokenExpired
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.verifyRepo.ConsumeResetToken(ctx, record, hashedPassword); err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			return err
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, record.UserID))
	return nil
}

// AdminResetPassword implements domain.AuthService
func (s *AuthServiceImpl) AdminResetPassword(ctx context.Context, userID uint, newPassword string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return nil, err
	}
	user.PasswordHash = hashedPassword

	s.logEvent(ctx, domain.NewAuditEvent(domain.AdminPasswordResetEvent, user.ID).WithEmail(user.Email))
	return user, nil
}

func (s *AuthServiceImpl) issueCode(ctx context.Context, user *domain.User) (*domain.VerificationCode, error) {
	digits, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	now := s.now()
	code := &domain.VerificationCode{
		UserID:    user.ID,
		Code:      digits,
		ExpiresAt: now.Add(s.config.CodeTTL),
		CreatedAt: now,
	}
	if err := s.verifyRepo.CreateCode(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}
	s.resetAttempts(ctx, normalizeEmail(user.Email))
	return code, nil
}

// sendCode never fails the caller; delivery problems are only logged
func (s *AuthServiceImpl) sendCode(ctx context.Context, user *domain.User, code *domain.VerificationCode) {
	minutes := int(s.config.CodeTTL.Minutes())
	body := fmt.Sprintf("Your verification code is: %s\n\nIt expires in %d minutes.\n", code.Code, minutes)
	if err := s.notificationSvc.SendEmail(ctx, user.Email, "Verify your email", body); err != nil {
		s.notificationFailed(ctx, user, "email", err)
	}

	if user.Phone == "" {
		return
	}
	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code.Code, minutes)
	if err := s.notificationSvc.SendSMS(ctx, user.Phone, message); err != nil {
		s.notificationFailed(ctx, user, "sms", err)
	}
}

func (s *AuthServiceImpl) notificationFailed(ctx context.Context, user *domain.User, channel string, err error) {
	s.logEvent(ctx, domain.NewAuditEvent(domain.NotificationFailureEvent, user.ID).
		WithEmail(user.Email).
		WithMetadata("channel", channel).
		WithError(err))
}

// allow applies the throttle; a Redis outage lets the request through
func (s *AuthServiceImpl) allow(ctx context.Context, key string, window time.Duration) bool {
	if s.throttleRepo == nil || window <= 0 {
		return true
	}
	ok, wait, err := s.throttleRepo.Acquire(ctx, key, window)
	if err != nil {
		log.Printf("EVENT: throttle_unavailable key=%s error=%q", key, err)
		return true
	}
	if !ok {
		log.Printf("EVENT: throttled key=%s retry_in=%s", key, wait.Round(time.Second))
	}
	return ok
}

func attemptsKey(email string) string { return "verify-attempts:" + email }

// withinAttempts counts a code submission; a Redis outage lets it through
func (s *AuthServiceImpl) withinAttempts(ctx context.Context, email string) bool {
	if s.throttleRepo == nil {
		return true
	}
	n, err := s.throttleRepo.Count(ctx, attemptsKey(email), s.config.CodeTTL)
	if err != nil {
		log.Printf("EVENT: throttle_unavailable key=%s error=%q", attemptsKey(email), err)
		return true
	}
	return n <= int64(s.config.VerifyAttempts)
}

func (s *AuthServiceImpl) resetAttempts(ctx context.Context, email string) {
	if s.throttleRepo == nil {
		return
	}
	if err := s.throttleRepo.Reset(ctx, attemptsKey(email)); err != nil {
		log.Printf("EVENT: throttle_unavailable key=%s error=%q", attemptsKey(email), err)
	}
}

// unknownUserHash is a hash of a random secret, checked on logins for
// unknown emails
func (s *AuthServiceImpl) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		secret, err := randomHex(16)
		if err != nil {
			secret = "unknown-user"
		}
		if hash, err := s.passwordSvc.Hash(secret); err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func (s *AuthServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogEvent(ctx, event); err != nil {
		log.Printf("EVENT: audit_failed type=%s error=%q", event.EventType, err)
	}
}

// generateSecureCode generates a cryptographically secure numeric code
func (s *AuthServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.CodeLength)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
