package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Identity events
	UserRegistrationEvent     AuditEventType = "USER_REGISTERED"
	UserLoginEvent            AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent     AuditEventType = "USER_LOGIN_FAILED"
	EmailVerifiedEvent        AuditEventType = "EMAIL_VERIFIED"
	EmailVerifyFailureEvent   AuditEventType = "EMAIL_VERIFICATION_FAILED"
	PasswordResetRequestEvent AuditEventType = "PASSWORD_RESET_REQUESTED"
	PasswordResetEvent        AuditEventType = "PASSWORD_RESET"
	AdminPasswordResetEvent   AuditEventType = "ADMIN_PASSWORD_RESET"
	NotificationFailureEvent  AuditEventType = "NOTIFICATION_FAILED"

	// Record events
	PassportDeletedEvent    AuditEventType = "PASSPORT_DELETED"
	QuestionSetDeletedEvent AuditEventType = "QUESTION_SET_DELETED"
	SetAssignedEvent        AuditEventType = "QUESTION_SET_ASSIGNED"

	// Authorization events
	AccessDeniedEvent AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent) error
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
