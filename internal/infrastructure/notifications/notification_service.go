package notifications

import (
	"context"
	"errors"

	"github.com/HariStrange/drive-Vault/domain"
)

// EmailSender sends e-mail
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender sends text messages
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// ErrChannelDisabled is returned when a channel has no sender
var ErrChannelDisabled = errors.New("notification channel disabled")

// NotificationServiceImpl implements domain.NotificationService over one sender per channel
type NotificationServiceImpl struct {
	email EmailSender
	sms   SMSSender
}

// NewNotificationService creates a notification service. Either sender may be nil.
func NewNotificationService(email EmailSender, sms SMSSender) domain.NotificationService {
	return &NotificationServiceImpl{email: email, sms: sms}
}

// SendEmail implements domain.NotificationService
func (n *NotificationServiceImpl) SendEmail(ctx context.Context, to, subject, body string) error {
	if n.email == nil {
		return ErrChannelDisabled
	}
	return n.email.SendEmail(ctx, to, subject, body)
}

// SendSMS implements domain.NotificationService
func (n *NotificationServiceImpl) SendSMS(ctx context.Context, to, message string) error {
	if n.sms == nil {
		return ErrChannelDisabled
	}
	return n.sms.SendSMS(ctx, to, message)
}
