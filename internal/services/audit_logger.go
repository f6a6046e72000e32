package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/HariStrange/drive-Vault/domain"
)

// LogAuditLogger writes audit events to the standard logger
type LogAuditLogger struct {
	logger *log.Logger
}

// NewLogAuditLogger creates an audit logger; a nil logger uses log.Default()
func NewLogAuditLogger(logger *log.Logger) domain.AuditLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &LogAuditLogger{logger: logger}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	var b strings.Builder
	fmt.Fprintf(&b, "EVENT: type=%s user_id=%d success=%t", event.EventType, event.UserID, event.Success)
	if event.Email != "" {
		fmt.Fprintf(&b, " email=%s", event.Email)
	}

	keys := make([]string, 0, len(event.Metadata))
	for k := range event.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, event.Metadata[k])
	}

	if event.ErrorMsg != "" {
		fmt.Fprintf(&b, " error=%q", event.ErrorMsg)
	}
	l.logger.Print(b.String())
	return nil
}
