package tenancy

import (
	"context"

	"go.uber.org/zap"
)

// Email is an outbound message to a tenant
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers emails to tenants
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// LogMailer logs outbound emails instead of delivering them.
// It is the default when no SMTP relay is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// Send logs the email and reports success
func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.logger.Info("Outbound email",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.Int("body_bytes", len(email.Body)),
	)
	return nil
}
