// Package notification delivers account history emails.
package notification

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	"github.com/SscSPs/bank_demo_app/internal/middleware"
)

// StubSender stands in for the mail gateway until one is available. It never delivers.
type StubSender struct{}

var _ domain.Notifier = StubSender{}

func (StubSender) Send(context.Context, string, string, string) (bool, error) {
	return false, nil
}

// LogSender writes each message to the request logger and reports it as sent.
type LogSender struct{}

var _ domain.Notifier = LogSender{}

func (LogSender) Send(ctx context.Context, subject, text, address string) (bool, error) {
	middleware.LoggerOrDefault(ctx).Info("History email",
		slog.String("to", address),
		slog.String("subject", subject),
		slog.String("text", text))
	return true, nil
}
