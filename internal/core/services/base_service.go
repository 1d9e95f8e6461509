package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	"github.com/SscSPs/bank_demo_app/internal/middleware"
	"github.com/SscSPs/bank_demo_app/internal/platform/metrics"
)

// Account kinds used as metric labels.
const (
	kindPersonal = "personal"
	kindBusiness = "business"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock    domain.Clock
	Notifier domain.Notifier
	Metrics  *metrics.Metrics
}

// ServiceOption is a functional option for configuring account services
type ServiceOption func(*BaseService)

// WithClock sets the clock used for age checks, registry dates and email subjects
func WithClock(c domain.Clock) ServiceOption {
	return func(s *BaseService) {
		s.Clock = c
	}
}

// WithNotifier sets the sender used for history emails
func WithNotifier(n domain.Notifier) ServiceOption {
	return func(s *BaseService) {
		s.Notifier = n
	}
}

// WithMetrics enables Prometheus recording
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{Clock: domain.SystemClock{}}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs an expected failure, such as a rejected request
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// logLookupFailure logs expected client errors at warn level and everything else as an error.
func (s *BaseService) logLookupFailure(ctx context.Context, err error, msg, id string, keyvals ...any) {
	args := append([]any{slog.String("id", id)}, keyvals...)
	if errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrInsufficientFunds) {
		s.LogWarn(ctx, err, msg, args...)
		return
	}
	s.LogError(ctx, err, msg, args...)
}
