package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/SscSPs/bank_demo_app/internal/adapters/companyregistry"
	"github.com/SscSPs/bank_demo_app/internal/adapters/memory"
	"github.com/SscSPs/bank_demo_app/internal/adapters/notification"
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_demo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_demo_app/internal/core/ports/services"
	"github.com/SscSPs/bank_demo_app/internal/core/services"
	"github.com/SscSPs/bank_demo_app/internal/handlers"
	"github.com/SscSPs/bank_demo_app/internal/middleware"
	"github.com/SscSPs/bank_demo_app/internal/platform/config"
	"github.com/SscSPs/bank_demo_app/internal/platform/metrics"
	"github.com/SscSPs/bank_demo_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logger := newLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	// Balances and history are rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	m := metrics.New(prometheus.DefaultRegisterer)

	notifier, closeNotifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeNotifier.Close(); cerr != nil {
			logger.Error("Error closing notifier", slog.String("error", cerr.Error()))
		}
	}()

	container := buildServices(cfg, buildVerifier(cfg, m), notifier, m)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	r, err := newRouter(cfg, logger, container, m, posthogClient)
	if err != nil {
		return err
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("registry_mode", cfg.RegistryMode))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}

func buildVerifier(cfg *config.Config, m *metrics.Metrics) domain.CompanyVerifier {
	if cfg.RegistryMode == config.RegistryModeStatic {
		return companyregistry.Static{Active: true}
	}
	return companyregistry.NewClient(cfg.RegistryBaseURL, cfg.RegistryTimeout, companyregistry.WithMetrics(m))
}

// buildNotifier returns the history email sender and whatever must be closed
// on shutdown.
func buildNotifier(cfg *config.Config, logger *slog.Logger) (domain.Notifier, io.Closer, error) {
	if cfg.NotificationAMQPURL != "" {
		sender, err := notification.NewAMQPSender(cfg.NotificationAMQPURL, cfg.NotificationExchange)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect notification broker: %w", err)
		}
		logger.Info("History emails published to broker", slog.String("exchange", cfg.NotificationExchange))
		return sender, sender, nil
	}
	if !cfg.IsProduction {
		return notification.LogSender{}, nopCloser{}, nil
	}
	return notification.StubSender{}, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func buildServices(cfg *config.Config, verifier domain.CompanyVerifier, notifier domain.Notifier, m *metrics.Metrics) *portssvc.ServiceContainer {
	repos := portsrepo.RepositoryProvider{
		PersonalAccounts: memory.NewAccountRegistry[*domain.Account](),
		BusinessAccounts: memory.NewAccountRegistry[*domain.BusinessAccount](),
	}
	return services.NewServiceContainer(repos, services.Dependencies{
		Verifier: verifier,
		Options: []services.ServiceOption{
			services.WithNotifier(notifier),
			services.WithMetrics(m),
		},
	})
}

func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	container *portssvc.ServiceContainer,
	m *metrics.Metrics,
	tracker middleware.EventTracker,
) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	limiterInstance, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	r := gin.New()

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		middleware.MetricsMiddleware(m),
		middleware.RateLimit(limiterInstance),
		middleware.PosthogMiddleware(tracker),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}

// checkCompany runs a single registry lookup outside of the HTTP server.
func checkCompany(ctx context.Context, cfg *config.Config, w io.Writer, taxNumber string) error {
	if !domain.NewBusinessIdentity(taxNumber).IsValid() {
		return fmt.Errorf("%q is not a 10 character tax number", taxNumber)
	}
	client := companyregistry.NewClient(cfg.RegistryBaseURL, cfg.RegistryTimeout)
	subject, err := client.Lookup(ctx, taxNumber, time.Now())
	if err != nil {
		return err
	}
	if subject == nil {
		_, err = fmt.Fprintf(w, "%s: not registered\n", taxNumber)
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s (status %s, active %t)\n", taxNumber, subject.Name, subject.StatusVat, subject.IsActive())
	return err
}
