package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Registry modes select the company verifier implementation.
const (
	RegistryModeHTTP   = "http"
	RegistryModeStatic = "static"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// External company registry
	RegistryBaseURL string
	RegistryTimeout time.Duration
	RegistryMode    string

	// Notification delivery
	NotificationAMQPURL  string `mapstructure:"NOTIFICATION_AMQP_URL"`
	NotificationExchange string `mapstructure:"NOTIFICATION_EXCHANGE"`

	// HTTP edge
	RateLimit          string
	CORSAllowedOrigins []string

	// Analytics
	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

const (
	defaultPort            = "8080"
	defaultRegistryBaseURL = "https://wl-api.mf.gov.pl"
	defaultRegistryTimeout = 5 * time.Second
	maxRegistryTimeout     = 30 * time.Second
	defaultRateLimit       = "300-M"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REGISTRY_BASE_URL", defaultRegistryBaseURL)
	v.SetDefault("REGISTRY_TIMEOUT", defaultRegistryTimeout.String())
	v.SetDefault("REGISTRY_MODE", RegistryModeHTTP)
	v.SetDefault("NOTIFICATION_AMQP_URL", "")
	v.SetDefault("NOTIFICATION_EXCHANGE", "notifications")
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")

	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.LogLevel = strings.ToLower(v.GetString("LOG_LEVEL"))

	cfg.RegistryBaseURL = strings.TrimRight(v.GetString("REGISTRY_BASE_URL"), "/")
	if cfg.RegistryBaseURL == "" {
		cfg.RegistryBaseURL = defaultRegistryBaseURL
	}

	// The registry check blocks account creation, so its timeout stays bounded.
	timeoutStr := v.GetString("REGISTRY_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = defaultRegistryTimeout
		log.Printf("Warning: Invalid value for REGISTRY_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
	}
	if timeout > maxRegistryTimeout {
		log.Printf("Warning: REGISTRY_TIMEOUT %s exceeds %s. Capping.\n", timeout.String(), maxRegistryTimeout.String())
		timeout = maxRegistryTimeout
	}
	cfg.RegistryTimeout = timeout

	cfg.RegistryMode = strings.ToLower(v.GetString("REGISTRY_MODE"))
	if cfg.RegistryMode != RegistryModeHTTP && cfg.RegistryMode != RegistryModeStatic {
		log.Printf("Warning: Unknown REGISTRY_MODE ('%s'). Defaulting to %s.\n", cfg.RegistryMode, RegistryModeHTTP)
		cfg.RegistryMode = RegistryModeHTTP
	}

	cfg.NotificationAMQPURL = v.GetString("NOTIFICATION_AMQP_URL")
	cfg.NotificationExchange = v.GetString("NOTIFICATION_EXCHANGE")
	if cfg.NotificationAMQPURL == "" {
		log.Println("Warning: NOTIFICATION_AMQP_URL not set. History emails will not be delivered.")
	}

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")

	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
