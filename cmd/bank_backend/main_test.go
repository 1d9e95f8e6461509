package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bank_demo_app/internal/adapters/companyregistry"
	"github.com/SscSPs/bank_demo_app/internal/adapters/notification"
	"github.com/SscSPs/bank_demo_app/internal/platform/config"
	"github.com/SscSPs/bank_demo_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discardLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseLogLevel(raw), raw)
	}
}

func TestCorsConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)

	some := corsConfig([]string{"https://bank.example"})
	assert.False(t, some.AllowAllOrigins)
	assert.Equal(t, []string{"https://bank.example"}, some.AllowOrigins)
}

func TestBuildNotifier(t *testing.T) {
	n, closer, err := buildNotifier(&config.Config{}, discardLogger)
	require.NoError(t, err)
	assert.IsType(t, notification.LogSender{}, n)
	assert.NoError(t, closer.Close())

	n, _, err = buildNotifier(&config.Config{IsProduction: true}, discardLogger)
	require.NoError(t, err)
	assert.IsType(t, notification.StubSender{}, n)
}

func TestBuildVerifier(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	assert.IsType(t, companyregistry.Static{}, buildVerifier(&config.Config{RegistryMode: config.RegistryModeStatic}, m))
	assert.IsType(t, &companyregistry.Client{}, buildVerifier(&config.Config{RegistryMode: config.RegistryModeHTTP}, m))
}

func TestNewRouter(t *testing.T) {
	cfg := &config.Config{RateLimit: "100-M", RegistryMode: config.RegistryModeStatic, IsProduction: true}
	m := metrics.New(prometheus.NewRegistry())
	container := buildServices(cfg, buildVerifier(cfg, m), notification.StubSender{}, m)

	r, err := newRouter(cfg, discardLogger, container, m, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/accounts/count", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewRouter_BadRateLimit(t *testing.T) {
	cfg := &config.Config{RateLimit: "lots"}
	m := metrics.New(prometheus.NewRegistry())

	_, err := newRouter(cfg, discardLogger, buildServices(cfg, companyregistry.Static{}, notification.StubSender{}, m), m, nil)

	assert.Error(t, err)
}

func TestCheckCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/nip/8461627563", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"subject":{"name":"Firma","nip":"8461627563","statusVat":"Czynny"}}}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := checkCompany(context.Background(), &config.Config{RegistryBaseURL: srv.URL, RegistryTimeout: time.Second}, &out, "8461627563")

	require.NoError(t, err)
	assert.Equal(t, "8461627563: Firma (status Czynny, active true)\n", out.String())
}

func TestCheckCompany_InvalidTaxNumber(t *testing.T) {
	err := checkCompany(context.Background(), &config.Config{}, io.Discard, "123")
	assert.Error(t, err)
}

func TestRootCommand_RequiresArgument(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"check-company"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.Error(t, cmd.Execute())
}
