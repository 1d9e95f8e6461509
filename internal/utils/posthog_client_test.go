package utils

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializePosthogClient_EmptyKey(t *testing.T) {
	w := InitializePosthogClient("", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() {
		w.Enqueue("127.0.0.1", "api_accounts", map[string]any{"method": "POST"})
		w.Close()
	})
}

func TestPosthogClientWrapper_NilSafe(t *testing.T) {
	var w *PosthogClientWrapper

	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() {
		w.Enqueue("127.0.0.1", "api_accounts", nil)
		w.Close()
	})
}
