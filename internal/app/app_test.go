package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *AppConfig {
	return &AppConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		LogLevel:        "debug",
		TickInterval:    time.Second,
		PlaybackRates:   []float64{0.5, 1, 2},
		Qualities:       []string{"Auto", "720p"},
		DefaultVolume:   0.75,
		SearchPageSize:  12,
		ShutdownTimeout: 5 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		modify func(cfg *AppConfig)
	}{
		{"port", func(cfg *AppConfig) { cfg.Port = 0 }},
		{"log level", func(cfg *AppConfig) { cfg.LogLevel = "loud" }},
		{"tick interval", func(cfg *AppConfig) { cfg.TickInterval = 0 }},
		{"playback rate", func(cfg *AppConfig) { cfg.PlaybackRates = []float64{1, -2} }},
		{"quality", func(cfg *AppConfig) { cfg.Qualities = []string{" "} }},
		{"volume", func(cfg *AppConfig) { cfg.DefaultVolume = 1.5 }},
		{"page size", func(cfg *AppConfig) { cfg.SearchPageSize = 0 }},
		{"shutdown timeout", func(cfg *AppConfig) { cfg.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, err := newHandler(validConfig(), clockwork.NewFakeClock(), logger)
	require.NoError(t, err)
	defer h.close(context.Background())

	srv := httptest.NewServer(h)
	defer srv.Close()

	for _, path := range []string{"/", "/search?q=pasta", "/dashboard", "/watch?v=nz-drone", "/api/v1/healthz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestNewHandlerCatalogPath(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := validConfig()
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := newHandler(cfg, clockwork.NewFakeClock(), logger)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
videos:
  - id: only
    title: Only Video
    channel_name: Solo
    view_count: 1
    duration: "00:10"
feed: [only]
`), 0o600))

	cfg.CatalogPath = path
	h, err := newHandler(cfg, clockwork.NewFakeClock(), logger)
	require.NoError(t, err)
	defer h.close(context.Background())

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/videos/only")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
