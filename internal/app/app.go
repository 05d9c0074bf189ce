package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/streamify/server/internal/catalog"
	"github.com/streamify/server/internal/controller"
	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/metrics"
	"github.com/streamify/server/internal/repository/session/inmemory"
	"github.com/streamify/server/internal/service/feed"
	"github.com/streamify/server/internal/service/watch"
	"github.com/streamify/server/internal/view"
	"github.com/streamify/server/pkg/ctxlogger"
)

type AppConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	LogLevel        string        `json:"log_level"`
	CatalogPath     string        `json:"catalog_path"`
	TickInterval    time.Duration `json:"tick_interval"`
	PlaybackRates   []float64     `json:"playback_rates"`
	Qualities       []string      `json:"qualities"`
	DefaultVolume   float64       `json:"default_volume"`
	SearchPageSize  int           `json:"search_page_size"`
	CORSOrigins     []string      `json:"cors_origins"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be greater than 0")
	}
	for _, rate := range cfg.PlaybackRates {
		if rate <= 0 {
			return fmt.Errorf("playback rate %v must be greater than 0", rate)
		}
	}
	for _, quality := range cfg.Qualities {
		if strings.TrimSpace(quality) == "" {
			return fmt.Errorf("quality must not be empty")
		}
	}
	if cfg.DefaultVolume < 0 || cfg.DefaultVolume > 1 {
		return fmt.Errorf("default volume must be between 0 and 1")
	}
	if cfg.SearchPageSize < 1 {
		return fmt.Errorf("search page size must be greater than 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be greater than 0")
	}
	return nil
}

func parseLogLevel(level string) (slog.Level, error) {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return logLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return logLevel, nil
}

func (cfg *AppConfig) playerOptions() domain.PlayerOptions {
	return domain.PlayerOptions{
		Rates:     cfg.PlaybackRates,
		Qualities: cfg.Qualities,
		Volume:    cfg.DefaultVolume,
	}
}

// handler is the wired http handler together with the function that ends
// every live watch session.
type handler struct {
	http.Handler
	close func(context.Context)
}

func newHandler(cfg *AppConfig, clock clockwork.Clock, logger *slog.Logger) (*handler, error) {
	videos, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	m := metrics.New()
	sessionRepo := inmemory.NewRepo[*watch.Session]()
	watchService := watch.NewService(sessionRepo, videos, clock, m, watch.Config{
		TickInterval:  cfg.TickInterval,
		PlayerOptions: cfg.playerOptions(),
	})
	feedService := feed.NewService(videos, m, cfg.SearchPageSize)

	renderer, err := view.NewRenderer(clock)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	controller := controller.NewController(watchService, feedService, renderer, m, logger, controller.Config{
		CORSOrigins:   cfg.CORSOrigins,
		PlayerOptions: cfg.playerOptions(),
	})

	return &handler{
		Handler: controller.GetMux(),
		close:   watchService.Close,
	}, nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel, _ := parseLogLevel(cfg.LogLevel)
	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)
	slog.SetDefault(logger)

	handler, err := newHandler(cfg, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)
	defer serverStopCtx()

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: handler,
		// hijacked websocket connections outlive Shutdown, their sessions
		// end when this context is cancelled
		BaseContext: func(net.Listener) context.Context {
			return serverCtx
		},
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sig)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		select {
		case <-sig:
		case <-ctx.Done():
		}

		shutdownCtx, c := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.ErrorContext(shutdownCtx, "failed to shutdown server", "error", err)
		}
		serverStopCtx()
		handler.close(shutdownCtx)
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownDone
	logger.InfoContext(ctx, "server stopped")

	return nil
}
