// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/billmock/adapters/clock"
	billhttp "github.com/artpar/billmock/adapters/http"
	"github.com/artpar/billmock/adapters/memory"
	"github.com/artpar/billmock/adapters/metrics"
	"github.com/artpar/billmock/app"
	"github.com/artpar/billmock/config"
	"github.com/artpar/billmock/domain/ratelimit"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	service *app.Service
	limiter *memory.SlidingWindowLimiter
	holder  *config.Holder
}

// New creates and initializes the application from a loaded config.
func New(cfg *config.Config) (*App, error) {
	return build(cfg, nil)
}

// NewWithHotReload creates the application and watches the config file
// for changes (plus SIGHUP). Reloadable fields take effect without a
// restart; the rest need one.
func NewWithHotReload(path string) (*App, error) {
	logger := setupLogger(config.LoggingConfig{
		Level:  os.Getenv("BILLMOCK_LOG_LEVEL"),
		Format: os.Getenv("BILLMOCK_LOG_FORMAT"),
	})

	holder, err := config.NewHolder(path, logger)
	if err != nil {
		return nil, err
	}

	a, err := build(holder.Get(), holder)
	if err != nil {
		holder.Stop()
		return nil, err
	}

	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch unavailable")
	}
	holder.WatchSignals()

	return a, nil
}

func build(cfg *config.Config, holder *config.Holder) (*App, error) {
	logger := setupLogger(cfg.Logging)

	logger.Info().Msg("initializing billing mock")

	a := &App{
		Logger: logger,
		Config: cfg,
		holder: holder,
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	clk := clock.Real{}
	a.limiter = memory.NewSlidingWindowLimiter(ratelimit.Config{
		Limit:  cfg.RateLimit.MaxRequests,
		Window: cfg.RateLimit.Window(),
	}, clk)

	service, err := app.New(app.Deps{
		Username: cfg.Auth.Username,
		Password: cfg.Auth.Password,
		Sentinel: cfg.Fixtures.InvalidContractID,
		Limiter:  a.limiter,
		Clock:    clk,
		Fixtures: cfg.Fixtures,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init pipeline: %w", err)
	}
	a.service = service

	var handler *billhttp.Handler
	if a.Metrics != nil {
		handler = billhttp.NewHandlerWithMetrics(service, logger, a.Metrics)
	} else {
		handler = billhttp.NewHandler(service, logger)
	}

	router := billhttp.NewRouterWithConfig(handler, logger, billhttp.RouterConfig{
		Metrics:        a.Metrics,
		MetricsPath:    cfg.Metrics.Path,
		EnableOpenAPI:  cfg.OpenAPI.Enabled,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	a.HTTPServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if holder != nil {
		holder.OnChange(a.applyReload)
	}

	return a, nil
}

// applyReload pushes a reloaded config into the running components:
// credentials and fixtures into the pipeline, window parameters into the
// limiter, the level into the global log filter. Listen address and
// feature toggles still need a restart.
func (a *App) applyReload(cfg *config.Config) {
	err := a.service.Reconfigure(app.Deps{
		Username: cfg.Auth.Username,
		Password: cfg.Auth.Password,
		Sentinel: cfg.Fixtures.InvalidContractID,
		Fixtures: cfg.Fixtures,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("config reload not applied")
		if a.Metrics != nil {
			a.Metrics.ConfigReloadErrors.Inc()
		}
		return
	}

	a.limiter.SetConfig(ratelimit.Config{
		Limit:  cfg.RateLimit.MaxRequests,
		Window: cfg.RateLimit.Window(),
	})

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if a.Metrics != nil {
		a.Metrics.ConfigReloads.Inc()
	}
	a.Config = cfg
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.holder != nil {
		a.holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("rate limiter close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	levelStr := cfg.Level
	if levelStr == "" {
		levelStr = "info"
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
