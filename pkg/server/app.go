package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "github.com/shashankreddy3k/inventory-forecast-app/internal/domain/repository"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/config"
	xhttp "github.com/shashankreddy3k/inventory-forecast-app/pkg/http"
	applogger "github.com/shashankreddy3k/inventory-forecast-app/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server plus the
// session store and alert publisher it must close on shutdown.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	store      drepo.SessionStore
	alerts     drepo.AlertPublisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	store drepo.SessionStore,
	alerts drepo.AlertPublisher,
) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		store:   store,
		alerts:  alerts,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(a.logger),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("application started",
		applogger.String("environment", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("session_backend", a.cfg.Session.Backend),
		applogger.Bool("alerts_enabled", a.cfg.Alerts.Enabled),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the server and closes infrastructure clients.
func (a *App) shutdown() error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warn("session store close error", applogger.Error(err))
	}
	if err := a.alerts.Close(); err != nil {
		a.logger.Warn("alert publisher close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
