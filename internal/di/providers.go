package di

import (
	"fmt"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/repository"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/service"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/handler/api"
	internalrepo "github.com/shashankreddy3k/inventory-forecast-app/internal/repository"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/services/forecast"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/usecase"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/config"
	xhttp "github.com/shashankreddy3k/inventory-forecast-app/pkg/http"
	pkgkafka "github.com/shashankreddy3k/inventory-forecast-app/pkg/kafka"
	applogger "github.com/shashankreddy3k/inventory-forecast-app/pkg/logger"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/metrics"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSessionStore creates the configured session backend.
func ProvideSessionStore(cfg *config.Config) (repository.SessionStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		store, err := internalrepo.NewRedisSessionStore(
			cfg.Session.Redis.Addr,
			cfg.Session.Redis.Password,
			cfg.Session.Redis.DB,
			cfg.Session.TTL,
		)
		if err != nil {
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, nil
	default:
		return internalrepo.NewMemorySessionStore(cfg.Session.TTL, 0), nil
	}
}

// ProvideAlertPublisher creates the Kafka alert publisher, or a noop one
// when alerting is disabled.
func ProvideAlertPublisher(cfg *config.Config) (repository.AlertPublisher, error) {
	if !cfg.Alerts.Enabled {
		return internalrepo.NoopAlertPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Alerts.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Alerts.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Alerts.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Alerts.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Alerts.Kafka.Topic), nil
}

// ProvideForecastEngine creates the external engine client.
func ProvideForecastEngine(cfg *config.Config) service.ForecastEngine {
	return forecast.NewHTTPEngine(cfg)
}

// ProvideForecastRunner creates the pipeline use case.
func ProvideForecastRunner(
	store repository.SessionStore,
	engine service.ForecastEngine,
	alerts repository.AlertPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.ForecastRunner {
	return usecase.NewForecastRunner(store, engine, alerts, m, logger)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(
	logger *applogger.Logger,
	store repository.SessionStore,
	runner *usecase.ForecastRunner,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewForecastHandler(logger, store, runner, cfg.Ingest.MaxUploadBytes)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	store repository.SessionStore,
	alerts repository.AlertPublisher,
) *server.App {
	return server.New(cfg, logger, handler, store, alerts)
}
