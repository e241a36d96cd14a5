//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/shashankreddy3k/inventory-forecast-app/pkg/config"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideSessionStore,
		ProvideAlertPublisher,
		ProvideForecastEngine,

		// Use cases
		ProvideForecastRunner,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
