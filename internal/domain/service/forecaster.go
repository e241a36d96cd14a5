package service

import (
	"context"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
)

// ForecastEngine is the external statistical forecasting capability. Given a
// daily series it returns one point per calendar day covering the historical
// span plus horizonDays future days, each with a point estimate and
// lower/upper uncertainty bounds. The engine's internal model is opaque; the
// pipeline only enforces the output contract.
type ForecastEngine interface {
	Forecast(ctx context.Context, series models.DailySeries, horizonDays int) ([]models.EnginePoint, error)
}
