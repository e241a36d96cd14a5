package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	drepo "github.com/shashankreddy3k/inventory-forecast-app/internal/domain/repository"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/service"
	applogger "github.com/shashankreddy3k/inventory-forecast-app/pkg/logger"
)

// ErrUnknownSubcategory is returned when the requested sub-category does not
// exist in the session dataset.
var ErrUnknownSubcategory = errors.New("unknown sub-category")

// ForecastRunner runs the full pipeline for one request: load the session
// dataset, aggregate the sub-category series, call the engine, classify and
// assemble the presentation, and publish restock alerts.
type ForecastRunner struct {
	store   drepo.SessionStore
	engine  service.ForecastEngine
	alerts  drepo.AlertPublisher
	metrics drepo.Metrics
	log     *applogger.Logger
}

// NewForecastRunner creates a new ForecastRunner instance.
func NewForecastRunner(
	store drepo.SessionStore,
	engine service.ForecastEngine,
	alerts drepo.AlertPublisher,
	metrics drepo.Metrics,
	log *applogger.Logger,
) *ForecastRunner {
	return &ForecastRunner{
		store:   store,
		engine:  engine,
		alerts:  alerts,
		metrics: metrics,
		log:     log,
	}
}

// Run executes one forecast for the given session and request. Every run
// recomputes from the stored dataset; nothing is cached between runs.
func (r *ForecastRunner) Run(ctx context.Context, sessionID string, req *models.ForecastRequest) (*models.ForecastResult, error) {
	start := time.Now()

	ds, err := r.store.Get(ctx, sessionID)
	if err != nil {
		r.metrics.RecordError("session_lookup")
		return nil, err
	}

	if !containsString(ds.Subcategories, req.Subcategory) {
		r.metrics.RecordError("unknown_subcategory")
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubcategory, req.Subcategory)
	}

	series, err := BuildDailySeries(ds, req.Subcategory)
	if err != nil {
		r.metrics.RecordError("insufficient_data")
		r.metrics.RecordRun(req.Subcategory, "rejected")
		return nil, err
	}

	engineStart := time.Now()
	raw, err := r.engine.Forecast(ctx, series, req.Horizon)
	r.metrics.RecordLatency("engine", time.Since(engineStart).Seconds())
	if err != nil {
		r.metrics.RecordError("engine")
		r.metrics.RecordRun(req.Subcategory, "failed")
		var engineErr *models.ForecastEngineError
		if errors.As(err, &engineErr) {
			return nil, err
		}
		return nil, &models.ForecastEngineError{Reason: "forecast call failed", Err: err}
	}

	if err := validateEngineOutput(series, req.Horizon, raw); err != nil {
		r.metrics.RecordError("engine_contract")
		r.metrics.RecordRun(req.Subcategory, "failed")
		return nil, err
	}

	points := Classify(raw)
	lastHistory := series.End()

	result := &models.ForecastResult{
		Subcategory:  req.Subcategory,
		HorizonDays:  req.Horizon,
		GeneratedAt:  time.Now().UTC(),
		LastHistory:  lastHistory,
		Points:       points,
		ExtraColumns: ExtraColumns(points),
		Chart:        BuildChart(points, series, lastHistory, req.FutureOnly, req.WithHistory()),
		Table:        TailTable(points, req.Horizon),
		Stats:        BuildStats(points, req.Horizon),
	}

	r.publishAlerts(ctx, result)

	r.metrics.RecordRun(req.Subcategory, "success")
	r.metrics.RecordPointsProduced(len(points))
	r.metrics.RecordLatency("run", time.Since(start).Seconds())

	r.log.Info("forecast run complete",
		applogger.String("subcategory", req.Subcategory),
		applogger.Int("horizon_days", req.Horizon),
		applogger.Int("points", len(points)),
		applogger.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// publishAlerts emits a restock alert for every future high-demand day.
// Publish failures are logged and never fail the run.
func (r *ForecastRunner) publishAlerts(ctx context.Context, result *models.ForecastResult) {
	var alerts []models.RestockAlert
	for _, p := range result.Points {
		if !p.Date.After(result.LastHistory) || p.Alert != models.AlertHighDemand {
			continue
		}
		alerts = append(alerts, models.RestockAlert{
			Subcategory: result.Subcategory,
			Date:        p.Date,
			Estimate:    p.Estimate,
			GeneratedAt: result.GeneratedAt,
		})
	}
	if len(alerts) == 0 {
		return
	}

	if err := r.alerts.Publish(ctx, alerts); err != nil {
		r.metrics.RecordError("alert_publish")
		r.log.Warn("restock alert publish failed",
			applogger.String("subcategory", result.Subcategory),
			applogger.Int("alerts", len(alerts)),
			applogger.Error(err),
		)
	}
}

// validateEngineOutput enforces the engine contract: output length equals
// history length plus horizonDays, dates run one per calendar day from the
// series' first date, and bounds are ordered around the estimate everywhere.
func validateEngineOutput(series models.DailySeries, horizonDays int, points []models.EnginePoint) error {
	wantLen := len(series.Points) + horizonDays
	if len(points) != wantLen {
		return &models.ForecastEngineError{
			Reason: fmt.Sprintf("expected %d points (%d history + %d horizon), got %d",
				wantLen, len(series.Points), horizonDays, len(points)),
		}
	}

	next := series.Start()
	for i, p := range points {
		if !p.Date.Equal(next) {
			return &models.ForecastEngineError{
				Reason: fmt.Sprintf("point %d: expected date %s, got %s",
					i, next.Format("2006-01-02"), p.Date.Format("2006-01-02")),
			}
		}
		next = next.AddDate(0, 0, 1)
	}

	for i, p := range points {
		if p.Lower > p.Estimate || p.Estimate > p.Upper {
			return &models.ForecastEngineError{
				Reason: fmt.Sprintf("point %d: bounds out of order (lower=%g estimate=%g upper=%g)",
					i, p.Lower, p.Estimate, p.Upper),
			}
		}
	}

	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
