package models

import "time"

// AlertLevel classifies a predicted value into a demand band.
type AlertLevel string

const (
	AlertHighDemand AlertLevel = "high_demand"
	AlertLowDemand  AlertLevel = "low_demand"
	AlertNormal     AlertLevel = "normal"
)

// Demand thresholds. Inclusive on the stated side: estimate >= high is
// HighDemand, estimate <= low is LowDemand.
const (
	HighDemandThreshold = 500.0
	LowDemandThreshold  = 100.0
)

// ClassifyDemand maps a predicted value to its alert band. Total over all
// real inputs.
func ClassifyDemand(estimate float64) AlertLevel {
	switch {
	case estimate >= HighDemandThreshold:
		return AlertHighDemand
	case estimate <= LowDemandThreshold:
		return AlertLowDemand
	default:
		return AlertNormal
	}
}

// EnginePoint is one day of raw engine output, before alert classification.
// Extra carries engine-specific columns (trend, seasonal components, ...)
// that pass through to the export.
type EnginePoint struct {
	Date     time.Time          `json:"date"`
	Estimate float64            `json:"estimate"`
	Lower    float64            `json:"lower"`
	Upper    float64            `json:"upper"`
	Extra    map[string]float64 `json:"extra,omitempty"`
}

// ForecastPoint is one day of the classified forecast, covering both the
// re-fit historical span and the future horizon.
type ForecastPoint struct {
	Date     time.Time          `json:"date"`
	Estimate float64            `json:"estimate"`
	Lower    float64            `json:"lower"`
	Upper    float64            `json:"upper"`
	Alert    AlertLevel         `json:"alert"`
	Extra    map[string]float64 `json:"extra,omitempty"`
}

// ChartPoint is one plotted day: the prediction with its band, plus the
// actual historical total when the overlay is enabled and the date has one.
type ChartPoint struct {
	Date     time.Time `json:"date"`
	Estimate float64   `json:"estimate"`
	Lower    float64   `json:"lower"`
	Upper    float64   `json:"upper"`
	Actual   *float64  `json:"actual,omitempty"`
}

// TableRow is one row of the alert table shown for the forecast horizon.
type TableRow struct {
	Date     time.Time  `json:"date"`
	Estimate float64    `json:"estimate"`
	Alert    AlertLevel `json:"alert"`
}

// ForecastStats summarizes a forecast run.
type ForecastStats struct {
	MeanEstimate float64 `json:"mean_estimate"`
	MinEstimate  float64 `json:"min_estimate"`
	MaxEstimate  float64 `json:"max_estimate"`
	HighDemand   int     `json:"high_demand_days"`
	LowDemand    int     `json:"low_demand_days"`
	Normal       int     `json:"normal_days"`
}

// ForecastResult is the complete outcome of one pipeline run.
type ForecastResult struct {
	Subcategory  string          `json:"subcategory"`
	HorizonDays  int             `json:"horizon_days"`
	GeneratedAt  time.Time       `json:"generated_at"`
	LastHistory  time.Time       `json:"last_history_date"`
	Points       []ForecastPoint `json:"points"`
	ExtraColumns []string        `json:"extra_columns,omitempty"`
	Chart        []ChartPoint    `json:"chart"`
	Table        []TableRow      `json:"table"`
	Stats        ForecastStats   `json:"stats"`
}

// RestockAlert is the event published when a future day is classified as
// high demand.
type RestockAlert struct {
	Subcategory string    `json:"subcategory"`
	Date        time.Time `json:"date"`
	Estimate    float64   `json:"estimate"`
	GeneratedAt time.Time `json:"generated_at"`
}
