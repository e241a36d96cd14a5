package models

import "time"

// SalesRecord is one validated row of an uploaded sales file.
type SalesRecord struct {
	OrderDate   time.Time `json:"order_date"`
	Sales       float64   `json:"sales"`
	Subcategory string    `json:"subcategory"`
}

// Dataset holds the validated rows of one upload for the lifetime of a session.
// It is immutable once stored; every forecast run recomputes from it.
type Dataset struct {
	FileName      string        `json:"file_name"`
	UploadedAt    time.Time     `json:"uploaded_at"`
	Records       []SalesRecord `json:"records"`
	Subcategories []string      `json:"subcategories"`
	FirstDate     time.Time     `json:"first_date"`
	LastDate      time.Time     `json:"last_date"`
}

// SeriesPoint is one day of aggregated sales.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Sales float64   `json:"sales"`
}

// DailySeries is the per-day sales total for one sub-category, dates strictly
// increasing with no duplicates.
type DailySeries struct {
	Subcategory string        `json:"subcategory"`
	Points      []SeriesPoint `json:"points"`
}

// Start returns the first date of the series.
func (s DailySeries) Start() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[0].Date
}

// End returns the last date of the series.
func (s DailySeries) End() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

// MinSeriesPoints is the minimum number of distinct daily points required
// before a series is eligible for forecasting.
const MinSeriesPoints = 30
