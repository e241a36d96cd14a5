package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/util"
)

// Classify attaches a demand alert to every engine point.
func Classify(points []models.EnginePoint) []models.ForecastPoint {
	out := make([]models.ForecastPoint, 0, len(points))
	for _, p := range points {
		out = append(out, models.ForecastPoint{
			Date:     p.Date,
			Estimate: p.Estimate,
			Lower:    p.Lower,
			Upper:    p.Upper,
			Alert:    models.ClassifyDemand(p.Estimate),
			Extra:    p.Extra,
		})
	}
	return out
}

// ExtraColumns returns the sorted union of extra column names across points.
func ExtraColumns(points []models.ForecastPoint) []string {
	seen := make(map[string]struct{})
	for _, p := range points {
		for k := range p.Extra {
			seen[k] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// BuildChart assembles the plotted series. With futureOnly, only dates after
// lastHistory are kept. With withActuals, historical days that have a real
// daily total get it attached for the overlay.
func BuildChart(points []models.ForecastPoint, series models.DailySeries, lastHistory time.Time, futureOnly, withActuals bool) []models.ChartPoint {
	var actuals map[time.Time]float64
	if withActuals {
		actuals = make(map[time.Time]float64, len(series.Points))
		for _, p := range series.Points {
			actuals[p.Date] = p.Sales
		}
	}

	chart := make([]models.ChartPoint, 0, len(points))
	for _, p := range points {
		if futureOnly && !p.Date.After(lastHistory) {
			continue
		}
		cp := models.ChartPoint{
			Date:     p.Date,
			Estimate: p.Estimate,
			Lower:    p.Lower,
			Upper:    p.Upper,
		}
		if actuals != nil {
			if a, ok := actuals[p.Date]; ok {
				v := a
				cp.Actual = &v
			}
		}
		chart = append(chart, cp)
	}
	return chart
}

// TailTable returns the alert table for the forecast horizon: the last
// horizonDays classified points.
func TailTable(points []models.ForecastPoint, horizonDays int) []models.TableRow {
	start := len(points) - horizonDays
	if start < 0 {
		start = 0
	}
	rows := make([]models.TableRow, 0, len(points)-start)
	for _, p := range points[start:] {
		rows = append(rows, models.TableRow{
			Date:     p.Date,
			Estimate: p.Estimate,
			Alert:    p.Alert,
		})
	}
	return rows
}

// BuildStats summarizes the horizon rows of a classified forecast.
func BuildStats(points []models.ForecastPoint, horizonDays int) models.ForecastStats {
	start := len(points) - horizonDays
	if start < 0 {
		start = 0
	}
	horizon := points[start:]
	if len(horizon) == 0 {
		return models.ForecastStats{}
	}

	stats := models.ForecastStats{
		MinEstimate: horizon[0].Estimate,
		MaxEstimate: horizon[0].Estimate,
	}
	var sum float64
	for _, p := range horizon {
		sum += p.Estimate
		if p.Estimate < stats.MinEstimate {
			stats.MinEstimate = p.Estimate
		}
		if p.Estimate > stats.MaxEstimate {
			stats.MaxEstimate = p.Estimate
		}
		switch p.Alert {
		case models.AlertHighDemand:
			stats.HighDemand++
		case models.AlertLowDemand:
			stats.LowDemand++
		default:
			stats.Normal++
		}
	}
	stats.MeanEstimate = sum / float64(len(horizon))
	return stats
}

// ExportCSV renders the full classified forecast as a CSV document:
// date, estimate, lower, upper, any extra engine columns, alert.
func ExportCSV(result *models.ForecastResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"date", "estimate", "lower", "upper"}, result.ExtraColumns...)
	header = append(header, "alert")
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, p := range result.Points {
		row := make([]string, 0, len(header))
		row = append(row,
			util.DayString(p.Date),
			formatFloat(p.Estimate),
			formatFloat(p.Lower),
			formatFloat(p.Upper),
		)
		for _, col := range result.ExtraColumns {
			if v, ok := p.Extra[col]; ok {
				row = append(row, formatFloat(v))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, string(p.Alert))
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
