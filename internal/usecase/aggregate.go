package usecase

import (
	"sort"
	"time"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/util"
)

// BuildDailySeries aggregates the dataset rows of one sub-category into a
// per-day total, sorted by date ascending. Rows on the same calendar day are
// summed. Order of the input records never changes the result.
func BuildDailySeries(ds *models.Dataset, subcategory string) (models.DailySeries, error) {
	totals := make(map[time.Time]float64)
	for _, r := range ds.Records {
		if r.Subcategory != subcategory {
			continue
		}
		totals[util.Day(r.OrderDate)] += r.Sales
	}

	if len(totals) < models.MinSeriesPoints {
		return models.DailySeries{}, &models.InsufficientDataError{
			Subcategory: subcategory,
			Points:      len(totals),
			Required:    models.MinSeriesPoints,
		}
	}

	points := make([]models.SeriesPoint, 0, len(totals))
	for d, s := range totals {
		points = append(points, models.SeriesPoint{Date: d, Sales: s})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return models.DailySeries{Subcategory: subcategory, Points: points}, nil
}
