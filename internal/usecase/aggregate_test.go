package usecase

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dataset builds a dataset with n consecutive days of sales for one
// sub-category, 10.0 per day starting at base.
func dataset(sub string, base time.Time, n int) *models.Dataset {
	ds := &models.Dataset{Subcategories: []string{sub}}
	for i := 0; i < n; i++ {
		ds.Records = append(ds.Records, models.SalesRecord{
			OrderDate:   base.AddDate(0, 0, i),
			Sales:       10,
			Subcategory: sub,
		})
	}
	return ds
}

func TestBuildDailySeriesMergesDuplicateDates(t *testing.T) {
	ds := dataset("Chairs", day(2024, time.January, 1), 30)
	// Second order on day one: totals must sum, not overwrite.
	ds.Records = append(ds.Records, models.SalesRecord{
		OrderDate:   day(2024, time.January, 1),
		Sales:       75,
		Subcategory: "Chairs",
	})
	ds.Records[0].Sales = 50

	series, err := BuildDailySeries(ds, "Chairs")
	if err != nil {
		t.Fatalf("BuildDailySeries: %v", err)
	}
	if len(series.Points) != 30 {
		t.Fatalf("points = %d, want 30", len(series.Points))
	}
	if series.Points[0].Sales != 125 {
		t.Errorf("day one total = %v, want 125", series.Points[0].Sales)
	}
}

func TestBuildDailySeriesOrderIndependent(t *testing.T) {
	ds := dataset("Tables", day(2024, time.March, 1), 45)
	want, err := BuildDailySeries(ds, "Tables")
	if err != nil {
		t.Fatalf("BuildDailySeries: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(ds.Records), func(i, j int) {
		ds.Records[i], ds.Records[j] = ds.Records[j], ds.Records[i]
	})

	got, err := BuildDailySeries(ds, "Tables")
	if err != nil {
		t.Fatalf("BuildDailySeries after shuffle: %v", err)
	}
	if len(got.Points) != len(want.Points) {
		t.Fatalf("points = %d, want %d", len(got.Points), len(want.Points))
	}
	for i := range got.Points {
		if !got.Points[i].Date.Equal(want.Points[i].Date) || got.Points[i].Sales != want.Points[i].Sales {
			t.Fatalf("point %d differs after shuffle: %+v vs %+v", i, got.Points[i], want.Points[i])
		}
	}
}

func TestBuildDailySeriesFiltersOtherSubcategories(t *testing.T) {
	ds := dataset("Phones", day(2024, time.May, 1), 30)
	ds.Records = append(ds.Records, models.SalesRecord{
		OrderDate:   day(2024, time.May, 1),
		Sales:       9999,
		Subcategory: "Chairs",
	})

	series, err := BuildDailySeries(ds, "Phones")
	if err != nil {
		t.Fatalf("BuildDailySeries: %v", err)
	}
	if series.Points[0].Sales != 10 {
		t.Errorf("day one total = %v, want 10", series.Points[0].Sales)
	}
}

func TestBuildDailySeriesInsufficientData(t *testing.T) {
	ds := dataset("Binders", day(2024, time.June, 1), 29)

	_, err := BuildDailySeries(ds, "Binders")
	var insufErr *models.InsufficientDataError
	if !errors.As(err, &insufErr) {
		t.Fatalf("err = %v, want InsufficientDataError", err)
	}
	if insufErr.Points != 29 || insufErr.Required != models.MinSeriesPoints {
		t.Errorf("got %d/%d, want 29/%d", insufErr.Points, insufErr.Required, models.MinSeriesPoints)
	}
}

func TestClassifyDemandBoundaries(t *testing.T) {
	cases := []struct {
		estimate float64
		want     models.AlertLevel
	}{
		{500, models.AlertHighDemand},
		{500.01, models.AlertHighDemand},
		{499.99, models.AlertNormal},
		{100.01, models.AlertNormal},
		{100, models.AlertLowDemand},
		{0, models.AlertLowDemand},
		{-5, models.AlertLowDemand},
	}
	for _, c := range cases {
		if got := models.ClassifyDemand(c.estimate); got != c.want {
			t.Errorf("ClassifyDemand(%v) = %v, want %v", c.estimate, got, c.want)
		}
	}
}
