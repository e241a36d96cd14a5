package forecast

import (
	"context"
	"time"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	domsvc "github.com/shashankreddy3k/inventory-forecast-app/internal/domain/service"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/config"
	xhttp "github.com/shashankreddy3k/inventory-forecast-app/pkg/http"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/util"
)

// HTTPEngine calls the external statistical forecasting service over HTTP.
// The service fits a model on the submitted daily series and returns one
// point per history day plus the requested future horizon.
type HTTPEngine struct {
	baseURL string
	client  *xhttp.Client
}

// NewHTTPEngine builds the engine client from config.
func NewHTTPEngine(cfg *config.Config) *HTTPEngine {
	timeout := cfg.Engine.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPEngine{
		baseURL: cfg.Engine.URL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type forecastReq struct {
	Subcategory string          `json:"subcategory"`
	HorizonDays int             `json:"horizon_days"`
	Series      []seriesPointIn `json:"series"`
}

type seriesPointIn struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

type forecastResp struct {
	Points []enginePointOut `json:"points"`
}

type enginePointOut struct {
	Date     string             `json:"date"`
	Estimate float64            `json:"estimate"`
	Lower    float64            `json:"lower"`
	Upper    float64            `json:"upper"`
	Extra    map[string]float64 `json:"extra,omitempty"`
}

func (e *HTTPEngine) Forecast(ctx context.Context, series models.DailySeries, horizonDays int) ([]models.EnginePoint, error) {
	req := forecastReq{
		Subcategory: series.Subcategory,
		HorizonDays: horizonDays,
		Series:      make([]seriesPointIn, 0, len(series.Points)),
	}
	for _, p := range series.Points {
		req.Series = append(req.Series, seriesPointIn{
			Date:  util.DayString(p.Date),
			Sales: p.Sales,
		})
	}

	var resp forecastResp
	err := e.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    e.baseURL + "/forecast",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: req,
	}, &resp)
	if err != nil {
		return nil, &models.ForecastEngineError{Reason: "request failed", Err: err}
	}

	points := make([]models.EnginePoint, 0, len(resp.Points))
	for _, p := range resp.Points {
		date, ok := util.ParseDayFirst(p.Date)
		if !ok {
			return nil, &models.ForecastEngineError{Reason: "unparseable date in response: " + p.Date}
		}
		points = append(points, models.EnginePoint{
			Date:     util.Day(date),
			Estimate: p.Estimate,
			Lower:    p.Lower,
			Upper:    p.Upper,
			Extra:    p.Extra,
		})
	}
	return points, nil
}

var _ domsvc.ForecastEngine = (*HTTPEngine)(nil)
