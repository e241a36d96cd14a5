package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/repository"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/usecase"
	xlogger "github.com/shashankreddy3k/inventory-forecast-app/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordRun(string, string)      {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) RecordPointsProduced(int)      {}

// flatEngine returns a constant estimate for every history and future day.
type flatEngine struct {
	estimate float64
}

func (e flatEngine) Forecast(_ context.Context, series models.DailySeries, horizonDays int) ([]models.EnginePoint, error) {
	var points []models.EnginePoint
	add := func(d time.Time) {
		points = append(points, models.EnginePoint{
			Date:     d,
			Estimate: e.estimate,
			Lower:    e.estimate - 10,
			Upper:    e.estimate + 10,
		})
	}
	for _, p := range series.Points {
		add(p.Date)
	}
	next := series.End()
	for i := 0; i < horizonDays; i++ {
		next = next.AddDate(0, 0, 1)
		add(next)
	}
	return points, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store := repository.NewMemorySessionStore(time.Hour, time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	runner := usecase.NewForecastRunner(
		store,
		flatEngine{estimate: 200},
		repository.NoopAlertPublisher{},
		nopMetrics{},
		xlogger.Discard(),
	)
	h := NewForecastHandler(xlogger.Discard(), store, runner, 10<<20)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

// salesCSV builds a day-first CSV with n consecutive days for one sub-category.
func salesCSV(sub string, n int) string {
	var b strings.Builder
	b.WriteString("Order Date,Sales,Sub-Category\n")
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		d := base.AddDate(0, 0, i)
		fmt.Fprintf(&b, "%02d/%02d/%d,%d,%s\n", d.Day(), int(d.Month()), d.Year(), 100+i, sub)
	}
	return b.String()
}

func uploadFile(t *testing.T, e *echo.Echo, name, content string) envelope {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestUploadAndListSubcategories(t *testing.T) {
	e := newTestServer(t)

	env := uploadFile(t, e, "orders.csv", salesCSV("Chairs", 45))
	require.Equal(t, http.StatusCreated, env.Status)

	var up models.UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &up))
	assert.NotEmpty(t, up.SessionID)
	assert.Equal(t, 45, up.Rows)
	assert.Equal(t, []string{"Chairs"}, up.Subcategories)
	assert.Equal(t, "2024-01-01", up.FirstDate)
	assert.Equal(t, "2024-02-14", up.LastDate)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+up.SessionID+"/subcategories", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var listEnv envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listEnv))
	assert.Equal(t, http.StatusOK, listEnv.Status)
	assert.Contains(t, string(listEnv.Data), "Chairs")
}

func TestUploadMissingColumns(t *testing.T) {
	e := newTestServer(t)

	env := uploadFile(t, e, "orders.csv", "Order Date,Amount\n01/02/2024,10\n")
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, string(env.Data), "missing required columns")
}

func TestUploadBadDate(t *testing.T) {
	e := newTestServer(t)

	env := uploadFile(t, e, "orders.csv", "Order Date,Sales,Sub-Category\n31/31/2024,10,Chairs\n")
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, string(env.Data), "unparseable order date")
}

func TestForecastEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := uploadFile(t, e, "orders.csv", salesCSV("Binders", 45))

	var up models.UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &up))

	url := "/api/sessions/" + up.SessionID + "/forecast?subcategory=Binders&horizon=30"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var fcEnv envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fcEnv))
	require.Equal(t, http.StatusOK, fcEnv.Status)

	var res models.ForecastResult
	require.NoError(t, json.Unmarshal(fcEnv.Data, &res))
	assert.Equal(t, "Binders", res.Subcategory)
	assert.Equal(t, 30, res.HorizonDays)
	assert.Len(t, res.Points, 75)
	assert.Len(t, res.Table, 30)
	assert.Len(t, res.Chart, 75)
	assert.Equal(t, 30, res.Stats.Normal)
}

func TestForecastFutureOnlyChart(t *testing.T) {
	e := newTestServer(t)
	env := uploadFile(t, e, "orders.csv", salesCSV("Binders", 45))

	var up models.UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &up))

	url := "/api/sessions/" + up.SessionID + "/forecast?subcategory=Binders&horizon=30&future_only=true"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var fcEnv envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fcEnv))
	require.Equal(t, http.StatusOK, fcEnv.Status)

	var res models.ForecastResult
	require.NoError(t, json.Unmarshal(fcEnv.Data, &res))
	assert.Len(t, res.Chart, 30)
}

func TestForecastInvalidHorizon(t *testing.T) {
	e := newTestServer(t)
	env := uploadFile(t, e, "orders.csv", salesCSV("Binders", 45))

	var up models.UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &up))

	url := "/api/sessions/" + up.SessionID + "/forecast?subcategory=Binders&horizon=45"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var fcEnv envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fcEnv))
	assert.Equal(t, http.StatusBadRequest, fcEnv.Status)
}

func TestForecastUnknownSession(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/nope/forecast?subcategory=Binders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusNotFound, env.Status)
}

func TestForecastInsufficientData(t *testing.T) {
	e := newTestServer(t)
	env := uploadFile(t, e, "orders.csv", salesCSV("Chairs", 20))

	var up models.UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &up))

	url := "/api/sessions/" + up.SessionID + "/forecast?subcategory=Chairs"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var fcEnv envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fcEnv))
	assert.Equal(t, http.StatusUnprocessableEntity, fcEnv.Status)
}

func TestExportCSVAttachment(t *testing.T) {
	e := newTestServer(t)
	env := uploadFile(t, e, "orders.csv", salesCSV("Binders", 45))

	var up models.UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &up))

	url := "/api/sessions/" + up.SessionID + "/forecast/export?subcategory=Binders&horizon=30"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "inventory_forecast.csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// Header plus one row per history and horizon day.
	assert.Len(t, lines, 76)
	assert.Equal(t, "date,estimate,lower,upper,alert", strings.TrimSpace(lines[0]))
}
