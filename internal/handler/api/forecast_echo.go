package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	drepo "github.com/shashankreddy3k/inventory-forecast-app/internal/domain/repository"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/ingest"
	"github.com/shashankreddy3k/inventory-forecast-app/internal/usecase"
	xhttp "github.com/shashankreddy3k/inventory-forecast-app/pkg/http"
	xlogger "github.com/shashankreddy3k/inventory-forecast-app/pkg/logger"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/util"
)

const exportFileName = "inventory_forecast.csv"

// ForecastHandler serves the upload-and-forecast API.
type ForecastHandler struct {
	logger         *xlogger.Logger
	store          drepo.SessionStore
	runner         *usecase.ForecastRunner
	maxUploadBytes int64
}

func NewForecastHandler(logger *xlogger.Logger, store drepo.SessionStore, runner *usecase.ForecastRunner, maxUploadBytes int64) *ForecastHandler {
	return &ForecastHandler{
		logger:         logger,
		store:          store,
		runner:         runner,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ForecastHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/upload", h.Upload)
	g.GET("/sessions/:id/subcategories", h.Subcategories)
	g.GET("/sessions/:id/forecast", h.Forecast)
	g.GET("/sessions/:id/forecast/export", h.Export)
}

func (h *ForecastHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Upload ingests a sales file and opens a session around the validated
// dataset. Validation is all-or-nothing.
func (h *ForecastHandler) Upload(c echo.Context) error {
	if h.maxUploadBytes > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxUploadBytes)
	}

	file, header, err := c.Request().FormFile("file")
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("missing file field in upload"))
	}
	defer file.Close()

	rows, err := ingest.ReadRows(file, header.Filename)
	if err != nil {
		return xhttp.AppErrorResponse(c, h.mapDomainError(err))
	}

	ds, err := ingest.ParseDataset(rows, header.Filename)
	if err != nil {
		return xhttp.AppErrorResponse(c, h.mapDomainError(err))
	}

	id := util.NewSessionID()
	if err := h.store.Put(c.Request().Context(), id, ds); err != nil {
		h.logger.Error("session store put failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not store session"))
	}

	h.logger.Info("upload accepted",
		xlogger.String("session_id", id),
		xlogger.String("file", ds.FileName),
		xlogger.Int("rows", len(ds.Records)),
		xlogger.Int("subcategories", len(ds.Subcategories)),
	)

	return xhttp.CreatedResponse(c, models.UploadResponse{
		SessionID:     id,
		FileName:      ds.FileName,
		Rows:          len(ds.Records),
		Subcategories: ds.Subcategories,
		FirstDate:     util.DayString(ds.FirstDate),
		LastDate:      util.DayString(ds.LastDate),
	})
}

// Subcategories lists the forecastable sub-categories of a session.
func (h *ForecastHandler) Subcategories(c echo.Context) error {
	ds, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return xhttp.AppErrorResponse(c, h.mapDomainError(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"subcategories": ds.Subcategories,
	})
}

// Forecast runs the pipeline and returns the classified forecast with its
// chart, alert table and stats.
func (h *ForecastHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.runner.Run(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Error("forecast run failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapDomainError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Export runs the pipeline and returns the full forecast as a CSV download.
func (h *ForecastHandler) Export(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.runner.Run(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Error("forecast export failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapDomainError(err))
	}

	body, err := usecase.ExportCSV(res)
	if err != nil {
		h.logger.Error("csv render failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not render export"))
	}
	return xhttp.CSVAttachment(c, exportFileName, body)
}

// mapDomainError translates pipeline errors to HTTP application errors.
func (h *ForecastHandler) mapDomainError(err error) *xhttp.AppError {
	var (
		schemaErr *models.SchemaError
		dateErr   *models.DateParseError
		insufErr  *models.InsufficientDataError
		engineErr *models.ForecastEngineError
	)

	switch {
	case errors.As(err, &schemaErr):
		return xhttp.BadRequestError(schemaErr.Error())
	case errors.As(err, &dateErr):
		return xhttp.BadRequestError(dateErr.Error())
	case errors.As(err, &insufErr):
		return xhttp.UnprocessableError(insufErr.Error())
	case errors.As(err, &engineErr):
		return xhttp.BadGatewayError(engineErr.Error())
	case errors.Is(err, drepo.ErrSessionNotFound):
		return xhttp.NotFoundError("session not found or expired")
	case errors.Is(err, usecase.ErrUnknownSubcategory):
		return xhttp.BadRequestError(err.Error())
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}

var _ xhttp.Handler = (*ForecastHandler)(nil)
