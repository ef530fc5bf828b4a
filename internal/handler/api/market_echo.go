package api

import (
	"net/http"

	models "AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	"AgriPulse/internal/usecase"
	xhttp "AgriPulse/pkg/http"
	xlogger "AgriPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketEchoHandler exposes the market intelligence endpoints over Echo.
type MarketEchoHandler struct {
	logger      *xlogger.Logger
	trends      *usecase.TrendEngine
	predictions *usecase.PredictionEngine
	comparison  *usecase.ComparisonEngine
	alerts      *usecase.AlertService
	feed        *usecase.FeedService
	store       domrepo.PriceStore
}

func NewMarketEchoHandler(
	logger *xlogger.Logger,
	trends *usecase.TrendEngine,
	predictions *usecase.PredictionEngine,
	comparison *usecase.ComparisonEngine,
	alerts *usecase.AlertService,
	feed *usecase.FeedService,
	store domrepo.PriceStore,
) *MarketEchoHandler {
	return &MarketEchoHandler{
		logger:      logger,
		trends:      trends,
		predictions: predictions,
		comparison:  comparison,
		alerts:      alerts,
		feed:        feed,
		store:       store,
	}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market")
	g.GET("/trends", h.Trends)
	g.GET("/predictions", h.Predictions)
	g.GET("/compare", h.Compare)
	g.GET("/feed", h.Feed)
	g.POST("/alerts/evaluate", h.EvaluateAlert)

	e.GET("/healthz", h.Health)
}

func (h *MarketEchoHandler) Trends(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.trends.GetTrends(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("trends usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Predictions(c echo.Context) error {
	req := &models.PredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictions.GetPredictions(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("predictions usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Compare(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.comparison.CompareMarkets(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("compare usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Feed(c echo.Context) error {
	req := &models.FeedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	records, err := h.feed.GetFeed(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("feed usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, records)
}

func (h *MarketEchoHandler) EvaluateAlert(c echo.Context) error {
	req := &models.AlertEvaluateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.alerts.EvaluateLive(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("alert evaluate usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Health reports readiness. ClickHouse is the only hard dependency for
// the read path; buffered error logs ride along for quick triage.
func (h *MarketEchoHandler) Health(c echo.Context) error {
	body := map[string]interface{}{"status": "ok"}
	if recent := h.logger.CollectedLogs(); len(recent) > 0 {
		body["recentErrors"] = recent
	}

	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			body["status"] = "degraded"
			body["reason"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
	}
	return c.JSON(http.StatusOK, body)
}
