package api

import (
	"net/http"
	"time"

	models "AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	xhttp "AgriPulse/pkg/http"
	xlogger "AgriPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// DefaultTickerInterval is how often the ticker pushes the latest price.
const DefaultTickerInterval = 5 * time.Second

// TickerHandler streams the latest observation for one commodity over a
// websocket. Each client gets its own poll loop; the connection closes
// when the client goes away or the write fails.
type TickerHandler struct {
	logger   *xlogger.Logger
	store    domrepo.PriceStore
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewTickerHandler(logger *xlogger.Logger, store domrepo.PriceStore, interval time.Duration) *TickerHandler {
	if interval <= 0 {
		interval = DefaultTickerInterval
	}
	return &TickerHandler{
		logger:   logger,
		store:    store,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *TickerHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/ticker", h.Ticker)
}

// tickerFrame is one websocket payload.
type tickerFrame struct {
	Commodity   string                   `json:"commodity"`
	Observation *models.PriceObservation `json:"observation"`
	At          time.Time                `json:"at"`
}

func (h *TickerHandler) Ticker(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ticker upgrade failed", xlogger.Error(err))
		return err
	}
	defer conn.Close()

	// Drain client frames so pings and close messages get processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	filter := domrepo.PriceFilter{
		Commodity: req.Commodity,
		Market:    req.Market,
		State:     req.State,
	}

	ctx := c.Request().Context()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	// Send one frame immediately so the client does not wait a full
	// interval for the first price.
	if err := h.push(c, conn, filter, req.Commodity); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.push(c, conn, filter, req.Commodity); err != nil {
				return nil
			}
		}
	}
}

func (h *TickerHandler) push(c echo.Context, conn *websocket.Conn, filter domrepo.PriceFilter, commodity string) error {
	latest, err := h.store.Latest(c.Request().Context(), filter)
	if err != nil {
		h.logger.Warn("ticker lookup failed",
			xlogger.String("commodity", commodity),
			xlogger.Error(err))
		return err
	}

	frame := tickerFrame{Commodity: commodity, Observation: latest, At: time.Now().UTC()}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(frame); err != nil {
		h.logger.Debug("ticker client gone", xlogger.Error(err))
		return err
	}
	return nil
}
