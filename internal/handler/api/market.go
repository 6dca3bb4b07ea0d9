package api

import (
	"encoding/json"
	"net/http"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/cache"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

const liveCacheKey = "snapshot:latest"

// MarketEchoHandler exposes the tick pipeline over HTTP.
type MarketEchoHandler struct {
	logger  *xlogger.Logger
	agg     *usecase.SnapshotAggregator
	store   domrepo.TickStore // nil when history backend is disabled
	cache   cache.BytesCache
	pollTTL time.Duration
}

func NewMarketEchoHandler(
	logger *xlogger.Logger,
	agg *usecase.SnapshotAggregator,
	store domrepo.TickStore,
	c cache.BytesCache,
	pollTTL time.Duration,
) *MarketEchoHandler {
	return &MarketEchoHandler{logger: logger, agg: agg, store: store, cache: c, pollTTL: pollTTL}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/live", h.Live)
	g.GET("/history", h.History)
	e.GET("/healthz", h.Health)
}

// Live produces one snapshot. The response is the raw snapshot document,
// not the standard envelope: dashboard consumers depend on its exact shape.
// Each uncached call advances the price state by one tick; with a poll TTL
// configured, concurrent pollers within the TTL share one tick.
func (h *MarketEchoHandler) Live(c echo.Context) error {
	ctx := c.Request().Context()

	if h.pollTTL > 0 && h.cache != nil {
		if b, ok, err := h.cache.GetBytes(ctx, liveCacheKey); err == nil && ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	snap, err := h.agg.Produce(ctx)
	if err != nil {
		h.logger.Error("snapshot produce error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if h.pollTTL > 0 && h.cache != nil {
		if b, err := json.Marshal(snap); err == nil {
			_ = h.cache.SetBytes(ctx, liveCacheKey, b, h.pollTTL)
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	return c.JSON(http.StatusOK, snap)
}

// History returns persisted tick rows for one symbol, newest first.
func (h *MarketEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.store == nil {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("history backend is not enabled"))
	}

	rows, err := h.store.History(c.Request().Context(), req.Symbol, req.N)
	if err != nil {
		h.logger.Error("history query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Health reports process liveness and the history backend state.
func (h *MarketEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok", "history": "disabled"}
	if h.store != nil {
		status["history"] = "ok"
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["history"] = "unreachable"
		}
	}
	return xhttp.SuccessResponse(c, status)
}
