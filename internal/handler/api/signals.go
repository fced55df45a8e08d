package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/nicgenovese/polymarket-signal-service/internal/acp"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/internal/tier"
	"github.com/nicgenovese/polymarket-signal-service/internal/usecase"
	xhttp "github.com/nicgenovese/polymarket-signal-service/pkg/http"
	xlogger "github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

// SignalsHandler exposes the signal service over HTTP.
type SignalsHandler struct {
	logger *xlogger.Logger
	svc    *acp.Service
}

func NewSignalsHandler(logger *xlogger.Logger, svc *acp.Service) *SignalsHandler {
	return &SignalsHandler{logger: logger, svc: svc}
}

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/signal", h.GetSignal)
	g.POST("/batch", h.GetBatch)
	g.GET("/performance", h.GetPerformance)
	g.GET("/offering", h.GetOffering)
	g.POST("/acp", h.Dispatch)
}

func (h *SignalsHandler) GetSignal(c echo.Context) error {
	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	t, err := tier.Parse(req.Tier)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	res, err := h.svc.GetSignal(c.Request().Context(), t, req.MarketID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) GetBatch(c echo.Context) error {
	req := &models.BatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	t, err := tier.Parse(req.Tier)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	res, err := h.svc.GetBatch(c.Request().Context(), t, req.Count)
	if err != nil {
		return h.serviceError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) GetPerformance(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.svc.Performance())
}

func (h *SignalsHandler) GetOffering(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.svc.Offering())
}

// Dispatch routes a marketplace-style envelope to the named endpoint.
func (h *SignalsHandler) Dispatch(c echo.Context) error {
	req := &models.DispatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	t, err := tier.Parse(req.Tier)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	res, err := h.svc.HandleRequest(c.Request().Context(), req.Endpoint, t, req.Params)
	if err != nil {
		return h.serviceError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoOpportunities):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	case errors.Is(err, acp.ErrMarketLookup), errors.Is(err, acp.ErrUnknownEndpoint):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	default:
		h.logger.Error("signal service error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}
