package api

import (
	"context"
	"time"

	"FinScope/internal/domain/models"
	xhttp "FinScope/pkg/http"
	xlogger "FinScope/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ProfileService interface {
	Execute(ctx context.Context, ticker, apiKey string) (*models.ProfileReport, error)
}

type SentimentService interface {
	Execute(ctx context.Context, ticker, empresa string) (*models.SentimentReport, error)
}

type MoatService interface {
	Execute(ctx context.Context, ticker string) (*models.MoatReport, error)
}

// AggregatorEchoHandler serves the three aggregation endpoints.
type AggregatorEchoHandler struct {
	logger    *xlogger.Logger
	profile   ProfileService
	sentiment SentimentService
	moat      MoatService
	deadline  time.Duration
}

func NewAggregatorEchoHandler(logger *xlogger.Logger, profile ProfileService, sentiment SentimentService, moat MoatService) *AggregatorEchoHandler {
	if logger == nil {
		logger = xlogger.NewNop()
	}
	return &AggregatorEchoHandler{logger: logger, profile: profile, sentiment: sentiment, moat: moat}
}

// WithDeadline bounds every aggregation request, including all of its
// upstream calls. Zero leaves only the client's own cancellation.
func (h *AggregatorEchoHandler) WithDeadline(d time.Duration) *AggregatorEchoHandler {
	h.deadline = d
	return h
}

func (h *AggregatorEchoHandler) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	if h.deadline <= 0 {
		return context.WithCancel(c.Request().Context())
	}
	return context.WithTimeout(c.Request().Context(), h.deadline)
}

func (h *AggregatorEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/fmp/:ticker", h.Profile)
	e.GET("/sentiment-data", h.Sentiment)
	e.GET("/moat-check", h.Moat)
}

// Profile handles GET /fmp/:ticker?apiKey=.
func (h *AggregatorEchoHandler) Profile(c echo.Context) error {
	req := &models.ProfileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, xhttp.ValidationMessage(verr))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.profile.Execute(ctx, req.Ticker, req.APIKey)
	if err != nil {
		h.logger.Warn("profile usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Sentiment handles GET /sentiment-data?ticker=&empresa=.
func (h *AggregatorEchoHandler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, xhttp.ValidationMessage(verr))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.sentiment.Execute(ctx, req.Ticker, req.Empresa)
	if err != nil {
		h.logger.Error("sentiment usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Moat handles GET /moat-check?ticker=.
func (h *AggregatorEchoHandler) Moat(c echo.Context) error {
	req := &models.MoatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, xhttp.ValidationMessage(verr))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.moat.Execute(ctx, req.Ticker)
	if err != nil {
		h.logger.Error("moat usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
