package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"FinScope/internal/domain/models"
	drepo "FinScope/internal/domain/repository"
	xhttp "FinScope/pkg/http"
	"FinScope/pkg/logger"
)

// ProfileEndpoints is the fixed batch fetched for /fmp/:ticker, in category
// order.
var ProfileEndpoints = []models.EndpointSpec{
	{Category: "general", Path: "/profile/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "general", Path: "/quote/{ticker}", RequiresTicker: true, Version: models.APIv3},

	{Category: "financial_statements", Path: "/income-statement/{ticker}?limit=5", RequiresTicker: true, Version: models.APIv3},
	{Category: "financial_statements", Path: "/balance-sheet-statement/{ticker}?limit=5", RequiresTicker: true, Version: models.APIv3},
	{Category: "financial_statements", Path: "/cash-flow-statement/{ticker}?limit=5", RequiresTicker: true, Version: models.APIv3},
	{Category: "financial_statements", Path: "/financial-growth/{ticker}", RequiresTicker: true, Version: models.APIv3},

	{Category: "ratios", Path: "/ratios/{ticker}?limit=5", RequiresTicker: true, Version: models.APIv3},
	{Category: "ratios", Path: "/key-metrics/{ticker}?limit=5", RequiresTicker: true, Version: models.APIv3},

	{Category: "valuation", Path: "/discounted-cash-flow/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "valuation", Path: "/enterprise-values/{ticker}?limit=5", RequiresTicker: true, Version: models.APIv3},
	{Category: "valuation", Path: "/historical-market-capitalization/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "valuation", Path: "/rating/{ticker}", RequiresTicker: true, Version: models.APIv3},

	{Category: "ownership", Path: "/insider-trading/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "ownership", Path: "/institutional-ownership/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "ownership", Path: "/shares-float/{ticker}", RequiresTicker: true, Version: models.APIv3},

	{Category: "insights", Path: "/analyst-estimates/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "insights", Path: "/esg-environmental-social-governance-data/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "insights", Path: "/earning_calendar/{ticker}", RequiresTicker: true, Version: models.APIv3},
	{Category: "insights", Path: "/strategic-risks/{ticker}", RequiresTicker: true, Version: models.APIv4},

	{Category: "calendar", Path: "/economic_calendar", Version: models.APIv3},
}

// ProfileUseCase fetches every ProfileEndpoints entry for a ticker. Each
// endpoint fails on its own.
type ProfileUseCase struct {
	fmp         drepo.FinancialData
	endpoints   []models.EndpointSpec
	concurrency int
	log         *logger.Logger
	metrics     drepo.Metrics
}

func NewProfileUseCase(fmp drepo.FinancialData, concurrency int, log *logger.Logger, m drepo.Metrics) *ProfileUseCase {
	if concurrency <= 0 {
		concurrency = 4
	}
	if log == nil {
		log = logger.NewNop()
	}
	if m == nil {
		m = drepo.NopMetrics{}
	}
	return &ProfileUseCase{
		fmp:         fmp,
		endpoints:   ProfileEndpoints,
		concurrency: concurrency,
		log:         log,
		metrics:     m,
	}
}

// Execute returns {ticker, data}. apiKey overrides the configured key; with
// neither present nothing is fetched.
func (uc *ProfileUseCase) Execute(ctx context.Context, ticker, apiKey string) (*models.ProfileReport, error) {
	if strings.TrimSpace(ticker) == "" {
		uc.metrics.RecordRequest("profile", "bad_request")
		return nil, xhttp.BadRequestError("ticker required")
	}
	if strings.TrimSpace(apiKey) == "" && !uc.fmp.HasKey() {
		uc.metrics.RecordRequest("profile", "bad_request")
		return nil, xhttp.BadRequestError("API key required")
	}

	start := time.Now()
	uc.log.Info("profile request", logger.String("ticker", ticker), logger.Int("endpoints", len(uc.endpoints)))

	type item struct {
		category string
		path     string
		val      interface{}
		failed   bool
	}
	ch := make(chan item, len(uc.endpoints))
	sem := make(chan struct{}, uc.concurrency)
	var wg sync.WaitGroup

	for _, spec := range uc.endpoints {
		ep := models.Endpoint{Category: spec.Category, Path: spec.Render(ticker), Version: spec.Version}
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				ch <- item{ep.Category, ep.Path, models.NewErrorRecord(ep.Path, ctx.Err()), true}
				return
			}
			defer func() { <-sem }()

			raw, err := uc.fmp.Fetch(ctx, apiKey, ep)
			if err != nil {
				ch <- item{ep.Category, ep.Path, models.NewErrorRecord(ep.Path, err), true}
				return
			}
			ch <- item{ep.Category, ep.Path, raw, false}
		}()
	}

	go func() { wg.Wait(); close(ch) }()

	res := &models.ProfileReport{Ticker: ticker, Data: map[string]map[string]interface{}{}}
	failed := 0
	for it := range ch {
		if res.Data[it.category] == nil {
			res.Data[it.category] = map[string]interface{}{}
		}
		res.Data[it.category][it.path] = it.val
		if it.failed {
			failed++
		}
	}

	uc.metrics.RecordLatency("profile", time.Since(start).Seconds())
	uc.metrics.RecordRequest("profile", "ok")
	uc.log.Info("profile request done",
		logger.String("ticker", ticker),
		logger.Int("failed", failed),
		logger.Duration("latency", time.Since(start)))
	return res, nil
}
