package repository

import (
	"context"
	"encoding/json"

	"FinScope/internal/domain/models"
)

// FinancialData is the financial-data provider. apiKey overrides the
// configured key when non-empty.
type FinancialData interface {
	HasKey() bool
	Fetch(ctx context.Context, apiKey string, ep models.Endpoint) (json.RawMessage, error)

	AnalystRecommendation(ctx context.Context, ticker string) (*models.AnalystRecommendation, error)
	DailyCloses(ctx context.Context, ticker string, limit int) ([]models.DailyClose, error)
	CompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error)
	RatiosTTM(ctx context.Context, ticker string) (*models.RatiosTTM, error)
	KeyMetrics(ctx context.Context, ticker string) (*models.KeyMetrics, error)
	InstitutionalHolders(ctx context.Context, ticker string) ([]models.Holder, error)
	ESG(ctx context.Context, ticker string) (*models.ESGScore, error)
}

// NewsSource searches recent news articles.
type NewsSource interface {
	HasKey() bool
	Search(ctx context.Context, query string, limit int) ([]models.Article, error)
}

type Metrics interface {
	RecordRequest(handler, result string)
	RecordUpstream(provider, result string, seconds float64)
	RecordLatency(op string, seconds float64)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordRequest(string, string)           {}
func (NopMetrics) RecordUpstream(string, string, float64) {}
func (NopMetrics) RecordLatency(string, float64)          {}
