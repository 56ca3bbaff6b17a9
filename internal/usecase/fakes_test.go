package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"FinScope/internal/domain/models"
)

var errUpstream = errors.New("upstream down")

// fakeFMP implements drepo.FinancialData with canned responses and a call log.
type fakeFMP struct {
	mu    sync.Mutex
	calls []string

	key        bool
	fetch      func(ep models.Endpoint, apiKey string) (json.RawMessage, error)
	analyst    *models.AnalystRecommendation
	analystErr error
	closes     []models.DailyClose
	closesErr  error
	profile    *models.CompanyProfile
	ratios     *models.RatiosTTM
	metrics    *models.KeyMetrics
	holders    []models.Holder
	esg        *models.ESGScore
	failOn     string
}

func (f *fakeFMP) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeFMP) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFMP) HasKey() bool { return f.key }

func (f *fakeFMP) Fetch(_ context.Context, apiKey string, ep models.Endpoint) (json.RawMessage, error) {
	f.record(ep.Path)
	return f.fetch(ep, apiKey)
}

func (f *fakeFMP) AnalystRecommendation(context.Context, string) (*models.AnalystRecommendation, error) {
	f.record("analyst")
	return f.analyst, f.analystErr
}

func (f *fakeFMP) DailyCloses(context.Context, string, int) ([]models.DailyClose, error) {
	f.record("closes")
	return f.closes, f.closesErr
}

func (f *fakeFMP) CompanyProfile(ctx context.Context, _ string) (*models.CompanyProfile, error) {
	f.record("profile")
	return f.profile, f.failIf(ctx, "profile")
}

func (f *fakeFMP) RatiosTTM(ctx context.Context, _ string) (*models.RatiosTTM, error) {
	f.record("ratios")
	return f.ratios, f.failIf(ctx, "ratios")
}

func (f *fakeFMP) KeyMetrics(ctx context.Context, _ string) (*models.KeyMetrics, error) {
	f.record("metrics")
	return f.metrics, f.failIf(ctx, "metrics")
}

func (f *fakeFMP) InstitutionalHolders(ctx context.Context, _ string) ([]models.Holder, error) {
	f.record("holders")
	return f.holders, f.failIf(ctx, "holders")
}

func (f *fakeFMP) ESG(ctx context.Context, _ string) (*models.ESGScore, error) {
	f.record("esg")
	return f.esg, f.failIf(ctx, "esg")
}

func (f *fakeFMP) failIf(_ context.Context, name string) error {
	if f.failOn == name {
		return &models.UpstreamError{Provider: "fmp", Endpoint: name, Message: "Request failed with status code 500", Status: 500, Err: errUpstream}
	}
	return nil
}

type fakeNews struct {
	key      bool
	articles []models.Article
	err      error
	calls    int
}

func (f *fakeNews) HasKey() bool { return f.key }

func (f *fakeNews) Search(context.Context, string, int) ([]models.Article, error) {
	f.calls++
	return f.articles, f.err
}

func closesFrom(values ...float64) []models.DailyClose {
	out := make([]models.DailyClose, len(values))
	for i, v := range values {
		out[i] = models.DailyClose{Close: v}
	}
	return out
}
