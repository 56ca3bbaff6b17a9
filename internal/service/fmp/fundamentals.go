package fmp

import (
	"context"
	"fmt"
	"net/url"

	"FinScope/internal/domain/models"
)

// AnalystRecommendation returns the most recent analyst rating tally.
func (c *Client) AnalystRecommendation(ctx context.Context, ticker string) (*models.AnalystRecommendation, error) {
	path := tickerPath("/analyst-stock-recommendations/%s", ticker)
	var rows []recommendationDTO
	if err := c.decode(ctx, models.APIv3, path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("analyst recommendations %s: %w", ticker, models.ErrNoData)
	}
	r := rows[0]
	return &models.AnalystRecommendation{
		Date:       r.Date,
		StrongBuy:  r.StrongBuy,
		Buy:        r.Buy,
		Hold:       r.Hold,
		Sell:       r.Sell,
		StrongSell: r.StrongSell,
	}, nil
}

// DailyCloses returns up to limit closes, most recent first.
func (c *Client) DailyCloses(ctx context.Context, ticker string, limit int) ([]models.DailyClose, error) {
	path := tickerPath("/historical-price-full/%s", ticker) + fmt.Sprintf("?timeseries=%d", limit)
	var h historicalDTO
	if err := c.decode(ctx, models.APIv3, path, &h); err != nil {
		return nil, err
	}
	out := make([]models.DailyClose, 0, len(h.Historical))
	for _, row := range h.Historical {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, models.DailyClose{Date: row.Date, Close: row.Close})
	}
	return out, nil
}

// CompanyProfile returns the company profile. An unknown ticker yields
// models.ErrNoData.
func (c *Client) CompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	path := tickerPath("/profile/%s", ticker)
	var rows []profileDTO
	if err := c.decode(ctx, models.APIv3, path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile %s: %w", ticker, models.ErrNoData)
	}
	p := rows[0]
	out := &models.CompanyProfile{
		Symbol:      p.Symbol,
		CompanyName: p.CompanyName,
		Description: p.Description,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Price:       p.Price,
		MktCap:      p.MktCap,
	}
	if p.SharesOutstanding != nil {
		out.SharesOutstanding = *p.SharesOutstanding
	}
	return out, nil
}

// RatiosTTM returns trailing ratios; fields stay nil when FMP has none.
func (c *Client) RatiosTTM(ctx context.Context, ticker string) (*models.RatiosTTM, error) {
	path := tickerPath("/ratios-ttm/%s", ticker)
	var rows []ratiosTTMDTO
	if err := c.decode(ctx, models.APIv3, path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.RatiosTTM{}, nil
	}
	r := rows[0]
	return &models.RatiosTTM{
		GrossMargin:     r.GrossMargin,
		OperatingMargin: r.OperatingMargin,
		NetMargin:       r.NetMargin,
		ROE:             r.ROE,
		DebtToEquity:    r.DebtToEquity,
		CurrentRatio:    r.CurrentRatio,
	}, nil
}

// KeyMetrics returns the latest annual key metrics.
func (c *Client) KeyMetrics(ctx context.Context, ticker string) (*models.KeyMetrics, error) {
	path := tickerPath("/key-metrics/%s", ticker) + "?limit=1"
	var rows []keyMetricsDTO
	if err := c.decode(ctx, models.APIv3, path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.KeyMetrics{}, nil
	}
	k := rows[0]
	return &models.KeyMetrics{
		Date:       k.Date,
		ROIC:       k.ROIC,
		FCFYield:   k.FCFYield,
		PERatio:    k.PERatio,
		EVToEBITDA: k.EVToEBITDA,
	}, nil
}

// InstitutionalHolders returns the reported institutional positions.
func (c *Client) InstitutionalHolders(ctx context.Context, ticker string) ([]models.Holder, error) {
	path := tickerPath("/institutional-holder/%s", ticker)
	var rows []holderDTO
	if err := c.decode(ctx, models.APIv3, path, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Holder, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Holder{Name: r.Holder, Shares: r.Shares})
	}
	return out, nil
}

// ESG returns the most recent ESG scores from the v4 API.
func (c *Client) ESG(ctx context.Context, ticker string) (*models.ESGScore, error) {
	path := "/esg-environmental-social-governance-data?symbol=" + url.QueryEscape(ticker)
	var rows []esgDTO
	if err := c.decode(ctx, models.APIv4, path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.ESGScore{}, nil
	}
	e := rows[0]
	return &models.ESGScore{
		Date:          e.Date,
		Environmental: e.Environmental,
		Social:        e.Social,
		Governance:    e.Governance,
		Total:         e.Total,
	}, nil
}
