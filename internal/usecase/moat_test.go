package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"FinScope/internal/domain/models"
	xhttp "FinScope/pkg/http"
	"FinScope/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMoatFixture() *fakeFMP {
	return &fakeFMP{
		key: true,
		profile: &models.CompanyProfile{
			Symbol:      "MSFT",
			CompanyName: "Microsoft Corporation",
			Description: "Microsoft is a market leader in enterprise software and cloud subscription services with an iconic brand.",
			Sector:      "Technology",
			Industry:    "Software",
			Price:       400,
			MktCap:      4000,
		},
		ratios: &models.RatiosTTM{
			GrossMargin:  util.Float(0.69),
			ROE:          util.Float(0.38),
			DebtToEquity: util.Float(0.3),
		},
		metrics: &models.KeyMetrics{ROIC: util.Float(0.1)},
		holders: []models.Holder{
			{Name: "Vanguard Group Inc", Shares: 2},
			{Name: "BlackRock Inc.", Shares: 1},
			{Name: "Capital Research Global Investors", Shares: 0.5},
		},
		esg: &models.ESGScore{Total: util.Float(55)},
	}
}

func TestMoatExecute(t *testing.T) {
	f := newMoatFixture()
	report, err := NewMoatUseCase(f, nil, nil).Execute(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, "Microsoft Corporation", report.Company)
	assert.Equal(t, "strong", report.Moat)
	assert.Equal(t, "low", report.PricingPower)
	assert.Equal(t, "high", report.SwitchingCosts)
	assert.Equal(t, "absent", report.NetworkEffects)
	assert.Equal(t, "strong", report.BrandStrength)
	assert.Equal(t, "absent", report.CostAdvantage)

	assert.Equal(t, "excellent", report.Profitability)
	assert.Equal(t, "moderate", report.CapitalEfficiency, "ROIC wins over ROE")
	assert.Equal(t, "conservative", report.BalanceSheet)
	assert.Equal(t, "average", report.ESGRating)

	require.NotNil(t, report.SharesOutstanding)
	assert.Equal(t, 10.0, *report.SharesOutstanding)
	assert.Equal(t, models.Percent{Value: 30, Valid: true}, report.PassiveOwnership)
	assert.Equal(t, models.Percent{Value: 5, Valid: true}, report.InstitutionalOwnership)
	require.Len(t, report.TopHolders, 3)
	assert.Equal(t, "passive", report.TopHolders[0].Type)
	assert.Equal(t, "institutional", report.TopHolders[2].Type)

	assert.Len(t, f.calls, 5)
}

func TestMoatFailsWhole(t *testing.T) {
	for _, failing := range []string{"profile", "ratios", "metrics", "holders", "esg"} {
		t.Run(failing, func(t *testing.T) {
			f := newMoatFixture()
			f.failOn = failing

			report, err := NewMoatUseCase(f, nil, nil).Execute(context.Background(), "MSFT")
			assert.Nil(t, report)
			var appErr *xhttp.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusInternalServerError, appErr.Status)
			assert.Equal(t, moatFailure, appErr.Message)

			var ue *models.UpstreamError
			assert.ErrorAs(t, err, &ue)
		})
	}
}

func TestMoatPreconditions(t *testing.T) {
	f := newMoatFixture()
	_, err := NewMoatUseCase(f, nil, nil).Execute(context.Background(), " ")
	var appErr *xhttp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	f.key = false
	_, err = NewMoatUseCase(f, nil, nil).Execute(context.Background(), "MSFT")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Zero(t, f.callCount())
}

func TestMoatMissingData(t *testing.T) {
	f := newMoatFixture()
	f.profile = &models.CompanyProfile{CompanyName: "Shell Co"}
	f.ratios = &models.RatiosTTM{}
	f.metrics = &models.KeyMetrics{}
	f.esg = &models.ESGScore{}

	report, err := NewMoatUseCase(f, nil, nil).Execute(context.Background(), "SHEL")
	require.NoError(t, err)

	assert.Equal(t, models.DataNotAvailable, report.Profitability)
	assert.Equal(t, models.DataNotAvailable, report.CapitalEfficiency)
	assert.Equal(t, models.DataNotAvailable, report.BalanceSheet)
	assert.Equal(t, models.DataNotAvailable, report.ESGRating)
	assert.Nil(t, report.SharesOutstanding)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "data not available", m["passive_ownership_pct"])
	assert.Equal(t, "data not available", m["institutional_ownership_pct"])
	assert.Equal(t, "unclear", m["moat"])
}

func TestOwnershipPercentages(t *testing.T) {
	pct, top := ownership(nil, 1_000_000)
	assert.Empty(t, top)
	assert.Equal(t, models.Percent{Value: 0, Valid: true}, pct["passive"])
	assert.Equal(t, models.Percent{Value: 0, Valid: true}, pct["institutional"])

	pct, _ = ownership([]models.Holder{{Name: "Vanguard Group Inc", Shares: 100}}, 0)
	assert.False(t, pct["passive"].Valid)
	assert.False(t, pct["institutional"].Valid)

	pct, _ = ownership([]models.Holder{
		{Name: "Vanguard Group Inc", Shares: 250},
		{Name: "Berkshire Hathaway", Shares: 125},
	}, 1000)
	assert.Equal(t, models.Percent{Value: 25, Valid: true}, pct["passive"])
	assert.Equal(t, models.Percent{Value: 12.5, Valid: true}, pct["institutional"])
}

func TestThresholdRuleBands(t *testing.T) {
	balance := MoatThresholdRules[2]
	require.Equal(t, "balance_sheet", balance.Name)

	in := moatInputs{ratios: &models.RatiosTTM{}}
	for _, tt := range []struct {
		de   float64
		want string
	}{{0.2, "conservative"}, {0.5, "conservative"}, {1.0, "moderate"}, {3, "leveraged"}} {
		in.ratios.DebtToEquity = util.Float(tt.de)
		assert.Equal(t, tt.want, balance.apply(in), "d/e %v", tt.de)
	}
}

func TestClassifyHolder(t *testing.T) {
	assert.Equal(t, "passive", ClassifyHolder("VANGUARD GROUP INC"))
	assert.Equal(t, "passive", ClassifyHolder("SPDR S&P 500 ETF Trust"))
	assert.Equal(t, "institutional", ClassifyHolder("Berkshire Hathaway"))
	assert.Equal(t, "institutional", ClassifyHolder("Indexia Capital"))
}

func TestSharesOutstanding(t *testing.T) {
	assert.Equal(t, 7.0, SharesOutstanding(&models.CompanyProfile{SharesOutstanding: 7, MktCap: 100, Price: 10}))
	assert.Equal(t, 10.0, SharesOutstanding(&models.CompanyProfile{MktCap: 100, Price: 10}))
	assert.Zero(t, SharesOutstanding(&models.CompanyProfile{MktCap: 100}))
}
