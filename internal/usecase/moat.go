package usecase

import (
	"context"
	"strings"
	"time"

	"FinScope/internal/domain/models"
	drepo "FinScope/internal/domain/repository"
	xhttp "FinScope/pkg/http"
	"FinScope/pkg/logger"
	"FinScope/pkg/util"

	"golang.org/x/sync/errgroup"
)

const moatFailure = "Error al obtener datos de moat check"

// MoatUseCase joins five FMP calls and derives qualitative labels. Any
// failed call fails the whole check.
type MoatUseCase struct {
	fmp     drepo.FinancialData
	log     *logger.Logger
	metrics drepo.Metrics
}

func NewMoatUseCase(fmp drepo.FinancialData, log *logger.Logger, m drepo.Metrics) *MoatUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	if m == nil {
		m = drepo.NopMetrics{}
	}
	return &MoatUseCase{fmp: fmp, log: log, metrics: m}
}

func (uc *MoatUseCase) Execute(ctx context.Context, ticker string) (*models.MoatReport, error) {
	if strings.TrimSpace(ticker) == "" {
		uc.metrics.RecordRequest("moat", "bad_request")
		return nil, xhttp.BadRequestError("ticker required")
	}
	if !uc.fmp.HasKey() {
		uc.metrics.RecordRequest("moat", "error")
		return nil, xhttp.InternalError("FMP API key no configurada")
	}

	start := time.Now()
	in, err := uc.fetch(ctx, ticker)
	if err != nil {
		uc.metrics.RecordRequest("moat", "error")
		uc.log.Error("moat check failed", logger.String("ticker", ticker), logger.Error(err))
		return nil, xhttp.InternalError(moatFailure).WithError(err)
	}

	report := buildMoatReport(ticker, in)
	uc.metrics.RecordLatency("moat", time.Since(start).Seconds())
	uc.metrics.RecordRequest("moat", "ok")
	uc.log.Info("moat report built",
		logger.String("ticker", ticker),
		logger.String("moat", report.Moat),
		logger.Duration("latency", time.Since(start)))
	return report, nil
}

func (uc *MoatUseCase) fetch(ctx context.Context, ticker string) (moatInputs, error) {
	var in moatInputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		in.profile, err = uc.fmp.CompanyProfile(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		in.ratios, err = uc.fmp.RatiosTTM(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		in.metrics, err = uc.fmp.KeyMetrics(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		in.holders, err = uc.fmp.InstitutionalHolders(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		in.esg, err = uc.fmp.ESG(gctx, ticker)
		return err
	})

	if err := g.Wait(); err != nil {
		return moatInputs{}, err
	}
	if in.profile == nil {
		in.profile = &models.CompanyProfile{}
	}
	if in.ratios == nil {
		in.ratios = &models.RatiosTTM{}
	}
	if in.metrics == nil {
		in.metrics = &models.KeyMetrics{}
	}
	if in.esg == nil {
		in.esg = &models.ESGScore{}
	}
	return in, nil
}

// buildMoatReport applies the text, threshold and ownership rules.
func buildMoatReport(ticker string, in moatInputs) *models.MoatReport {
	p := in.profile
	r := &models.MoatReport{
		Ticker:   ticker,
		Company:  p.CompanyName,
		Sector:   p.Sector,
		Industry: p.Industry,

		GrossMargin:     in.ratios.GrossMargin,
		OperatingMargin: in.ratios.OperatingMargin,
		ROE:             in.ratios.ROE,
		ROIC:            in.metrics.ROIC,
		DebtToEquity:    in.ratios.DebtToEquity,
		ESGScore:        in.esg.Total,
	}

	text := map[string]string{}
	for _, rule := range MoatTextRules {
		text[rule.Name] = rule.Apply(p)
	}
	r.Moat = text["moat"]
	r.PricingPower = text["pricing_power"]
	r.SwitchingCosts = text["switching_costs"]
	r.NetworkEffects = text["network_effects"]
	r.BrandStrength = text["brand_strength"]
	r.CostAdvantage = text["cost_advantage"]

	num := map[string]string{}
	for _, rule := range MoatThresholdRules {
		num[rule.Name] = rule.apply(in)
	}
	r.Profitability = num["profitability"]
	r.CapitalEfficiency = num["capital_efficiency"]
	r.BalanceSheet = num["balance_sheet"]
	r.ESGRating = num["esg_rating"]

	shares := SharesOutstanding(p)
	if shares > 0 {
		r.SharesOutstanding = util.Float(shares)
	}
	pct, top := ownership(in.holders, shares)
	r.PassiveOwnership = pct[holderPassive]
	r.InstitutionalOwnership = pct[holderInstitutional]
	r.TopHolders = top
	return r
}
