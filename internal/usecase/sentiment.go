package usecase

import (
	"context"
	"strings"
	"time"

	"FinScope/internal/domain/models"
	drepo "FinScope/internal/domain/repository"
	xhttp "FinScope/pkg/http"
	"FinScope/pkg/logger"
)

const (
	sentimentFailure  = "Error al obtener datos de sentimiento"
	ratingUnavailable = "no disponible"
	socialPlaceholder = "Análisis de redes sociales no disponible"
	topWordCount      = 5
)

// SentimentUseCase builds the news, analyst and price report for a company.
type SentimentUseCase struct {
	fmp       drepo.FinancialData
	news      drepo.NewsSource
	newsMax   int
	priceDays int
	log       *logger.Logger
	metrics   drepo.Metrics
}

func NewSentimentUseCase(fmp drepo.FinancialData, news drepo.NewsSource, newsMax, priceDays int, log *logger.Logger, m drepo.Metrics) *SentimentUseCase {
	if newsMax <= 0 {
		newsMax = 10
	}
	if priceDays <= 0 {
		priceDays = 250
	}
	if log == nil {
		log = logger.NewNop()
	}
	if m == nil {
		m = drepo.NopMetrics{}
	}
	return &SentimentUseCase{
		fmp:       fmp,
		news:      news,
		newsMax:   newsMax,
		priceDays: priceDays,
		log:       log,
		metrics:   m,
	}
}

// Execute runs news, classification, analyst ratings and technicals in
// sequence. News and price failures fail the request; analyst failures
// degrade to zero counts.
func (uc *SentimentUseCase) Execute(ctx context.Context, ticker, empresa string) (*models.SentimentReport, error) {
	if strings.TrimSpace(ticker) == "" || strings.TrimSpace(empresa) == "" {
		uc.metrics.RecordRequest("sentiment", "bad_request")
		return nil, xhttp.BadRequestError("ticker y empresa son requeridos")
	}
	if !uc.fmp.HasKey() || !uc.news.HasKey() {
		uc.metrics.RecordRequest("sentiment", "error")
		return nil, xhttp.InternalError("API keys no configuradas")
	}

	start := time.Now()
	log := uc.log.With(logger.String("ticker", ticker), logger.String("empresa", empresa))

	articles, err := uc.news.Search(ctx, empresa, uc.newsMax)
	if err != nil {
		return nil, uc.fail(log, "news", err)
	}
	uc.metrics.RecordLatency("sentiment.news", time.Since(start).Seconds())

	noticias := summarizeNews(articles)
	analistas := uc.analystSummary(ctx, log, ticker)

	stage := time.Now()
	closes, err := uc.fmp.DailyCloses(ctx, ticker, uc.priceDays)
	if err != nil {
		return nil, uc.fail(log, "prices", err)
	}
	uc.metrics.RecordLatency("sentiment.prices", time.Since(stage).Seconds())

	report := &models.SentimentReport{
		Empresa:   empresa,
		Ticker:    ticker,
		Noticias:  noticias,
		Analistas: analistas,
		Tecnica:   ComputeTechnicals(closes),
		Redes:     socialPlaceholder,
	}

	uc.metrics.RecordLatency("sentiment", time.Since(start).Seconds())
	uc.metrics.RecordRequest("sentiment", "ok")
	log.Info("sentiment report built",
		logger.Int("headlines", len(articles)),
		logger.Int("closes", len(closes)),
		logger.Duration("latency", time.Since(start)))
	return report, nil
}

func (uc *SentimentUseCase) fail(log *logger.Logger, stage string, err error) error {
	uc.metrics.RecordRequest("sentiment", "error")
	log.Error("sentiment stage failed", logger.String("stage", stage), logger.Error(err))
	return xhttp.InternalError(sentimentFailure).WithError(err)
}

func (uc *SentimentUseCase) analystSummary(ctx context.Context, log *logger.Logger, ticker string) models.AnalystSummary {
	rec, err := uc.fmp.AnalystRecommendation(ctx, ticker)
	if err != nil {
		log.Warn("analyst ratings unavailable", logger.Error(err))
		note := ratingUnavailable
		return models.AnalystSummary{Nota: &note}
	}
	return models.AnalystSummary{
		Compra:   rec.StrongBuy + rec.Buy,
		Mantener: rec.Hold,
		Venta:    rec.Sell + rec.StrongSell,
	}
}

func summarizeNews(articles []models.Article) models.NewsSummary {
	s := models.NewsSummary{Titulares: make([]models.ClassifiedHeadline, 0, len(articles))}
	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		label := ClassifyHeadline(a.Title)
		switch label {
		case models.SentimentPositive:
			s.Positivas++
		case models.SentimentNegative:
			s.Negativas++
		default:
			s.Neutrales++
		}
		h := models.ClassifiedHeadline{
			Titulo:      a.Title,
			Sentimiento: label,
			URL:         a.URL,
			Fuente:      a.Source,
		}
		if !a.PublishedAt.IsZero() {
			h.Fecha = a.PublishedAt.UTC().Format(time.RFC3339)
		}
		s.Titulares = append(s.Titulares, h)
		titles = append(titles, a.Title)
	}
	s.Resumen = TopWords(titles, topWordCount)
	return s
}
