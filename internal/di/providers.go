package di

import (
	"fmt"

	"FinScope/internal/domain/repository"
	"FinScope/internal/handler/api"
	"FinScope/internal/service/fmp"
	"FinScope/internal/service/gnews"
	"FinScope/internal/usecase"
	"FinScope/pkg/config"
	xhttp "FinScope/pkg/http"
	pkgkafka "FinScope/pkg/kafka"
	applogger "FinScope/pkg/logger"
	"FinScope/pkg/metrics"
	"FinScope/pkg/server"
)

// ProvideKafkaProducer creates the Kafka producer, or nil when Kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger creates the application logger and, when enabled, attaches
// the error collector publishing to Kafka.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if cfg.Log.Collector.Enabled && producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.Collector.Interval,
			CountThreshold: cfg.Log.Collector.CountThreshold,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

func ProvideFMPClient(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.FinancialData {
	return fmp.New(
		fmp.WithBaseURLs(cfg.FMP.BaseURL, cfg.FMP.BaseURLV4),
		fmp.WithAPIKey(cfg.FMP.APIKey),
		fmp.WithTimeout(cfg.FMP.Timeout),
		fmp.WithLogger(l),
		fmp.WithMetrics(m),
	)
}

func ProvideNewsClient(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.NewsSource {
	return gnews.New(
		gnews.WithBaseURL(cfg.GNews.BaseURL),
		gnews.WithAPIKey(cfg.GNews.APIKey),
		gnews.WithLang(cfg.GNews.Lang),
		gnews.WithTimeout(cfg.GNews.Timeout),
		gnews.WithLogger(l),
		gnews.WithMetrics(m),
	)
}

func ProvideProfileUseCase(cfg *config.Config, data repository.FinancialData, l *applogger.Logger, m repository.Metrics) *usecase.ProfileUseCase {
	return usecase.NewProfileUseCase(data, cfg.Aggregator.ProfileConcurrency, l, m)
}

func ProvideSentimentUseCase(cfg *config.Config, data repository.FinancialData, news repository.NewsSource, l *applogger.Logger, m repository.Metrics) *usecase.SentimentUseCase {
	return usecase.NewSentimentUseCase(data, news, cfg.GNews.Max, cfg.Aggregator.PriceHistoryDays, l, m)
}

func ProvideMoatUseCase(data repository.FinancialData, l *applogger.Logger, m repository.Metrics) *usecase.MoatUseCase {
	return usecase.NewMoatUseCase(data, l, m)
}

// ProvideHTTPHandler registers the aggregation routes.
func ProvideHTTPHandler(
	cfg *config.Config,
	l *applogger.Logger,
	profile *usecase.ProfileUseCase,
	sentiment *usecase.SentimentUseCase,
	moat *usecase.MoatUseCase,
) xhttp.Handler {
	return api.NewAggregatorEchoHandler(l, profile, sentiment, moat).
		WithDeadline(cfg.Aggregator.UpstreamTimeout)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, producer *pkgkafka.Producer) *server.App {
	return server.New(cfg, l, h, producer)
}
