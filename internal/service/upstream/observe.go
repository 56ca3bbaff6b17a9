package upstream

import (
	"time"

	"FinScope/internal/domain/models"
	drepo "FinScope/internal/domain/repository"
	"FinScope/pkg/logger"
)

// Observe logs and records the outcome of one provider call.
func Observe(log *logger.Logger, m drepo.Metrics, provider, endpoint string, start time.Time, err *models.UpstreamError) {
	elapsed := time.Since(start)
	if err == nil {
		m.RecordUpstream(provider, "ok", elapsed.Seconds())
		log.Debug("upstream call succeeded",
			logger.String("provider", provider),
			logger.String("endpoint", endpoint),
			logger.Duration("latency", elapsed))
		return
	}

	m.RecordUpstream(provider, "error", elapsed.Seconds())
	fields := []logger.Field{
		logger.String("provider", provider),
		logger.String("endpoint", endpoint),
		logger.String("code", err.Code),
		logger.String("message", err.Message),
		logger.Duration("latency", elapsed),
		logger.Error(err.Err),
	}
	if err.Status != 0 {
		fields = append(fields, logger.Int("status", err.Status))
	}
	log.Error("upstream call failed", fields...)
}
