package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	requests  *prometheus.CounterVec
	upstream  *prometheus.CounterVec
	upLatency *prometheus.HistogramVec
	latency   *prometheus.HistogramVec
}

// New registers the aggregator metrics on reg, or on the default registry
// when reg is nil.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscope_aggregations_total",
				Help: "Aggregation requests by handler and result",
			},
			[]string{"handler", "result"},
		),
		upstream: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscope_upstream_requests_total",
				Help: "Upstream provider calls by provider and result",
			},
			[]string{"provider", "result"},
		),
		upLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finscope_upstream_duration_seconds",
				Help:    "Upstream provider call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finscope_operation_duration_seconds",
				Help:    "Duration of aggregation stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRequest counts one aggregation outcome.
func (r *Recorder) RecordRequest(handler, result string) {
	r.requests.WithLabelValues(handler, result).Inc()
}

// RecordUpstream records one provider call.
func (r *Recorder) RecordUpstream(provider, result string, seconds float64) {
	r.upstream.WithLabelValues(provider, result).Inc()
	r.upLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
