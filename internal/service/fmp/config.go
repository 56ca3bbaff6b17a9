package fmp

import (
	"time"

	drepo "FinScope/internal/domain/repository"
	xhttp "FinScope/pkg/http"
	"FinScope/pkg/logger"
)

// Option configures Client.
type Option func(*Client)

// WithBaseURLs sets the v3 and v4 base URLs. Empty values are ignored.
func WithBaseURLs(v3, v4 string) Option {
	return func(c *Client) {
		if v3 != "" {
			c.baseV3 = v3
		}
		if v4 != "" {
			c.baseV4 = v4
		}
	}
}

// WithAPIKey sets the process-wide key used when a call has none.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout bounds every upstream call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHTTPClient(h *xhttp.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}
