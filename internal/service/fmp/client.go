// Package fmp is the Financial Modeling Prep REST client.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"FinScope/internal/domain/models"
	drepo "FinScope/internal/domain/repository"
	"FinScope/internal/service/upstream"
	xhttp "FinScope/pkg/http"
	"FinScope/pkg/logger"
	"FinScope/pkg/util"
)

const (
	provider = "fmp"

	defaultBaseV3 = "https://financialmodelingprep.com/api/v3"
	defaultBaseV4 = "https://financialmodelingprep.com/api/v4"
)

// Client implements drepo.FinancialData against FMP.
type Client struct {
	baseV3  string
	baseV4  string
	apiKey  string
	timeout time.Duration

	http    *xhttp.Client
	log     *logger.Logger
	metrics drepo.Metrics
}

var _ drepo.FinancialData = (*Client)(nil)

// New creates an FMP client.
func New(opts ...Option) *Client {
	c := &Client{
		baseV3:  defaultBaseV3,
		baseV4:  defaultBaseV4,
		timeout: 10 * time.Second,
		log:     logger.NewNop(),
		metrics: drepo.NopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(c.timeout))
	}
	return c
}

// HasKey reports whether a process-wide key is configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

// BuildURL appends the key to path with "&" when path already has a query
// and "?" otherwise.
func (c *Client) BuildURL(version models.APIVersion, path, key string) string {
	base := c.baseV3
	if version == models.APIv4 {
		base = c.baseV4
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return base + path + sep + "apikey=" + url.QueryEscape(key)
}

// Fetch returns the raw JSON of one endpoint. apiKey wins over the
// configured key when set.
func (c *Client) Fetch(ctx context.Context, apiKey string, ep models.Endpoint) (json.RawMessage, error) {
	body, err := c.get(ctx, util.FirstNonEmpty(apiKey, c.apiKey), ep.Version, ep.Path)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, key string, version models.APIVersion, path string) ([]byte, error) {
	start := time.Now()
	if key == "" {
		ue := upstream.MissingKey(provider, path)
		upstream.Observe(c.log, c.metrics, provider, path, start, ue)
		return nil, ue
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.BuildURL(version, path, key),
	}, &body)
	if err != nil {
		ue := upstream.Wrap(provider, path, err)
		upstream.Observe(c.log, c.metrics, provider, path, start, ue)
		return nil, ue
	}
	if !json.Valid(body) {
		ue := upstream.Decode(provider, path, fmt.Errorf("%d bytes of non-JSON", len(body)))
		upstream.Observe(c.log, c.metrics, provider, path, start, ue)
		return nil, ue
	}

	upstream.Observe(c.log, c.metrics, provider, path, start, nil)
	return body, nil
}

// decode fetches path with the configured key into dest, turning FMP's
// in-band {"Error Message": ...} replies into errors.
func (c *Client) decode(ctx context.Context, version models.APIVersion, path string, dest interface{}) error {
	body, err := c.get(ctx, c.apiKey, version, path)
	if err != nil {
		return err
	}

	var pe providerErrorDTO
	if json.Unmarshal(body, &pe) == nil && pe.ErrorMessage != "" {
		return &models.UpstreamError{
			Provider: provider,
			Endpoint: path,
			Message:  pe.ErrorMessage,
			Code:     upstream.CodeProvider,
			Body:     upstream.DecodeBody(body),
		}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return upstream.Decode(provider, path, err)
	}
	return nil
}

func tickerPath(format, ticker string) string {
	return fmt.Sprintf(format, url.PathEscape(ticker))
}
