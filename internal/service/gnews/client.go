// Package gnews is the GNews search API client.
package gnews

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"FinScope/internal/domain/models"
	drepo "FinScope/internal/domain/repository"
	"FinScope/internal/service/upstream"
	xhttp "FinScope/pkg/http"
	"FinScope/pkg/logger"
)

const (
	provider = "gnews"

	defaultBaseURL = "https://gnews.io/api/v4"
	searchPath     = "/search"
)

type searchResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Client implements drepo.NewsSource.
type Client struct {
	baseURL string
	apiKey  string
	lang    string
	timeout time.Duration

	http    *xhttp.Client
	log     *logger.Logger
	metrics drepo.Metrics
}

var _ drepo.NewsSource = (*Client)(nil)

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// WithLang fixes the search language.
func WithLang(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.lang = lang
		}
	}
}

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

// New creates a GNews client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		lang:    "es",
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

func (c *Client) HasKey() bool { return c.apiKey != "" }

// Search returns up to limit articles matching query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.Article, error) {
	start := time.Now()
	if c.apiKey == "" {
		ue := upstream.MissingKey(provider, searchPath)
		upstream.Observe(c.log, c.metrics, provider, searchPath, start, ue)
		return nil, ue
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + searchPath,
		QueryParams: map[string][]string{
			"q":     {query},
			"lang":  {c.lang},
			"max":   {strconv.Itoa(limit)},
			"token": {c.apiKey},
		},
	}, &body)
	if err != nil {
		ue := upstream.Wrap(provider, searchPath, err)
		upstream.Observe(c.log, c.metrics, provider, searchPath, start, ue)
		return nil, ue
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		ue := upstream.Decode(provider, searchPath, err)
		upstream.Observe(c.log, c.metrics, provider, searchPath, start, ue)
		return nil, ue
	}
	upstream.Observe(c.log, c.metrics, provider, searchPath, start, nil)

	out := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if limit > 0 && len(out) == limit {
			break
		}
		art := models.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
		}
		if ts, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			art.PublishedAt = ts
		}
		out = append(out, art)
	}
	return out, nil
}
