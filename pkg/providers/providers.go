// Package providers implements the metric provider adapter: a uniform way
// to fetch one metric category for one entity from an external SEO data
// source, normalize the response, and substitute a deterministic fallback
// payload when the provider fails. Provider errors never escape this
// package; from the caller's point of view every fetch succeeds.
package providers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Boetie78/website-audits-sub000/internal/config"
	"github.com/Boetie78/website-audits-sub000/internal/metrics"
	"github.com/Boetie78/website-audits-sub000/internal/models"
)

// maxResponseBody caps provider response reads at 10 MB.
const maxResponseBody = 10 << 20

// MetricResult is the outcome of one fetch. Payload is always non-nil and
// always has the category's full shape; Live records whether it came from
// the provider or from the fallback table.
type MetricResult struct {
	Category models.MetricCategory
	Payload  models.MetricPayload
	Live     bool
}

// Client fetches and normalizes metrics from the configured providers.
type Client struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New creates a Client with a shared HTTP transport and an outbound rate
// limiter sized from the configuration.
func New(cfg config.ProviderConfig, logger *slog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps < 1 {
		rps = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:  logger,
	}
}

// FetchMetric fetches one category for one entity. It never returns an
// error: any provider failure (network, non-2xx, malformed payload,
// missing configuration, timeout) is logged and replaced with the
// category's fallback payload.
func (c *Client) FetchMetric(ctx context.Context, category models.MetricCategory, entity *models.Entity) MetricResult {
	payload, err := c.fetch(ctx, category, entity)
	if err != nil {
		c.logger.Warn("provider call failed, using fallback",
			"category", string(category),
			"entity", entity.ID,
			"domain", entity.Domain,
			"error", err,
		)
		metrics.ProviderRequests.WithLabelValues(string(category), "fallback").Inc()
		return MetricResult{Category: category, Payload: Fallback(category), Live: false}
	}
	metrics.ProviderRequests.WithLabelValues(string(category), "live").Inc()
	return MetricResult{Category: category, Payload: payload, Live: true}
}

func (c *Client) fetch(ctx context.Context, category models.MetricCategory, entity *models.Entity) (models.MetricPayload, error) {
	switch category {
	case models.CategoryPerformance:
		return c.fetchPerformance(ctx, entity)
	case models.CategoryBacklinks:
		return c.fetchBacklinks(ctx, entity)
	case models.CategoryKeywords:
		return c.fetchKeywords(ctx, entity)
	case models.CategoryTechnical:
		return c.fetchTechnical(ctx, entity)
	case models.CategorySocial:
		// No live social provider exists; the synthetic payload is the
		// provider's normal result, not a failure.
		return FallbackSocial(), nil
	default:
		return nil, fmt.Errorf("unknown metric category %q", category)
	}
}

// get issues a rate-limited GET and returns the body for 2xx responses.
func (c *Client) get(ctx context.Context, url string, apiKey string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json, text/html")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// head issues a rate-limited HEAD and reports whether the target answered
// with a non-error status.
func (c *Client) head(ctx context.Context, url string) bool {
	if err := c.limiter.Wait(ctx); err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}
