package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"

	"github.com/Boetie78/website-audits-sub000/internal/models"
)

// pagespeedResponse mirrors the lighthouse-style performance scanner shape.
// Category scores arrive as fractions in [0, 1].
type pagespeedResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance   lighthouseCategory `json:"performance"`
			SEO           lighthouseCategory `json:"seo"`
			Accessibility lighthouseCategory `json:"accessibility"`
			BestPractices lighthouseCategory `json:"best-practices"`
		} `json:"categories"`
	} `json:"lighthouseResult"`
}

type lighthouseCategory struct {
	Score float64 `json:"score"`
}

func (c *Client) fetchPerformance(ctx context.Context, entity *models.Entity) (models.MetricPayload, error) {
	endpoint := c.cfg.PageSpeed.Endpoint
	if endpoint == "" {
		return nil, fmt.Errorf("performance provider not configured")
	}

	q := url.Values{}
	q.Set("url", entity.URL)
	q.Set("category", "performance")
	if c.cfg.PageSpeed.APIKey != "" {
		q.Set("key", c.cfg.PageSpeed.APIKey)
	}

	body, err := c.get(ctx, endpoint+"?"+q.Encode(), "")
	if err != nil {
		return nil, err
	}

	var resp pagespeedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode performance response: %w", err)
	}

	cats := resp.LighthouseResult.Categories
	return &models.PerformanceMetrics{
		PerformanceScore:   toScore(cats.Performance.Score),
		SEOScore:           toScore(cats.SEO.Score),
		AccessibilityScore: toScore(cats.Accessibility.Score),
		BestPracticesScore: toScore(cats.BestPractices.Score),
	}, nil
}

// toScore converts a lighthouse fraction into a 0-100 integer.
func toScore(fraction float64) int {
	s := int(math.Round(fraction * 100))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
