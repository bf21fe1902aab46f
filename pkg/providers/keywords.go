package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Boetie78/website-audits-sub000/internal/models"
)

// keywordResponse mirrors the keyword-rank index shape.
type keywordResponse struct {
	TotalKeywords int            `json:"total_keywords"`
	Keywords      []keywordEntry `json:"keywords"`
}

type keywordEntry struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	Volume   int    `json:"search_volume"`
}

func (c *Client) fetchKeywords(ctx context.Context, entity *models.Entity) (models.MetricPayload, error) {
	endpoint := c.cfg.Keywords.Endpoint
	if endpoint == "" {
		return nil, fmt.Errorf("keyword provider not configured")
	}

	q := url.Values{}
	q.Set("domain", entity.Domain)

	body, err := c.get(ctx, endpoint+"?"+q.Encode(), c.cfg.Keywords.APIKey)
	if err != nil {
		return nil, err
	}

	var resp keywordResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode keyword response: %w", err)
	}

	ranked := make([]models.KeywordRank, 0, len(resp.Keywords))
	for _, k := range resp.Keywords {
		ranked = append(ranked, models.KeywordRank{
			Keyword:  k.Keyword,
			Position: k.Position,
			Volume:   k.Volume,
		})
	}

	total := resp.TotalKeywords
	if total == 0 {
		total = len(ranked)
	}

	return &models.KeywordMetrics{
		TotalKeywords:  total,
		RankedKeywords: ranked,
	}, nil
}
