package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Boetie78/website-audits-sub000/internal/models"
)

// backlinkResponse accepts both flat and summary-nested index shapes; the
// adapter normalizes either into BacklinkMetrics.
type backlinkResponse struct {
	TotalBacklinks   int              `json:"total_backlinks"`
	ReferringDomains int              `json:"referring_domains"`
	DomainAuthority  int              `json:"domain_authority"`
	Summary          *backlinkSummary `json:"summary"`
}

type backlinkSummary struct {
	TotalBacklinks   int `json:"total_backlinks"`
	ReferringDomains int `json:"referring_domains"`
	DomainAuthority  int `json:"domain_authority"`
}

func (c *Client) fetchBacklinks(ctx context.Context, entity *models.Entity) (models.MetricPayload, error) {
	endpoint := c.cfg.Backlinks.Endpoint
	if endpoint == "" {
		return nil, fmt.Errorf("backlink provider not configured")
	}

	q := url.Values{}
	q.Set("target", entity.Domain)

	body, err := c.get(ctx, endpoint+"?"+q.Encode(), c.cfg.Backlinks.APIKey)
	if err != nil {
		return nil, err
	}

	var resp backlinkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode backlink response: %w", err)
	}

	m := &models.BacklinkMetrics{
		TotalBacklinks:   resp.TotalBacklinks,
		ReferringDomains: resp.ReferringDomains,
		DomainAuthority:  resp.DomainAuthority,
	}
	if resp.Summary != nil {
		m.TotalBacklinks = resp.Summary.TotalBacklinks
		m.ReferringDomains = resp.Summary.ReferringDomains
		m.DomainAuthority = resp.Summary.DomainAuthority
	}
	return m, nil
}
