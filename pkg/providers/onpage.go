package providers

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"github.com/temoto/robotstxt"

	"github.com/Boetie78/website-audits-sub000/internal/models"
)

// fetchTechnical runs the on-page content scanner: it fetches the entity's
// landing page, extracts metadata and structural signals, and probes for
// sitemap.xml and robots.txt. This is the one category with a live local
// implementation rather than a remote index.
func (c *Client) fetchTechnical(ctx context.Context, entity *models.Entity) (models.MetricPayload, error) {
	body, err := c.get(ctx, entity.URL, "")
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	desc = strings.TrimSpace(desc)

	base := strings.TrimSuffix(entity.URL, "/")

	m := &models.TechnicalMetrics{
		Title:              title,
		TitleLength:        len(title),
		Description:        desc,
		DescriptionLength:  len(desc),
		HTTPS:              strings.HasPrefix(entity.URL, "https://"),
		MobileResponsive:   doc.Find(`meta[name="viewport"]`).Length() > 0,
		HasSitemap:         c.head(ctx, base+"/sitemap.xml"),
		HasRobotsTxt:       c.hasValidRobots(ctx, base),
		HasCanonical:       doc.Find(`link[rel="canonical"]`).Length() > 0,
		HasMetaDescription: desc != "",
		ValidTitle:         len(title) > 0 && len(title) <= 60,
		ValidHeadings:      doc.Find("h1").Length() == 1,
		HasSchemaMarkup:    doc.Find(`script[type="application/ld+json"]`).Length() > 0,
		WordCount:          wordCount(body, doc),
		PagesAnalyzed:      1,
	}
	return m, nil
}

// hasValidRobots fetches robots.txt and checks it actually parses.
func (c *Client) hasValidRobots(ctx context.Context, base string) bool {
	body, err := c.get(ctx, base+"/robots.txt", "")
	if err != nil {
		return false
	}
	_, err = robotstxt.FromBytes(body)
	return err == nil
}

// wordCount measures the main content text, preferring trafilatura's
// extraction and falling back to the raw body text.
func wordCount(body []byte, doc *goquery.Document) int {
	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{})
	if err == nil && result != nil && result.ContentText != "" {
		return len(strings.Fields(result.ContentText))
	}
	return len(strings.Fields(doc.Find("body").Text()))
}
