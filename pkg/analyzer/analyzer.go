// Package analyzer turns collected entity records into insights: a weighted
// overall score, classified issues, recommendations, and competitive
// comparisons. ComputeInsights is a pure function of its input, which keeps
// it testable against mocked or fallback provider data.
package analyzer

import (
	"fmt"
	"math"

	"github.com/Boetie78/website-audits-sub000/internal/config"
	"github.com/Boetie78/website-audits-sub000/internal/models"
)

// Analyzer computes insights from a collected audit session.
type Analyzer struct {
	policy config.ScoringConfig
}

// New creates an Analyzer with the default scoring policy.
func New() *Analyzer {
	return &Analyzer{policy: config.DefaultScoring()}
}

// NewWithPolicy creates an Analyzer with a custom scoring policy.
func NewWithPolicy(policy config.ScoringConfig) *Analyzer {
	return &Analyzer{policy: policy}
}

// ComputeInsights computes the full insight bundle for a session whose
// collection phase has completed. Identical entity records always yield
// identical insights.
func (a *Analyzer) ComputeInsights(session *models.AuditSession) *models.Insights {
	main := session.Main()
	m := main.Metrics

	scores := models.CategoryScores{
		Performance: clampScore(m.Performance.PerformanceScore),
		Technical:   technicalScore(m.Technical),
		Content:     contentScore(m.Technical),
		Backlinks:   a.backlinkScore(m.Backlinks.TotalBacklinks),
		Social:      socialScore(m.Social),
	}

	insights := &models.Insights{
		OverallScore:  a.overallScore(scores),
		Scores:        scores,
		Issues:        classifyIssues(m.Technical),
		PagesAnalyzed: m.Technical.PagesAnalyzed,
	}
	insights.MarketPosition = a.marketPosition(insights.OverallScore)

	for _, issue := range insights.Issues {
		switch issue.Severity {
		case models.SeverityCritical:
			insights.CriticalIssues++
		case models.SeverityMajor:
			insights.MajorIssues++
		case models.SeverityMinor:
			insights.MinorIssues++
		}
	}

	insights.Recommendations = buildRecommendations(m)
	insights.Comparisons = buildComparisons(session)

	return insights
}

// overallScore computes round(sum(subscore*weight) / sum(weights)).
func (a *Analyzer) overallScore(s models.CategoryScores) int {
	w := a.policy.Weights
	total := w.Sum()
	if total <= 0 {
		return 0
	}
	weighted := float64(s.Performance)*w.Performance +
		float64(s.Technical)*w.Technical +
		float64(s.Content)*w.Content +
		float64(s.Backlinks)*w.Backlinks +
		float64(s.Social)*w.Social
	return clampScore(int(math.Round(weighted / total)))
}

// backlinkScore applies the monotonic volume tier table.
func (a *Analyzer) backlinkScore(totalBacklinks int) int {
	tiers := a.policy.BacklinkTiers
	for _, tier := range tiers {
		if tier.Below > 0 && totalBacklinks < tier.Below {
			return clampScore(tier.Score)
		}
	}
	// Catch-all tier (Below == 0) for every higher count.
	if n := len(tiers); n > 0 {
		return clampScore(tiers[n-1].Score)
	}
	return 0
}

// marketPosition maps the overall score to a position label.
func (a *Analyzer) marketPosition(overall int) string {
	p := a.policy.Positions
	switch {
	case overall >= p.Excellent:
		return "Excellent"
	case overall >= p.Good:
		return "Good"
	case overall >= p.Average:
		return "Average"
	default:
		return "Below Average"
	}
}

// technicalScore is the fraction of the fixed technical checklist that
// passes, scaled to 0-100.
func technicalScore(t *models.TechnicalMetrics) int {
	checks := t.TechnicalChecks()
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return int(math.Round(float64(passed) / float64(len(checks)) * 100))
}

// contentScore is a heuristic over title, description and content length.
// Each factor contributes 0, 0.5 or 1.
func contentScore(t *models.TechnicalMetrics) int {
	score := 0.0
	factors := 3.0

	if t.TitleLength > 0 && t.TitleLength <= 60 {
		score += 1.0
	} else if t.TitleLength > 0 {
		score += 0.5
	}

	if t.DescriptionLength >= 120 && t.DescriptionLength <= 160 {
		score += 1.0
	} else if t.DescriptionLength > 0 {
		score += 0.5
	}

	if t.WordCount >= 300 {
		score += 1.0
	} else if t.WordCount >= 100 {
		score += 0.5
	}

	return int(math.Round(score / factors * 100))
}

// socialScore reflects presence breadth and posting activity.
func socialScore(s *models.SocialMetrics) int {
	active := 0
	for _, followers := range []int{
		s.FacebookFollowers,
		s.TwitterFollowers,
		s.InstagramFollowers,
		s.LinkedInFollowers,
	} {
		if followers > 0 {
			active++
		}
	}

	score := active * 15
	score += int(math.Min(25, s.EngagementRate*5))
	if posts := s.PostsPerWeek * 3; posts < 15 {
		score += posts
	} else {
		score += 15
	}
	return clampScore(score)
}

// classifyIssues tags each failed technical check with a fixed severity.
func classifyIssues(t *models.TechnicalMetrics) []models.Issue {
	var issues []models.Issue
	add := func(severity models.Severity, category, description string) {
		issues = append(issues, models.Issue{
			Category:    category,
			Description: description,
			Severity:    severity,
		})
	}

	if !t.HTTPS {
		add(models.SeverityCritical, "Security", "Site is not served over HTTPS")
	}
	if !t.MobileResponsive {
		add(models.SeverityCritical, "Mobile", "No mobile viewport configured")
	}
	if !t.HasSitemap {
		add(models.SeverityMajor, "Indexing", "XML sitemap not found")
	}
	if !t.HasRobotsTxt {
		add(models.SeverityMajor, "Indexing", "robots.txt missing or invalid")
	}
	if !t.HasMetaDescription {
		add(models.SeverityMajor, "Content", "Meta description missing")
	}
	if !t.ValidTitle {
		add(models.SeverityMajor, "Content", "Title tag missing or too long")
	}
	if !t.HasCanonical {
		add(models.SeverityMinor, "Indexing", "Canonical tag missing")
	}
	if !t.ValidHeadings {
		add(models.SeverityMinor, "Content", "Heading structure should have exactly one H1")
	}
	if !t.HasSchemaMarkup {
		add(models.SeverityMinor, "Content", "No structured data (schema markup) found")
	}

	return issues
}

// buildRecommendations evaluates the independent threshold rules in a fixed
// order. Recommendations are neither deduplicated nor re-ranked: the rule
// set is small and mutually exclusive in practice, and preserving
// evaluation order keeps output deterministic.
func buildRecommendations(m models.EntityMetrics) []models.Recommendation {
	var recs []models.Recommendation

	if perf := m.Performance.PerformanceScore; perf < 80 {
		priority := models.PriorityHigh
		if perf < 50 {
			priority = models.PriorityCritical
		}
		recs = append(recs, models.Recommendation{
			Category:       "Performance",
			Recommendation: "Optimize images and reduce render-blocking resources",
			Implementation: "Compress images, enable lazy loading, and defer non-critical scripts and styles",
			ExpectedImpact: fmt.Sprintf("Raise performance score from %d toward 90+", perf),
			Timeframe:      "2-4 weeks",
			Priority:       priority,
		})
	}

	if t := m.Technical; t.TitleLength == 0 {
		recs = append(recs, models.Recommendation{
			Category:       "On-Page SEO",
			Recommendation: "Add a title tag to the home page",
			Implementation: "Write a 30-60 character title including the primary keyword and brand name",
			ExpectedImpact: "Recover rankings lost to an unindexable title",
			Timeframe:      "1 week",
			Priority:       models.PriorityCritical,
		})
	} else if t.TitleLength < 30 {
		recs = append(recs, models.Recommendation{
			Category:       "On-Page SEO",
			Recommendation: "Expand the title tag",
			Implementation: "Extend the title to 30-60 characters with the primary keyword near the front",
			ExpectedImpact: "Improved click-through rate from search results",
			Timeframe:      "1 week",
			Priority:       models.PriorityHigh,
		})
	}

	if t := m.Technical; t.DescriptionLength == 0 {
		recs = append(recs, models.Recommendation{
			Category:       "On-Page SEO",
			Recommendation: "Add a meta description",
			Implementation: "Write a unique 120-160 character description summarizing the page",
			ExpectedImpact: "Search engines stop substituting arbitrary page text in snippets",
			Timeframe:      "1 week",
			Priority:       models.PriorityHigh,
		})
	} else if t.DescriptionLength < 120 {
		recs = append(recs, models.Recommendation{
			Category:       "On-Page SEO",
			Recommendation: "Lengthen the meta description",
			Implementation: "Expand the description to 120-160 characters with a call to action",
			ExpectedImpact: "Better snippet coverage in search results",
			Timeframe:      "1 week",
			Priority:       models.PriorityMedium,
		})
	}

	if !m.Technical.HTTPS {
		recs = append(recs, models.Recommendation{
			Category:       "Security",
			Recommendation: "Migrate the site to HTTPS",
			Implementation: "Install a TLS certificate and 301-redirect all HTTP URLs",
			ExpectedImpact: "Removes the ranking penalty and browser warnings for insecure pages",
			Timeframe:      "1-2 weeks",
			Priority:       models.PriorityCritical,
		})
	}

	if !m.Technical.HasSitemap {
		recs = append(recs, models.Recommendation{
			Category:       "Indexing",
			Recommendation: "Create and submit an XML sitemap",
			Implementation: "Generate sitemap.xml, reference it from robots.txt, and submit it to search consoles",
			ExpectedImpact: "Faster and more complete crawl coverage",
			Timeframe:      "1 week",
			Priority:       models.PriorityHigh,
		})
	}

	if m.Backlinks.TotalBacklinks < 100 {
		recs = append(recs, models.Recommendation{
			Category:       "Off-Page SEO",
			Recommendation: "Launch a link-building campaign",
			Implementation: "Pursue local directories, industry publications and partner sites for backlinks",
			ExpectedImpact: "Move into the next backlink volume tier",
			Timeframe:      "2-3 months",
			Priority:       models.PriorityHigh,
		})
	}

	if m.Keywords.TotalKeywords < 10 {
		recs = append(recs, models.Recommendation{
			Category:       "Content",
			Recommendation: "Build out keyword-targeted content",
			Implementation: "Publish pages targeting commercial keywords the site does not yet rank for",
			ExpectedImpact: "Broader organic keyword footprint",
			Timeframe:      "1-3 months",
			Priority:       models.PriorityMedium,
		})
	}

	if m.Social.PostsPerWeek == 0 {
		recs = append(recs, models.Recommendation{
			Category:       "Social",
			Recommendation: "Establish a regular posting schedule",
			Implementation: "Publish at least two posts per week on the most active channel",
			ExpectedImpact: "Social signals and referral traffic recover",
			Timeframe:      "Ongoing",
			Priority:       models.PriorityMedium,
		})
	}

	return recs
}

// buildComparisons contrasts main against each competitor in input order.
// Position compares (performance + SEO) totals from the main entity's
// point of view.
func buildComparisons(session *models.AuditSession) []models.CompetitorComparison {
	main := session.Main()
	mainTotal := main.Metrics.Performance.PerformanceScore + main.Metrics.Performance.SEOScore

	var comparisons []models.CompetitorComparison
	for _, id := range session.EntityOrder {
		if id == models.EntityMain {
			continue
		}
		comp := session.Entities[id]
		compTotal := comp.Metrics.Performance.PerformanceScore + comp.Metrics.Performance.SEOScore

		position := "equal"
		switch {
		case mainTotal > compTotal:
			position = "ahead"
		case mainTotal < compTotal:
			position = "behind"
		}

		comparisons = append(comparisons, models.CompetitorComparison{
			EntityID:         id,
			Name:             comp.Name,
			Domain:           comp.Domain,
			PerformanceScore: comp.Metrics.Performance.PerformanceScore,
			SEOScore:         comp.Metrics.Performance.SEOScore,
			Position:         position,
		})
	}
	return comparisons
}

// clampScore bounds a score to [0, 100].
func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
