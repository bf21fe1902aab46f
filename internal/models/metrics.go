package models

// MetricCategory identifies one of the data categories collected per entity.
type MetricCategory string

const (
	CategoryPerformance MetricCategory = "performance"
	CategoryBacklinks   MetricCategory = "backlinks"
	CategoryKeywords    MetricCategory = "keywords"
	CategoryTechnical   MetricCategory = "technical"
	CategorySocial      MetricCategory = "social"
)

// Categories returns all metric categories in collection order. The order is
// fixed: it determines checklist update ordering during a run.
func Categories() []MetricCategory {
	return []MetricCategory{
		CategoryPerformance,
		CategoryBacklinks,
		CategoryKeywords,
		CategoryTechnical,
		CategorySocial,
	}
}

// MetricPayload is the normalized result of one provider call. Fallback
// payloads implement the same concrete types, so downstream code never
// branches on whether data came from a live provider.
type MetricPayload interface {
	Category() MetricCategory
}

// PerformanceMetrics holds lighthouse-style scores, each 0-100.
type PerformanceMetrics struct {
	PerformanceScore   int `json:"performance_score"`
	SEOScore           int `json:"seo_score"`
	AccessibilityScore int `json:"accessibility_score"`
	BestPracticesScore int `json:"best_practices_score"`
}

func (*PerformanceMetrics) Category() MetricCategory { return CategoryPerformance }

// BacklinkMetrics holds backlink index counts.
type BacklinkMetrics struct {
	TotalBacklinks   int `json:"total_backlinks"`
	ReferringDomains int `json:"referring_domains"`
	DomainAuthority  int `json:"domain_authority"`
}

func (*BacklinkMetrics) Category() MetricCategory { return CategoryBacklinks }

// KeywordRank is one keyword the entity ranks for.
type KeywordRank struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	Volume   int    `json:"volume"`
}

// KeywordMetrics holds keyword-rank index data.
type KeywordMetrics struct {
	TotalKeywords  int           `json:"total_keywords"`
	RankedKeywords []KeywordRank `json:"ranked_keywords"`
}

func (*KeywordMetrics) Category() MetricCategory { return CategoryKeywords }

// TechnicalMetrics holds on-page metadata plus the boolean technical
// checklist that feeds the technical sub-score.
type TechnicalMetrics struct {
	Title              string `json:"title"`
	TitleLength        int    `json:"title_length"`
	Description        string `json:"description"`
	DescriptionLength  int    `json:"description_length"`
	HTTPS              bool   `json:"https"`
	MobileResponsive   bool   `json:"mobile_responsive"`
	HasSitemap         bool   `json:"has_sitemap"`
	HasRobotsTxt       bool   `json:"has_robots_txt"`
	HasCanonical       bool   `json:"has_canonical"`
	HasMetaDescription bool   `json:"has_meta_description"`
	ValidTitle         bool   `json:"valid_title"`
	ValidHeadings      bool   `json:"valid_headings"`
	HasSchemaMarkup    bool   `json:"has_schema_markup"`
	WordCount          int    `json:"word_count"`
	PagesAnalyzed      int    `json:"pages_analyzed"`
}

func (*TechnicalMetrics) Category() MetricCategory { return CategoryTechnical }

// TechnicalChecks returns the fixed boolean checklist in a stable order. The
// technical sub-score is the fraction of these that pass.
func (t *TechnicalMetrics) TechnicalChecks() []bool {
	return []bool{
		t.HTTPS,
		t.MobileResponsive,
		t.HasSitemap,
		t.HasRobotsTxt,
		t.HasCanonical,
		t.HasMetaDescription,
		t.ValidTitle,
		t.ValidHeadings,
	}
}

// SocialMetrics holds social presence data. There is no live provider for
// this category; payloads are always synthetic (documented policy).
type SocialMetrics struct {
	FacebookFollowers  int     `json:"facebook_followers"`
	TwitterFollowers   int     `json:"twitter_followers"`
	InstagramFollowers int     `json:"instagram_followers"`
	LinkedInFollowers  int     `json:"linkedin_followers"`
	EngagementRate     float64 `json:"engagement_rate"`
	PostsPerWeek       int     `json:"posts_per_week"`
}

func (*SocialMetrics) Category() MetricCategory { return CategorySocial }

// EntityMetrics maps each category to its normalized payload. Fields are nil
// until collected and populated exactly once.
type EntityMetrics struct {
	Performance *PerformanceMetrics `json:"performance"`
	Backlinks   *BacklinkMetrics    `json:"backlinks"`
	Keywords    *KeywordMetrics     `json:"keywords"`
	Technical   *TechnicalMetrics   `json:"technical"`
	Social      *SocialMetrics      `json:"social"`
}

// Apply stores the payload in the field matching its category.
func (m *EntityMetrics) Apply(p MetricPayload) {
	switch v := p.(type) {
	case *PerformanceMetrics:
		m.Performance = v
	case *BacklinkMetrics:
		m.Backlinks = v
	case *KeywordMetrics:
		m.Keywords = v
	case *TechnicalMetrics:
		m.Technical = v
	case *SocialMetrics:
		m.Social = v
	}
}

// Complete reports whether every category has been populated.
func (m *EntityMetrics) Complete() bool {
	return m.Performance != nil &&
		m.Backlinks != nil &&
		m.Keywords != nil &&
		m.Technical != nil &&
		m.Social != nil
}

// Entity is one audited website: the business itself or a competitor.
type Entity struct {
	ID      string        `json:"entity_id"`
	Name    string        `json:"name"`
	Domain  string        `json:"domain"`
	URL     string        `json:"url"`
	Metrics EntityMetrics `json:"metrics"`
}
