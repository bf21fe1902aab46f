package models

import "time"

// Severity classifies a technical or content finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Issue is one classified finding from the analysis phase.
type Issue struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Recommendation is one actionable improvement with delivery metadata.
type Recommendation struct {
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	Implementation string `json:"implementation"`
	ExpectedImpact string `json:"expected_impact"`
	Timeframe      string `json:"timeframe"`
	Priority       string `json:"priority"`
}

// Recommendation priorities, strongest first.
const (
	PriorityCritical = "Critical"
	PriorityHigh     = "High"
	PriorityMedium   = "Medium"
	PriorityLow      = "Low"
)

// CompetitorComparison contrasts the main entity with one competitor.
// Position is "ahead", "behind" or "equal" from the main entity's point
// of view.
type CompetitorComparison struct {
	EntityID         string `json:"entity_id"`
	Name             string `json:"name"`
	Domain           string `json:"domain"`
	PerformanceScore int    `json:"performance_score"`
	SEOScore         int    `json:"seo_score"`
	Position         string `json:"position"`
}

// CategoryScores are the normalized 0-100 sub-scores that feed the
// weighted overall score.
type CategoryScores struct {
	Performance int `json:"performance"`
	Technical   int `json:"technical"`
	Content     int `json:"content"`
	Backlinks   int `json:"backlinks"`
	Social      int `json:"social"`
}

// Insights is the computed bundle of scores, issues, recommendations and
// comparisons. It is a pure function of the collected entity records: no
// timestamps, no randomness.
type Insights struct {
	OverallScore    int                    `json:"overall_score"`
	MarketPosition  string                 `json:"market_position"`
	Scores          CategoryScores         `json:"scores"`
	Issues          []Issue                `json:"issues"`
	CriticalIssues  int                    `json:"critical_issues"`
	MajorIssues     int                    `json:"major_issues"`
	MinorIssues     int                    `json:"minor_issues"`
	PagesAnalyzed   int                    `json:"pages_analyzed"`
	Recommendations []Recommendation       `json:"recommendations"`
	Comparisons     []CompetitorComparison `json:"comparisons"`
}

// Table is the shared intermediate structure behind each report section.
// HTML rows and CSV rows are both rendered from it, which keeps the two
// in sync by construction.
type Table struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Report is the assembled output document plus per-section CSV extracts,
// keyed by table slug.
type Report struct {
	SessionID   string            `json:"session_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	HTML        string            `json:"html"`
	Tables      []Table           `json:"tables"`
	CSVSections map[string]string `json:"csv_sections"`
}
