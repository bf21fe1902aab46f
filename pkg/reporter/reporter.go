// Package reporter assembles the final audit document. Every report section
// is built from one shared Table value, and both the HTML rows and the CSV
// extract are rendered from it, so the two can never drift apart.
package reporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/Boetie78/website-audits-sub000/internal/models"
	"github.com/Boetie78/website-audits-sub000/pkg/utils"
)

// Reporter assembles reports from a collected session and its insights.
type Reporter struct {
	now func() time.Time
}

// New creates a Reporter.
func New() *Reporter {
	return &Reporter{now: time.Now}
}

// Assemble merges customer metadata, collected records and computed
// insights into the final report: one HTML document plus a CSV extract per
// table. Empty sections render a "no data available" placeholder instead
// of failing.
func (r *Reporter) Assemble(session *models.AuditSession, insights *models.Insights) (*models.Report, error) {
	tables := []models.Table{
		metadataTable(session),
		issuesTable(insights),
		keywordTable(session.Main()),
		backlinkTable(session),
		comparisonTable(insights),
		recommendationsTable(insights),
	}

	csvSections := make(map[string]string, len(tables))
	for _, t := range tables {
		text, err := tableCSV(t)
		if err != nil {
			return nil, fmt.Errorf("render csv for %q: %w", t.Title, err)
		}
		csvSections[utils.Slugify(t.Title)] = text
	}

	generatedAt := r.now()
	html, err := renderHTML(session, insights, tables, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	return &models.Report{
		SessionID:   session.ID,
		GeneratedAt: generatedAt,
		HTML:        html,
		Tables:      tables,
		CSVSections: csvSections,
	}, nil
}

func metadataTable(session *models.AuditSession) models.Table {
	t := models.Table{
		Title:   "Metadata Analysis",
		Headers: []string{"Entity", "Domain", "Title", "Title Length", "Description Length", "Word Count"},
	}
	for _, id := range session.EntityOrder {
		e := session.Entities[id]
		tech := e.Metrics.Technical
		if tech == nil {
			continue
		}
		t.Rows = append(t.Rows, []string{
			e.Name,
			e.Domain,
			utils.TruncateText(tech.Title, 60),
			strconv.Itoa(tech.TitleLength),
			strconv.Itoa(tech.DescriptionLength),
			strconv.Itoa(tech.WordCount),
		})
	}
	return t
}

func issuesTable(insights *models.Insights) models.Table {
	t := models.Table{
		Title:   "Technical Issues",
		Headers: []string{"Severity", "Category", "Issue"},
	}
	for _, issue := range insights.Issues {
		t.Rows = append(t.Rows, []string{
			string(issue.Severity),
			issue.Category,
			issue.Description,
		})
	}
	return t
}

func keywordTable(main *models.Entity) models.Table {
	t := models.Table{
		Title:   "Keyword Performance",
		Headers: []string{"Keyword", "Position", "Search Volume"},
	}
	if main.Metrics.Keywords == nil {
		return t
	}
	for _, k := range main.Metrics.Keywords.RankedKeywords {
		t.Rows = append(t.Rows, []string{
			k.Keyword,
			strconv.Itoa(k.Position),
			strconv.Itoa(k.Volume),
		})
	}
	return t
}

func backlinkTable(session *models.AuditSession) models.Table {
	t := models.Table{
		Title:   "Backlink Analysis",
		Headers: []string{"Entity", "Domain", "Total Backlinks", "Referring Domains", "Domain Authority"},
	}
	for _, id := range session.EntityOrder {
		e := session.Entities[id]
		b := e.Metrics.Backlinks
		if b == nil {
			continue
		}
		t.Rows = append(t.Rows, []string{
			e.Name,
			e.Domain,
			strconv.Itoa(b.TotalBacklinks),
			strconv.Itoa(b.ReferringDomains),
			strconv.Itoa(b.DomainAuthority),
		})
	}
	return t
}

func comparisonTable(insights *models.Insights) models.Table {
	t := models.Table{
		Title:   "Competitor Comparison",
		Headers: []string{"Competitor", "Domain", "Performance", "SEO", "Position"},
	}
	for _, c := range insights.Comparisons {
		t.Rows = append(t.Rows, []string{
			c.Name,
			c.Domain,
			strconv.Itoa(c.PerformanceScore),
			strconv.Itoa(c.SEOScore),
			c.Position,
		})
	}
	return t
}

func recommendationsTable(insights *models.Insights) models.Table {
	t := models.Table{
		Title:   "Recommendations",
		Headers: []string{"Priority", "Category", "Recommendation", "Implementation", "Expected Impact", "Timeframe"},
	}
	for _, rec := range insights.Recommendations {
		t.Rows = append(t.Rows, []string{
			rec.Priority,
			rec.Category,
			rec.Recommendation,
			rec.Implementation,
			rec.ExpectedImpact,
			rec.Timeframe,
		})
	}
	return t
}

// tableCSV renders a table as CSV text, header row first.
func tableCSV(t models.Table) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return "", err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// reportView is the data handed to the HTML template.
type reportView struct {
	Customer    models.Customer
	SessionID   string
	GeneratedAt time.Time
	Insights    *models.Insights
	Tables      []models.Table
}

func renderHTML(session *models.AuditSession, insights *models.Insights, tables []models.Table, generatedAt time.Time) (string, error) {
	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, reportView{
		Customer:    session.Customer,
		SessionID:   session.ID,
		GeneratedAt: generatedAt,
		Insights:    insights,
		Tables:      tables,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
