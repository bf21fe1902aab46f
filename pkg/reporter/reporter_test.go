package reporter

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Boetie78/website-audits-sub000/internal/models"
	"github.com/Boetie78/website-audits-sub000/pkg/analyzer"
	"github.com/Boetie78/website-audits-sub000/pkg/providers"
)

func fallbackMetrics() models.EntityMetrics {
	return models.EntityMetrics{
		Performance: providers.FallbackPerformance(),
		Backlinks:   providers.FallbackBacklinks(),
		Keywords:    providers.FallbackKeywords(),
		Technical:   providers.FallbackTechnical(),
		Social:      providers.FallbackSocial(),
	}
}

func testSession(competitors ...string) *models.AuditSession {
	session := &models.AuditSession{
		ID:          "acme-co_20260829",
		CreatedAt:   time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
		Customer:    models.Customer{CompanyName: "Acme Co", Website: "acme.com", Industry: "Plumbing"},
		Competitors: competitors,
		EntityOrder: []string{models.EntityMain},
		Entities: map[string]*models.Entity{
			models.EntityMain: {
				ID: models.EntityMain, Name: "Acme Co", Domain: "acme.com",
				URL: "https://acme.com", Metrics: fallbackMetrics(),
			},
		},
	}
	for i, name := range competitors {
		id := models.CompetitorID(i + 1)
		session.EntityOrder = append(session.EntityOrder, id)
		session.Entities[id] = &models.Entity{
			ID: id, Name: name, Domain: name + ".com",
			URL: "https://" + name + ".com", Metrics: fallbackMetrics(),
		}
	}
	return session
}

func assemble(t *testing.T, session *models.AuditSession) *models.Report {
	t.Helper()
	insights := analyzer.New().ComputeInsights(session)
	report, err := New().Assemble(session, insights)
	require.NoError(t, err)
	return report
}

func TestAssembleSectionKeys(t *testing.T) {
	report := assemble(t, testSession())

	for _, slug := range []string{
		"metadata-analysis",
		"technical-issues",
		"keyword-performance",
		"backlink-analysis",
		"competitor-comparison",
		"recommendations",
	} {
		assert.Contains(t, report.CSVSections, slug)
	}
	assert.Len(t, report.CSVSections, 6)
	assert.Equal(t, "acme-co_20260829", report.SessionID)
}

// The HTML tables and the CSV extracts are rendered from the same Table
// values; every data row must appear in both with identical cell values.
func TestHTMLAndCSVRowParity(t *testing.T) {
	report := assemble(t, testSession("rival"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(report.HTML))
	require.NoError(t, err)

	for _, table := range report.Tables {
		records, err := csv.NewReader(strings.NewReader(report.CSVSections[slugFor(t, report, table.Title)])).ReadAll()
		require.NoError(t, err, "table %s", table.Title)

		require.NotEmpty(t, records)
		assert.Equal(t, table.Headers, records[0])
		assert.Equal(t, len(table.Rows), len(records)-1, "csv rows for %s", table.Title)

		card := findCard(doc, table.Title)
		require.NotNil(t, card, "missing card for %s", table.Title)

		htmlRows := card.Find("tbody tr")
		assert.Equal(t, len(table.Rows), htmlRows.Length(), "html rows for %s", table.Title)

		htmlRows.Each(func(i int, row *goquery.Selection) {
			cells := row.Find("td")
			require.Equal(t, len(table.Headers), cells.Length())
			cells.Each(func(j int, cell *goquery.Selection) {
				assert.Equal(t, table.Rows[i][j], strings.TrimSpace(cell.Text()),
					"table %s row %d col %d", table.Title, i, j)
			})
		})
	}
}

func TestEmptySectionsRenderPlaceholder(t *testing.T) {
	// No competitors means the comparison table has headers but no rows.
	report := assemble(t, testSession())

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(report.HTML))
	require.NoError(t, err)

	card := findCard(doc, "Competitor Comparison")
	require.NotNil(t, card)
	assert.Equal(t, 0, card.Find("table").Length())
	assert.Contains(t, card.Text(), "No data available")

	// The CSV extract still carries the header row.
	section := report.CSVSections["competitor-comparison"]
	records, err := csv.NewReader(strings.NewReader(section)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Competitor", "Domain", "Performance", "SEO", "Position"}, records[0])
}

func TestReportHeaderAndSummary(t *testing.T) {
	report := assemble(t, testSession())

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(report.HTML))
	require.NoError(t, err)

	header := doc.Find(".header").Text()
	assert.Contains(t, header, "Acme Co")
	assert.Contains(t, header, "acme.com")
	assert.Contains(t, header, "acme-co_20260829")

	body := doc.Text()
	assert.Contains(t, body, "Market Position")
	assert.Contains(t, body, "Average")
}

func TestCSVEscapesCommasAndQuotes(t *testing.T) {
	table := models.Table{
		Title:   "Escaping",
		Headers: []string{"Name", "Note"},
		Rows:    [][]string{{`Acme, Inc.`, `said "hello"`}},
	}

	text, err := tableCSV(table)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `Acme, Inc.`, records[1][0])
	assert.Equal(t, `said "hello"`, records[1][1])
}

// findCard returns the .card div whose h2 matches title.
func findCard(doc *goquery.Document, title string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("div.card").Each(func(_ int, card *goquery.Selection) {
		if strings.TrimSpace(card.Find("h2").First().Text()) == title {
			found = card
		}
	})
	return found
}

func slugFor(t *testing.T, report *models.Report, title string) string {
	t.Helper()
	slug := strings.Trim(strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}, strings.ToLower(title)), "-")
	require.Contains(t, report.CSVSections, slug)
	return slug
}
