package reporter

// reportTemplate is the document skeleton. Section order is fixed:
// header/KPIs, site health, then the data tables, then next steps.
const reportTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>SEO Audit - {{.Customer.CompanyName}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background: #f5f5f5;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 2rem;
            border-radius: 10px;
            margin-bottom: 2rem;
        }
        .card {
            background: white;
            border-radius: 10px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        .kpi-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 1rem;
            margin: 1rem 0;
        }
        .kpi {
            text-align: center;
            padding: 1rem;
            background: #f8f9fa;
            border-radius: 8px;
        }
        .kpi-value {
            font-size: 2rem;
            font-weight: bold;
            color: #667eea;
        }
        .kpi-label {
            color: #666;
            font-size: 0.9rem;
            margin-top: 0.5rem;
        }
        .position {
            display: inline-block;
            padding: 0.5rem 1rem;
            background: #28a745;
            color: white;
            border-radius: 5px;
            font-weight: bold;
            font-size: 1.2rem;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin: 1rem 0;
        }
        th, td {
            text-align: left;
            padding: 0.6rem 0.8rem;
            border-bottom: 1px solid #e0e0e0;
        }
        th {
            background: #f8f9fa;
            font-weight: 600;
        }
        .no-data {
            color: #888;
            font-style: italic;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>SEO Audit Report for {{.Customer.CompanyName}}</h1>
        <p>{{.Customer.Website}}{{if .Customer.Industry}} &middot; {{.Customer.Industry}}{{end}}{{if .Customer.Location}} &middot; {{.Customer.Location}}{{end}}</p>
        <p>Generated on {{.GeneratedAt.Format "January 2, 2006"}} &middot; Session {{.SessionID}}</p>
    </div>

    <div class="card">
        <h2>Summary</h2>
        <div class="kpi-grid">
            <div class="kpi">
                <div class="kpi-value">{{.Insights.OverallScore}}</div>
                <div class="kpi-label">Overall Score</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.CriticalIssues}}</div>
                <div class="kpi-label">Critical Issues</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.MajorIssues}}</div>
                <div class="kpi-label">Major Issues</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.MinorIssues}}</div>
                <div class="kpi-label">Minor Issues</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.PagesAnalyzed}}</div>
                <div class="kpi-label">Pages Analyzed</div>
            </div>
        </div>
    </div>

    <div class="card">
        <h2>Site Health</h2>
        <p>Market Position: <span class="position">{{.Insights.MarketPosition}}</span></p>
        <div class="kpi-grid">
            <div class="kpi">
                <div class="kpi-value">{{.Insights.Scores.Performance}}</div>
                <div class="kpi-label">Performance</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.Scores.Technical}}</div>
                <div class="kpi-label">Technical SEO</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.Scores.Content}}</div>
                <div class="kpi-label">Content</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.Scores.Backlinks}}</div>
                <div class="kpi-label">Backlinks</div>
            </div>
            <div class="kpi">
                <div class="kpi-value">{{.Insights.Scores.Social}}</div>
                <div class="kpi-label">Social</div>
            </div>
        </div>
    </div>

    {{range .Tables}}
    <div class="card">
        <h2>{{.Title}}</h2>
        {{if .Rows}}
        <table>
            <thead>
                <tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
            </thead>
            <tbody>
                {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
                {{end}}
            </tbody>
        </table>
        {{else}}
        <p class="no-data">No data available</p>
        {{end}}
    </div>
    {{end}}

    <div class="card">
        <h2>Next Steps</h2>
        <p>Address critical issues first: they carry both ranking penalties and user-facing risk.
        Major issues are the next sprint's backlog; minor issues can ride along with routine content work.
        Re-run this audit after each batch of fixes to track score movement against competitors.</p>
    </div>
</body>
</html>
`
