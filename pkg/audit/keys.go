package audit

import (
	"time"

	"github.com/Boetie78/website-audits-sub000/pkg/utils"
)

// SessionID derives the deterministic session identifier from the customer
// name and the run date. Re-running the same customer on the same day
// reuses the id, so prior artifacts are overwritten rather than merged.
func SessionID(companyName string, date time.Time) string {
	return utils.Slugify(companyName) + "_" + date.Format("20060102")
}

// Persistence gateway keys for one session's artifacts. Each put is
// independent; there is no transaction across them.
func InfoKey(sessionID string) string          { return sessionID + "_info" }
func CollectedDataKey(sessionID string) string { return sessionID + "_collected_data" }
func ChecklistKey(sessionID string) string     { return sessionID + "_checklist" }
func AnalysisKey(sessionID string) string      { return sessionID + "_analysis" }
func InsightsKey(sessionID string) string      { return sessionID + "_insights" }
func FinalReportKey(sessionID string) string   { return sessionID + "_final_report" }
