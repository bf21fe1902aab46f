package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Boetie78/website-audits-sub000/internal/config"
	"github.com/Boetie78/website-audits-sub000/internal/logging"
	"github.com/Boetie78/website-audits-sub000/internal/metrics"
	"github.com/Boetie78/website-audits-sub000/internal/models"
	"github.com/Boetie78/website-audits-sub000/internal/store"
	"github.com/Boetie78/website-audits-sub000/pkg/analyzer"
	"github.com/Boetie78/website-audits-sub000/pkg/audit"
	"github.com/Boetie78/website-audits-sub000/pkg/collector"
	"github.com/Boetie78/website-audits-sub000/pkg/providers"
	"github.com/Boetie78/website-audits-sub000/pkg/reporter"
	"github.com/Boetie78/website-audits-sub000/pkg/utils"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "siteaudit",
	Short: "SiteAudit - Automated SEO Audit Reports",
	Long: `SiteAudit collects performance, backlink, keyword, technical and social
metrics for a business and its competitors, scores them, and renders a
self-contained HTML report with CSV exports.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full SEO audit and write the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")
		website, _ := cmd.Flags().GetString("website")
		industry, _ := cmd.Flags().GetString("industry")
		location, _ := cmd.Flags().GetString("location")
		competitors, _ := cmd.Flags().GetStringArray("competitor")
		output, _ := cmd.Flags().GetString("output")
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger := logging.New(cfg.Logging)

		if cfg.Metrics.Addr != "" {
			go metrics.Expose(cfg.Metrics.Addr)
		}

		st, closeStore, err := buildStore(cfg.Storage)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		orchestrator := audit.New(
			collector.New(providers.New(cfg.Providers, logger), logger),
			analyzer.NewWithPolicy(cfg.Scoring),
			reporter.New(),
			st,
			logger,
		)

		customer := models.Customer{
			CompanyName: company,
			Website:     website,
			Industry:    industry,
			Location:    location,
		}

		session, err := orchestrator.Run(ctx, customer, competitors)
		if err != nil {
			return fmt.Errorf("audit failed: %w", err)
		}

		if err := writeReport(session, output); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		fmt.Printf("Audit complete: overall score %d (%s), %d recommendations\n",
			session.Insights.OverallScore,
			session.Insights.MarketPosition,
			len(session.Insights.Recommendations),
		)
		fmt.Printf("Report saved to %s\n", filepath.Join(output, session.ID+".html"))
		if session.Incomplete {
			fmt.Println("Warning: some artifacts could not be persisted; the written report is complete")
		}
		return nil
	},
}

// buildStore selects the persistence gateway and wraps it with retries.
func buildStore(cfg config.StorageConfig) (store.Store, func(), error) {
	switch cfg.Type {
	case "redis":
		rs := store.NewRedisStore(cfg)
		return store.NewRetryStore(rs, cfg.RetryAttempts, cfg.RetryBackoff),
			func() { _ = rs.Close() }, nil
	case "memory":
		return store.NewRetryStore(store.NewMemoryStore(), cfg.RetryAttempts, cfg.RetryBackoff),
			func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// writeReport saves the HTML document and one CSV file per section.
func writeReport(session *models.AuditSession, output string) error {
	if err := os.MkdirAll(output, 0o755); err != nil {
		return err
	}

	htmlPath := filepath.Join(output, utils.SanitizeFilename(session.ID+".html"))
	if err := os.WriteFile(htmlPath, []byte(session.Report.HTML), 0o644); err != nil {
		return err
	}

	for slug, text := range session.Report.CSVSections {
		csvPath := filepath.Join(output, utils.SanitizeFilename(session.ID+"_"+slug+".csv"))
		if err := os.WriteFile(csvPath, []byte(text), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	// Run command flags
	runCmd.Flags().String("company", "", "Business name (required)")
	runCmd.Flags().String("website", "", "Business website (required)")
	runCmd.Flags().String("industry", "", "Business industry")
	runCmd.Flags().String("location", "", "Business location")
	runCmd.Flags().StringArray("competitor", nil, "Competitor website (repeatable, up to three typical)")
	runCmd.Flags().String("output", "reports", "Output directory for the report files")

	rootCmd.AddCommand(runCmd)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
