// Package audit drives one full audit run through its four phases: setup,
// collection, analysis and report. The orchestrator owns the session for
// the duration of the run; phases execute strictly in sequence.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Boetie78/website-audits-sub000/internal/metrics"
	"github.com/Boetie78/website-audits-sub000/internal/models"
	"github.com/Boetie78/website-audits-sub000/internal/store"
	"github.com/Boetie78/website-audits-sub000/pkg/analyzer"
	"github.com/Boetie78/website-audits-sub000/pkg/collector"
	"github.com/Boetie78/website-audits-sub000/pkg/reporter"
	"github.com/Boetie78/website-audits-sub000/pkg/utils"
)

// Orchestrator runs audits end to end.
type Orchestrator struct {
	collector *collector.Collector
	analyzer  *analyzer.Analyzer
	reporter  *reporter.Reporter
	store     store.Store
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an Orchestrator.
func New(c *collector.Collector, a *analyzer.Analyzer, r *reporter.Reporter, st store.Store, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		collector: c,
		analyzer:  a,
		reporter:  r,
		store:     st,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one audit: setup, collection (main first, then competitors
// in input order), analysis, report. Setup validation errors and
// structural collection errors abort the run; provider failures are
// absorbed below this layer and never do. Persistence failures after
// retries mark the session incomplete but the computed report is still
// returned. Cancellation is honored between entities.
func (o *Orchestrator) Run(ctx context.Context, customer models.Customer, competitors []string) (*models.AuditSession, error) {
	started := o.now()
	logger := o.logger.With("run_id", uuid.NewString())

	// Phase 1: setup.
	session, err := o.setup(customer, competitors)
	if err != nil {
		return nil, err
	}
	logger = logger.With("session_id", session.ID)
	logger.Info("audit started",
		"company", customer.CompanyName,
		"competitors", len(competitors),
	)
	o.persist(ctx, logger, session, InfoKey(session.ID), sessionInfo(session))
	o.persist(ctx, logger, session, ChecklistKey(session.ID), session.Checklist)

	// Phase 2: collection, strictly sequential.
	for _, entityID := range session.EntityOrder {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("audit cancelled before collecting %s: %w", entityID, err)
		}
		if _, err := o.collector.CollectEntity(ctx, session, entityID); err != nil {
			return nil, fmt.Errorf("collection phase: %w", err)
		}
	}
	o.persist(ctx, logger, session, CollectedDataKey(session.ID), session.Entities)
	o.persist(ctx, logger, session, ChecklistKey(session.ID), session.Checklist)
	logger.Info("collection complete", "entities", len(session.EntityOrder))

	// Phase 3: analysis.
	session.Insights = o.analyzer.ComputeInsights(session)
	o.persist(ctx, logger, session, AnalysisKey(session.ID), session.Insights.Scores)
	o.persist(ctx, logger, session, InsightsKey(session.ID), session.Insights)
	logger.Info("analysis complete",
		"overall_score", session.Insights.OverallScore,
		"critical_issues", session.Insights.CriticalIssues,
		"recommendations", len(session.Insights.Recommendations),
	)

	// Phase 4: report.
	report, err := o.reporter.Assemble(session, session.Insights)
	if err != nil {
		return nil, fmt.Errorf("report phase: %w", err)
	}
	session.Report = report
	o.persist(ctx, logger, session, FinalReportKey(session.ID), report)

	metrics.AuditsCompleted.Inc()
	metrics.AuditDuration.Observe(o.now().Sub(started).Seconds())
	logger.Info("audit complete", "incomplete", session.Incomplete)

	return session, nil
}

// setup validates the customer and builds the empty session: one entity
// record per website and a pending checklist task per (entity, category).
func (o *Orchestrator) setup(customer models.Customer, competitors []string) (*models.AuditSession, error) {
	if err := customer.Validate(); err != nil {
		return nil, fmt.Errorf("setup phase: %w", err)
	}

	now := o.now()
	session := &models.AuditSession{
		ID:          SessionID(customer.CompanyName, now),
		CreatedAt:   now,
		Customer:    customer,
		Competitors: competitors,
		Entities:    make(map[string]*models.Entity),
	}

	session.EntityOrder = append(session.EntityOrder, models.EntityMain)
	session.Entities[models.EntityMain] = newEntity(models.EntityMain, customer.CompanyName, customer.Website)

	for i, site := range competitors {
		id := models.CompetitorID(i + 1)
		session.EntityOrder = append(session.EntityOrder, id)
		session.Entities[id] = newEntity(id, utils.NormalizeDomain(site), site)
	}

	session.Checklist = models.NewChecklist(session.EntityOrder, now)
	return session, nil
}

func newEntity(id, name, website string) *models.Entity {
	return &models.Entity{
		ID:     id,
		Name:   name,
		Domain: utils.NormalizeDomain(website),
		URL:    utils.NormalizeURL(website),
	}
}

// persist writes one artifact through the gateway. Failures (after the
// store's own retries) must not lose computed work: they are logged and
// the session is marked incomplete.
func (o *Orchestrator) persist(ctx context.Context, logger *slog.Logger, session *models.AuditSession, key string, value any) {
	if err := o.store.Put(ctx, key, value); err != nil {
		logger.Error("failed to persist artifact", "key", key, "error", err)
		session.Incomplete = true
	}
}

// sessionInfo is the customer-facing slice of the session persisted under
// the info key.
type info struct {
	SessionID   string          `json:"session_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Customer    models.Customer `json:"customer"`
	Competitors []string        `json:"competitors"`
	EntityOrder []string        `json:"entity_order"`
}

func sessionInfo(session *models.AuditSession) info {
	return info{
		SessionID:   session.ID,
		CreatedAt:   session.CreatedAt,
		Customer:    session.Customer,
		Competitors: session.Competitors,
		EntityOrder: session.EntityOrder,
	}
}
