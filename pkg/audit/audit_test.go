package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Boetie78/website-audits-sub000/internal/models"
	"github.com/Boetie78/website-audits-sub000/internal/store"
	"github.com/Boetie78/website-audits-sub000/pkg/analyzer"
	"github.com/Boetie78/website-audits-sub000/pkg/collector"
	"github.com/Boetie78/website-audits-sub000/pkg/providers"
	"github.com/Boetie78/website-audits-sub000/pkg/reporter"
)

// offlineFetcher simulates a run with no reachable providers: every fetch
// yields fallback data, so the whole pipeline is deterministic.
type offlineFetcher struct{}

func (offlineFetcher) FetchMetric(_ context.Context, category models.MetricCategory, _ *models.Entity) providers.MetricResult {
	return providers.MetricResult{
		Category: category,
		Payload:  providers.Fallback(category),
		Live:     category == models.CategorySocial,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrchestrator(st store.Store) *Orchestrator {
	logger := testLogger()
	return New(
		collector.New(offlineFetcher{}, logger),
		analyzer.New(),
		reporter.New(),
		st,
		logger,
	)
}

func TestRunOfflineBaseline(t *testing.T) {
	mem := store.NewMemoryStore()
	o := newOrchestrator(mem)
	o.now = func() time.Time { return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC) }

	session, err := o.Run(context.Background(), models.Customer{
		CompanyName: "Acme Co",
		Website:     "acme.com",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "acme-co_20260829", session.ID)
	assert.False(t, session.Incomplete)
	assert.True(t, session.Checklist.AllTerminal())
	assert.True(t, session.Main().Metrics.Complete())

	require.NotNil(t, session.Insights)
	assert.Equal(t, 71, session.Insights.OverallScore)
	assert.Equal(t, "Average", session.Insights.MarketPosition)
	assert.Empty(t, session.Insights.Comparisons)

	require.NotNil(t, session.Report)
	assert.NotEmpty(t, session.Report.HTML)
	assert.Len(t, session.Report.CSVSections, 6)
}

func TestRunPersistsEveryArtifact(t *testing.T) {
	mem := store.NewMemoryStore()
	o := newOrchestrator(mem)

	session, err := o.Run(context.Background(), models.Customer{
		CompanyName: "Acme Co",
		Website:     "acme.com",
	}, []string{"rival.com"})
	require.NoError(t, err)

	for _, key := range []string{
		InfoKey(session.ID),
		CollectedDataKey(session.ID),
		ChecklistKey(session.ID),
		AnalysisKey(session.ID),
		InsightsKey(session.ID),
		FinalReportKey(session.ID),
	} {
		var raw map[string]any
		assert.NoError(t, mem.Get(context.Background(), key, &raw), "key %s", key)
	}

	var stored info
	require.NoError(t, mem.Get(context.Background(), InfoKey(session.ID), &stored))
	assert.Equal(t, session.ID, stored.SessionID)
	assert.Equal(t, []string{"main", "comp1"}, stored.EntityOrder)
}

func TestRunCollectsMainThenCompetitorsInOrder(t *testing.T) {
	o := newOrchestrator(store.NewMemoryStore())

	session, err := o.Run(context.Background(), models.Customer{
		CompanyName: "Acme Co",
		Website:     "acme.com",
	}, []string{"rival-one.com", "rival-two.com", "rival-three.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"main", "comp1", "comp2", "comp3"}, session.EntityOrder)

	// Checklist tasks are grouped per entity in collection order and every
	// update timestamp is non-decreasing across the run.
	require.Len(t, session.Checklist.Tasks, 20)
	var prev time.Time
	for _, task := range session.Checklist.Tasks {
		assert.True(t, task.Status.Terminal(), "task %s", task.ID)
		assert.False(t, task.UpdatedAt.Before(prev), "task %s updated out of order", task.ID)
		prev = task.UpdatedAt
	}

	for _, id := range session.EntityOrder {
		assert.True(t, session.Entities[id].Metrics.Complete(), "entity %s", id)
	}
	assert.Len(t, session.Insights.Comparisons, 3)
}

func TestRunNormalizesCompetitorWebsites(t *testing.T) {
	o := newOrchestrator(store.NewMemoryStore())

	session, err := o.Run(context.Background(), models.Customer{
		CompanyName: "Acme Co",
		Website:     "https://www.acme.com/",
	}, []string{"https://www.rival.com/pricing"})
	require.NoError(t, err)

	main := session.Main()
	assert.Equal(t, "acme.com", main.Domain)
	assert.Equal(t, "https://www.acme.com", main.URL)

	comp := session.Entities["comp1"]
	assert.Equal(t, "rival.com", comp.Domain)
	assert.Equal(t, "rival.com", comp.Name)
}

func TestRunRejectsInvalidCustomer(t *testing.T) {
	mem := store.NewMemoryStore()
	o := newOrchestrator(mem)

	_, err := o.Run(context.Background(), models.Customer{Website: "acme.com"}, nil)
	require.Error(t, err)
	assert.Empty(t, mem.Keys())
}

func TestRunHonorsCancellation(t *testing.T) {
	o := newOrchestrator(store.NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Run(ctx, models.Customer{CompanyName: "Acme Co", Website: "acme.com"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) Put(context.Context, string, any) error { return errors.New("store offline") }
func (brokenStore) Get(context.Context, string, any) error { return errors.New("store offline") }

func TestRunSurvivesPersistenceFailure(t *testing.T) {
	o := newOrchestrator(brokenStore{})

	session, err := o.Run(context.Background(), models.Customer{
		CompanyName: "Acme Co",
		Website:     "acme.com",
	}, nil)
	require.NoError(t, err)

	assert.True(t, session.Incomplete)
	require.NotNil(t, session.Report)
	assert.NotEmpty(t, session.Report.HTML)
	assert.Equal(t, 71, session.Insights.OverallScore)
}

func TestSessionIDIsDeterministic(t *testing.T) {
	date := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "acme-co_20260829", SessionID("Acme Co", date))
	assert.Equal(t, SessionID("Acme Co", date), SessionID("Acme Co", date))
	assert.Equal(t, "widgets-gadgets_20260829", SessionID("Widgets & Gadgets", date))
}
