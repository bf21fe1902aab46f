// Package collector gathers all metric categories for one entity and keeps
// the session checklist in step with the work.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Boetie78/website-audits-sub000/internal/models"
	"github.com/Boetie78/website-audits-sub000/pkg/providers"
)

// MetricFetcher is the provider adapter contract the collector depends on.
type MetricFetcher interface {
	FetchMetric(ctx context.Context, category models.MetricCategory, entity *models.Entity) providers.MetricResult
}

// Collector collects one entity at a time, in fixed category order.
type Collector struct {
	fetcher MetricFetcher
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Collector backed by the given provider adapter.
func New(fetcher MetricFetcher, logger *slog.Logger) *Collector {
	return &Collector{fetcher: fetcher, logger: logger, now: time.Now}
}

// CollectEntity collects all five metric categories for the entity with the
// given id, updating the session checklist as it goes. Category order is
// fixed: performance, backlinks, keywords, technical, social.
//
// On return every metric field of the entity is populated - a failed
// provider call leaves fallback data and a failed checklist task, never a
// gap. An error is returned only for structural problems (unknown entity,
// missing checklist task), which indicate a bug in session setup.
func (c *Collector) CollectEntity(ctx context.Context, session *models.AuditSession, entityID string) (*models.Entity, error) {
	entity, ok := session.Entities[entityID]
	if !ok {
		return nil, fmt.Errorf("collect %s: entity not found in session", entityID)
	}

	for _, category := range models.Categories() {
		task := session.Checklist.Task(entityID, category)
		if task == nil {
			return nil, fmt.Errorf("collect %s: no checklist task for %s", entityID, category)
		}

		if err := task.Transition(models.TaskInProgress, c.now()); err != nil {
			return nil, fmt.Errorf("collect %s/%s: %w", entityID, category, err)
		}

		result := c.fetcher.FetchMetric(ctx, category, entity)
		entity.Metrics.Apply(result.Payload)

		status := models.TaskCompleted
		if !result.Live {
			// Fallback data still fills the record; the task records
			// that the live fetch did not happen.
			status = models.TaskFailed
		}
		task.Result = result.Payload
		if err := task.Transition(status, c.now()); err != nil {
			return nil, fmt.Errorf("collect %s/%s: %w", entityID, category, err)
		}

		c.logger.Debug("metric collected",
			"entity", entityID,
			"category", string(category),
			"status", string(status),
		)
	}

	if !entity.Metrics.Complete() {
		return nil, fmt.Errorf("collect %s: record incomplete after collection", entityID)
	}

	return entity, nil
}
