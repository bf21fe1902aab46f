package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerValidate(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		wantErr  bool
	}{
		{
			name:     "valid customer",
			customer: Customer{CompanyName: "Acme Co", Website: "acme.com"},
			wantErr:  false,
		},
		{
			name:     "missing company name",
			customer: Customer{Website: "acme.com"},
			wantErr:  true,
		},
		{
			name:     "missing website",
			customer: Customer{CompanyName: "Acme Co"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.customer.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewChecklist(t *testing.T) {
	now := time.Now()
	cl := NewChecklist([]string{"main", "comp1"}, now)

	require.Len(t, cl.Tasks, 10)

	// Entities outermost, categories in fixed order within each.
	assert.Equal(t, "main_performance", cl.Tasks[0].ID)
	assert.Equal(t, "main_social", cl.Tasks[4].ID)
	assert.Equal(t, "comp1_performance", cl.Tasks[5].ID)
	assert.Equal(t, "comp1_social", cl.Tasks[9].ID)

	for _, task := range cl.Tasks {
		assert.Equal(t, TaskPending, task.Status)
		assert.Equal(t, now, task.UpdatedAt)
	}

	assert.False(t, cl.AllTerminal())
}

func TestChecklistTaskLookup(t *testing.T) {
	cl := NewChecklist([]string{"main"}, time.Now())

	task := cl.Task("main", CategoryKeywords)
	require.NotNil(t, task)
	assert.Equal(t, "main_keywords", task.ID)

	assert.Nil(t, cl.Task("comp1", CategoryKeywords))
}

func TestTaskTransitionsAreMonotonic(t *testing.T) {
	task := &ChecklistTask{ID: "main_performance", Status: TaskPending}

	require.NoError(t, task.Transition(TaskInProgress, time.Now()))
	require.NoError(t, task.Transition(TaskCompleted, time.Now()))

	// Terminal states are final.
	err := task.Transition(TaskPending, time.Now())
	assert.ErrorIs(t, err, ErrTaskTerminal)
	assert.Equal(t, TaskCompleted, task.Status)

	failed := &ChecklistTask{ID: "main_backlinks", Status: TaskFailed}
	assert.ErrorIs(t, failed.Transition(TaskInProgress, time.Now()), ErrTaskTerminal)
}

func TestEntityMetricsApply(t *testing.T) {
	var m EntityMetrics
	assert.False(t, m.Complete())

	m.Apply(&PerformanceMetrics{PerformanceScore: 90})
	m.Apply(&BacklinkMetrics{TotalBacklinks: 10})
	m.Apply(&KeywordMetrics{TotalKeywords: 5})
	m.Apply(&TechnicalMetrics{Title: "Home"})
	assert.False(t, m.Complete())

	m.Apply(&SocialMetrics{PostsPerWeek: 2})
	assert.True(t, m.Complete())

	assert.Equal(t, 90, m.Performance.PerformanceScore)
	assert.Equal(t, "Home", m.Technical.Title)
}

func TestTechnicalChecksCount(t *testing.T) {
	all := &TechnicalMetrics{
		HTTPS:              true,
		MobileResponsive:   true,
		HasSitemap:         true,
		HasRobotsTxt:       true,
		HasCanonical:       true,
		HasMetaDescription: true,
		ValidTitle:         true,
		ValidHeadings:      true,
	}
	checks := all.TechnicalChecks()
	require.Len(t, checks, 8)
	for _, ok := range checks {
		assert.True(t, ok)
	}
}

func TestCompetitorID(t *testing.T) {
	assert.Equal(t, "comp1", CompetitorID(1))
	assert.Equal(t, "comp3", CompetitorID(3))
}
