package models

import (
	"errors"
	"fmt"
	"time"
)

// EntityMain is the entity id of the audited business itself. Competitors
// are comp1, comp2, ... in input order.
const EntityMain = "main"

// CompetitorID returns the entity id for the nth competitor (1-based).
func CompetitorID(n int) string {
	return fmt.Sprintf("comp%d", n)
}

// Customer is the business the audit is run for.
type Customer struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Email       string `json:"email"`
}

var (
	errMissingCompanyName = errors.New("customer: company name is required")
	errMissingWebsite     = errors.New("customer: website is required")
)

// Validate checks the fields a run cannot start without.
func (c Customer) Validate() error {
	if c.CompanyName == "" {
		return errMissingCompanyName
	}
	if c.Website == "" {
		return errMissingWebsite
	}
	return nil
}

// TaskStatus is the lifecycle state of one checklist task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Terminal reports whether the status is final.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// ChecklistTask tracks collection of one (entity, category) pair.
type ChecklistTask struct {
	ID        string         `json:"task_id"`
	EntityID  string         `json:"entity_id"`
	Category  MetricCategory `json:"category"`
	Status    TaskStatus     `json:"status"`
	Result    MetricPayload  `json:"result,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ErrTaskTerminal is returned when a transition is attempted on a task that
// already reached completed or failed.
var ErrTaskTerminal = errors.New("checklist task already in terminal state")

// Transition moves the task to the given status and stamps the time.
// Transitions out of a terminal state are rejected.
func (t *ChecklistTask) Transition(status TaskStatus, at time.Time) error {
	if t.Status.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrTaskTerminal, t.ID, t.Status)
	}
	t.Status = status
	t.UpdatedAt = at
	return nil
}

// Checklist holds all tasks for a session in creation order.
type Checklist struct {
	Tasks []*ChecklistTask `json:"tasks"`
}

// NewChecklist creates one pending task per (entity, category) pair,
// entities outermost so checklist order mirrors collection order.
func NewChecklist(entityIDs []string, createdAt time.Time) *Checklist {
	cl := &Checklist{}
	for _, id := range entityIDs {
		for _, cat := range Categories() {
			cl.Tasks = append(cl.Tasks, &ChecklistTask{
				ID:        fmt.Sprintf("%s_%s", id, cat),
				EntityID:  id,
				Category:  cat,
				Status:    TaskPending,
				UpdatedAt: createdAt,
			})
		}
	}
	return cl
}

// Task returns the task for the given pair, or nil if absent.
func (c *Checklist) Task(entityID string, category MetricCategory) *ChecklistTask {
	for _, t := range c.Tasks {
		if t.EntityID == entityID && t.Category == category {
			return t
		}
	}
	return nil
}

// AllTerminal reports whether every task has reached a terminal state.
func (c *Checklist) AllTerminal() bool {
	for _, t := range c.Tasks {
		if !t.Status.Terminal() {
			return false
		}
	}
	return true
}

// AuditSession is the top-level aggregate for one full run. It is owned
// exclusively by the orchestrator for the duration of the run.
type AuditSession struct {
	ID          string             `json:"session_id"`
	CreatedAt   time.Time          `json:"created_at"`
	Customer    Customer           `json:"customer"`
	Competitors []string           `json:"competitors"`
	EntityOrder []string           `json:"entity_order"`
	Entities    map[string]*Entity `json:"entities"`
	Checklist   *Checklist         `json:"checklist"`
	Insights    *Insights          `json:"insights,omitempty"`
	Report      *Report            `json:"report,omitempty"`

	// Incomplete is set when the report was computed but could not be
	// persisted after retries. The in-memory report is still valid.
	Incomplete bool `json:"incomplete,omitempty"`
}

// Main returns the entity record for the audited business.
func (s *AuditSession) Main() *Entity {
	return s.Entities[EntityMain]
}
