package helpers

import (
	"context"
	"sort"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// MockPlanRepository is an in-memory test double for the plan repository
type MockPlanRepository struct {
	plans   map[string]*production.Plan
	SaveErr error
}

// NewMockPlanRepository creates a new mock plan repository
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{plans: make(map[string]*production.Plan)}
}

// Save stores the plan, or returns SaveErr if set
func (m *MockPlanRepository) Save(ctx context.Context, plan *production.Plan) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.plans[plan.ID()] = plan
	return nil
}

// FindByID returns a stored plan
func (m *MockPlanRepository) FindByID(ctx context.Context, id string) (*production.Plan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, &production.PlanNotFoundError{ID: id}
	}
	return plan, nil
}

// List returns stored plans, newest first
func (m *MockPlanRepository) List(ctx context.Context, limit int) ([]*production.Plan, error) {
	plans := make([]*production.Plan, 0, len(m.plans))
	for _, plan := range m.plans {
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt().After(plans[j].CreatedAt())
	})
	if limit > 0 && len(plans) > limit {
		plans = plans[:limit]
	}
	return plans, nil
}

// Count returns the number of stored plans
func (m *MockPlanRepository) Count() int {
	return len(m.plans)
}

// RecordingLogger captures log entries for assertions
type RecordingLogger struct {
	Entries []LogEntry
}

// LogEntry is one captured log call
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// Log implements common.PlanLogger
func (l *RecordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Messages returns the captured messages in order
func (l *RecordingLogger) Messages() []string {
	messages := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		messages = append(messages, e.Message)
	}
	return messages
}
