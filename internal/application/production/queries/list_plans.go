package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// ListPlansQuery lists stored plans, newest first
type ListPlansQuery struct {
	// Limit caps the number of plans; zero or less returns all
	Limit int
}

// PlanSummary is one row of the plan history
type PlanSummary struct {
	ID             string
	Mode           string
	Reconciled     bool
	Targets        []string
	TotalFactories float64
	CreatedAt      string
}

// ListPlansResponse carries the plan history
type ListPlansResponse struct {
	Plans []PlanSummary
}

// ListPlansHandler handles the ListPlans query
type ListPlansHandler struct {
	planRepo production.PlanRepository
}

// NewListPlansHandler creates a new ListPlansHandler
func NewListPlansHandler(planRepo production.PlanRepository) *ListPlansHandler {
	return &ListPlansHandler{planRepo: planRepo}
}

// Handle executes the ListPlans query
func (h *ListPlansHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListPlansQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPlansQuery")
	}

	plans, err := h.planRepo.List(ctx, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	summaries := make([]PlanSummary, 0, len(plans))
	for _, plan := range plans {
		targets := make([]string, 0, len(plan.Targets()))
		for _, t := range plan.Targets() {
			targets = append(targets, fmt.Sprintf("%s@%g", t.Resolved, t.Rate))
		}
		summaries = append(summaries, PlanSummary{
			ID:             plan.ID(),
			Mode:           string(plan.Mode()),
			Reconciled:     plan.Reconciled(),
			Targets:        targets,
			TotalFactories: plan.TotalFactories(),
			CreatedAt:      plan.CreatedAt().Format("2006-01-02 15:04:05"),
		})
	}

	return &ListPlansResponse{Plans: summaries}, nil
}
