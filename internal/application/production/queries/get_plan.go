package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// GetPlanQuery retrieves a stored plan
type GetPlanQuery struct {
	ID string
}

// GetPlanResponse carries the stored plan
type GetPlanResponse struct {
	Plan *production.Plan
}

// GetPlanHandler handles the GetPlan query
type GetPlanHandler struct {
	planRepo production.PlanRepository
}

// NewGetPlanHandler creates a new GetPlanHandler
func NewGetPlanHandler(planRepo production.PlanRepository) *GetPlanHandler {
	return &GetPlanHandler{planRepo: planRepo}
}

// Handle executes the GetPlan query
func (h *GetPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlanQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlanQuery")
	}

	plan, err := h.planRepo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return &GetPlanResponse{Plan: plan}, nil
}
