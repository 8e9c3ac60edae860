package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner-go/internal/application/common"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/production/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
	"github.com/andrescamacho/factory-planner-go/pkg/utils"
)

// TargetRequest is one requested output: an item name or unique prefix and a rate in items/second
type TargetRequest struct {
	Item string
	Rate float64
}

// PlanProductionCommand computes a production plan for a set of targets
type PlanProductionCommand struct {
	Targets   []TargetRequest
	Expensive bool
	Reconcile bool
	Save      bool
}

// PlanProductionResponse carries the computed plan
type PlanProductionResponse struct {
	Plan *production.Plan

	// Reconciliation is nil unless the command asked for it
	Reconciliation *services.ReconcileResult

	Saved bool
}

// PlanProductionHandler handles the PlanProduction command
type PlanProductionHandler struct {
	catalog  *recipe.Catalog
	profiles *recipe.ProfileTable
	planRepo production.PlanRepository
	clock    shared.Clock
}

// NewPlanProductionHandler creates a new PlanProductionHandler.
// planRepo may be nil when plans are never saved; a nil clock means the wall clock.
func NewPlanProductionHandler(
	catalog *recipe.Catalog,
	profiles *recipe.ProfileTable,
	planRepo production.PlanRepository,
	clock shared.Clock,
) *PlanProductionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PlanProductionHandler{
		catalog:  catalog,
		profiles: profiles,
		planRepo: planRepo,
		clock:    clock,
	}
}

// Handle executes the PlanProduction command
func (h *PlanProductionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PlanProductionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlanProductionCommand")
	}

	logger := common.LoggerFromContext(ctx)

	if len(cmd.Targets) == 0 {
		return nil, shared.NewValidationError("targets", "at least one target is required")
	}
	if cmd.Save && h.planRepo == nil {
		return nil, fmt.Errorf("cannot save plan: plan history is not enabled")
	}

	mode := recipe.ModeFor(cmd.Expensive)
	propagator := services.NewDemandPropagator(h.catalog, h.profiles, mode)

	targets := make([]production.Target, 0, len(cmd.Targets))
	for _, target := range cmd.Targets {
		resolved, err := propagator.Add(ctx, target.Item, target.Rate)
		if err != nil {
			return nil, fmt.Errorf("failed to add target %q: %w", target.Item, err)
		}
		targets = append(targets, production.Target{Item: target.Item, Resolved: resolved, Rate: target.Rate})
	}

	response := &PlanProductionResponse{}

	if cmd.Reconcile {
		result, err := services.NewByproductReconciler(propagator).Reconcile(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile refining process: %w", err)
		}
		response.Reconciliation = result
		metrics.RecordReconciliation(result.Multiplier, result.StageFactories[services.RefiningProcess().Processing.Name])
	}

	plan := production.NewPlan(
		utils.GeneratePlanID(targets[0].Resolved),
		mode,
		targets,
		propagator.Graph(),
		cmd.Reconcile,
		h.clock,
	)
	response.Plan = plan
	metrics.RecordPlan(plan)

	if cmd.Save {
		if err := h.planRepo.Save(ctx, plan); err != nil {
			return nil, fmt.Errorf("failed to save plan: %w", err)
		}
		response.Saved = true
	}

	logger.Log("INFO", "plan computed", map[string]interface{}{
		"plan_id":         plan.ID(),
		"targets":         len(targets),
		"mode":            string(mode),
		"reconciled":      cmd.Reconcile,
		"total_factories": plan.TotalFactories(),
		"saved":           response.Saved,
	})

	return response, nil
}
