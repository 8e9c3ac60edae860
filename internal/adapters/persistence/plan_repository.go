package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM plan repository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save persists a plan, replacing any plan with the same ID
func (r *GormPlanRepository) Save(ctx context.Context, plan *production.Plan) error {
	model, err := r.entityToModel(plan)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save plan: %w", result.Error)
	}

	return nil
}

// FindByID retrieves a plan by ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id string) (*production.Plan, error) {
	var model PlanModel
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &production.PlanNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to find plan: %w", result.Error)
	}

	return r.modelToEntity(&model)
}

// List retrieves the most recent plans, newest first (limit <= 0 means all)
func (r *GormPlanRepository) List(ctx context.Context, limit int) ([]*production.Plan, error) {
	var models []PlanModel
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to list plans: %w", result.Error)
	}

	plans := make([]*production.Plan, 0, len(models))
	for i := range models {
		plan, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert plan %s: %w", models[i].ID, err)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

// entityToModel converts domain entity to database model
func (r *GormPlanRepository) entityToModel(plan *production.Plan) (*PlanModel, error) {
	targets := make([]targetRecord, 0, len(plan.Targets()))
	for _, t := range plan.Targets() {
		targets = append(targets, targetRecord{Item: t.Item, Resolved: t.Resolved, Rate: t.Rate})
	}
	targetsJSON, err := json.Marshal(targets)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal targets: %w", err)
	}

	graph := plan.Graph()
	record := graphRecord{Targets: graph.Targets()}
	for _, n := range graph.Nodes() {
		info := graph.Info(n.Name)
		record.Nodes = append(record.Nodes, nodeRecord{
			Name:     n.Name,
			Load:     n.Load,
			Category: info.Category,
			Raw:      info.Raw,
			Process:  info.Process,
		})
	}
	for _, e := range graph.Edges() {
		record.Edges = append(record.Edges, edgeRecord{Producer: e.Producer, Consumer: e.Consumer, Rate: e.Rate})
	}
	graphJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}

	return &PlanModel{
		ID:             plan.ID(),
		Mode:           string(plan.Mode()),
		Reconciled:     plan.Reconciled(),
		Targets:        string(targetsJSON),
		Graph:          string(graphJSON),
		NodeCount:      len(record.Nodes),
		TotalFactories: plan.TotalFactories(),
		CreatedAt:      plan.CreatedAt(),
	}, nil
}

// modelToEntity converts database model to domain entity
func (r *GormPlanRepository) modelToEntity(model *PlanModel) (*production.Plan, error) {
	var targets []targetRecord
	if model.Targets != "" && model.Targets != "null" {
		if err := json.Unmarshal([]byte(model.Targets), &targets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal targets: %w", err)
		}
	}

	var record graphRecord
	if err := json.Unmarshal([]byte(model.Graph), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}

	graph := production.NewGraph()
	for _, n := range record.Nodes {
		graph.AddLoad(n.Name, n.Load)
		if n.Category != "" || n.Raw || n.Process {
			graph.Annotate(n.Name, production.NodeInfo{Category: n.Category, Raw: n.Raw, Process: n.Process})
		}
	}
	for _, e := range record.Edges {
		graph.AddFlow(e.Producer, e.Consumer, e.Rate)
	}
	for _, t := range record.Targets {
		graph.MarkTarget(t)
	}

	planTargets := make([]production.Target, 0, len(targets))
	for _, t := range targets {
		planTargets = append(planTargets, production.Target{Item: t.Item, Resolved: t.Resolved, Rate: t.Rate})
	}

	return production.RestorePlan(
		model.ID,
		recipe.Mode(model.Mode),
		planTargets,
		graph,
		model.Reconciled,
		model.CreatedAt,
	), nil
}
