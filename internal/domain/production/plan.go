package production

import (
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

// Target is one requested output rate as supplied by the caller
type Target struct {
	// Item is the caller's name or prefix; Resolved is the catalog key it mapped to
	Item     string
	Resolved string
	Rate     float64
}

// Plan is the aggregate root of a planning run: the requested targets, the mode
// they were planned under and the finished production graph.
type Plan struct {
	id         string
	mode       recipe.Mode
	targets    []Target
	graph      *Graph
	reconciled bool
	createdAt  time.Time
}

// NewPlan snapshots a finished graph; later changes to graph do not reach the plan.
// A nil clock falls back to the wall clock
func NewPlan(
	id string,
	mode recipe.Mode,
	targets []Target,
	graph *Graph,
	reconciled bool,
	clock shared.Clock,
) *Plan {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &Plan{
		id:         id,
		mode:       mode,
		targets:    append([]Target(nil), targets...),
		graph:      graph.Clone(),
		reconciled: reconciled,
		createdAt:  clock.Now(),
	}
}

// RestorePlan rebuilds a plan from stored state, keeping its original timestamp
func RestorePlan(
	id string,
	mode recipe.Mode,
	targets []Target,
	graph *Graph,
	reconciled bool,
	createdAt time.Time,
) *Plan {
	return &Plan{
		id:         id,
		mode:       mode,
		targets:    targets,
		graph:      graph,
		reconciled: reconciled,
		createdAt:  createdAt,
	}
}

// Getters

func (p *Plan) ID() string           { return p.id }
func (p *Plan) Mode() recipe.Mode    { return p.mode }
func (p *Plan) Targets() []Target    { return p.targets }
func (p *Plan) Graph() *Graph        { return p.graph }
func (p *Plan) Reconciled() bool     { return p.reconciled }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }

// TotalFactories sums the load of every node in the plan
func (p *Plan) TotalFactories() float64 {
	total := 0.0
	for _, node := range p.graph.Nodes() {
		total += node.Load
	}
	return total
}
