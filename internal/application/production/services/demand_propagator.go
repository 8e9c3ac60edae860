package services

import (
	"context"
	"math"

	"github.com/andrescamacho/factory-planner-go/internal/application/common"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

// DemandPropagator turns requested output rates into factory loads and edge flows.
//
// Each Add walks the recipe tree of the requested item depth-first and adds, to
// every item it passes, the factory load and consumer flow that the demand implies.
// The walk only ever adds to the graph, so repeated or overlapping targets merge.
type DemandPropagator struct {
	catalog  *recipe.Catalog
	profiles *recipe.ProfileTable
	mode     recipe.Mode
	graph    *production.Graph
}

// NewDemandPropagator creates a propagator over a fresh graph
func NewDemandPropagator(
	catalog *recipe.Catalog,
	profiles *recipe.ProfileTable,
	mode recipe.Mode,
) *DemandPropagator {
	return &DemandPropagator{
		catalog:  catalog,
		profiles: profiles,
		mode:     mode,
		graph:    production.NewGraph(),
	}
}

// Graph returns the graph being built
func (p *DemandPropagator) Graph() *production.Graph {
	return p.graph
}

// Mode returns the recipe mode used for every propagation
func (p *DemandPropagator) Mode() recipe.Mode {
	return p.mode
}

// Profiles returns the factory profile table
func (p *DemandPropagator) Profiles() *recipe.ProfileTable {
	return p.profiles
}

// Add requests rate items/second of an item, given by exact name or unique prefix.
// Returns the resolved catalog name.
//
// The reachable recipe tree is validated before the graph is touched, so a failed
// Add leaves the graph exactly as it was.
func (p *DemandPropagator) Add(ctx context.Context, itemNameOrPrefix string, rate float64) (string, error) {
	logger := common.LoggerFromContext(ctx)

	if err := validateRate(rate); err != nil {
		return "", err
	}

	item, err := p.catalog.Resolve(itemNameOrPrefix)
	if err != nil {
		return "", err
	}

	if err := p.Validate(item); err != nil {
		return "", err
	}

	p.graph.MarkTarget(item)
	if err := p.propagate(item, production.EndNode, rate); err != nil {
		return "", err
	}

	logger.Log("DEBUG", "target propagated", map[string]interface{}{
		"requested": itemNameOrPrefix,
		"item":      item,
		"rate":      rate,
		"mode":      string(p.mode),
		"nodes":     len(p.graph.Nodes()),
	})

	return item, nil
}

// Supply propagates rate items/second of an exact catalog item into consumer
// without marking it as a target. The reconciler uses this to attach the raw
// input of a refining process.
func (p *DemandPropagator) Supply(item, consumer string, rate float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	if err := p.Validate(item); err != nil {
		return err
	}
	return p.propagate(item, consumer, rate)
}

// Validate checks that every recipe reachable from item exists, has a factory
// profile, and does not transitively require itself.
func (p *DemandPropagator) Validate(item string) error {
	return p.validateRecursive(item, make(map[string]bool), []string{}, make(map[string]bool))
}

func (p *DemandPropagator) validateRecursive(
	item string,
	visiting map[string]bool,
	path []string,
	checked map[string]bool,
) error {
	if visiting[item] {
		return &production.CyclicRecipeError{
			Item:  item,
			Chain: append(append([]string{}, path...), item),
		}
	}
	if checked[item] {
		return nil
	}

	r, err := p.catalog.Lookup(item)
	if err != nil {
		return err
	}
	if _, err := p.profiles.ForRecipe(r); err != nil {
		return err
	}

	visiting[item] = true
	defer func() { visiting[item] = false }()

	currentPath := append(path, item)
	for _, in := range r.Variant(p.mode).Inputs {
		if err := p.validateRecursive(in.Item, visiting, currentPath, checked); err != nil {
			return err
		}
	}

	checked[item] = true
	return nil
}

// propagate adds the load for supplying rate of source to consumer, then recurses
// into the source's inputs. Callers Validate source first so that no error can
// surface halfway through and leave a partial graph.
func (p *DemandPropagator) propagate(source, consumer string, rate float64) error {
	r, err := p.catalog.Lookup(source)
	if err != nil {
		return err
	}
	profile, err := p.profiles.ForRecipe(r)
	if err != nil {
		return err
	}
	variant := r.Variant(p.mode)
	output := float64(r.OutputQuantity)

	p.graph.AddLoad(source, rate*variant.Time/(profile.Speed*profile.Productivity*output))
	p.graph.AddFlow(source, consumer, rate)
	p.graph.Annotate(source, production.NodeInfo{
		Category: r.FactoryCategory,
		Raw:      len(variant.Inputs) == 0,
	})

	for _, in := range variant.Inputs {
		if err := p.propagate(in.Item, source, rate*in.Amount/(profile.Productivity*output)); err != nil {
			return err
		}
	}
	return nil
}

func validateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return shared.NewValidationError("rate", "must be a finite number greater than zero")
	}
	return nil
}
