package services

import (
	"context"

	"github.com/andrescamacho/factory-planner-go/internal/application/common"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
)

// Items exchanged by the oil refining process
const (
	CrudeOil     = "crude oil"
	HeavyOil     = "heavy oil"
	LightOil     = "light oil"
	PetroleumGas = "petroleum gas"
)

// Output is one product of a refining stage batch
type Output struct {
	Item   string
	Amount float64
}

// Stage is a fixed refining step: Input units of InputItem take Time seconds and
// yield Outputs. Stages are not catalog recipes because their co-products are
// partly consumed by later stages.
type Stage struct {
	Name            string
	FactoryCategory string
	InputItem       string
	Input           float64
	Time            float64
	Outputs         []Output
}

// ProfileKey returns the factory profile a stage runs with
func (s Stage) ProfileKey() recipe.ProfileKey {
	return recipe.ProfileKey{Category: s.FactoryCategory, Final: false}
}

// Process is the three-stage advanced oil processing chain. Water inputs are
// not modelled.
type Process struct {
	Processing       Stage
	HeavyOilCracking Stage
	LightOilCracking Stage
}

// Stages lists the stages in flow order
func (p Process) Stages() []Stage {
	return []Stage{p.Processing, p.HeavyOilCracking, p.LightOilCracking}
}

// RefiningProcess returns the fixed refining chain. Each call builds a fresh
// value, so callers cannot alter the stoichiometry seen by the reconciler.
func RefiningProcess() Process {
	return Process{
		Processing: Stage{
			Name:            "advanced oil processing",
			FactoryCategory: "oil refinery",
			InputItem:       CrudeOil,
			Input:           100,
			Time:            5,
			Outputs: []Output{
				{Item: HeavyOil, Amount: 25},
				{Item: LightOil, Amount: 45},
				{Item: PetroleumGas, Amount: 55},
			},
		},
		HeavyOilCracking: Stage{
			Name:            "heavy oil cracking",
			FactoryCategory: "chemical plant",
			InputItem:       HeavyOil,
			Input:           40,
			Time:            2,
			Outputs:         []Output{{Item: LightOil, Amount: 30}},
		},
		LightOilCracking: Stage{
			Name:            "light oil cracking",
			FactoryCategory: "chemical plant",
			InputItem:       LightOil,
			Input:           30,
			Time:            2,
			Outputs:         []Output{{Item: PetroleumGas, Amount: 20}},
		},
	}
}

// ForwardResult is the steady-state throughput of one stage at a given input rate
type ForwardResult struct {
	Factories float64
	Outputs   map[string]float64
}

// CalculateForward computes how many factories a stage needs to consume inputRate
// per second and what it then produces per second.
func CalculateForward(
	profile recipe.FactoryProfile,
	inputRate float64,
	batchInput float64,
	batchTime float64,
	batchOutputs []Output,
) ForwardResult {
	result := ForwardResult{
		Factories: inputRate * batchTime / batchInput / profile.Speed,
		Outputs:   make(map[string]float64, len(batchOutputs)),
	}
	for _, out := range batchOutputs {
		result.Outputs[out.Item] += out.Amount * profile.Productivity * inputRate / batchInput
	}
	return result
}

// ReconcileResult reports how the refining process was scaled
type ReconcileResult struct {
	// Multiplier is the crude oil rate, in units/second, that satisfies Demand
	Multiplier float64

	// Demand is the petroleum gas rate the graph already required
	Demand float64

	// DirectContribution and CrackedContribution split the petroleum gas supply
	// between stage 1 and light oil cracking
	DirectContribution  float64
	CrackedContribution float64

	// StageFactories maps stage name to factory count
	StageFactories map[string]float64
}

// ByproductReconciler sizes the refining process against the petroleum gas demand
// already present in a graph.
//
// The demand propagator descends from targets to raw inputs. The refining process
// cannot be built that way because its stages feed each other, so the reconciler
// solves backwards instead: it computes per-unit throughput for one unit of crude
// oil, divides the existing demand by the resulting gas yield, and adds the scaled
// stages to the graph.
type ByproductReconciler struct {
	propagator *DemandPropagator
}

// NewByproductReconciler creates a reconciler over the propagator's graph
func NewByproductReconciler(propagator *DemandPropagator) *ByproductReconciler {
	return &ByproductReconciler{propagator: propagator}
}

// Reconcile injects the refining stages needed to meet the graph's petroleum gas
// demand. When there is no such demand the graph is left unchanged and a zero
// result is returned.
func (r *ByproductReconciler) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	logger := common.LoggerFromContext(ctx)
	graph := r.propagator.Graph()
	process := RefiningProcess()

	// Injection leaves the gas demand as it was, so a second pass would double supply
	if graph.HasNode(process.Processing.Name) {
		return nil, &production.UnsupportedConfigurationError{
			Item:   process.Processing.Name,
			Reason: "refining process is already reconciled in this graph",
		}
	}

	for _, item := range []string{HeavyOil, LightOil} {
		if graph.HasNode(item) {
			return nil, &production.UnsupportedConfigurationError{
				Item:   item,
				Reason: "already demanded independently; it can only be produced inside the refining process",
			}
		}
	}

	if !graph.HasNode(PetroleumGas) || graph.Load(PetroleumGas) == 0 {
		logger.Log("DEBUG", "no petroleum gas demand, skipping reconciliation", nil)
		return &ReconcileResult{StageFactories: map[string]float64{}}, nil
	}

	refinery, err := r.stageProfile(process.Processing)
	if err != nil {
		return nil, err
	}
	chemical, err := r.stageProfile(process.HeavyOilCracking)
	if err != nil {
		return nil, err
	}
	cracking, err := r.stageProfile(process.LightOilCracking)
	if err != nil {
		return nil, err
	}

	demand := graph.Outflow(PetroleumGas)

	// Per unit of crude oil
	s1 := forward(refinery, 1, process.Processing)
	s2 := forward(chemical, s1.Outputs[HeavyOil], process.HeavyOilCracking)
	s3 := forward(cracking, s1.Outputs[LightOil]+s2.Outputs[LightOil], process.LightOilCracking)

	multiplier := demand / (s1.Outputs[PetroleumGas] + s3.Outputs[PetroleumGas])

	result := &ReconcileResult{
		Multiplier:          multiplier,
		Demand:              demand,
		DirectContribution:  s1.Outputs[PetroleumGas] * multiplier,
		CrackedContribution: s3.Outputs[PetroleumGas] * multiplier,
		StageFactories: map[string]float64{
			process.Processing.Name:       s1.Factories * multiplier,
			process.HeavyOilCracking.Name: s2.Factories * multiplier,
			process.LightOilCracking.Name: s3.Factories * multiplier,
		},
	}

	// Crude oil is validated before any stage is injected
	if err := r.propagator.Validate(CrudeOil); err != nil {
		return nil, err
	}

	for _, stage := range process.Stages() {
		graph.AddLoad(stage.Name, result.StageFactories[stage.Name])
		graph.Annotate(stage.Name, production.NodeInfo{Category: stage.FactoryCategory, Process: true})
	}

	graph.AddFlow(process.Processing.Name, process.HeavyOilCracking.Name, s1.Outputs[HeavyOil]*multiplier)
	graph.AddFlow(process.Processing.Name, process.LightOilCracking.Name, s1.Outputs[LightOil]*multiplier)
	graph.AddFlow(process.HeavyOilCracking.Name, process.LightOilCracking.Name, s2.Outputs[LightOil]*multiplier)
	graph.AddFlow(process.Processing.Name, PetroleumGas, result.DirectContribution)
	graph.AddFlow(process.LightOilCracking.Name, PetroleumGas, result.CrackedContribution)

	// Gas is now produced in the graph rather than extracted
	gas := graph.Info(PetroleumGas)
	gas.Raw = false
	graph.Annotate(PetroleumGas, gas)

	if err := r.propagator.Supply(CrudeOil, process.Processing.Name, multiplier); err != nil {
		return nil, err
	}

	logger.Log("INFO", "refining process reconciled", map[string]interface{}{
		"petroleum_gas_demand": demand,
		"crude_oil_rate":       multiplier,
		"refineries":           result.StageFactories[process.Processing.Name],
	})

	return result, nil
}

func (r *ByproductReconciler) stageProfile(stage Stage) (recipe.FactoryProfile, error) {
	profile, ok := r.propagator.Profiles().Lookup(stage.ProfileKey())
	if !ok {
		return recipe.FactoryProfile{}, &recipe.ConfigurationError{Item: stage.Name, Profile: stage.ProfileKey()}
	}
	return profile, nil
}

func forward(profile recipe.FactoryProfile, inputRate float64, stage Stage) ForwardResult {
	return CalculateForward(profile, inputRate, stage.Input, stage.Time, stage.Outputs)
}
