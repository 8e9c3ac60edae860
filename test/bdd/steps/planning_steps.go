package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/factory-planner-go/internal/application/common"
	"github.com/andrescamacho/factory-planner-go/internal/application/production/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/test/helpers"
)

const tolerance = 1e-4

type planningContext struct {
	recipes    []*recipe.Recipe
	categories map[string]bool
	defaults   recipe.FactoryProfile
	overrides  map[string]recipe.FactoryProfile

	propagator *services.DemandPropagator
	resolved   string
	requestErr error

	reconciled   *services.ReconcileResult
	reconcileErr error

	logger *helpers.RecordingLogger
}

func (ctx *planningContext) reset() {
	ctx.recipes = nil
	ctx.categories = make(map[string]bool)
	ctx.defaults = recipe.FactoryProfile{Speed: 1, Productivity: 1}
	ctx.overrides = make(map[string]recipe.FactoryProfile)
	ctx.propagator = nil
	ctx.resolved = ""
	ctx.requestErr = nil
	ctx.reconciled = nil
	ctx.reconcileErr = nil
	ctx.logger = &helpers.RecordingLogger{}
}

// ============================================================================
// Setup Steps
// ============================================================================

func (ctx *planningContext) aRecipeCatalog(table *godog.Table) error {
	ctx.recipes = nil
	return ctx.theCatalogAlsoContains(table)
}

func (ctx *planningContext) theCatalogAlsoContains(table *godog.Table) error {
	if ctx.propagator != nil {
		return fmt.Errorf("catalog cannot change after the first request")
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("catalog table needs a header and at least one row")
	}

	header := table.Rows[0]
	for _, row := range table.Rows[1:] {
		r, err := parseRecipeRow(header, row)
		if err != nil {
			return err
		}
		ctx.recipes = append(ctx.recipes, r)
		ctx.categories[r.FactoryCategory] = true
	}
	return nil
}

func (ctx *planningContext) everyFactoryRunsAt(speed, productivity float64) error {
	ctx.defaults = recipe.FactoryProfile{Speed: speed, Productivity: productivity}
	return nil
}

func (ctx *planningContext) theFactoryRunsAt(category string, speed, productivity float64) error {
	ctx.overrides[category] = recipe.FactoryProfile{Speed: speed, Productivity: productivity}
	return nil
}

// ensurePropagator builds the catalog and profile table on first use, so setup
// steps can run in any order
func (ctx *planningContext) ensurePropagator() error {
	if ctx.propagator != nil {
		return nil
	}

	catalog, err := recipe.NewCatalog(ctx.recipes)
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	process := services.RefiningProcess()
	categories := []string{
		process.Processing.FactoryCategory,
		process.LightOilCracking.FactoryCategory,
	}
	for category := range ctx.categories {
		categories = append(categories, category)
	}

	profiles := make(map[recipe.ProfileKey]recipe.FactoryProfile)
	for _, category := range categories {
		profile := ctx.defaults
		if override, ok := ctx.overrides[category]; ok {
			profile = override
		}
		for _, final := range []bool{false, true} {
			profiles[recipe.ProfileKey{Category: category, Final: final}] = profile
		}
	}
	table, err := recipe.NewProfileTable(profiles)
	if err != nil {
		return err
	}

	ctx.propagator = services.NewDemandPropagator(catalog, table, recipe.ModeNormal)
	return nil
}

// ============================================================================
// Action Steps
// ============================================================================

func (ctx *planningContext) iRequestPerSecond(rate float64, item string) error {
	if err := ctx.ensurePropagator(); err != nil {
		return err
	}
	ctx.resolved, ctx.requestErr = ctx.propagator.Add(ctx.context(), item, rate)
	return nil
}

func (ctx *planningContext) iReconcileTheRefiningProcess() error {
	if err := ctx.ensurePropagator(); err != nil {
		return err
	}
	reconciler := services.NewByproductReconciler(ctx.propagator)
	ctx.reconciled, ctx.reconcileErr = reconciler.Reconcile(ctx.context())
	return nil
}

func (ctx *planningContext) context() context.Context {
	return common.WithLogger(context.Background(), ctx.logger)
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (ctx *planningContext) theRequestShouldSucceed() error {
	if ctx.requestErr != nil {
		return fmt.Errorf("expected request to succeed, got: %w", ctx.requestErr)
	}
	return nil
}

func (ctx *planningContext) theRequestShouldResolveTo(item string) error {
	if err := ctx.theRequestShouldSucceed(); err != nil {
		return err
	}
	if ctx.resolved != item {
		return fmt.Errorf("expected request to resolve to %q, got %q", item, ctx.resolved)
	}
	return nil
}

func (ctx *planningContext) theRequestShouldFailWithAnErrorContaining(text string) error {
	return expectErrorContaining("request", ctx.requestErr, text)
}

func (ctx *planningContext) shouldBeATarget(item string) error {
	if !ctx.propagator.Graph().IsTarget(item) {
		return fmt.Errorf("expected %q to be a target", item)
	}
	return nil
}

func (ctx *planningContext) theLoadOfShouldBe(item string, expected float64) error {
	graph := ctx.propagator.Graph()
	if !graph.HasNode(item) {
		return fmt.Errorf("expected node %q in graph", item)
	}
	return expectClose(fmt.Sprintf("load of %q", item), graph.Load(item), expected)
}

func (ctx *planningContext) theFlowFromToShouldBe(producer, consumer string, expected float64) error {
	actual := ctx.propagator.Graph().Flow(producer, consumer)
	return expectClose(fmt.Sprintf("flow %q -> %q", producer, consumer), actual, expected)
}

func (ctx *planningContext) theGraphShouldHaveNodes(count int) error {
	nodes := ctx.propagator.Graph().Nodes()
	if len(nodes) != count {
		return fmt.Errorf("expected %d nodes, got %d", count, len(nodes))
	}
	return nil
}

func (ctx *planningContext) theReconciliationShouldSucceed() error {
	if ctx.reconcileErr != nil {
		return fmt.Errorf("expected reconciliation to succeed, got: %w", ctx.reconcileErr)
	}
	return nil
}

func (ctx *planningContext) theReconciliationShouldFailWithAnErrorContaining(text string) error {
	return expectErrorContaining("reconciliation", ctx.reconcileErr, text)
}

func (ctx *planningContext) thePetroleumGasDemandShouldBe(expected float64) error {
	if ctx.reconciled == nil {
		return fmt.Errorf("no reconciliation result")
	}
	return expectClose("petroleum gas demand", ctx.reconciled.Demand, expected)
}

func (ctx *planningContext) theCrudeOilRateShouldBe(expected float64) error {
	if ctx.reconciled == nil {
		return fmt.Errorf("no reconciliation result")
	}
	return expectClose("crude oil rate", ctx.reconciled.Multiplier, expected)
}

func (ctx *planningContext) petroleumGasSuppliedShouldTotal(expected float64) error {
	graph := ctx.propagator.Graph()
	process := services.RefiningProcess()
	supplied := graph.Flow(process.Processing.Name, services.PetroleumGas) +
		graph.Flow(process.LightOilCracking.Name, services.PetroleumGas)
	return expectClose("petroleum gas supplied", supplied, expected)
}

func (ctx *planningContext) theLogShouldContain(message string) error {
	for _, m := range ctx.logger.Messages() {
		if m == message {
			return nil
		}
	}
	return fmt.Errorf("expected log message %q, got %v", message, ctx.logger.Messages())
}

// ============================================================================
// Helpers
// ============================================================================

// parseRecipeRow reads an item/factory/time/output/inputs row. Inputs are a comma
// separated list of "<amount> <item>".
func parseRecipeRow(header, row *messages.PickleTableRow) (*recipe.Recipe, error) {
	values := make(map[string]string, len(header.Cells))
	for i, cell := range header.Cells {
		if i < len(row.Cells) {
			values[cell.Value] = strings.TrimSpace(row.Cells[i].Value)
		}
	}

	name := values["item"]
	craftTime, err := strconv.ParseFloat(values["time"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid time for %s: %w", name, err)
	}
	output := 1
	if values["output"] != "" {
		output, err = strconv.Atoi(values["output"])
		if err != nil {
			return nil, fmt.Errorf("invalid output for %s: %w", name, err)
		}
	}

	var inputs []recipe.Ingredient
	if values["inputs"] != "" {
		for _, part := range strings.Split(values["inputs"], ",") {
			fields := strings.SplitN(strings.TrimSpace(part), " ", 2)
			if len(fields) != 2 {
				return nil, fmt.Errorf("invalid input %q for %s", part, name)
			}
			amount, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid input amount %q for %s: %w", fields[0], name, err)
			}
			inputs = append(inputs, recipe.Ingredient{Item: fields[1], Amount: amount})
		}
	}

	return recipe.NewRecipe(name, output, values["factory"], false,
		recipe.Variant{Time: craftTime, Inputs: inputs}, nil), nil
}

func expectClose(what string, actual, expected float64) error {
	if math.Abs(actual-expected) > tolerance {
		return fmt.Errorf("expected %s to be %g, got %g", what, expected, actual)
	}
	return nil
}

func expectErrorContaining(what string, err error, text string) error {
	if err == nil {
		return fmt.Errorf("expected %s to fail with %q, but it succeeded", what, text)
	}
	if !strings.Contains(err.Error(), text) {
		return fmt.Errorf("expected %s error to contain %q, got: %v", what, text, err)
	}
	return nil
}

// Register steps

func InitializePlanningScenario(sc *godog.ScenarioContext) {
	planningCtx := &planningContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		planningCtx.reset()
		return ctx, nil
	})

	// Setup
	sc.Step(`^a recipe catalog:$`, planningCtx.aRecipeCatalog)
	sc.Step(`^the catalog also contains:$`, planningCtx.theCatalogAlsoContains)
	sc.Step(`^every factory runs at speed (\d+(?:\.\d+)?) with productivity (\d+(?:\.\d+)?)$`, planningCtx.everyFactoryRunsAt)
	sc.Step(`^the "([^"]*)" factory runs at speed (\d+(?:\.\d+)?) with productivity (\d+(?:\.\d+)?)$`, planningCtx.theFactoryRunsAt)

	// Actions
	sc.Step(`^I request (-?\d+(?:\.\d+)?) "([^"]*)" per second$`, planningCtx.iRequestPerSecond)
	sc.Step(`^I reconcile the refining process$`, planningCtx.iReconcileTheRefiningProcess)

	// Propagation assertions
	sc.Step(`^the request should succeed$`, planningCtx.theRequestShouldSucceed)
	sc.Step(`^the request should resolve to "([^"]*)"$`, planningCtx.theRequestShouldResolveTo)
	sc.Step(`^the request should fail with an error containing "([^"]*)"$`, planningCtx.theRequestShouldFailWithAnErrorContaining)
	sc.Step(`^"([^"]*)" should be a target$`, planningCtx.shouldBeATarget)
	sc.Step(`^the load of "([^"]*)" should be (?:about )?(-?\d+(?:\.\d+)?)$`, planningCtx.theLoadOfShouldBe)
	sc.Step(`^the flow from "([^"]*)" to "([^"]*)" should be (?:about )?(-?\d+(?:\.\d+)?)$`, planningCtx.theFlowFromToShouldBe)
	sc.Step(`^the graph should have (\d+) nodes$`, planningCtx.theGraphShouldHaveNodes)

	// Reconciliation assertions
	sc.Step(`^the reconciliation should succeed$`, planningCtx.theReconciliationShouldSucceed)
	sc.Step(`^the reconciliation should fail with an error containing "([^"]*)"$`, planningCtx.theReconciliationShouldFailWithAnErrorContaining)
	sc.Step(`^the petroleum gas demand should be (?:about )?(-?\d+(?:\.\d+)?)$`, planningCtx.thePetroleumGasDemandShouldBe)
	sc.Step(`^the crude oil rate should be (?:about )?(-?\d+(?:\.\d+)?)$`, planningCtx.theCrudeOilRateShouldBe)
	sc.Step(`^the log should contain "([^"]*)"$`, planningCtx.theLogShouldContain)
	sc.Step(`^petroleum gas supplied by the refining process should total (?:about )?(-?\d+(?:\.\d+)?)$`, planningCtx.petroleumGasSuppliedShouldTotal)
}
