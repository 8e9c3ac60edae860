package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

type pingCommand struct{}

func setupRegistry(t *testing.T) {
	t.Helper()
	metrics.InitRegistry("fp_test")
	t.Cleanup(metrics.ResetRegistry)
}

// gaugeValues returns every sample of a metric family keyed by its label values
func gaugeValues(t *testing.T, name string) map[string]float64 {
	t.Helper()
	families, err := metrics.Registry.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			key := ""
			for _, label := range m.GetLabel() {
				key += label.GetValue()
			}
			switch {
			case m.GetGauge() != nil:
				values[key] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				values[key] = m.GetCounter().GetValue()
			}
		}
	}
	return values
}

func samplePlan() *production.Plan {
	graph := production.NewGraph()
	graph.MarkTarget("iron gear wheel")
	graph.AddLoad("iron gear wheel", 0.5)
	graph.Annotate("iron gear wheel", production.NodeInfo{Category: "assembling machine"})
	graph.AddLoad("iron plate", 6.4)
	graph.Annotate("iron plate", production.NodeInfo{Category: "furnace"})
	graph.AddLoad("copper plate", 1.6)
	graph.Annotate("copper plate", production.NodeInfo{Category: "furnace"})

	return production.NewPlan("p1", recipe.ModeNormal,
		[]production.Target{{Item: "iron gear", Resolved: "iron gear wheel", Rate: 1}},
		graph, false, nil)
}

func TestPlanMetricsCollector_RecordPlan(t *testing.T) {
	setupRegistry(t)
	collector := metrics.NewPlanMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalPlanCollector(collector)

	metrics.RecordPlan(samplePlan())

	assert.Equal(t, map[string]float64{"": 3}, gaugeValues(t, "fp_test_planner_plan_nodes"))
	loads := gaugeValues(t, "fp_test_planner_factory_load")
	assert.InDelta(t, 8.0, loads["furnace"], 1e-9)
	assert.InDelta(t, 0.5, loads["assembling machine"], 1e-9)
	assert.Equal(t, map[string]float64{"iron gear wheel": 1}, gaugeValues(t, "fp_test_planner_target_rate_items_per_second"))
	assert.Equal(t, map[string]float64{"normalfalse": 1}, gaugeValues(t, "fp_test_planner_plans_total"))
}

func TestRecordPlan_NoCollectorIsNoOp(t *testing.T) {
	metrics.ResetRegistry()

	assert.NotPanics(t, func() {
		metrics.RecordPlan(samplePlan())
		metrics.RecordReconciliation(1, 2)
	})
	assert.False(t, metrics.IsEnabled())
}

func TestPrometheusMiddleware(t *testing.T) {
	setupRegistry(t)
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.PrometheusMiddleware(collector)

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "pong", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	}

	response, err := middleware(context.Background(), &pingCommand{}, ok)
	require.NoError(t, err)
	assert.Equal(t, "pong", response)
	_, err = middleware(context.Background(), &pingCommand{}, fail)
	require.Error(t, err)

	counts := gaugeValues(t, "fp_test_planner_commands_total")
	assert.Equal(t, 1.0, counts["pingCommandsuccess"])
	assert.Equal(t, 1.0, counts["pingCommanderror"])
	assert.Equal(t, map[string]float64{"pingCommandinternal": 1}, gaugeValues(t, "fp_test_planner_command_failures_total"))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{&recipe.ItemNotFoundError{Item: "uranium"}, "not_found"},
		{&production.PlanNotFoundError{ID: "p"}, "not_found"},
		{&recipe.AmbiguousItemError{Prefix: "science"}, "ambiguous"},
		{shared.NewValidationError("rate", "must be positive"), "validation"},
		{&production.CyclicRecipeError{}, "cycle"},
		{fmt.Errorf("plan: %w", &production.UnsupportedConfigurationError{}), "unsupported"},
		{errors.New("disk full"), "internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, metrics.ErrorKind(tt.err), "%v", tt.err)
	}
}

func TestWriteTextfile(t *testing.T) {
	setupRegistry(t)
	collector := metrics.NewPlanMetricsCollector()
	require.NoError(t, collector.Register())
	collector.RecordReconciliation(20.5, 0.1)
	path := filepath.Join(t.TempDir(), "planner.prom")

	require.NoError(t, metrics.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "fp_test_planner_crude_oil_rate_units_per_second 20.5")
}

func TestWriteTextfile_Disabled(t *testing.T) {
	metrics.ResetRegistry()

	err := metrics.WriteTextfile(filepath.Join(t.TempDir(), "planner.prom"))

	assert.Error(t, err)
}
