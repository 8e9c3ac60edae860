package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// PlanMetricsCollector exposes the shape of computed plans
type PlanMetricsCollector struct {
	plansTotal      *prometheus.CounterVec
	planNodes       prometheus.Gauge
	factoryLoad     *prometheus.GaugeVec
	targetRate      *prometheus.GaugeVec
	crudeOilRate    prometheus.Gauge
	refineriesTotal prometheus.Gauge
}

// NewPlanMetricsCollector creates a new plan metrics collector
func NewPlanMetricsCollector() *PlanMetricsCollector {
	return &PlanMetricsCollector{
		plansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plans_total",
				Help:      "Total number of plans computed by recipe mode and reconciliation",
			},
			[]string{"mode", "reconciled"},
		),
		planNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_nodes",
				Help:      "Number of nodes in the last computed plan, excluding the end sentinel",
			},
		),
		factoryLoad: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "factory_load",
				Help:      "Busy factories required by the last computed plan, by factory category",
			},
			[]string{"category"},
		),
		targetRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "target_rate_items_per_second",
				Help:      "Requested output rate of each target in the last computed plan",
			},
			[]string{"item"},
		),
		crudeOilRate: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "crude_oil_rate_units_per_second",
				Help:      "Crude oil consumed by the reconciled refining process",
			},
		),
		refineriesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "oil_refineries",
				Help:      "Oil refineries running advanced oil processing in the last reconciled plan",
			},
		),
	}
}

// Register registers all plan metrics with the Prometheus registry
func (c *PlanMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.plansTotal,
		c.planNodes,
		c.factoryLoad,
		c.targetRate,
		c.crudeOilRate,
		c.refineriesTotal,
	}
	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlan implements PlanMetricsRecorder
func (c *PlanMetricsCollector) RecordPlan(plan *production.Plan) {
	reconciled := "false"
	if plan.Reconciled() {
		reconciled = "true"
	}
	c.plansTotal.WithLabelValues(string(plan.Mode()), reconciled).Inc()

	graph := plan.Graph()
	loads := make(map[string]float64)
	nodes := 0
	for _, node := range graph.Nodes() {
		if node.Name == production.EndNode {
			continue
		}
		nodes++
		loads[graph.Info(node.Name).Category] += node.Load
	}

	c.planNodes.Set(float64(nodes))
	c.factoryLoad.Reset()
	for category, load := range loads {
		c.factoryLoad.WithLabelValues(category).Set(load)
	}

	c.targetRate.Reset()
	for _, target := range plan.Targets() {
		c.targetRate.WithLabelValues(target.Resolved).Add(target.Rate)
	}
}

// RecordReconciliation implements PlanMetricsRecorder
func (c *PlanMetricsCollector) RecordReconciliation(crudeOilRate float64, refineries float64) {
	c.crudeOilRate.Set(crudeOilRate)
	c.refineriesTotal.Set(refineries)
}
