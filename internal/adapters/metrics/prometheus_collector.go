package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

const (
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// namespace prefixes every metric; InitRegistry may override it
	namespace = "factory_planner"

	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlanCollector is the singleton plan metrics collector
	// Set by SetGlobalPlanCollector() when metrics are enabled
	globalPlanCollector PlanMetricsRecorder
)

// PlanMetricsRecorder defines the interface for recording planning results
// This interface is used by application code to record metrics
type PlanMetricsRecorder interface {
	RecordPlan(plan *production.Plan)
	RecordReconciliation(crudeOilRate float64, refineries float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry(ns string) {
	if ns != "" {
		namespace = ns
	}
	Registry = prometheus.NewRegistry()
}

// ResetRegistry disables metrics collection
func ResetRegistry() {
	Registry = nil
	globalPlanCollector = nil
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlanCollector sets the global plan metrics collector
func SetGlobalPlanCollector(collector PlanMetricsRecorder) {
	globalPlanCollector = collector
}

// RecordPlan records a finished plan globally
func RecordPlan(plan *production.Plan) {
	if globalPlanCollector != nil {
		globalPlanCollector.RecordPlan(plan)
	}
}

// RecordReconciliation records the size of the refining process globally
func RecordReconciliation(crudeOilRate float64, refineries float64) {
	if globalPlanCollector != nil {
		globalPlanCollector.RecordReconciliation(crudeOilRate, refineries)
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for the node_exporter textfile collector
func WriteTextfile(path string) error {
	if Registry == nil {
		return fmt.Errorf("metrics are not enabled")
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
