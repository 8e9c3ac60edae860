package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

// CommandMetricsCollector tracks every request dispatched through the mediator
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// planning is in-memory, so buckets start well below a millisecond
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Time spent handling planner commands and queries",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.25, 1},
			},
			[]string{"command", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Planner commands and queries handled, by outcome",
			},
			[]string{"command", "status"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_failures_total",
				Help:      "Failed planner requests by error kind",
			},
			[]string{"command", "kind"},
		),
	}
}

// Register is a no-op while metrics are disabled
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, collector := range []prometheus.Collector{c.duration, c.total, c.failures} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution observes one request; a non-nil err also counts
// toward command_failures_total under its ErrorKind.
func (c *CommandMetricsCollector) RecordCommandExecution(command string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
		c.failures.WithLabelValues(command, ErrorKind(err)).Inc()
	}

	c.duration.WithLabelValues(command, status).Observe(seconds)
	c.total.WithLabelValues(command, status).Inc()
}

// ErrorKind maps planner errors onto a small, fixed label set
func ErrorKind(err error) string {
	var (
		notFound    *recipe.ItemNotFoundError
		ambiguous   *recipe.AmbiguousItemError
		profile     *recipe.ConfigurationError
		invalid     *recipe.InvalidRecipeError
		cycle       *production.CyclicRecipeError
		unsupported *production.UnsupportedConfigurationError
		missingPlan *production.PlanNotFoundError
		validation  *shared.ValidationError
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &missingPlan):
		return "not_found"
	case errors.As(err, &ambiguous):
		return "ambiguous"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &profile), errors.As(err, &invalid):
		return "catalog"
	case errors.As(err, &cycle):
		return "cycle"
	case errors.As(err, &unsupported):
		return "unsupported"
	default:
		return "internal"
	}
}
