package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/application/common"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records the duration and outcome
// of every command and query, labelled by bare request type name
// ("*commands.PlanProductionCommand" is recorded as "PlanProductionCommand").
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordCommandExecution(common.RequestName(request), time.Since(start).Seconds(), err)

		return response, err
	}
}
