package common

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
)

// LoggingMiddleware logs every request dispatched through the mediator together
// with its duration and outcome, using the logger carried by the context.
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.Log("ERROR", "request failed", map[string]interface{}{
				"request":     name,
				"duration_ms": elapsed.Milliseconds(),
				"error":       err.Error(),
			})
			return response, err
		}

		logger.Log("DEBUG", "request handled", map[string]interface{}{
			"request":     name,
			"duration_ms": elapsed.Milliseconds(),
		})
		return response, nil
	}
}

// RequestName returns the bare type name of a request.
// For example "*commands.PlanProductionCommand" becomes "PlanProductionCommand".
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
