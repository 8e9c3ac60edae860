package common

import "context"

// PlanLogger is the structured logger handlers and services pull from the
// context. Levels are "DEBUG", "INFO", "WARN" and "ERROR".
type PlanLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

type loggerKey struct{}

// WithLogger attaches logger to ctx for everything downstream of the mediator
func WithLogger(ctx context.Context, logger PlanLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext never returns nil; without a logger, messages are dropped
func LoggerFromContext(ctx context.Context) PlanLogger {
	if logger, ok := ctx.Value(loggerKey{}).(PlanLogger); ok && logger != nil {
		return logger
	}
	return discardLogger{}
}

type discardLogger struct{}

func (discardLogger) Log(string, string, map[string]interface{}) {}
