package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
)

type echoQuery struct{ Value string }

type echoHandler struct{}

func (h *echoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return request.(*echoQuery).Value, nil
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, &echoHandler{}))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+" before")
			response, err := next(ctx, request)
			calls = append(calls, name+" after")
			return response, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	response, err := m.Send(context.Background(), &echoQuery{Value: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "hi", response)
	assert.Equal(t, []string{"outer before", "inner before", "inner after", "outer after"}, calls)
}

func TestMediator_Errors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &echoQuery{})
	assert.ErrorContains(t, err, "no handler registered")

	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, &echoHandler{}))
	assert.Error(t, mediator.RegisterHandler[*echoQuery](m, &echoHandler{}))
	assert.Error(t, m.Register(nil, &echoHandler{}))
}
