package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/application/common"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/production/commands"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
	"github.com/andrescamacho/factory-planner-go/test/helpers"
)

func newMediator(t *testing.T, repo production.PlanRepository) mediator.Mediator {
	t.Helper()
	catalog := helpers.NewCatalog(t,
		helpers.Raw("crude oil", "pumpjack"),
		helpers.Raw("petroleum gas", "fluid"),
		helpers.Raw("coal", "mining drill"),
		helpers.Crafted("plastic bar", "chemical plant", 1, 2, helpers.In("petroleum gas", 20), helpers.In("coal", 1)),
		helpers.Raw("iron ore", "mining drill"),
		helpers.Crafted("iron plate", "furnace", 3.2, 1, helpers.In("iron ore", 1)),
		recipe.NewRecipe("iron gear wheel", 1, "assembling machine", false,
			recipe.Variant{Time: 0.5, Inputs: []recipe.Ingredient{helpers.In("iron plate", 2)}},
			&recipe.ExpensiveOverride{Inputs: []recipe.Ingredient{helpers.In("iron plate", 4)}},
		),
	)
	handler := commands.NewPlanProductionHandler(
		catalog,
		helpers.UnitProfiles(t, helpers.AllCategories...),
		repo,
		shared.NewFixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	)

	m := mediator.NewMediator()
	m.Use(common.LoggingMiddleware())
	require.NoError(t, mediator.RegisterHandler[*commands.PlanProductionCommand](m, handler))
	return m
}

func send(t *testing.T, m mediator.Mediator, ctx context.Context, cmd *commands.PlanProductionCommand) (*commands.PlanProductionResponse, error) {
	t.Helper()
	response, err := m.Send(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return response.(*commands.PlanProductionResponse), nil
}

func TestPlanProduction_MergesTargets(t *testing.T) {
	// Arrange
	m := newMediator(t, nil)
	logger := &helpers.RecordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	response, err := send(t, m, ctx, &commands.PlanProductionCommand{
		Targets: []commands.TargetRequest{
			{Item: "iron gear", Rate: 1},
			{Item: "iron plate", Rate: 3},
		},
	})

	// Assert
	require.NoError(t, err)
	plan := response.Plan
	assert.Equal(t, recipe.ModeNormal, plan.Mode())
	assert.False(t, plan.Reconciled())
	assert.Nil(t, response.Reconciliation)
	assert.False(t, response.Saved)
	assert.Equal(t, []production.Target{
		{Item: "iron gear", Resolved: "iron gear wheel", Rate: 1},
		{Item: "iron plate", Resolved: "iron plate", Rate: 3},
	}, plan.Targets())
	assert.InDelta(t, 5.0, plan.Graph().Outflow("iron plate"), 1e-9)
	assert.Regexp(t, `^iron-gear-wheel-[0-9a-f]{8}$`, plan.ID())
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), plan.CreatedAt())

	assert.Contains(t, logger.Messages(), "plan computed")
	assert.Contains(t, logger.Messages(), "request handled")
}

func TestPlanProduction_ExpensiveMode(t *testing.T) {
	m := newMediator(t, nil)

	response, err := send(t, m, context.Background(), &commands.PlanProductionCommand{
		Targets:   []commands.TargetRequest{{Item: "iron gear wheel", Rate: 1}},
		Expensive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, recipe.ModeExpensive, response.Plan.Mode())
	assert.InDelta(t, 4.0, response.Plan.Graph().Flow("iron plate", "iron gear wheel"), 1e-9)
}

func TestPlanProduction_Reconcile(t *testing.T) {
	m := newMediator(t, nil)

	response, err := send(t, m, context.Background(), &commands.PlanProductionCommand{
		Targets:   []commands.TargetRequest{{Item: "plastic", Rate: 2}},
		Reconcile: true,
	})

	require.NoError(t, err)
	require.NotNil(t, response.Reconciliation)
	assert.True(t, response.Plan.Reconciled())
	assert.InDelta(t, 20.0, response.Reconciliation.Demand, 1e-9)
	assert.True(t, response.Plan.Graph().HasNode("advanced oil processing"))
}

func TestPlanProduction_SavesPlan(t *testing.T) {
	repo := helpers.NewMockPlanRepository()
	m := newMediator(t, repo)

	response, err := send(t, m, context.Background(), &commands.PlanProductionCommand{
		Targets: []commands.TargetRequest{{Item: "iron plate", Rate: 1}},
		Save:    true,
	})

	require.NoError(t, err)
	assert.True(t, response.Saved)
	stored, err := repo.FindByID(context.Background(), response.Plan.ID())
	require.NoError(t, err)
	assert.Same(t, response.Plan, stored)
}

func TestPlanProduction_Errors(t *testing.T) {
	t.Run("no targets", func(t *testing.T) {
		_, err := send(t, newMediator(t, nil), context.Background(), &commands.PlanProductionCommand{})

		var validation *shared.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "targets", validation.Field)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := send(t, newMediator(t, nil), context.Background(), &commands.PlanProductionCommand{
			Targets: []commands.TargetRequest{{Item: "uranium", Rate: 1}},
		})

		var notFound *recipe.ItemNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, err.Error(), `failed to add target "uranium"`)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := send(t, newMediator(t, nil), context.Background(), &commands.PlanProductionCommand{
			Targets: []commands.TargetRequest{{Item: "iron", Rate: 1}},
		})

		var ambiguous *recipe.AmbiguousItemError
		require.ErrorAs(t, err, &ambiguous)
	})

	t.Run("save without repository", func(t *testing.T) {
		_, err := send(t, newMediator(t, nil), context.Background(), &commands.PlanProductionCommand{
			Targets: []commands.TargetRequest{{Item: "iron plate", Rate: 1}},
			Save:    true,
		})

		assert.ErrorContains(t, err, "plan history is not enabled")
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := helpers.NewMockPlanRepository()
		repo.SaveErr = errors.New("disk full")
		logger := &helpers.RecordingLogger{}
		ctx := common.WithLogger(context.Background(), logger)

		_, err := send(t, newMediator(t, repo), ctx, &commands.PlanProductionCommand{
			Targets: []commands.TargetRequest{{Item: "iron plate", Rate: 1}},
			Save:    true,
		})

		assert.ErrorContains(t, err, "disk full")
		assert.Contains(t, logger.Messages(), "request failed")
		assert.NotContains(t, logger.Messages(), "plan computed")
	})
}
