package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
	"github.com/andrescamacho/factory-planner-go/test/helpers"
)

func TestPropagate_UnvalidatedItemReturnsError(t *testing.T) {
	p := NewDemandPropagator(helpers.GearWheelCatalog(t), helpers.UnitProfiles(t, "furnace"), recipe.ModeNormal)

	var notFound *recipe.ItemNotFoundError
	assert.NotPanics(t, func() {
		err := p.propagate("uranium ore", "end", 1)
		require.ErrorAs(t, err, &notFound)
	})
	assert.Equal(t, "uranium ore", notFound.Item)

	// iron plate has a furnace profile but its iron ore input has none
	var configErr *recipe.ConfigurationError
	err := p.propagate("iron plate", "end", 1)
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "iron ore", configErr.Item)
}
