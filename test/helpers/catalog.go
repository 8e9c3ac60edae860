package helpers

import (
	"testing"

	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
)

// Raw returns a raw resource recipe (no inputs, one craft per second)
func Raw(name, category string) *recipe.Recipe {
	return recipe.NewRecipe(name, 1, category, false, recipe.Variant{Time: 1}, nil)
}

// Crafted returns an intermediate recipe with the given inputs
func Crafted(name, category string, time float64, output int, inputs ...recipe.Ingredient) *recipe.Recipe {
	return recipe.NewRecipe(name, output, category, false, recipe.Variant{Time: time, Inputs: inputs}, nil)
}

// In is shorthand for a recipe ingredient
func In(item string, amount float64) recipe.Ingredient {
	return recipe.Ingredient{Item: item, Amount: amount}
}

// NewCatalog builds a catalog, failing the test on validation errors
func NewCatalog(t *testing.T, recipes ...*recipe.Recipe) *recipe.Catalog {
	t.Helper()
	catalog, err := recipe.NewCatalog(recipes)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return catalog
}

// GearWheelCatalog is the iron ore -> iron plate -> iron gear wheel chain.
// The gear wheel costs 4 plates in expensive mode.
func GearWheelCatalog(t *testing.T) *recipe.Catalog {
	t.Helper()
	return NewCatalog(t,
		Raw("iron ore", "mining drill"),
		Crafted("iron plate", "furnace", 3.2, 1, In("iron ore", 1)),
		recipe.NewRecipe("iron gear wheel", 1, "assembling machine", false,
			recipe.Variant{Time: 0.5, Inputs: []recipe.Ingredient{In("iron plate", 2)}},
			&recipe.ExpensiveOverride{Inputs: []recipe.Ingredient{In("iron plate", 4)}},
		),
	)
}

// OilCatalog holds the items the refining process touches plus a plastic bar
// recipe that consumes petroleum gas.
func OilCatalog(t *testing.T) *recipe.Catalog {
	t.Helper()
	return NewCatalog(t,
		Raw("crude oil", "pumpjack"),
		Raw("petroleum gas", "fluid"),
		Raw("heavy oil", "fluid"),
		Raw("light oil", "fluid"),
		Raw("coal", "mining drill"),
		Crafted("plastic bar", "chemical plant", 1, 2, In("petroleum gas", 20), In("coal", 1)),
		Raw("iron ore", "mining drill"),
		Crafted("iron plate", "furnace", 3.2, 1, In("iron ore", 1)),
	)
}

// UnitProfiles returns a table with speed 1 and productivity 1 for every category,
// both intermediate and final
func UnitProfiles(t *testing.T, categories ...string) *recipe.ProfileTable {
	t.Helper()
	profiles := make(map[recipe.ProfileKey]recipe.FactoryProfile, len(categories)*2)
	for _, category := range categories {
		for _, final := range []bool{false, true} {
			profiles[recipe.ProfileKey{Category: category, Final: final}] = recipe.FactoryProfile{Speed: 1, Productivity: 1}
		}
	}
	table, err := recipe.NewProfileTable(profiles)
	if err != nil {
		t.Fatalf("failed to build profile table: %v", err)
	}
	return table
}

// AllCategories lists every category used by the fixtures
var AllCategories = []string{
	"mining drill", "furnace", "assembling machine",
	"pumpjack", "fluid", "chemical plant", "oil refinery",
}
