package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
)

func TestLoadDefault(t *testing.T) {
	loaded, err := catalog.LoadDefault()

	require.NoError(t, err)
	assert.Equal(t, "embedded", loaded.Source)

	for _, name := range []string{"science pack 1 red", "science pack 2 green", "science pack 3 black", "plastic bar", "crude oil"} {
		assert.True(t, loaded.Catalog.Contains(name), name)
	}

	// Every recipe has a profile
	for _, name := range loaded.Catalog.Names() {
		r, err := loaded.Catalog.Lookup(name)
		require.NoError(t, err)
		_, err = loaded.Profiles.ForRecipe(r)
		assert.NoError(t, err, name)
	}

	steel, err := loaded.Catalog.Lookup("steel plate")
	require.NoError(t, err)
	assert.Equal(t, 16.0, steel.Normal.Time)
	assert.Equal(t, 32.0, steel.Expensive.Time)
	assert.Equal(t, 10.0, steel.Expensive.Inputs[0].Amount)

	gear, err := loaded.Catalog.Lookup("iron gear wheel")
	require.NoError(t, err)
	assert.Equal(t, 0.5, gear.Expensive.Time)
	assert.Equal(t, 4.0, gear.Expensive.Inputs[0].Amount)

	belt, err := loaded.Catalog.Lookup("transport belt")
	require.NoError(t, err)
	assert.True(t, belt.Final)
	assert.Equal(t, 2, belt.OutputQuantity)

	assembler, ok := loaded.Profiles.Lookup(recipe.ProfileKey{Category: "assembling machine"})
	require.True(t, ok)
	assert.Equal(t, recipe.FactoryProfile{Speed: 1.3125, Productivity: 1.3}, assembler)
}

func TestLoad_PreservesIngredientOrder(t *testing.T) {
	doc := `
items:
  - name: ore
    factory: drill
  - name: coal
    factory: drill
  - name: plate
    time: 2
    factory: furnace
    inputs:
      - { item: ore, amount: 1 }
      - { item: coal, amount: 0.5 }
factories:
  - { category: drill, speed: 1, productivity: 1 }
  - { category: furnace, speed: 2, productivity: 1 }
`
	loaded, err := catalog.Load(strings.NewReader(doc))

	require.NoError(t, err)
	plate, err := loaded.Catalog.Lookup("plate")
	require.NoError(t, err)
	assert.Equal(t, []recipe.Ingredient{{Item: "ore", Amount: 1}, {Item: "coal", Amount: 0.5}}, plate.Normal.Inputs)
	assert.Equal(t, plate.Normal, plate.Expensive)
	assert.Equal(t, 1, plate.OutputQuantity)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		errText string
	}{
		{
			name: "unknown ingredient",
			doc: `
items:
  - { name: plate, factory: furnace, inputs: [ { item: ore, amount: 1 } ] }
factories:
  - { category: furnace, speed: 1, productivity: 1 }
`,
			errText: `ingredient "ore" is not in the catalog`,
		},
		{
			name: "missing factory",
			doc: `
items:
  - { name: ore }
factories:
  - { category: drill, speed: 1, productivity: 1 }
`,
			errText: "Factory",
		},
		{
			name: "non-positive speed",
			doc: `
items:
  - { name: ore, factory: drill }
factories:
  - { category: drill, speed: 0, productivity: 1 }
`,
			errText: "Speed",
		},
		{
			name: "duplicate profile",
			doc: `
items:
  - { name: ore, factory: drill }
factories:
  - { category: drill, speed: 1, productivity: 1 }
  - { category: drill, speed: 2, productivity: 1 }
`,
			errText: "defined more than once",
		},
		{
			name: "unknown field",
			doc: `
items:
  - { name: ore, factory: drill, colour: red }
factories:
  - { category: drill, speed: 1, productivity: 1 }
`,
			errText: "colour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(tt.doc))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
items:
  - { name: ore, factory: drill }
factories:
  - { category: drill, speed: 1, productivity: 1 }
`), 0o644))

	loaded, err := catalog.LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, path, loaded.Source)
	assert.Equal(t, 1, loaded.Catalog.Len())

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
