package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
)

//go:embed default.yaml
var defaultCatalog []byte

// Document is the on-disk catalog format
type Document struct {
	Items     []ItemDefinition    `yaml:"items" validate:"required,min=1,dive"`
	Factories []FactoryDefinition `yaml:"factories" validate:"required,min=1,dive"`
}

// ItemDefinition describes one recipe. Output defaults to 1.
type ItemDefinition struct {
	Name      string                 `yaml:"name" validate:"required"`
	Time      float64                `yaml:"time" validate:"min=0"`
	Output    int                    `yaml:"output" validate:"min=0"`
	Factory   string                 `yaml:"factory" validate:"required"`
	Final     bool                   `yaml:"final"`
	Inputs    []IngredientDefinition `yaml:"inputs" validate:"dive"`
	Expensive *ExpensiveDefinition   `yaml:"expensive,omitempty"`
}

// IngredientDefinition is one recipe input
type IngredientDefinition struct {
	Item   string  `yaml:"item" validate:"required"`
	Amount float64 `yaml:"amount" validate:"gt=0"`
}

// ExpensiveDefinition overrides time and/or inputs in expensive mode
type ExpensiveDefinition struct {
	Time   *float64               `yaml:"time,omitempty" validate:"omitempty,min=0"`
	Inputs []IngredientDefinition `yaml:"inputs,omitempty" validate:"dive"`
}

// FactoryDefinition is one factory profile
type FactoryDefinition struct {
	Category     string  `yaml:"category" validate:"required"`
	Final        bool    `yaml:"final"`
	Speed        float64 `yaml:"speed" validate:"gt=0"`
	Productivity float64 `yaml:"productivity" validate:"gt=0"`
}

// Loaded is a parsed and validated catalog with its factory profiles
type Loaded struct {
	Catalog  *recipe.Catalog
	Profiles *recipe.ProfileTable
	Source   string
}

// LoadDefault parses the embedded vanilla catalog
func LoadDefault() (*Loaded, error) {
	return load(bytes.NewReader(defaultCatalog), "embedded")
}

// LoadFile parses a catalog file, or the embedded catalog if path is empty
func LoadFile(path string) (*Loaded, error) {
	if path == "" {
		return LoadDefault()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return load(f, path)
}

// Load parses a catalog from r
func Load(r io.Reader) (*Loaded, error) {
	return load(r, "reader")
}

func load(r io.Reader, source string) (*Loaded, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
	}

	if err := validator.New().Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", source, err)
	}

	catalog, err := recipe.NewCatalog(toRecipes(doc.Items))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", source, err)
	}

	profiles, err := toProfiles(doc.Factories)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", source, err)
	}

	return &Loaded{Catalog: catalog, Profiles: profiles, Source: source}, nil
}

func toRecipes(items []ItemDefinition) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(items))
	for _, item := range items {
		output := item.Output
		if output == 0 {
			output = 1
		}

		var expensive *recipe.ExpensiveOverride
		if item.Expensive != nil {
			expensive = &recipe.ExpensiveOverride{
				Time:   item.Expensive.Time,
				Inputs: toIngredients(item.Expensive.Inputs),
			}
		}

		recipes = append(recipes, recipe.NewRecipe(
			item.Name,
			output,
			item.Factory,
			item.Final,
			recipe.Variant{Time: item.Time, Inputs: toIngredients(item.Inputs)},
			expensive,
		))
	}
	return recipes
}

// toIngredients keeps nil for an absent list so expensive overrides fall back
func toIngredients(defs []IngredientDefinition) []recipe.Ingredient {
	if defs == nil {
		return nil
	}
	ingredients := make([]recipe.Ingredient, 0, len(defs))
	for _, def := range defs {
		ingredients = append(ingredients, recipe.Ingredient{Item: def.Item, Amount: def.Amount})
	}
	return ingredients
}

func toProfiles(defs []FactoryDefinition) (*recipe.ProfileTable, error) {
	profiles := make(map[recipe.ProfileKey]recipe.FactoryProfile, len(defs))
	for _, def := range defs {
		key := recipe.ProfileKey{Category: def.Category, Final: def.Final}
		if _, exists := profiles[key]; exists {
			return nil, fmt.Errorf("factory profile %s defined more than once", key)
		}
		profiles[key] = recipe.FactoryProfile{Speed: def.Speed, Productivity: def.Productivity}
	}
	return recipe.NewProfileTable(profiles)
}
