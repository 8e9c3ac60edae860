package recipe

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Catalog is the immutable, name-keyed set of recipes a planning run works from.
//
// Raw resources are catalog entries with no inputs; they still carry a factory
// category because extracting them occupies factories (mining drills, pumpjacks).
type Catalog struct {
	recipes map[string]*Recipe
	names   []string // sorted, fixes prefix resolution order
}

// NewCatalog validates the recipes and builds a catalog.
// Every ingredient must itself be a catalog item.
func NewCatalog(recipes []*Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make(map[string]*Recipe, len(recipes)),
		names:   make([]string, 0, len(recipes)),
	}

	for _, r := range recipes {
		if err := validateRecipe(r); err != nil {
			return nil, err
		}
		if _, exists := c.recipes[r.Name]; exists {
			return nil, &InvalidRecipeError{Item: r.Name, Reason: "defined more than once"}
		}
		c.recipes[r.Name] = r
		c.names = append(c.names, r.Name)
	}
	sort.Strings(c.names)

	for _, name := range c.names {
		r := c.recipes[name]
		for _, variant := range []Variant{r.Normal, r.Expensive} {
			for _, in := range variant.Inputs {
				if _, ok := c.recipes[in.Item]; !ok {
					return nil, &InvalidRecipeError{
						Item:   name,
						Reason: fmt.Sprintf("ingredient %q is not in the catalog", in.Item),
					}
				}
			}
		}
	}

	return c, nil
}

func validateRecipe(r *Recipe) error {
	if r == nil {
		return &InvalidRecipeError{Item: "<nil>", Reason: "recipe cannot be nil"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &InvalidRecipeError{Item: "<unnamed>", Reason: "name cannot be empty"}
	}
	if r.OutputQuantity < 1 {
		return &InvalidRecipeError{Item: r.Name, Reason: fmt.Sprintf("output quantity must be at least 1, got %d", r.OutputQuantity)}
	}
	if r.FactoryCategory == "" {
		return &InvalidRecipeError{Item: r.Name, Reason: "factory category cannot be empty"}
	}

	for _, variant := range []Variant{r.Normal, r.Expensive} {
		if variant.Time < 0 || math.IsNaN(variant.Time) || math.IsInf(variant.Time, 0) {
			return &InvalidRecipeError{Item: r.Name, Reason: fmt.Sprintf("craft time must be a finite value >= 0, got %g", variant.Time)}
		}
		seen := make(map[string]bool, len(variant.Inputs))
		for _, in := range variant.Inputs {
			if in.Amount <= 0 {
				return &InvalidRecipeError{Item: r.Name, Reason: fmt.Sprintf("ingredient %q amount must be positive", in.Item)}
			}
			if seen[in.Item] {
				return &InvalidRecipeError{Item: r.Name, Reason: fmt.Sprintf("ingredient %q listed twice", in.Item)}
			}
			seen[in.Item] = true
		}
	}

	return nil
}

// Lookup returns the recipe for an exact item name
func (c *Catalog) Lookup(name string) (*Recipe, error) {
	r, ok := c.recipes[name]
	if !ok {
		return nil, &ItemNotFoundError{Item: name}
	}
	return r, nil
}

// Contains returns true if the name is an exact catalog key
func (c *Catalog) Contains(name string) bool {
	_, ok := c.recipes[name]
	return ok
}

// Resolve maps a caller-supplied name or prefix onto a catalog key.
//
// An exact key always wins. Otherwise the prefix must match exactly one key:
// no match is an ItemNotFoundError, several matches an AmbiguousItemError.
func (c *Catalog) Resolve(nameOrPrefix string) (string, error) {
	if c.Contains(nameOrPrefix) {
		return nameOrPrefix, nil
	}

	candidates := c.Search(nameOrPrefix)
	switch len(candidates) {
	case 0:
		return "", &ItemNotFoundError{Item: nameOrPrefix}
	case 1:
		return candidates[0], nil
	default:
		return "", &AmbiguousItemError{Prefix: nameOrPrefix, Candidates: candidates}
	}
}

// Search returns all item names starting with prefix, in lexical order
func (c *Catalog) Search(prefix string) []string {
	// names is sorted, so matches form one contiguous run
	start := sort.SearchStrings(c.names, prefix)
	matches := make([]string, 0)
	for i := start; i < len(c.names) && strings.HasPrefix(c.names[i], prefix); i++ {
		matches = append(matches, c.names[i])
	}
	return matches
}

// Names returns every item name in lexical order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of recipes in the catalog
func (c *Catalog) Len() int {
	return len(c.names)
}

// Consumers returns the items whose recipe (under mode) consumes the given item
func (c *Catalog) Consumers(item string, mode Mode) []string {
	consumers := make([]string, 0)
	for _, name := range c.names {
		for _, in := range c.recipes[name].Variant(mode).Inputs {
			if in.Item == item {
				consumers = append(consumers, name)
				break
			}
		}
	}
	return consumers
}
