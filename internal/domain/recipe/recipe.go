package recipe

// Mode selects which recipe variant is used for a whole planning run
type Mode string

const (
	// ModeNormal uses the standard recipe costs
	ModeNormal Mode = "normal"

	// ModeExpensive uses the expensive overrides where a recipe defines them
	ModeExpensive Mode = "expensive"
)

// ModeFor maps the expensive flag used by configuration onto a Mode
func ModeFor(expensive bool) Mode {
	if expensive {
		return ModeExpensive
	}
	return ModeNormal
}

// Ingredient is one input line of a recipe: Amount units of Item per craft
type Ingredient struct {
	Item   string
	Amount float64
}

// Variant is the time and input cost of one craft under a given mode
type Variant struct {
	// Craft time in seconds before factory speed is applied
	Time float64

	// Inputs in catalog order (empty for raw resources)
	Inputs []Ingredient
}

// Recipe describes how one item is produced.
//
// Expensive is always populated: fields absent from the expensive definition fall
// back to Normal when the recipe is constructed, so use sites never check for nil.
type Recipe struct {
	Name            string
	OutputQuantity  int
	FactoryCategory string

	// Final marks non-intermediate products; it selects the factory profile variant
	Final bool

	Normal    Variant
	Expensive Variant
}

// ExpensiveOverride holds the optional expensive-mode fields of a recipe definition
type ExpensiveOverride struct {
	Time   *float64
	Inputs []Ingredient
}

// NewRecipe builds a recipe, resolving expensive-mode defaults once
func NewRecipe(
	name string,
	outputQuantity int,
	factoryCategory string,
	final bool,
	normal Variant,
	expensive *ExpensiveOverride,
) *Recipe {
	r := &Recipe{
		Name:            name,
		OutputQuantity:  outputQuantity,
		FactoryCategory: factoryCategory,
		Final:           final,
		Normal:          normal,
		Expensive:       normal,
	}

	if expensive != nil {
		if expensive.Time != nil {
			r.Expensive.Time = *expensive.Time
		}
		if expensive.Inputs != nil {
			r.Expensive.Inputs = expensive.Inputs
		}
	}

	return r
}

// Variant returns the time/inputs pair for the given mode
func (r *Recipe) Variant(mode Mode) Variant {
	if mode == ModeExpensive {
		return r.Expensive
	}
	return r.Normal
}

// IsRaw returns true if the recipe has no inputs under the given mode
func (r *Recipe) IsRaw(mode Mode) bool {
	return len(r.Variant(mode).Inputs) == 0
}

// ProfileKey returns the factory profile key this recipe is produced with
func (r *Recipe) ProfileKey() ProfileKey {
	return ProfileKey{Category: r.FactoryCategory, Final: r.Final}
}
