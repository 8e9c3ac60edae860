package production

import (
	"fmt"
	"strings"
)

// Domain errors for production planning

// CyclicRecipeError indicates a recipe transitively requires itself
type CyclicRecipeError struct {
	Item  string
	Chain []string
}

func (e *CyclicRecipeError) Error() string {
	return fmt.Sprintf("cyclic recipe detected for %s: %s", e.Item, strings.Join(e.Chain, " -> "))
}

// UnsupportedConfigurationError indicates the byproduct reconciler cannot model the
// current graph, because an item it produces internally is already demanded on its own
type UnsupportedConfigurationError struct {
	Item   string
	Reason string
}

func (e *UnsupportedConfigurationError) Error() string {
	return fmt.Sprintf("unsupported configuration for %s: %s", e.Item, e.Reason)
}

// PlanNotFoundError indicates no stored plan has the requested ID
type PlanNotFoundError struct {
	ID string
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("plan not found: %s", e.ID)
}
