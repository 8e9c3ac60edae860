package recipe

import (
	"fmt"
	"strings"
)

// ItemNotFoundError indicates no catalog item matches a name or prefix
type ItemNotFoundError struct {
	Item string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.Item)
}

// AmbiguousItemError indicates a prefix matches more than one catalog item
type AmbiguousItemError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousItemError) Error() string {
	return fmt.Sprintf("item prefix %q is ambiguous: matches %s", e.Prefix, strings.Join(e.Candidates, ", "))
}

// ConfigurationError indicates the catalog and the factory profile table disagree
type ConfigurationError struct {
	Item    string
	Profile ProfileKey
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no factory profile for %s (required by %s)", e.Profile, e.Item)
}

// InvalidRecipeError indicates a recipe definition failed catalog validation
type InvalidRecipeError struct {
	Item   string
	Reason string
}

func (e *InvalidRecipeError) Error() string {
	return fmt.Sprintf("invalid recipe %s: %s", e.Item, e.Reason)
}
