package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePlanID creates a short, human-readable plan ID.
// Format: {firstTargetSlug}-{8charHexUUID}
//
// Example:
//   - Input: "science pack 1 red"
//   - Output: "science-pack-1-red-a3f8e2b1"
//
// An empty target yields "plan-{8charHexUUID}".
func GeneratePlanID(firstTarget string) string {
	slug := slugify(firstTarget)
	if slug == "" {
		slug = "plan"
	}
	return slug + "-" + generateShortUUID()
}

// slugify lowercases a name and joins its words with hyphens
//   - "Iron Gear Wheel" -> "iron-gear-wheel"
//   - "  petroleum   gas " -> "petroleum-gas"
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
