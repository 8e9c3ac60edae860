package recipe

import (
	"fmt"
	"sort"
)

// ProfileKey identifies a factory profile: the factory category plus whether the
// recipes it runs are final (non-intermediate) products.
type ProfileKey struct {
	Category string
	Final    bool
}

func (k ProfileKey) String() string {
	kind := "intermediate"
	if k.Final {
		kind = "final"
	}
	return fmt.Sprintf("%s (%s)", k.Category, kind)
}

// FactoryProfile holds the module-adjusted multipliers of a factory type.
// Craft time is divided by Speed; output per craft is multiplied by Productivity.
type FactoryProfile struct {
	Speed        float64
	Productivity float64
}

// ProfileTable is an immutable lookup of factory profiles
type ProfileTable struct {
	profiles map[ProfileKey]FactoryProfile
}

// NewProfileTable builds a profile table, rejecting non-positive multipliers
func NewProfileTable(profiles map[ProfileKey]FactoryProfile) (*ProfileTable, error) {
	table := &ProfileTable{profiles: make(map[ProfileKey]FactoryProfile, len(profiles))}

	for key, profile := range profiles {
		if profile.Speed <= 0 {
			return nil, fmt.Errorf("factory profile %s: speed must be positive, got %g", key, profile.Speed)
		}
		if profile.Productivity <= 0 {
			return nil, fmt.Errorf("factory profile %s: productivity must be positive, got %g", key, profile.Productivity)
		}
		table.profiles[key] = profile
	}

	return table, nil
}

// Lookup returns the profile for a key
func (t *ProfileTable) Lookup(key ProfileKey) (FactoryProfile, bool) {
	profile, ok := t.profiles[key]
	return profile, ok
}

// ForRecipe returns the profile a recipe is produced with, or a ConfigurationError
func (t *ProfileTable) ForRecipe(r *Recipe) (FactoryProfile, error) {
	profile, ok := t.profiles[r.ProfileKey()]
	if !ok {
		return FactoryProfile{}, &ConfigurationError{Item: r.Name, Profile: r.ProfileKey()}
	}
	return profile, nil
}

// Keys returns all profile keys ordered by category, intermediate first
func (t *ProfileTable) Keys() []ProfileKey {
	keys := make([]ProfileKey, 0, len(t.profiles))
	for key := range t.profiles {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Category != keys[j].Category {
			return keys[i].Category < keys[j].Category
		}
		return !keys[i].Final && keys[j].Final
	})
	return keys
}
