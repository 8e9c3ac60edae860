package config

// CatalogConfig selects the recipe catalog
type CatalogConfig struct {
	// Path to a YAML catalog; empty uses the embedded vanilla catalog
	Path string `mapstructure:"path"`
}

// PlannerConfig holds the run used when no targets are given on the command line
type PlannerConfig struct {
	Targets []TargetConfig `mapstructure:"targets" validate:"dive"`

	// Expensive selects expensive-mode recipes for the whole run
	Expensive bool `mapstructure:"expensive"`

	// Reconcile sizes the oil refining process against petroleum gas demand
	Reconcile bool `mapstructure:"reconcile"`

	// Save persists the computed plan (requires database.enabled)
	Save bool `mapstructure:"save"`
}

// TargetConfig is one requested output: an item name or unique prefix and a rate in items/second
type TargetConfig struct {
	Item string  `mapstructure:"item" validate:"required"`
	Rate float64 `mapstructure:"rate" validate:"gt=0,finite"`
}

// RenderConfig controls plan output
type RenderConfig struct {
	// Format: dot, tree, table, json
	Format string `mapstructure:"format" validate:"required,oneof=dot tree table json"`

	// Output file; empty writes to stdout
	Output string `mapstructure:"output"`

	// Colors enables ANSI colors in tree and table output
	Colors bool `mapstructure:"colors"`
}
