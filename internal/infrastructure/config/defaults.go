package config

import "time"

// DefaultTargetRate is one science pack per second per assembler 3 with three
// productivity modules and one speed module
const DefaultTargetRate = 1.3 * 1.3125

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Planner defaults
	if len(cfg.Planner.Targets) == 0 {
		cfg.Planner.Targets = []TargetConfig{
			{Item: "science pack 1", Rate: DefaultTargetRate},
			{Item: "science pack 2", Rate: DefaultTargetRate},
			{Item: "science pack 3", Rate: DefaultTargetRate},
		}
	}

	// Render defaults
	if cfg.Render.Format == "" {
		cfg.Render.Format = "dot"
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "factory-planner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "factory_planner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "factory_planner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 5
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "factory_planner"
	}
}
