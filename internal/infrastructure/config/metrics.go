package config

// MetricsConfig holds metrics collection and export configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`

	// File receives the metrics in Prometheus text format after each run
	// (node_exporter textfile collector); empty disables the export
	File string `mapstructure:"file"`
}
