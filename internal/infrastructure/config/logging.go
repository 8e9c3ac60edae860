package config

// LoggingConfig drives the slog handler built by the logging package.
// Logs default to stderr so rendered plans on stdout stay pipeable.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// FilePath is appended to when Output is "file"
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// IncludeCaller adds source file:line to every record
	IncludeCaller bool `mapstructure:"include_caller"`
}
