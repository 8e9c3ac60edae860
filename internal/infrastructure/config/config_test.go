package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
planner:
  expensive: true
  reconcile: true
  targets:
    - item: plastic bar
      rate: 2.5
    - item: iron gear
      rate: 1
render:
  format: table
logging:
  level: debug
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.True(t, cfg.Planner.Expensive)
	assert.True(t, cfg.Planner.Reconcile)
	require.Len(t, cfg.Planner.Targets, 2)
	assert.Equal(t, config.TargetConfig{Item: "plastic bar", Rate: 2.5}, cfg.Planner.Targets[0])
	assert.Equal(t, "table", cfg.Render.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections fall back to defaults
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "factory_planner", cfg.Metrics.Namespace)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
render:
  format: table
`)
	t.Setenv("FP_RENDER_FORMAT", "json")
	t.Setenv("FP_PLANNER_EXPENSIVE", "true")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Render.Format)
	assert.True(t, cfg.Planner.Expensive)
}

func TestLoadConfig_DefaultTargets(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, "render:\n  format: dot\n"))

	require.NoError(t, err)
	require.Len(t, cfg.Planner.Targets, 3)
	for _, target := range cfg.Planner.Targets {
		assert.InDelta(t, 1.70625, target.Rate, 1e-12)
	}
	assert.Equal(t, "science pack 1", cfg.Planner.Targets[0].Item)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "unknown render format",
			content: "render:\n  format: svg\n",
			field:   "render.format: must be one of",
		},
		{
			name:    "non-positive target rate",
			content: "planner:\n  targets:\n    - item: wall\n      rate: 0\n",
			field:   "planner.targets[0].rate: must be greater than 0",
		},
		{
			name:    "missing target item",
			content: "planner:\n  targets:\n    - rate: 1\n",
			field:   "planner.targets[0].item: is required",
		},
		{
			name:    "file logging without path",
			content: "logging:\n  output: file\n",
			field:   "logging.filepath",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	cfg := config.LoadConfigOrDefault(writeConfig(t, "render:\n  format: svg\n"))

	assert.Equal(t, "dot", cfg.Render.Format)
	assert.Len(t, cfg.Planner.Targets, 3)
}
