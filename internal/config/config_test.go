package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Pipeline.RemoveAggregates, "aggregate rows are removed by default")
	assert.False(t, cfg.Pipeline.RemoveDisplay, "display columns are kept by default")
	assert.False(t, cfg.Pipeline.Strict)
	assert.Equal(t, "data/raw", cfg.Paths.InputDir)
	assert.Equal(t, "data/cleaned", cfg.Paths.OutputDir)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverlay(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  input_dir: /srv/fisheries/raw
  output_dir: /srv/fisheries/cleaned
pipeline:
  remove_display: true
logging:
  level: debug
  output: console
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "/srv/fisheries/raw", cfg.Paths.InputDir)
	assert.Equal(t, "/srv/fisheries/cleaned", cfg.Paths.OutputDir)
	assert.True(t, cfg.Pipeline.RemoveDisplay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults
	assert.Equal(t, "logs", cfg.Paths.LogsDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("paths:\n  input_dir: from-file\n"), 0644))

	t.Setenv("FISHEV_PATHS_INPUT_DIR", "from-env")

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Paths.InputDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "loud" },
		},
		{
			name:   "unknown log output",
			mutate: func(c *Config) { c.Logging.Output = "syslog" },
		},
		{
			name:   "empty input dir",
			mutate: func(c *Config) { c.Paths.InputDir = "" },
		},
		{
			name: "file output without path",
			mutate: func(c *Config) {
				c.Logging.Output = "file"
				c.Logging.FilePath = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLogFilePath(t *testing.T) {
	cfg := Default()
	cfg.Logging.FilePath = "pipeline.log"
	assert.Equal(t, filepath.Join("logs", "pipeline.log"), cfg.LogFilePath())

	cfg.Logging.FilePath = "/var/log/fisheries/pipeline.log"
	assert.Equal(t, "/var/log/fisheries/pipeline.log", cfg.LogFilePath())

	cfg.Logging.FilePath = "custom/pipeline.log"
	assert.Equal(t, "custom/pipeline.log", cfg.LogFilePath())
}
