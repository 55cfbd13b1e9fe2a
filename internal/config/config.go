package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// PipelineConfig contains the cleaning switches and rule-set source.
// RemoveAggregates and RemoveDisplay are the two documented switches from the
// cleaning contract; they are always passed explicitly to the Transformer,
// never read from package state.
type PipelineConfig struct {
	RemoveAggregates bool   `yaml:"remove_aggregates" envconfig:"REMOVE_AGGREGATES"`
	RemoveDisplay    bool   `yaml:"remove_display" envconfig:"REMOVE_DISPLAY"`
	Strict           bool   `yaml:"strict" envconfig:"STRICT"`
	SQLiteExport     bool   `yaml:"sqlite_export" envconfig:"SQLITE_EXPORT"`
	RulesFile        string `yaml:"rules_file" envconfig:"RULES_FILE"`
}

// Default returns the built-in configuration, matching the documented
// defaults: aggregate rows removed, display columns kept.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/cleaning_pipeline.log",
		},
		Paths: PathsConfig{
			InputDir:  "data/raw",
			OutputDir: "data/cleaned",
			LogsDir:   "logs",
		},
		Pipeline: PipelineConfig{
			RemoveAggregates: true,
			RemoveDisplay:    false,
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, then FISHEV_* environment variables on top.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("FISHEV", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct constraints.
// A violation here is a caller/setup error, distinct from the data-quality
// warnings the Validator reports.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path is required when logging.output is %q", c.Logging.Output)
	}

	return nil
}

// LogFilePath returns the resolved log file path, rooted in LogsDir when the
// configured path is relative and bare.
func (c *Config) LogFilePath() string {
	if c.Logging.FilePath == "" || filepath.IsAbs(c.Logging.FilePath) {
		return c.Logging.FilePath
	}
	if filepath.Dir(c.Logging.FilePath) != "." {
		return c.Logging.FilePath
	}
	return filepath.Join(c.Paths.LogsDir, c.Logging.FilePath)
}
