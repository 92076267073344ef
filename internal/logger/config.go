package logger

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds logging configuration. Every field can be overridden from the
// environment after the YAML file is read.
type Config struct {
	Level          string `yaml:"level" env:"DELVE_LOG_LEVEL"`
	ConsoleEnabled bool   `yaml:"console_enabled" env:"DELVE_LOG_CONSOLE_ENABLED"`
	ConsoleFormat  string `yaml:"console_format" env:"DELVE_LOG_CONSOLE_FORMAT"`
	FileEnabled    bool   `yaml:"file_enabled" env:"DELVE_LOG_FILE_ENABLED"`
	FilePath       string `yaml:"file_path" env:"DELVE_LOG_FILE_PATH"`
	FileFormat     string `yaml:"file_format" env:"DELVE_LOG_FILE_FORMAT"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb" env:"DELVE_LOG_FILE_MAX_SIZE_MB"`
	FileMaxBackups int    `yaml:"file_max_backups" env:"DELVE_LOG_FILE_MAX_BACKUPS"`
	FileMaxAgeDays int    `yaml:"file_max_age_days" env:"DELVE_LOG_FILE_MAX_AGE_DAYS"`
}

// document is the top-level YAML shape; logging shares a file with the
// generator settings.
type document struct {
	Logging *Config `yaml:"logging"`
}

// DefaultConfig logs INFO text to the console only.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/delve.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig reads the logging block from a YAML file and applies
// environment overrides. A missing file is not an error; a malformed one is,
// but the defaults are still returned alongside it.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return config, fmt.Errorf("failed to read logging config: %w", err)
		default:
			// Decoding into the defaults keeps keys the file leaves out.
			doc := document{Logging: &config}
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse logging config: %w", err)
			}
		}
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("failed to apply logging env overrides: %w", err)
	}

	return config, nil
}
