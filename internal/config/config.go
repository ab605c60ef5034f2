// Package config holds the static mode table and loads runtime settings
// from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (TICKET_EVAL_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .ticket-eval.yaml in current directory
//  2. ~/.config/ticket-eval/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for a batch run. Provider credentials are
// deliberately absent: they come from the provider-specific environment
// variables only.
type Config struct {
	// Mode is the mode name to evaluate with (see modes.go).
	Mode string `yaml:"mode"`
	// Output is the output CSV path.
	Output string `yaml:"output"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Mode:   DefaultMode,
		Output: "tickets_evaluated.csv",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if _, err := Lookup(cfg.Mode); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".ticket-eval.yaml"); err == nil {
		return ".ticket-eval.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "ticket-eval", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Mode != "" {
		cfg.Mode = file.Mode
	}
	if file.Output != "" {
		cfg.Output = file.Output
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("TICKET_EVAL_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("TICKET_EVAL_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
