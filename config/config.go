// Package config handles YAML configuration for sagescan.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Region      string        `yaml:"region"`
	Env         string        `yaml:"env"` // catalog fabric, e.g. PROD
	LineagePath string        `yaml:"lineage_path,omitempty"`
	Scanner     ScannerConfig `yaml:"scanner,omitempty"`
	OTEL        OTELConfig    `yaml:"otel,omitempty"`
	Log         LogConfig     `yaml:"log,omitempty"`
}

// ScannerConfig holds scan scheduling settings
type ScannerConfig struct {
	IntervalStr string `yaml:"interval"`
	Interval    time.Duration `yaml:"-"`
	OneShot     bool   `yaml:"one_shot"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// OTELConfig holds OpenTelemetry settings
type OTELConfig struct {
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Region: "us-east-1"}
	applyDefaults(cfg)
	cfg.Scanner.Interval, _ = time.ParseDuration(cfg.Scanner.IntervalStr)
	return cfg
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := parseInterval(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "PROD"
	}
	if cfg.Scanner.IntervalStr == "" {
		cfg.Scanner.IntervalStr = "1h"
	}
	if cfg.Scanner.MetricsAddr == "" {
		cfg.Scanner.MetricsAddr = ":9090"
	}
	if cfg.OTEL.ServiceName == "" {
		cfg.OTEL.ServiceName = "sagescan"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func parseInterval(cfg *Config) error {
	d, err := time.ParseDuration(cfg.Scanner.IntervalStr)
	if err != nil {
		return fmt.Errorf("parse interval %q: %w", cfg.Scanner.IntervalStr, err)
	}
	cfg.Scanner.Interval = d
	return nil
}

// Validate ensures config has required fields
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Scanner.Interval < 0 {
		return fmt.Errorf("scanner interval must not be negative")
	}
	return nil
}
