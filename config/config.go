package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Bracket       BracketConfig       `yaml:"bracket"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the REST API listener configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// BracketConfig holds bracket module tuning.
type BracketConfig struct {
	// SnapshotHistory bounds how many undo steps are kept per
	// tournament. Snapshot zero is always retained.
	SnapshotHistory int `yaml:"snapshot_history"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsNamespace string `yaml:"metrics_namespace"`
	LogLevel         string `yaml:"log_level"`
	Environment      string `yaml:"environment"`
}

const defaultSnapshotHistory = 64

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is missing.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("SNAPSHOT_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bracket.SnapshotHistory = n
		}
	}
	if v := os.Getenv("METRICS_NAMESPACE"); v != "" {
		cfg.Observability.MetricsNamespace = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	cfg.HTTP.Addr = os.Getenv("HTTP_ADDR")

	if v := os.Getenv("SNAPSHOT_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SNAPSHOT_HISTORY value: %v", err)
		}
		cfg.Bracket.SnapshotHistory = n
	}

	cfg.Observability.MetricsNamespace = os.Getenv("METRICS_NAMESPACE")
	cfg.Observability.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.Observability.Environment = os.Getenv("ENV")

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Bracket.SnapshotHistory <= 0 {
		cfg.Bracket.SnapshotHistory = defaultSnapshotHistory
	}
	if cfg.Observability.MetricsNamespace == "" {
		cfg.Observability.MetricsNamespace = "bracket_bot"
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
}
