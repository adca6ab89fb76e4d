// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"driftwatch/internal/domain/taxonomy"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// ModelPath locates the persisted drift model artifact.
	ModelPath string `koanf:"model_path"`

	// DatasetPath locates the synthetic training dataset CSV.
	DatasetPath string `koanf:"dataset_path"`

	// StoreShardCount configures the number of shards in the student store.
	StoreShardCount int `koanf:"store_shard_count"`

	// Careers is the ordered career/skill taxonomy. Order is significant:
	// it pins the conflict-detection scan order.
	Careers []taxonomy.Career `koanf:"careers"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8000",
		ModelPath:       "ml/models/drift_model.gob",
		DatasetPath:     "ml/data/career_data.csv",
		StoreShardCount: 8,
		Careers:         taxonomy.DefaultCareers(),
	}
}

// Taxonomy builds the immutable taxonomy from the configured careers.
func (c *Config) Taxonomy() (*taxonomy.Taxonomy, error) {
	return taxonomy.New(c.Careers)
}
