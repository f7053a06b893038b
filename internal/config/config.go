// Package config loads and validates pipeline configuration.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory
// when no path is given on the command line.
const DefaultFile = "btpipe.yaml"

// Config holds the pipeline configuration.
type Config struct {
	// Region is the AWS region everything is provisioned in.
	Region string `mapstructure:"region"`

	// BucketPrefix is the prefix for the generated training-data bucket name.
	BucketPrefix string `mapstructure:"bucket_prefix"`

	// ModelPrefix is the prefix for the customization job and custom model name.
	ModelPrefix string `mapstructure:"model_prefix"`

	// BaseModelID identifies the foundation model to fine-tune.
	BaseModelID string `mapstructure:"base_model_id"`

	// Dataset controls CSV-to-JSONL preparation.
	Dataset DatasetConfig `mapstructure:"dataset"`

	// Hyperparameters are passed to the provider verbatim. The provider is
	// the sole validator of their legality.
	Hyperparameters Hyperparameters `mapstructure:"hyperparameters"`
}

// DatasetConfig controls dataset preparation limits and the train/validation split.
type DatasetConfig struct {
	TrainRatio float64 `mapstructure:"train_ratio"`
	MaxSamples int     `mapstructure:"max_samples"`
	MinSamples int     `mapstructure:"min_samples"`
}

// Hyperparameters is the fixed record submitted with the customization job.
// All values are provider-specific scalars serialized as strings.
type Hyperparameters struct {
	EpochCount   string `mapstructure:"epoch_count"`
	BatchSize    string `mapstructure:"batch_size"`
	LearningRate string `mapstructure:"learning_rate"`
	WarmupSteps  string `mapstructure:"warmup_steps"`
}

// AsMap renders the hyperparameters in the shape the customization API expects.
func (h Hyperparameters) AsMap() map[string]string {
	return map[string]string{
		"epochCount":              h.EpochCount,
		"batchSize":               h.BatchSize,
		"learningRate":            h.LearningRate,
		"learningRateWarmupSteps": h.WarmupSteps,
	}
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads and parses the configuration from a YAML file.
// Missing fields fall back to defaults; an invalid combination fails loudly.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.BucketPrefix == "" {
		c.BucketPrefix = "support-bedrock-training"
	}
	if c.ModelPrefix == "" {
		c.ModelPrefix = "support-classifier"
	}
	if c.BaseModelID == "" {
		c.BaseModelID = "amazon.nova-pro-v1:0"
	}
	if c.Dataset.TrainRatio == 0 {
		c.Dataset.TrainRatio = 0.8
	}
	if c.Dataset.MaxSamples == 0 {
		// Nova Pro accepts at most 10k training samples per job.
		c.Dataset.MaxSamples = 10000
	}
	if c.Dataset.MinSamples == 0 {
		c.Dataset.MinSamples = 8
	}
	if c.Hyperparameters.EpochCount == "" {
		c.Hyperparameters.EpochCount = "3"
	}
	if c.Hyperparameters.BatchSize == "" {
		c.Hyperparameters.BatchSize = "1"
	}
	if c.Hyperparameters.LearningRate == "" {
		c.Hyperparameters.LearningRate = "0.00001"
	}
	if c.Hyperparameters.WarmupSteps == "" {
		c.Hyperparameters.WarmupSteps = "0"
	}
}

// Validate checks the configuration for combinations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Dataset.TrainRatio <= 0 || c.Dataset.TrainRatio >= 1 {
		return fmt.Errorf("dataset.train_ratio must be between 0 and 1 exclusive, got %g", c.Dataset.TrainRatio)
	}
	if c.Dataset.MinSamples < 1 {
		return fmt.Errorf("dataset.min_samples must be positive, got %d", c.Dataset.MinSamples)
	}
	if c.Dataset.MaxSamples < c.Dataset.MinSamples {
		return fmt.Errorf("dataset.max_samples (%d) is below dataset.min_samples (%d)",
			c.Dataset.MaxSamples, c.Dataset.MinSamples)
	}
	return nil
}
