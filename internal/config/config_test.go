package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "btpipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "amazon.nova-pro-v1:0", cfg.BaseModelID)
	assert.Equal(t, 0.8, cfg.Dataset.TrainRatio)
	assert.Equal(t, 10000, cfg.Dataset.MaxSamples)
	assert.Equal(t, 8, cfg.Dataset.MinSamples)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	t.Run("overrides and defaults", func(t *testing.T) {
		path := writeConfig(t, `
region: eu-west-1
bucket_prefix: my-training
dataset:
  train_ratio: 0.9
hyperparameters:
  epoch_count: "5"
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "eu-west-1", cfg.Region)
		assert.Equal(t, "my-training", cfg.BucketPrefix)
		assert.Equal(t, 0.9, cfg.Dataset.TrainRatio)
		assert.Equal(t, "5", cfg.Hyperparameters.EpochCount)
		// untouched fields fall back to defaults
		assert.Equal(t, "amazon.nova-pro-v1:0", cfg.BaseModelID)
		assert.Equal(t, "1", cfg.Hyperparameters.BatchSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "region: [unclosed")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("invalid train ratio", func(t *testing.T) {
		path := writeConfig(t, "dataset:\n  train_ratio: 1.5\n")
		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "train_ratio")
	})

	t.Run("max below min", func(t *testing.T) {
		path := writeConfig(t, "dataset:\n  max_samples: 4\n  min_samples: 8\n")
		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "min_samples")
	})
}

func TestHyperparametersAsMap(t *testing.T) {
	m := Default().Hyperparameters.AsMap()

	assert.Equal(t, "3", m["epochCount"])
	assert.Equal(t, "1", m["batchSize"])
	assert.Equal(t, "0.00001", m["learningRate"])
	assert.Equal(t, "0", m["learningRateWarmupSteps"])
}

func TestLoadTimeouts(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		to := LoadTimeouts()
		assert.Equal(t, 60*time.Second, to.PollInterval)
		assert.Equal(t, 10*time.Second, to.GrantSettle)
		assert.Equal(t, 6, to.RetryAttempts)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("BTPIPE_POLL_INTERVAL", "5s")
		t.Setenv("BTPIPE_RETRY_ATTEMPTS", "2")
		to := LoadTimeouts()
		assert.Equal(t, 5*time.Second, to.PollInterval)
		assert.Equal(t, 2, to.RetryAttempts)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("BTPIPE_POLL_INTERVAL", "soon")
		t.Setenv("BTPIPE_RETRY_ATTEMPTS", "many")
		to := LoadTimeouts()
		assert.Equal(t, 60*time.Second, to.PollInterval)
		assert.Equal(t, 6, to.RetryAttempts)
	})
}
