package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the wait-related knobs of the pipeline.
// Each value can be overridden via an environment variable, which keeps the
// YAML config limited to things an operator actually tunes per project.
type Timeouts struct {
	PollInterval      time.Duration // sleep between customization-job status reads
	GrantSettle       time.Duration // residual wait after the role readiness probe
	DeploymentWait    time.Duration // total budget for a deployment to become active
	DeploymentPoll    time.Duration // sleep between deployment status reads
	RetryAttempts     int           // attempt budget for readiness probes
	RetryInitialDelay time.Duration // first backoff delay for readiness probes
}

// LoadTimeouts loads timeout configuration from environment variables.
// If a variable is unset or unparseable, the default is used.
//
// Environment variables:
//   - BTPIPE_POLL_INTERVAL (default: 60s)
//   - BTPIPE_GRANT_SETTLE (default: 10s)
//   - BTPIPE_DEPLOYMENT_WAIT (default: 10m)
//   - BTPIPE_DEPLOYMENT_POLL (default: 10s)
//   - BTPIPE_RETRY_ATTEMPTS (default: 6)
//   - BTPIPE_RETRY_INITIAL_DELAY (default: 2s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval:      parseDuration("BTPIPE_POLL_INTERVAL", 60*time.Second),
		GrantSettle:       parseDuration("BTPIPE_GRANT_SETTLE", 10*time.Second),
		DeploymentWait:    parseDuration("BTPIPE_DEPLOYMENT_WAIT", 10*time.Minute),
		DeploymentPoll:    parseDuration("BTPIPE_DEPLOYMENT_POLL", 10*time.Second),
		RetryAttempts:     parseInt("BTPIPE_RETRY_ATTEMPTS", 6),
		RetryInitialDelay: parseDuration("BTPIPE_RETRY_INITIAL_DELAY", 2*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
