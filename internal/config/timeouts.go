package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the client-side bounds that are tuned through the
// environment rather than wsup.yaml.
type Timeouts struct {
	Operation         time.Duration // Bound for create/update long-running operations
	Probe             time.Duration // Reachability probe request timeout
	RetryMaxAttempts  int           // Maximum retries for transient reads
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - WSUP_TIMEOUT_OPERATION (default: 15m)
//   - WSUP_TIMEOUT_PROBE (default: 10s)
//   - WSUP_RETRY_MAX_ATTEMPTS (default: 5)
//   - WSUP_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Operation:         parseDuration("WSUP_TIMEOUT_OPERATION", 15*time.Minute),
		Probe:             parseDuration("WSUP_TIMEOUT_PROBE", 10*time.Second),
		RetryMaxAttempts:  parseInt("WSUP_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("WSUP_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
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
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
