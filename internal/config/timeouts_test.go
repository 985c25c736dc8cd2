package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearTimeoutEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"WSUP_TIMEOUT_OPERATION",
		"WSUP_TIMEOUT_PROBE",
		"WSUP_RETRY_MAX_ATTEMPTS",
		"WSUP_RETRY_INITIAL_DELAY",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadTimeouts_Defaults(t *testing.T) {
	clearTimeoutEnvVars(t)

	timeouts := LoadTimeouts()

	assert.Equal(t, 15*time.Minute, timeouts.Operation)
	assert.Equal(t, 10*time.Second, timeouts.Probe)
	assert.Equal(t, 5, timeouts.RetryMaxAttempts)
	assert.Equal(t, time.Second, timeouts.RetryInitialDelay)
}

func TestLoadTimeouts_FromEnvironment(t *testing.T) {
	clearTimeoutEnvVars(t)
	t.Setenv("WSUP_TIMEOUT_OPERATION", "30m")
	t.Setenv("WSUP_TIMEOUT_PROBE", "2s")
	t.Setenv("WSUP_RETRY_MAX_ATTEMPTS", "2")
	t.Setenv("WSUP_RETRY_INITIAL_DELAY", "250ms")

	timeouts := LoadTimeouts()

	assert.Equal(t, 30*time.Minute, timeouts.Operation)
	assert.Equal(t, 2*time.Second, timeouts.Probe)
	assert.Equal(t, 2, timeouts.RetryMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, timeouts.RetryInitialDelay)
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	clearTimeoutEnvVars(t)
	t.Setenv("WSUP_TIMEOUT_OPERATION", "soon")
	t.Setenv("WSUP_RETRY_MAX_ATTEMPTS", "-3")

	timeouts := LoadTimeouts()

	assert.Equal(t, 15*time.Minute, timeouts.Operation)
	assert.Equal(t, 5, timeouts.RetryMaxAttempts)
}
