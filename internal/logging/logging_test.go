package logging

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_InfoAndError(t *testing.T) {
	var buf bytes.Buffer
	log, sync := New(Options{Output: &buf})

	log.Info("reconcile finished", "workstation", "dev-ws")
	log.Error(errors.New("boom"), "phase failed")
	sync()

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "reconcile finished")
	assert.Contains(t, out, `"workstation": "dev-ws"`)
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "boom")
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`), out)
}

func TestNew_VerbosityGatesV1(t *testing.T) {
	var quiet bytes.Buffer
	log, sync := New(Options{Output: &quiet})
	log.V(1).Info("poll cycle")
	sync()
	assert.NotContains(t, quiet.String(), "poll cycle")

	var verbose bytes.Buffer
	log, sync = New(Options{Output: &verbose, Verbose: true})
	log.V(1).Info("poll cycle")
	log.V(2).Info("too detailed")
	sync()
	assert.Contains(t, verbose.String(), "poll cycle")
	assert.NotContains(t, verbose.String(), "too detailed")
}
