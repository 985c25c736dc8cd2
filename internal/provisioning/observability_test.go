package provisioning

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockObserver records everything it is given.
type MockObserver struct {
	mu       sync.Mutex
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{
		events:   make([]Event, 0),
		messages: make([]string, 0),
		fields:   make(map[string]string),
	}
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Printf("[%s] %d/%d", phase, current, total)
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	newObserver := NewMockObserver()
	for k, v := range m.fields {
		newObserver.fields[k] = v
	}
	for k, v := range fields {
		newObserver.fields[k] = v
	}
	return newObserver
}

func (m *MockObserver) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func (m *MockObserver) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// captureObserver returns a LogObserver whose output lands in the returned
// slice, one entry per log line.
func captureObserver(verbosity int) (*LogObserver, *[]string) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: verbosity})
	return NewLogObserver(log), &lines
}

func TestLogObserver_Printf(t *testing.T) {
	observer, lines := captureObserver(0)

	observer.Printf("test message: %s", "value")

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], `"msg"="test message: value"`)
}

func TestLogObserver_Event(t *testing.T) {
	observer, lines := captureObserver(0)

	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    "infrastructure",
		Resource: "workstation-cluster",
		Message:  "cluster created",
		Fields:   map[string]string{"type": "cluster"},
	})

	require.Len(t, *lines, 1)
	line := (*lines)[0]
	assert.Contains(t, line, `"event"="resource.created"`)
	assert.Contains(t, line, `"phase"="infrastructure"`)
	assert.Contains(t, line, `"resource"="workstation-cluster"`)
	assert.Contains(t, line, `"type"="cluster"`)
}

func TestLogObserver_WaitingEventsAreVerbose(t *testing.T) {
	quiet, quietLines := captureObserver(0)
	quiet.Event(Event{Type: EventStateWaiting, Message: "waiting"})
	assert.Empty(t, *quietLines)

	verbose, verboseLines := captureObserver(1)
	verbose.Event(Event{Type: EventStateWaiting, Message: "waiting"})
	assert.Len(t, *verboseLines, 1)
}

func TestLogObserver_FailedEventsLogAsError(t *testing.T) {
	observer, lines := captureObserver(0)

	LogPhaseFailed(observer, "compute", assert.AnError)

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], `"error"=null`)
	assert.Contains(t, (*lines)[0], "failed: ")
}

func TestLogObserver_Progress(t *testing.T) {
	observer, lines := captureObserver(0)

	observer.Progress("compute", 5, 10)
	observer.Progress("compute", 0, 0)

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], "Progress: 5/10 (50%)")
	assert.Contains(t, (*lines)[1], "Progress: 0/0")
}

func TestLogObserver_WithFields(t *testing.T) {
	observer, lines := captureObserver(0)

	scoped := observer.WithFields(map[string]string{"workstation": "dev"})
	scoped.Printf("hello")
	observer.Printf("plain")

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], `"workstation"="dev"`)
	assert.NotContains(t, (*lines)[1], "workstation")
}

func TestLogObserver_EventFieldsOverrideContext(t *testing.T) {
	observer, lines := captureObserver(0)

	scoped := observer.WithFields(map[string]string{"type": "outer", "region": "us-central1"})
	LogResourceExists(scoped, "infrastructure", "cluster", "c1")

	require.Len(t, *lines, 1)
	line := (*lines)[0]
	assert.Contains(t, line, `"type"="cluster"`)
	assert.Contains(t, line, `"region"="us-central1"`)
	assert.Equal(t, 1, strings.Count(line, `"type"=`))
}

func TestLogHelpers(t *testing.T) {
	observer := NewMockObserver()

	LogPhaseStart(observer, "compute")
	LogPhaseComplete(observer, "compute", 1500*time.Millisecond)
	LogPhaseFailed(observer, "access", assert.AnError)
	LogResourceCreating(observer, "compute", "config", "dev-config")
	LogResourceCreated(observer, "compute", "config", "dev-config")
	LogResourceExists(observer, "compute", "config", "dev-config")
	LogResourceUpdated(observer, "compute", "config", "dev-config")
	LogBestEffortFailure(observer, "infrastructure", "iam bootstrap", assert.AnError)

	events := observer.Events()
	require.Len(t, events, 8)
	assert.Equal(t, EventPhaseStarted, events[0].Type)
	assert.Equal(t, "completed in 1.5s", events[1].Message)
	assert.Equal(t, EventPhaseFailed, events[2].Type)
	assert.Equal(t, "dev-config", events[3].Resource)
	assert.Equal(t, "config created", events[4].Message)
	assert.Equal(t, "config already exists", events[5].Message)
	assert.Equal(t, EventResourceUpdated, events[6].Type)
	assert.Equal(t, "iam bootstrap", events[7].Fields["step"])
}

func TestObserver_ImplementsLogger(t *testing.T) {
	var observer Observer = NewLogObserver(discardLogger())
	var logger Logger = observer
	assert.NotNil(t, logger)
}
