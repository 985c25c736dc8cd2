package provisioning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phaseFunc(name string, fn func(*Context) error) Phase {
	return PhaseFunc{PhaseName: name, Fn: fn}
}

func testContext(observer Observer) *Context {
	return &Context{Context: context.Background(), Observer: observer, State: NewState()}
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	observer := NewMockObserver()

	err := RunPhases(testContext(observer), []Phase{
		phaseFunc("infrastructure", func(_ *Context) error { executed = append(executed, "infrastructure"); return nil }),
		phaseFunc("compute", func(_ *Context) error { executed = append(executed, "compute"); return nil }),
		phaseFunc("access", func(_ *Context) error { executed = append(executed, "access"); return nil }),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"infrastructure", "compute", "access"}, executed)

	msgs := observer.Messages()
	assert.Equal(t, "Starting reconcile with 3 phases...", msgs[0])
	assert.Equal(t, []string{"[reconcile] 1/3", "[reconcile] 2/3", "[reconcile] 3/3"}, msgs[1:4])
	assert.Contains(t, msgs[len(msgs)-1], "Reconcile completed in")

	var types []EventType
	var phases []string
	for _, e := range observer.Events() {
		types = append(types, e.Type)
		phases = append(phases, e.Phase)
	}
	assert.Equal(t, []EventType{
		EventPhaseStarted, EventPhaseCompleted,
		EventPhaseStarted, EventPhaseCompleted,
		EventPhaseStarted, EventPhaseCompleted,
	}, types)
	assert.Equal(t, []string{
		"infrastructure", "infrastructure",
		"compute", "compute",
		"access", "access",
	}, phases)
}

func TestRunPhases_StopsOnError(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	observer := NewMockObserver()

	err := RunPhases(testContext(observer), []Phase{
		phaseFunc("infrastructure", func(_ *Context) error { executed = append(executed, "infrastructure"); return nil }),
		phaseFunc("image", func(_ *Context) error { return fmt.Errorf("out of quota") }),
		phaseFunc("compute", func(_ *Context) error { executed = append(executed, "compute"); return nil }),
	})

	require.Error(t, err)
	assert.EqualError(t, err, "image phase failed: out of quota")
	assert.Equal(t, []string{"infrastructure"}, executed)
	assert.Equal(t, []string{"[reconcile] 1/3"}, observer.Messages()[1:])

	events := observer.Events()
	require.Len(t, events, 4)
	failed := events[3]
	assert.Equal(t, EventPhaseFailed, failed.Type)
	assert.Equal(t, "image", failed.Phase)
	assert.Equal(t, "failed: out of quota", failed.Message)
}

func TestRunPhases_PreservesTypedErrors(t *testing.T) {
	t.Parallel()
	cause := &BuildError{Image: "img", Err: assert.AnError}

	err := RunPhases(testContext(NewMockObserver()), []Phase{
		phaseFunc("image", func(_ *Context) error { return cause }),
	})

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Same(t, cause, be)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRunPhases_Empty(t *testing.T) {
	t.Parallel()
	require.NoError(t, RunPhases(testContext(NewMockObserver()), nil))
}

func TestRunPhases_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	err := RunPhases(&Context{Context: ctx, Observer: NewMockObserver()}, []Phase{
		phaseFunc("infrastructure", func(_ *Context) error { called = true; return nil }),
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
