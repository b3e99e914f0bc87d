package flow

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	runner := NewRunner(logger, 2)
	runner.Start()
	t.Cleanup(runner.Stop)
	return runner
}

func TestProcessRunsStepsInOrder(t *testing.T) {
	runner := newTestRunner(t)

	var order []string
	step := func(name string) Step {
		return Step{
			Name: name,
			Run: func(context.Context) error {
				order = append(order, name)
				return nil
			},
		}
	}

	err := runner.Process(context.Background(), Flow{
		Name:  "test-flow",
		Steps: []Step{step("first"), step("second"), step("third")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestProcessStopsAtFirstFailure(t *testing.T) {
	runner := newTestRunner(t)

	var ran []string
	boom := errors.New("boom")

	err := runner.Process(context.Background(), Flow{
		Name: "test-flow",
		Steps: []Step{
			{Name: "first", Run: func(context.Context) error { ran = append(ran, "first"); return nil }},
			{Name: "second", Run: func(context.Context) error { return boom }},
			{Name: "third", Run: func(context.Context) error { ran = append(ran, "third"); return nil }},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "test-flow")
	assert.Contains(t, err.Error(), "second")
	assert.Equal(t, []string{"first"}, ran, "steps after the failure never run")
}

func TestProcessRunsCompensationInReverseOrder(t *testing.T) {
	runner := newTestRunner(t)

	var compensated []string
	compensating := func(name string) Step {
		return Step{
			Name: name,
			Run:  func(context.Context) error { return nil },
			Compensate: func(context.Context) error {
				compensated = append(compensated, name)
				return nil
			},
		}
	}

	err := runner.Process(context.Background(), Flow{
		Name: "test-flow",
		Steps: []Step{
			compensating("first"),
			compensating("second"),
			{Name: "third", Run: func(context.Context) error { return errors.New("boom") }},
		},
	})

	require.Error(t, err)
	assert.Equal(t, []string{"second", "first"}, compensated)
}

func TestProcessConcurrentFlows(t *testing.T) {
	runner := newTestRunner(t)

	var mu sync.Mutex
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Process(context.Background(), Flow{
				Name: "concurrent",
				Steps: []Step{{
					Name: "increment",
					Run: func(context.Context) error {
						mu.Lock()
						defer mu.Unlock()
						counter++
						return nil
					},
				}},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
}

func TestProcessCancelledContext(t *testing.T) {
	runner := newTestRunner(t)

	started := make(chan struct{})
	release := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	var secondRan bool
	errCh := make(chan error, 1)
	go func() {
		errCh <- runner.Process(ctx, Flow{
			Name: "slow",
			Steps: []Step{
				{Name: "block", Run: func(context.Context) error {
					close(started)
					<-release
					return nil
				}},
				{Name: "after", Run: func(context.Context) error {
					secondRan = true
					return nil
				}},
			},
		})
	}()

	err := <-errCh
	require.ErrorIs(t, err, context.Canceled)

	// The in-flight flow still finishes; cancellation only releases the caller.
	close(release)
	runner.Stop()
	assert.True(t, secondRan)
}
