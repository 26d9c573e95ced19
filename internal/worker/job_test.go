package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	fn func(ctx context.Context) error
}

func (s stubProcessor) ProcessDueMessages(ctx context.Context) error {
	return s.fn(ctx)
}

func TestJobSkipsTickWhileRunExecutes(t *testing.T) {
	var calls, active, maxActive int32

	processor := stubProcessor{fn: func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		current := atomic.AddInt32(&active, 1)
		for {
			seen := atomic.LoadInt32(&maxActive)
			if current <= seen || atomic.CompareAndSwapInt32(&maxActive, seen, current) {
				break
			}
		}
		time.Sleep(40 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	}}

	job := NewJob(5*time.Millisecond, processor, zerolog.Nop())
	var wg sync.WaitGroup
	job.Start(context.Background(), &wg)

	time.Sleep(100 * time.Millisecond)
	job.Stop()
	time.Sleep(10 * time.Millisecond)

	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive), "overlapping runs must be skipped")
}

func TestJobRunsImmediatelyOnStart(t *testing.T) {
	ran := make(chan struct{}, 1)
	processor := stubProcessor{fn: func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}}

	// interval far beyond the test window; only the immediate run can fire
	job := NewJob(time.Hour, processor, zerolog.Nop())
	var wg sync.WaitGroup
	job.Start(context.Background(), &wg)
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate run on start")
	}
}

func TestJobManagerStartStopCycle(t *testing.T) {
	processor := stubProcessor{fn: func(ctx context.Context) error { return nil }}
	var wg sync.WaitGroup
	manager := NewJobManager(processor, &wg, zerolog.Nop())

	assert.False(t, manager.IsRunning())

	require.NoError(t, manager.Start(context.Background()))
	assert.True(t, manager.IsRunning())

	// double start is rejected while a job exists
	assert.Error(t, manager.Start(context.Background()))

	require.NoError(t, manager.Stop())
	assert.False(t, manager.IsRunning())
	assert.Error(t, manager.Stop())

	// the toggle can bring the job back
	require.NoError(t, manager.Start(context.Background()))
	require.NoError(t, manager.Stop())
}

func TestJobManagerReleasesWaitGroupOnShutdown(t *testing.T) {
	processor := stubProcessor{fn: func(ctx context.Context) error { return nil }}
	var wg sync.WaitGroup
	manager := NewJobManager(processor, &wg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, manager.Start(ctx))

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait group not released after context cancellation")
	}
}
