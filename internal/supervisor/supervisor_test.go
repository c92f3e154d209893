package supervisor_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/renderd/renderd/internal/supervisor"
)

// fakeProcess exits when told to, or when stopped.
type fakeProcess struct {
	exit    chan error
	stopped atomic.Bool
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{exit: make(chan error, 1)}
}

func (p *fakeProcess) Wait() error { return <-p.exit }

func (p *fakeProcess) Stop() error {
	if p.stopped.CompareAndSwap(false, true) {
		p.exit <- nil
	}
	return nil
}

// processLog records every started process.
type processLog struct {
	mu    sync.Mutex
	procs []*fakeProcess
}

func (l *processLog) start(ctx context.Context, index int) (supervisor.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := newFakeProcess()
	l.procs = append(l.procs, p)
	return p, nil
}

func (l *processLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.procs)
}

func (l *processLog) at(i int) *fakeProcess {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.procs[i]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition not reached in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSupervisor(t *testing.T) {
	t.Parallel()

	t.Run("starts the configured number of workers", func(t *testing.T) {
		t.Parallel()

		log := &processLog{}
		s := supervisor.New(supervisor.WithWorkers(3), supervisor.WithStartFunc(log.start))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		waitFor(t, func() bool { return log.count() == 3 })

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("respawns a dead worker", func(t *testing.T) {
		t.Parallel()

		log := &processLog{}
		s := supervisor.New(supervisor.WithWorkers(1), supervisor.WithStartFunc(log.start))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		waitFor(t, func() bool { return log.count() == 1 })
		log.at(0).exit <- errors.New("crash")
		waitFor(t, func() bool { return log.count() == 2 })

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("stops workers on shutdown", func(t *testing.T) {
		t.Parallel()

		log := &processLog{}
		s := supervisor.New(supervisor.WithWorkers(2), supervisor.WithStartFunc(log.start))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		waitFor(t, func() bool { return log.count() == 2 })
		cancel()
		require.NoError(t, <-done)

		require.True(t, log.at(0).stopped.Load())
		require.True(t, log.at(1).stopped.Load())
	})

	t.Run("start failure ends the pool", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("no more processes")
		s := supervisor.New(
			supervisor.WithWorkers(1),
			supervisor.WithStartFunc(func(ctx context.Context, index int) (supervisor.Process, error) {
				return nil, boom
			}),
		)

		err := s.Run(context.Background())
		require.ErrorIs(t, err, boom)
	})
}
