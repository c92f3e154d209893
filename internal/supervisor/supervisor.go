package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// workerEnv marks a process as a supervised worker.
const workerEnv = "RENDERD_WORKER"

// IsWorker reports whether this process was spawned by a supervisor.
func IsWorker() bool {
	return os.Getenv(workerEnv) == "1"
}

// Process is one supervised worker process.
type Process interface {
	// Wait blocks until the process exits.
	Wait() error

	// Stop asks the process to shut down gracefully.
	Stop() error
}

// StartFunc launches one worker. The index is stable across respawns.
type StartFunc func(ctx context.Context, index int) (Process, error)

// Supervisor keeps a fixed pool of worker processes alive, restarting
// any that exit until the supervisor itself is stopped.
type Supervisor struct {
	start   StartFunc
	workers int
	log     *slog.Logger
}

// Option configures the Supervisor.
type Option func(*Supervisor)

// WithWorkers overrides the pool size. Zero or negative keeps the
// default of one worker per CPU.
func WithWorkers(n int) Option {
	return func(s *Supervisor) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithStartFunc replaces how workers are launched.
func WithStartFunc(start StartFunc) Option {
	return func(s *Supervisor) {
		if start != nil {
			s.start = start
		}
	}
}

// WithLogger sets the supervisor logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Supervisor) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Supervisor. By default it runs one worker per CPU,
// each a re-exec of the current binary marked as a worker.
func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		start:   execSelf,
		workers: runtime.NumCPU(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks, keeping the pool full until ctx is cancelled. A worker
// that exits for any reason is restarted immediately; only context
// cancellation or a failure to start a worker ends the pool.
func (s *Supervisor) Run(ctx context.Context) error {
	s.log.Info("supervisor starting", "workers", s.workers)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.workers; i++ {
		index := i
		g.Go(func() error {
			return s.keepAlive(ctx, index)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// keepAlive runs one worker slot: start, wait, respawn.
func (s *Supervisor) keepAlive(ctx context.Context, index int) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		proc, err := s.start(ctx, index)
		if err != nil {
			return fmt.Errorf("supervisor: start worker %d: %w", index, err)
		}
		s.log.Info("worker started", "worker", index)

		done := make(chan error, 1)
		go func() { done <- proc.Wait() }()

		select {
		case err := <-done:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("worker exited, respawning", "worker", index, "error", err)

		case <-ctx.Done():
			if err := proc.Stop(); err != nil {
				s.log.Warn("worker stop failed", "worker", index, "error", err)
			}
			<-done
			return ctx.Err()
		}
	}
}

// execProcess wraps an exec.Cmd as a Process.
type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Wait() error { return p.cmd.Wait() }

func (p *execProcess) Stop() error {
	return p.cmd.Process.Signal(syscall.SIGTERM)
}

// execSelf re-runs the current binary as a worker, inheriting the
// environment and standard streams.
func execSelf(ctx context.Context, index int) (Process, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(self, os.Args[1:]...)
	cmd.Env = append(os.Environ(), workerEnv+"=1")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}
