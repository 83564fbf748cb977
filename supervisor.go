package queuectl

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/romanqed/queuectl/internal"
)

// staleLockWindow is the duration after which a Processing claim with no
// activity is considered abandoned by a crashed worker (§4.4, §5).
const staleLockWindow = 5 * time.Minute

// SupervisorConfig configures a Supervisor's startup behavior.
type SupervisorConfig struct {
	// Count is the number of workers to spawn. Must be >= 1.
	Count int
	// StopWhenEmpty, when set, propagates to every spawned Worker.
	StopWhenEmpty bool
}

// Supervisor owns the worker pool: it performs stale-lock recovery at
// startup, spawns Count workers with unique ids, wires signal-driven
// graceful shutdown, and waits for the "stop when empty" termination
// condition (§4.4).
//
// The worker registry is explicit, process-local state owned by the
// Supervisor value — not a package-level singleton — so that a program may
// construct more than one Supervisor (for example, in tests) without
// interference.
type Supervisor struct {
	store  Store
	config *Config
	log    *slog.Logger

	shutdown atomic.Bool
	active   atomic.Int32

	stopOnce sync.Once
	wg       sync.WaitGroup
	done     internal.DoneChan

	signalCancel context.CancelFunc
}

// NewSupervisor constructs a Supervisor over the given Store and Config. A
// nil logger defaults to slog.Default().
func NewSupervisor(store Store, config *Config, log *slog.Logger) *Supervisor {
	if log == nil {
		log = slog.Default()
	}
	return &Supervisor{store: store, config: config, log: log}
}

// Start performs stale-lock recovery once, spawns cfg.Count workers, and
// installs SIGINT/SIGTERM handlers that trigger graceful shutdown. Start
// does not block; call Wait to block until all workers exit.
func (s *Supervisor) Start(ctx context.Context, cfg SupervisorConfig) error {
	count := cfg.Count
	if count < 1 {
		count = 1
	}

	cutoff := nowUTC().Add(-staleLockWindow)
	reclaimed, err := s.store.RecoverStale(ctx, cutoff)
	if err != nil {
		s.log.Error("stale lock recovery failed", "err", err)
	} else if reclaimed > 0 {
		s.log.Info("recovered stale claims", "count", reclaimed)
	}

	sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	s.signalCancel = cancel

	s.wg.Add(count)
	for i := 0; i < count; i++ {
		id := newWorkerId()
		w := NewWorker(id, s.store, s.config, s.log, cfg.StopWhenEmpty, &s.shutdown)
		s.active.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.active.Add(-1)
			w.Run(sigCtx)
		}()
	}

	s.done = internal.WrapWaitGroup(&s.wg)
	go func() {
		<-sigCtx.Done()
		s.StopWorkers()
	}()

	return nil
}

// Wait blocks until every spawned worker has exited.
func (s *Supervisor) Wait() {
	if s.done != nil {
		<-s.done
	} else {
		s.wg.Wait()
	}
}

// StopWorkers sets the shared shutdown flag observed at the top of every
// worker's loop. In-flight attempts are allowed to finish; running
// subprocesses are never aborted by shutdown. StopWorkers is idempotent:
// calling it twice is equivalent to calling it once (§8).
func (s *Supervisor) StopWorkers() {
	s.stopOnce.Do(func() {
		s.shutdown.Store(true)
		if s.signalCancel != nil {
			s.signalCancel()
		}
	})
}

// ActiveWorkerCount returns the number of workers whose loop is still
// running.
func (s *Supervisor) ActiveWorkerCount() int {
	return int(s.active.Load())
}
