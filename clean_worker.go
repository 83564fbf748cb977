package queuectl

import (
	"context"
	"log/slog"
	"time"

	"github.com/romanqed/queuectl/internal"
	"github.com/romanqed/queuectl/job"
)

// CleanConfig defines the scheduling and filtering parameters for a
// LogCleanWorker.
//
// Status, if non-nil, restricts pruning to that terminal state; nil
// means any terminal state. Interval defines how often the worker
// invokes Cleaner.Clean. If Before is true, pruning is restricted to
// jobs whose UpdatedAt is at or before now - Delta.
type CleanConfig struct {
	Status   *job.Status
	Interval time.Duration
	Before   bool
	Delta    time.Duration
}

// LogCleanWorker periodically invokes a Cleaner to prune the stdout/
// stderr log files of terminal jobs.
//
// LogCleanWorker is a supplemented feature: it is not part of the core
// claim/execute/finalize loop and never touches job rows. It exists
// purely for disk retention management, since completed and dead jobs
// are never deleted by the core (§3).
//
// LogCleanWorker has a strict lifecycle: Start may only be called
// once, and Stop must be called to terminate the background task.
type LogCleanWorker struct {
	lcBase
	cleaner  Cleaner
	task     internal.TimerTask
	log      *slog.Logger
	status   *job.Status
	interval time.Duration
	before   bool
	delta    time.Duration
}

// NewLogCleanWorker creates a new LogCleanWorker over the given Cleaner
// and configuration. A nil logger defaults to slog.Default(). The
// worker is not started automatically; call Start.
func NewLogCleanWorker(cleaner Cleaner, config *CleanConfig, log *slog.Logger) *LogCleanWorker {
	if log == nil {
		log = slog.Default()
	}
	return &LogCleanWorker{
		cleaner:  cleaner,
		log:      log,
		status:   config.Status,
		interval: config.Interval,
		before:   config.Before,
		delta:    config.Delta,
	}
}

func (cw *LogCleanWorker) beforeStamp() *time.Time {
	if !cw.before {
		return nil
	}
	ret := nowUTC()
	if cw.delta != 0 {
		ret = ret.Add(-cw.delta)
	}
	return &ret
}

func (cw *LogCleanWorker) clean(ctx context.Context) {
	before := cw.beforeStamp()
	count, err := cw.cleaner.Clean(ctx, cw.status, before)
	if err != nil {
		cw.log.Error("log cleanup failed", "err", err)
		return
	}
	cw.log.Info("pruned job logs", "count", count)
}

// Start begins periodic execution of the cleaning task. It returns
// ErrDoubleStarted if the worker has already been started. ctx
// controls cancellation of the background task.
func (cw *LogCleanWorker) Start(ctx context.Context) error {
	if err := cw.tryStart(); err != nil {
		return err
	}
	cw.task.Start(ctx, cw.clean, cw.interval)
	return nil
}

// Stop terminates the background cleaning task, waiting up to timeout
// for it to finish. It returns ErrStopTimeout if the task does not
// finish in time, or ErrDoubleStopped if the worker is not running.
func (cw *LogCleanWorker) Stop(timeout time.Duration) error {
	return cw.tryStop(timeout, cw.task.Stop)
}
