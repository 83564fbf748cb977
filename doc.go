// Package queuectl provides a persistent, single-host background job queue
// with a worker pool that executes arbitrary shell commands under retry,
// exponential backoff, timeout enforcement, priority scheduling, and a dead
// letter queue.
//
// # Overview
//
// queuectl models a durable shell-command queue with explicit state
// transitions. It separates transport data (message.Request) from delivery
// state (job.Job) and defines a Store interface covering claim, finalize,
// recovery, and inspection primitives. The package does not mandate a
// particular storage backend; the sql subpackage provides a bun/SQLite
// implementation.
//
// # Delivery Semantics
//
// queuectl provides at-least-once processing guarantees.
//
// A job may be executed more than once if:
//
//   - a worker crashes after the subprocess completes but before Finalize
//   - the claim lease expires and stale-lock recovery reclaims the row
//
// Commands should therefore be written idempotent by the caller; this is
// documented, not enforced.
//
// # Claim Model
//
// When a job is claimed, it transitions from Pending to Processing and
// records LockedBy/LockedAt. While the claim is held, the job is not
// eligible for claiming by other workers. If a worker crashes and never
// finalizes the row, the claim is stale; Supervisor reclaims it at startup
// via Store.RecoverStale.
//
// # State Machine
//
//	pending    -> processing
//	processing -> completed
//	processing -> pending   (retry, future next_run_at)
//	processing -> dead
//	dead       -> pending   (DLQ requeue)
//
// Terminal states (completed, dead) are not retried unless explicitly
// requeued via the DLQ path.
//
// # Retry Policy
//
// Retry behavior is controlled by the config-sourced backoff_base and
// max_retries values.
//
// When a subprocess exits non-zero, times out, or fails to spawn:
//
//   - if the incremented attempt count is below max_retries, the job is
//     rescheduled with a computed backoff delay
//   - otherwise, the job transitions to dead
//
// # Worker
//
// Worker coordinates claiming, executing, retrying, and finalizing jobs. It:
//
//   - periodically claims the next eligible job from the store
//   - executes it as a subprocess with a hard wall-clock timeout
//   - appends captured stdout/stderr to per-job log files
//   - applies retry/backoff/dead-letter logic on failure
//   - supports graceful shutdown that lets any in-flight attempt finish
//
// Worker does not guarantee exactly-once delivery.
//
// # Interfaces
//
// queuectl defines the following primary interfaces:
//
//	Store      — claim, finalize, recover, count, list, and requeue jobs
//	ConfigStore — key/value configuration storage behind the typed Config
//	Cleaner    — prune log files for terminal jobs (not job rows)
//
// These interfaces allow storage implementations to be plugged in without
// coupling queue logic to a specific database.
//
// # Concurrency Model
//
// Each worker runs its own single-threaded claim/execute loop as a
// goroutine; the Supervisor owns the pool of worker goroutines and the
// shared shutdown signal.
//
// Shutdown is graceful: in-flight subprocess attempts are allowed to finish,
// they are never canceled by shutdown, only by their own timeout.
//
// # Storage Expectations
//
// Implementations of Store must ensure atomic claim transitions, durable
// persistence, and correct stale-lock recovery. queuectl assumes storage
// provides reliable write semantics; behavior under concurrent writers
// depends on the chosen backend's isolation guarantees.
//
// # Summary
//
// queuectl provides a minimal yet structured foundation for running
// idempotent shell commands in the background with explicit lifecycle
// control, retry semantics, and a pluggable storage backend.
package queuectl
