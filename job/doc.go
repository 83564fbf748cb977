// Package job defines the stateful representation of a shell command within
// the queuectl lifecycle.
//
// A Job embeds message.Identity (the immutable id and command) and adds
// delivery and scheduling metadata. It represents a command as stored and
// managed by a Store implementation.
//
// Unlike message.Request, which also carries optional enqueue-time
// overrides, Job contains state-machine fields such as State,
// Attempts, lock ownership, and execution results. These fields are
// maintained exclusively by the worker that holds the claim, by the
// supervisor during stale-lock recovery, or by a DLQ requeue.
//
// Job is not intended to be constructed manually by user code. Its fields
// reflect the authoritative state stored by the queue backend and are
// returned by Store.ClaimNext, Store.Get, and Store.List.
package job
