// Package message defines the transport-level enqueue request accepted by
// queuectl.
//
// Request represents the caller-supplied intent to run a shell command: the
// command itself, plus optional scheduling hints (priority, retry cap,
// timeout, delayed start). It is intentionally minimal and does not contain
// any delivery or state information (such as State, Attempts, locks, etc.).
// Those concerns are handled by the higher-level job.Job type once the
// request has been validated and defaulted.
//
// A Request is designed to be:
//   - storage-agnostic
//   - lightweight
//   - safe to serialize from the CLI's JSON enqueue argument
//
// Request does not enforce immutability. Callers should treat Request
// instances as immutable once they are submitted to Manager.Enqueue to
// avoid unintended data races or side effects.
package message
