package queuectl

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateId indicates that Store.InsertJob was called with an id
	// that already exists. It surfaces as an enqueue failure and is never
	// retried.
	ErrDuplicateId = errors.New("duplicate job id")

	// ErrNotFound indicates that a lifecycle operation (such as a DLQ
	// requeue) referenced a job id that does not exist in storage.
	ErrNotFound = errors.New("job not found")

	// ErrJobLost indicates that a claim-holder operation (Finalize) could
	// no longer find or affect the referenced row. This should not occur
	// under the claim contract in §4.1 and indicates a storage anomaly.
	ErrJobLost = errors.New("job lost")

	// ErrStoreError wraps a local storage failure outside the Store:
	// Manager.Enqueue returns it when the log directory cannot be created.
	// Errors from Store implementations are returned unwrapped. Inside the
	// worker loop a failed claim is logged and retried after poll_interval,
	// and a failed Finalize is logged and leaves the job claimed until
	// stale-lock recovery.
	ErrStoreError = errors.New("store error")

	// ErrDoubleStarted is returned when Start is called on a LogCleanWorker
	// that has already been started.
	ErrDoubleStarted = errors.New("double start")

	// ErrDoubleStopped is returned when Stop is called on a component that
	// is not currently running.
	ErrDoubleStopped = errors.New("double stop")

	// ErrStopTimeout is returned when a component fails to shut down
	// within the provided timeout during Stop. The component may still be
	// terminating in the background.
	ErrStopTimeout = errors.New("stop timeout")

	// ErrBadStatus indicates that Cleaner.Clean was called with a
	// non-terminal status. Only Completed, Failed, and Dead are valid
	// targets for log retention.
	ErrBadStatus = errors.New("bad job status")
)

// ValidationError describes why an enqueue request failed field validation
// (§4.2). It is never retried and is returned directly to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IllegalStateError indicates a lifecycle operation was attempted against a
// job whose current state does not permit it (for example, a DLQ requeue of
// a job that is not Dead).
type IllegalStateError struct {
	Id      string
	Current string
	Message string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("illegal state for job %s: %s (current state: %s)", e.Id, e.Message, e.Current)
}
