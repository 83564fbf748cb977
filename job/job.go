package job

import (
	"github.com/romanqed/queuectl/message"
	"time"
)

// Job represents a shell command managed by the queue storage.
//
// It embeds message.Identity (the immutable caller-supplied id and command)
// and augments it with delivery state, scheduling, attempt accounting, and
// subprocess execution results — the fields the worker and store mutate
// over the job's lifetime.
//
// CreatedAt records when the job was initially enqueued. UpdatedAt is bumped
// on every mutation and must be non-decreasing for a given Id.
//
// State represents the current state in the job lifecycle (§3). Attempts
// counts failed execution attempts; a successful attempt leaves it
// unchanged. A job goes Dead once Attempts reaches MaxRetries, so Attempts
// exceeds MaxRetries only when MaxRetries is 0.
// LockedBy/LockedAt identify the worker currently holding the claim and are
// non-nil if and only if State is Processing. NextRunAt is the earliest
// moment a worker may claim the job.
//
// Job instances should be treated as snapshots of storage state. Mutating
// fields directly does not change the underlying queue state; transitions
// must be performed through the Store interface.
type Job struct {
	message.Identity

	State          Status
	Attempts       int
	MaxRetries     int
	Priority       int
	TimeoutSeconds int

	CreatedAt time.Time
	UpdatedAt time.Time
	NextRunAt time.Time

	LockedBy *string
	LockedAt *time.Time

	ProcessingStartedAt  *time.Time
	ProcessingFinishedAt *time.Time

	ExitCode  *int
	LastError *string

	StdoutPath string
	StderrPath string
}

// Locked reports whether the job currently holds an active claim.
func (j *Job) Locked() bool {
	return j.LockedBy != nil
}
