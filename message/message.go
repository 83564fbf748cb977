package message

import "time"

// Request represents a transport-level enqueue intent in queuectl.
//
// It carries only the truly identity-level fields shared with the stored
// job.Job: the caller-supplied Id and the Command line to execute. The
// remaining enqueue fields (priority, retry cap, timeout, delayed start) are
// optional overrides of configured defaults and are not part of the
// transport identity, so they are carried as separate pointer fields here
// rather than on job.Job (which stores their resolved, concrete values).
//
// Id must be supplied by the caller; queuectl does not generate job
// identities. Command must be a non-empty shell command line.
type Request struct {
	Id      string
	Command string

	Priority       *int
	MaxRetries     *int
	TimeoutSeconds *int
	RunAt          *time.Time
}

// NewRequest creates a Request for the given id and command with no
// scheduling overrides. Callers may set the optional fields directly before
// passing the Request to Manager.Enqueue.
func NewRequest(id, command string) *Request {
	return &Request{
		Id:      id,
		Command: command,
	}
}

// Identity is the subset of Request embedded directly into job.Job: the
// fields that never change for the lifetime of a job.
type Identity struct {
	Id      string
	Command string
}
