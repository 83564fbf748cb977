package job

import "fmt"

// Status represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	pending    -> processing
//	processing -> completed
//	processing -> pending   (retry, future NextRunAt)
//	processing -> dead
//	dead       -> pending   (DLQ requeue)
//
// Failed is reserved: it is exposed by count summaries for forward
// compatibility but is never produced by the worker loop. Its presence on a
// stored row indicates a logical error elsewhere in the system.
type Status uint8

const (
	// Pending indicates that the job is available for claiming.
	// A Pending job may have a future NextRunAt, delaying eligibility.
	Pending Status = iota

	// Processing indicates that the job has been claimed and is currently
	// owned by a worker. LockedBy/LockedAt identify the holder.
	Processing

	// Completed indicates successful execution (exit code 0). Terminal.
	Completed

	// Failed is reserved for forward compatibility and is never produced
	// by the worker; see package doc.
	Failed

	// Dead indicates the attempt cap was reached. Terminal until a DLQ
	// requeue resets the job back to Pending.
	Dead
)

func statusToString(status Status) string {
	switch status {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func statusFromString(status string) (Status, error) {
	switch status {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "dead":
		return Dead, nil
	default:
		return 0, fmt.Errorf("unknown status: %s", status)
	}
}

// ParseStatus converts a string representation of a status into a Status
// value.
//
// Recognized values are:
//
//	"pending"
//	"processing"
//	"completed"
//	"failed"
//	"dead"
//
// An error is returned for unrecognized strings.
func ParseStatus(s string) (Status, error) {
	return statusFromString(s)
}

// MarshalText implements encoding.TextMarshaler.
//
// Status values are encoded using their canonical lowercase names.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(statusToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// The textual form must match one of the canonical status names.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := statusFromString(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// String returns the canonical string representation of the status.
func (s Status) String() string {
	return statusToString(s)
}

// Terminal reports whether the status is a terminal state (Completed or
// Dead). Processing and Pending are not terminal; Failed is reserved and
// treated as terminal for the purposes of log retention.
func (s Status) Terminal() bool {
	return s == Completed || s == Failed || s == Dead
}
