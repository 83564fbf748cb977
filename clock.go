package queuectl

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// nowUTC returns the current time truncated to UTC. All timestamps crossing
// the Store boundary are UTC; ISO-8601 formatting with a trailing "Z" is
// applied only at the outer CLI/formatting boundary (§6), not internally.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// FormatTimestamp renders t as UTC ISO-8601 with a trailing "Z", per the
// interface-boundary contract in §6.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// ParseTimestamp parses an ISO-8601 timestamp as accepted on the `run_at`
// enqueue field.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// newWorkerId generates a worker identifier of the form "worker-<8 hex
// chars>", per §4.4. The suffix is derived from a random uuid rather than a
// dedicated counter so that concurrently started supervisors never collide.
func newWorkerId() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "worker-" + id[:8]
}
