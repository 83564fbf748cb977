package queuectl

import (
	"context"
	"time"

	"github.com/romanqed/queuectl/job"
)

// Updates describes a partial mutation applied by Store.Finalize. Only
// non-nil fields are written; UpdatedAt is always bumped by the
// implementation regardless of which fields are set.
//
// Finalize is unconditional: the caller must already hold the claim (it is
// called exclusively by the worker that owns LockedBy, or is bypassed
// entirely by RecoverStale/RequeueDead, which have their own targeted
// semantics).
type Updates struct {
	State                *job.Status
	Attempts             *int
	NextRunAt            *time.Time
	LockedBy             *string // explicit nil-clear is expressed via ClearLock
	LockedAt             *time.Time
	ClearLock            bool
	ProcessingStartedAt  *time.Time
	ProcessingFinishedAt *time.Time
	ExitCode             *int
	LastError            *string
}

// StatusCounts summarizes Store.CountByState, per §4.2's `status` CLI
// command: the known states plus a Total.
type StatusCounts struct {
	Pending    int64
	Processing int64
	Completed  int64
	Failed     int64
	Dead       int64
	Total      int64
}

// Store is the persistence substrate consumed by the execution engine
// (§4.1). The core requires only the operations below; any backend
// satisfying them suffices — it need not be a specific engine, only honor
// the isolation contract described on each method.
type Store interface {
	// InsertJob atomically inserts a new row. It fails with ErrDuplicateId
	// if the job's Id already exists.
	InsertJob(ctx context.Context, j *job.Job) error

	// ClaimNext atomically selects the single eligible job (pending,
	// next_run_at <= now), ordered by priority ASC then next_run_at ASC,
	// and flips it to Processing with LockedBy=workerId, LockedAt=now.
	//
	// Returns (nil, nil) if no job is eligible. Concurrent callers must
	// observe disjoint claims: no two callers ever receive the same id
	// from overlapping calls.
	ClaimNext(ctx context.Context, workerId string, now time.Time) (*job.Job, error)

	// Finalize unconditionally applies updates to the job identified by id
	// and bumps UpdatedAt. The caller must hold the claim; Finalize does
	// not re-check ownership.
	Finalize(ctx context.Context, id string, updates Updates) error

	// RecoverStale clears LockedBy/LockedAt and resets State to Pending for
	// every row currently Processing with LockedAt before cutoff. Returns
	// the number of rows reclaimed.
	RecoverStale(ctx context.Context, cutoff time.Time) (int, error)

	// CountByState returns the count of rows in each known state plus the
	// grand total.
	CountByState(ctx context.Context) (StatusCounts, error)

	// List returns up to limit rows matching filter (nil means no status
	// filter). Ordering: without a filter, created_at DESC; with a filter,
	// priority ASC then next_run_at ASC. A non-positive limit returns all
	// matching rows.
	List(ctx context.Context, filter *job.Status, limit int) ([]*job.Job, error)

	// ListDead returns up to limit Dead jobs ordered by updated_at DESC,
	// per the DLQ listing contract in §4.2 (distinct from the generic
	// ordering applied by List).
	ListDead(ctx context.Context, limit int) ([]*job.Job, error)

	// Get returns the job identified by id, or (nil, nil) if absent.
	Get(ctx context.Context, id string) (*job.Job, error)

	// RequeueDead conditionally resets a Dead job to Pending with
	// attempts=0, next_run_at=now, and cleared lock/error fields. It
	// changes nothing and returns false if the job's current state is not
	// Dead.
	RequeueDead(ctx context.Context, id string, now time.Time) (bool, error)
}

// ConfigStore is the key/value persistence substrate backing Config (§4.5).
// Reads are uncached; writes are last-writer-wins upserts.
type ConfigStore interface {
	// Get returns the stored value for key, or ("", false, nil) if unset.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set upserts key to value.
	Set(ctx context.Context, key, value string) error
}

// Cleaner permanently removes the log files of terminal jobs. It never
// deletes job rows — "Never deleted by the core" (§3) applies to the jobs
// table, not to the append-only log files that back stdout_path and
// stderr_path.
//
// Clean must reject non-terminal statuses with ErrBadStatus.
type Cleaner interface {
	// Clean removes the stdout/stderr log files of jobs matching status
	// (a nil status pointer means "any terminal status") whose UpdatedAt
	// is at or before before (nil means no time filter). Clean returns the number of jobs whose logs were
	// pruned.
	Clean(ctx context.Context, status *job.Status, before *time.Time) (int64, error)
}
