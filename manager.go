package queuectl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/romanqed/queuectl/job"
	"github.com/romanqed/queuectl/message"
)

const (
	defaultTimeoutSeconds = 30
	logDir                = "logs"
)

// Manager implements the job lifecycle operations of §4.2: validation and
// construction of new jobs, DLQ requeue, and status/listing summaries. It
// sits above a Store and a Config, neither of which it owns.
type Manager struct {
	store  Store
	config *Config
	log    *slog.Logger
}

// NewManager constructs a Manager over the given Store and Config. A nil
// logger defaults to slog.Default().
func NewManager(store Store, config *Config, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{store: store, config: config, log: log}
}

// Enqueue validates req, applies configured defaults, creates the logs
// directory if absent, and inserts the new job in Pending state.
//
// Validation failures return a *ValidationError. A colliding id surfaces as
// ErrDuplicateId.
func (m *Manager) Enqueue(ctx context.Context, req *message.Request) (string, error) {
	if req.Id == "" {
		return "", validationErr("id", "must not be empty")
	}
	if req.Command == "" {
		return "", validationErr("command", "must not be empty")
	}
	priority := 0
	if req.Priority != nil {
		if *req.Priority < 0 {
			return "", validationErr("priority", "must be >= 0")
		}
		priority = *req.Priority
	}
	maxRetries := m.config.MaxRetries(ctx)
	if req.MaxRetries != nil {
		if *req.MaxRetries < 0 {
			return "", validationErr("max_retries", "must be >= 0")
		}
		maxRetries = *req.MaxRetries
	}
	timeoutSeconds := defaultTimeoutSeconds
	if req.TimeoutSeconds != nil {
		if *req.TimeoutSeconds <= 0 {
			return "", validationErr("timeout_seconds", "must be > 0")
		}
		timeoutSeconds = *req.TimeoutSeconds
	}
	now := nowUTC()
	nextRunAt := now
	if req.RunAt != nil {
		nextRunAt = req.RunAt.UTC()
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create log directory: %v", ErrStoreError, err)
	}

	j := &job.Job{
		Identity: message.Identity{
			Id:      req.Id,
			Command: req.Command,
		},
		State:          job.Pending,
		Attempts:       0,
		MaxRetries:     maxRetries,
		Priority:       priority,
		TimeoutSeconds: timeoutSeconds,
		CreatedAt:      now,
		UpdatedAt:      now,
		NextRunAt:      nextRunAt,
		StdoutPath:     filepath.Join(logDir, req.Id+"_out.txt"),
		StderrPath:     filepath.Join(logDir, req.Id+"_err.txt"),
	}

	if err := m.store.InsertJob(ctx, j); err != nil {
		return "", err
	}
	m.log.Info("enqueued job", "id", j.Id, "priority", priority, "max_retries", maxRetries)
	return j.Id, nil
}

// RequeueDead requeues a Dead job back to Pending. It returns ErrNotFound if
// the job does not exist, or an *IllegalStateError if it is not currently
// Dead.
func (m *Manager) RequeueDead(ctx context.Context, id string) error {
	j, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if j == nil {
		return ErrNotFound
	}
	if j.State != job.Dead {
		return &IllegalStateError{Id: id, Current: j.State.String(), Message: "only dead jobs may be requeued from the DLQ"}
	}
	changed, err := m.store.RequeueDead(ctx, id, nowUTC())
	if err != nil {
		return err
	}
	if !changed {
		return &IllegalStateError{Id: id, Current: j.State.String(), Message: "job changed state concurrently"}
	}
	m.log.Info("requeued dead job", "id", id)
	return nil
}

// Status summarizes the store's CountByState.
func (m *Manager) Status(ctx context.Context) (StatusCounts, error) {
	return m.store.CountByState(ctx)
}

// List returns jobs via Store.List. A nil filter returns all jobs ordered
// created_at DESC; a non-nil filter orders priority ASC, next_run_at ASC.
func (m *Manager) List(ctx context.Context, filter *job.Status, limit int) ([]*job.Job, error) {
	return m.store.List(ctx, filter, limit)
}

// ListDead returns Dead jobs ordered updated_at DESC, per §4.2's DLQ
// listing contract.
func (m *Manager) ListDead(ctx context.Context, limit int) ([]*job.Job, error) {
	return m.store.ListDead(ctx, limit)
}

// Get returns a single job by id.
func (m *Manager) Get(ctx context.Context, id string) (*job.Job, error) {
	return m.store.Get(ctx, id)
}
