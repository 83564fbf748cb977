package sql

import (
	"context"
	stdsql "database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/job"
)

// Store implements queuectl.Store using a SQL backend.
//
// Store merges what was previously split across a Pusher, Puller and
// Observer into a single bun-backed type, since queuectl.Store names
// all of insert, claim, finalize and read operations on one interface.
// ClaimNext performs the atomic state transition using a single
// UPDATE ... WHERE id IN (subquery) ... RETURNING statement, the same
// pattern used to avoid races between selection and transition in the
// original bun Pull claim.
//
// The implementation assumes durable writes, transactional guarantees
// from the underlying database, and correct indexing of the state and
// scheduling columns (see InitDB).
type Store struct {
	db *bun.DB
}

// NewStore creates a new SQL-backed Store. The provided *bun.DB must be
// properly configured and connected; InitDB must have run already.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// InsertJob inserts a new row in Pending state. A colliding primary key
// surfaces as queuectl.ErrDuplicateId.
func (s *Store) InsertJob(ctx context.Context, j *job.Job) error {
	model := fromJob(j)
	_, err := s.db.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return queuectl.ErrDuplicateId
		}
		return err
	}
	return nil
}

// ClaimNext atomically selects the single eligible row — state Pending,
// next_run_at <= now — ordered priority ASC then next_run_at ASC, and
// flips it to Processing with locked_by/locked_at set to workerId/now.
func (s *Store) ClaimNext(ctx context.Context, workerId string, now time.Time) (*job.Job, error) {
	subQuery := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		Where("state = ?", job.Pending).
		Where("next_run_at <= ?", now).
		Order("priority ASC", "next_run_at ASC").
		Limit(1)

	var rows []*jobModel
	err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Processing).
		Set("locked_by = ?", workerId).
		Set("locked_at = ?", now).
		Set("processing_started_at = ?", now).
		Set("updated_at = ?", now).
		Where("id IN (?)", subQuery).
		Returning("*").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toJob(), nil
}

// Finalize unconditionally applies updates to the row identified by id
// and bumps updated_at. The caller must already hold the claim.
func (s *Store) Finalize(ctx context.Context, id string, updates queuectl.Updates) error {
	now := time.Now().UTC()
	query := s.db.NewUpdate().Model((*jobModel)(nil)).Set("updated_at = ?", now)

	if updates.State != nil {
		query.Set("state = ?", *updates.State)
	}
	if updates.Attempts != nil {
		query.Set("attempts = ?", *updates.Attempts)
	}
	if updates.NextRunAt != nil {
		query.Set("next_run_at = ?", *updates.NextRunAt)
	}
	if updates.ClearLock {
		query.Set("locked_by = NULL").Set("locked_at = NULL")
	} else if updates.LockedBy != nil {
		query.Set("locked_by = ?", *updates.LockedBy)
		if updates.LockedAt != nil {
			query.Set("locked_at = ?", *updates.LockedAt)
		}
	}
	if updates.ProcessingStartedAt != nil {
		query.Set("processing_started_at = ?", *updates.ProcessingStartedAt)
	}
	if updates.ProcessingFinishedAt != nil {
		query.Set("processing_finished_at = ?", *updates.ProcessingFinishedAt)
	}
	if updates.ExitCode != nil {
		query.Set("exit_code = ?", *updates.ExitCode)
	}
	if updates.LastError != nil {
		query.Set("last_error = ?", *updates.LastError)
	}

	res, err := query.Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrJobLost
	}
	return nil
}

// RecoverStale resets every row still Processing with locked_at before
// cutoff back to Pending, clearing its lock.
func (s *Store) RecoverStale(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Pending).
		Set("locked_by = NULL").
		Set("locked_at = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("state = ?", job.Processing).
		Where("locked_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return int(getAffected(res)), nil
}

// CountByState returns the count of rows in each known state plus the
// grand total.
func (s *Store) CountByState(ctx context.Context) (queuectl.StatusCounts, error) {
	var counts queuectl.StatusCounts
	rows := []struct {
		State job.Status `bun:"state"`
		Count int64      `bun:"count"`
	}{}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("state").
		ColumnExpr("count(*) AS count").
		GroupExpr("state").
		Scan(ctx, &rows)
	if err != nil {
		return counts, err
	}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.State {
		case job.Pending:
			counts.Pending = row.Count
		case job.Processing:
			counts.Processing = row.Count
		case job.Completed:
			counts.Completed = row.Count
		case job.Failed:
			counts.Failed = row.Count
		case job.Dead:
			counts.Dead = row.Count
		}
	}
	return counts, nil
}

// List returns up to limit rows matching filter. Without a filter rows
// are ordered created_at DESC; with one they are ordered priority ASC
// then next_run_at ASC, matching the ordering ClaimNext itself uses.
func (s *Store) List(ctx context.Context, filter *job.Status, limit int) ([]*job.Job, error) {
	var rows []*jobModel
	query := s.db.NewSelect().Model(&rows)
	if filter != nil {
		query.Where("state = ?", *filter).Order("priority ASC", "next_run_at ASC")
	} else {
		query.Order("created_at DESC")
	}
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return toJobs(rows), nil
}

// ListDead returns up to limit Dead rows ordered updated_at DESC.
func (s *Store) ListDead(ctx context.Context, limit int) ([]*job.Job, error) {
	var rows []*jobModel
	query := s.db.NewSelect().
		Model(&rows).
		Where("state = ?", job.Dead).
		Order("updated_at DESC")
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return toJobs(rows), nil
}

// Get returns the row identified by id, or (nil, nil) if absent.
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	var row jobModel
	err := s.db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toJob(), nil
}

// RequeueDead conditionally resets a Dead row to Pending with
// attempts=0, next_run_at=now, and clears lock and error fields.
func (s *Store) RequeueDead(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Pending).
		Set("attempts = 0").
		Set("next_run_at = ?", now).
		Set("updated_at = ?", now).
		Set("locked_by = NULL").
		Set("locked_at = NULL").
		Set("exit_code = NULL").
		Set("last_error = NULL").
		Where("id = ?", id).
		Where("state = ?", job.Dead).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return isAffected(res), nil
}

func toJobs(rows []*jobModel) []*job.Job {
	ret := make([]*job.Job, len(rows))
	for i, row := range rows {
		ret[i] = row.toJob()
	}
	return ret
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}
