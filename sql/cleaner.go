package sql

import (
	"context"
	"os"
	"time"

	"github.com/uptrace/bun"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/job"
)

// Cleaner implements queuectl.Cleaner using a SQL backend.
//
// Unlike an earlier row-deleting Cleaner, this Cleaner never removes
// job rows — "Never deleted by the core" (§3 of the job entity) applies
// to the jobs table. It instead reads the stdout_path/stderr_path of
// terminal rows matching the filter and removes those log files from
// disk, leaving the row (and its history) intact.
type Cleaner struct {
	db *bun.DB
}

// NewCleaner creates a new SQL-backed Cleaner.
func NewCleaner(db *bun.DB) *Cleaner {
	return &Cleaner{db: db}
}

// Clean removes the stdout/stderr log files of jobs matching status
// (nil means any terminal status) whose updated_at is at or before
// before (nil means no time filter). It returns the number of jobs
// whose logs were pruned.
func (c *Cleaner) Clean(ctx context.Context, status *job.Status, before *time.Time) (int64, error) {
	if status != nil && !status.Terminal() {
		return 0, queuectl.ErrBadStatus
	}

	var rows []*jobModel
	query := c.db.NewSelect().Model(&rows)
	if status != nil {
		query.Where("state = ?", *status)
	} else {
		query.Where("state IN (?, ?, ?)", job.Completed, job.Failed, job.Dead)
	}
	if before != nil {
		query.Where("updated_at <= ?", *before)
	}
	if err := query.Scan(ctx); err != nil {
		return 0, err
	}

	var pruned int64
	for _, row := range rows {
		outRemoved := removeIfExists(row.StdoutPath)
		errRemoved := removeIfExists(row.StderrPath)
		if outRemoved || errRemoved {
			pruned++
		}
	}
	return pruned, nil
}

func removeIfExists(path string) bool {
	if path == "" {
		return false
	}
	err := os.Remove(path)
	return err == nil
}
