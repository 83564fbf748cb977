package sql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/job"
	"github.com/romanqed/queuectl/message"
	qsql "github.com/romanqed/queuectl/sql"
)

func TestCleanerRemovesLogsNotRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)
	cleaner := qsql.NewCleaner(db)

	outFile, err := os.CreateTemp(t.TempDir(), "out-*.txt")
	if err != nil {
		t.Fatal(err)
	}
	errFile, err := os.CreateTemp(t.TempDir(), "err-*.txt")
	if err != nil {
		t.Fatal(err)
	}
	outFile.Close()
	errFile.Close()

	now := time.Now().UTC()
	j := &job.Job{
		Identity:       message.Identity{Id: "a", Command: "echo hi"},
		State:          job.Completed,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		CreatedAt:      now,
		UpdatedAt:      now,
		NextRunAt:      now,
		StdoutPath:     outFile.Name(),
		StderrPath:     errFile.Name(),
	}
	if err := store.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}

	pruned, err := cleaner.Clean(ctx, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 1 {
		t.Fatalf("expected 1 job pruned, got %d", pruned)
	}

	if _, err := os.Stat(outFile.Name()); !os.IsNotExist(err) {
		t.Fatal("expected stdout log to be removed")
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected job row to still exist after cleaning")
	}
}

func TestCleanerRejectsNonTerminalStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cleaner := qsql.NewCleaner(db)

	pending := job.Pending
	_, err := cleaner.Clean(ctx, &pending, nil)
	if err != queuectl.ErrBadStatus {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}
