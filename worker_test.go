package queuectl_test

import (
	"context"
	"database/sql"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/job"
	"github.com/romanqed/queuectl/message"
	qsql "github.com/romanqed/queuectl/sql"

	_ "modernc.org/sqlite"
)

func newWorkerTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := qsql.InitDB(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	return db
}

func waitForState(t *testing.T, store queuectl.Store, id string, want job.Status, timeout time.Duration) *job.Job {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		j, err := store.Get(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if j != nil && j.State == want {
			return j
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("job %s did not reach state %v in time", id, want)
	return nil
}

func TestWorkerCompletesSuccessfulJob(t *testing.T) {
	db := newWorkerTestDB(t)
	store := qsql.NewStore(db)
	configStore := qsql.NewConfigStore(db)
	config := queuectl.NewConfig(configStore)
	if err := queuectl.SeedDefaults(context.Background(), configStore); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	j := &job.Job{
		Identity:       message.Identity{Id: "ok-job", Command: "true"},
		State:          job.Pending,
		MaxRetries:     3,
		TimeoutSeconds: 5,
		CreatedAt:      now,
		UpdatedAt:      now,
		NextRunAt:      now,
		StdoutPath:     t.TempDir() + "/out.txt",
		StderrPath:     t.TempDir() + "/err.txt",
	}
	if err := store.InsertJob(context.Background(), j); err != nil {
		t.Fatal(err)
	}

	var shutdown atomic.Bool
	w := queuectl.NewWorker("worker-test", store, config, slog.Default(), false, &shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	got := waitForState(t, store, "ok-job", job.Completed, 3*time.Second)
	if got.ExitCode == nil || *got.ExitCode != 0 {
		t.Fatal("expected exit code 0")
	}
	if got.Locked() {
		t.Fatal("expected lock cleared after completion")
	}

	shutdown.Store(true)
}

func TestWorkerDeadLettersAfterMaxRetries(t *testing.T) {
	db := newWorkerTestDB(t)
	store := qsql.NewStore(db)
	configStore := qsql.NewConfigStore(db)
	config := queuectl.NewConfig(configStore)
	if err := configStore.Set(context.Background(), queuectl.ConfigKeyBackoffBase, "1"); err != nil {
		t.Fatal(err)
	}
	if err := configStore.Set(context.Background(), queuectl.ConfigKeyPollInterval, "1"); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	j := &job.Job{
		Identity:       message.Identity{Id: "bad-job", Command: "false"},
		State:          job.Pending,
		MaxRetries:     1,
		TimeoutSeconds: 5,
		CreatedAt:      now,
		UpdatedAt:      now,
		NextRunAt:      now,
		StdoutPath:     t.TempDir() + "/out.txt",
		StderrPath:     t.TempDir() + "/err.txt",
	}
	if err := store.InsertJob(context.Background(), j); err != nil {
		t.Fatal(err)
	}

	var shutdown atomic.Bool
	w := queuectl.NewWorker("worker-test", store, config, slog.Default(), false, &shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	got := waitForState(t, store, "bad-job", job.Dead, 3*time.Second)
	if got.LastError == nil {
		t.Fatal("expected a recorded failure message")
	}

	shutdown.Store(true)
}

func TestWorkerStopsWhenEmpty(t *testing.T) {
	db := newWorkerTestDB(t)
	store := qsql.NewStore(db)
	configStore := qsql.NewConfigStore(db)
	config := queuectl.NewConfig(configStore)
	if err := configStore.Set(context.Background(), queuectl.ConfigKeyPollInterval, "1"); err != nil {
		t.Fatal(err)
	}

	var shutdown atomic.Bool
	w := queuectl.NewWorker("worker-test", store, config, slog.Default(), true, &shutdown)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(6 * time.Second):
		t.Fatal("expected worker to exit once the queue stayed empty")
	}
}
