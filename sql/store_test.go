package sql_test

import (
	"context"
	"testing"
	"time"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/job"
	"github.com/romanqed/queuectl/message"
	qsql "github.com/romanqed/queuectl/sql"
)

func newTestJob(id string, priority int) *job.Job {
	now := time.Now().UTC()
	return &job.Job{
		Identity:       message.Identity{Id: id, Command: "echo hi"},
		State:          job.Pending,
		MaxRetries:     3,
		Priority:       priority,
		TimeoutSeconds: 30,
		CreatedAt:      now,
		UpdatedAt:      now,
		NextRunAt:      now,
		StdoutPath:     "/tmp/" + id + "_out.txt",
		StderrPath:     "/tmp/" + id + "_err.txt",
	}
}

func TestInsertAndClaim(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)

	if err := store.InsertJob(ctx, newTestJob("a", 0)); err != nil {
		t.Fatal(err)
	}

	claimed, err := store.ClaimNext(ctx, "worker-1", time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if claimed == nil {
		t.Fatal("expected a claimed job, got nil")
	}
	if claimed.State != job.Processing {
		t.Fatalf("expected Processing, got %v", claimed.State)
	}
	if !claimed.Locked() || *claimed.LockedBy != "worker-1" {
		t.Fatal("expected job to be locked by worker-1")
	}

	second, err := store.ClaimNext(ctx, "worker-2", time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if second != nil {
		t.Fatal("expected no second job to claim")
	}
}

func TestClaimOrdersByPriorityThenNextRunAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)

	_ = store.InsertJob(ctx, newTestJob("low-priority", 5))
	_ = store.InsertJob(ctx, newTestJob("high-priority", 0))

	claimed, err := store.ClaimNext(ctx, "worker-1", time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if claimed.Id != "high-priority" {
		t.Fatalf("expected high-priority claimed first, got %s", claimed.Id)
	}
}

func TestFinalizeCompleted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)

	_ = store.InsertJob(ctx, newTestJob("a", 0))
	claimed, _ := store.ClaimNext(ctx, "worker-1", time.Now().UTC())

	attempts := 1
	code := 0
	state := job.Completed
	updates := queuectl.Updates{
		State:     &state,
		Attempts:  &attempts,
		ExitCode:  &code,
		ClearLock: true,
	}
	err := store.Finalize(ctx, claimed.Id, updates)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, claimed.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Completed {
		t.Fatalf("expected Completed, got %v", got.State)
	}
	if got.Locked() {
		t.Fatal("expected lock to be cleared on finalize")
	}
}

func TestRecoverStale(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)

	_ = store.InsertJob(ctx, newTestJob("a", 0))
	claimed, _ := store.ClaimNext(ctx, "worker-1", time.Now().UTC())

	// Backdate the lock by finalizing with LockedAt in the past is not
	// exposed directly; RecoverStale is exercised against a cutoff in
	// the future relative to the claim instead, simulating staleness.
	cutoff := time.Now().UTC().Add(time.Minute)
	reclaimed, err := store.RecoverStale(ctx, cutoff)
	if err != nil {
		t.Fatal(err)
	}
	if reclaimed != 1 {
		t.Fatalf("expected 1 reclaimed row, got %d", reclaimed)
	}

	got, err := store.Get(ctx, claimed.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Pending {
		t.Fatalf("expected Pending after recovery, got %v", got.State)
	}
	if got.Locked() {
		t.Fatal("expected lock cleared after recovery")
	}
}

func TestCountByState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)

	_ = store.InsertJob(ctx, newTestJob("a", 0))
	_ = store.InsertJob(ctx, newTestJob("b", 0))
	_, _ = store.ClaimNext(ctx, "worker-1", time.Now().UTC())

	counts, err := store.CountByState(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Total != 2 {
		t.Fatalf("expected total 2, got %d", counts.Total)
	}
	if counts.Pending != 1 || counts.Processing != 1 {
		t.Fatalf("expected 1 pending and 1 processing, got %+v", counts)
	}
}

func TestRequeueDead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)

	_ = store.InsertJob(ctx, newTestJob("a", 0))
	claimed, _ := store.ClaimNext(ctx, "worker-1", time.Now().UTC())

	deadState := job.Dead
	attempts := 3
	code := 1
	_ = store.Finalize(ctx, claimed.Id, queuectl.Updates{
		State:     &deadState,
		Attempts:  &attempts,
		ExitCode:  &code,
		ClearLock: true,
	})

	ok, err := store.RequeueDead(ctx, claimed.Id, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected RequeueDead to report a change")
	}

	got, _ := store.Get(ctx, claimed.Id)
	if got.State != job.Pending {
		t.Fatalf("expected Pending after requeue, got %v", got.State)
	}
	if got.Attempts != 0 {
		t.Fatalf("expected attempts reset to 0, got %d", got.Attempts)
	}

	ok, err = store.RequeueDead(ctx, claimed.Id, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected second requeue of a non-Dead job to report no change")
	}
}

func TestListFilteredByState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewStore(db)

	_ = store.InsertJob(ctx, newTestJob("a", 0))
	_ = store.InsertJob(ctx, newTestJob("b", 0))

	pending := job.Pending
	rows, err := store.List(ctx, &pending, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 pending rows, got %d", len(rows))
	}
}
