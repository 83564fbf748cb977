package sql_test

import (
	"context"
	"testing"

	qsql "github.com/romanqed/queuectl/sql"
)

func TestConfigStoreGetSet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := qsql.NewConfigStore(db)

	_, ok, err := store.Get(ctx, "max_retries")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected unset key to report ok=false")
	}

	if err := store.Set(ctx, "max_retries", "5"); err != nil {
		t.Fatal(err)
	}
	value, ok, err := store.Get(ctx, "max_retries")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "5" {
		t.Fatalf("expected 5, got %q (ok=%v)", value, ok)
	}

	if err := store.Set(ctx, "max_retries", "9"); err != nil {
		t.Fatal(err)
	}
	value, _, _ = store.Get(ctx, "max_retries")
	if value != "9" {
		t.Fatalf("expected upsert to overwrite, got %q", value)
	}
}
