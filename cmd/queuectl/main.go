// Command queuectl is a CLI front end over the queuectl queue: it
// opens a SQLite-backed Store/ConfigStore, and dispatches to
// enqueue/worker/status/list/dlq/config subcommands.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

var dbPath string

func main() {
	root := &cobra.Command{
		Use:   "queuectl",
		Short: "A persistent, single-host background job queue",
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "queuectl.db", "path to the SQLite database file")

	root.AddCommand(
		newInitDBCmd(),
		newEnqueueCmd(),
		newWorkerCmd(),
		newStatusCmd(),
		newListCmd(),
		newDLQCmd(),
		newConfigCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openDB() (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	sqlDB.SetMaxOpenConns(1)
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
