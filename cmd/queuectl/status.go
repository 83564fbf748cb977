package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/sql"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show job counts by state",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store := sql.NewStore(db)
	config := queuectl.NewConfig(sql.NewConfigStore(db))
	manager := queuectl.NewManager(store, config, logger())

	counts, err := manager.Status(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("pending:    %d\n", counts.Pending)
	fmt.Printf("processing: %d\n", counts.Processing)
	fmt.Printf("completed:  %d\n", counts.Completed)
	fmt.Printf("failed:     %d\n", counts.Failed)
	fmt.Printf("dead:       %d\n", counts.Dead)
	fmt.Printf("total:      %d\n", counts.Total)
	// active is always 0 here: Supervisor.ActiveWorkerCount() lives in the
	// memory of a separate `worker start` process, which this one-shot CLI
	// invocation has no handle to.
	fmt.Printf("active:     0 (worker count unavailable from a separate `status` invocation)\n")
	return nil
}
