package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/sql"
)

func newDLQCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and requeue dead-lettered jobs",
	}
	cmd.AddCommand(newDLQListCmd(), newDLQRetryCmd())
	return cmd
}

func newDLQListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dead-lettered jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDLQList(limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to print")
	return cmd
}

func runDLQList(limit int) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store := sql.NewStore(db)
	config := queuectl.NewConfig(sql.NewConfigStore(db))
	manager := queuectl.NewManager(store, config, logger())

	jobs, err := manager.ListDead(context.Background(), limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tATT\tMAX\tLAST_ERROR")
	for _, j := range jobs {
		lastErr := ""
		if j.LastError != nil {
			lastErr = *j.LastError
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", j.Id, j.Attempts, j.MaxRetries, lastErr)
	}
	return nil
}

func newDLQRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Requeue a dead-lettered job back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDLQRetry(args[0])
		},
	}
}

func runDLQRetry(id string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store := sql.NewStore(db)
	config := queuectl.NewConfig(sql.NewConfigStore(db))
	manager := queuectl.NewManager(store, config, logger())

	if err := manager.RequeueDead(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("requeued %s\n", id)
	return nil
}
