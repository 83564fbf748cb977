package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/job"
	"github.com/romanqed/queuectl/sql"
)

func newListCmd() *cobra.Command {
	var state string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(state, limit)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "filter by state (pending|processing|completed|failed|dead)")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to print")
	return cmd
}

func runList(stateFlag string, limit int) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store := sql.NewStore(db)
	config := queuectl.NewConfig(sql.NewConfigStore(db))
	manager := queuectl.NewManager(store, config, logger())

	var filter *job.Status
	if stateFlag != "" {
		s, err := job.ParseStatus(stateFlag)
		if err != nil {
			return err
		}
		filter = &s
	}

	jobs, err := manager.List(context.Background(), filter, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tSTATE\tATT\tMAX\tNEXT_RUN_AT\tCOMMAND")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			j.Id, j.State, j.Attempts, j.MaxRetries, queuectl.FormatTimestamp(j.NextRunAt), j.Command)
	}
	return nil
}
