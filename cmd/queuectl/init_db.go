package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/sql"
)

func newInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create or upgrade the queuectl database schema",
		RunE:  runInitDB,
	}
}

func runInitDB(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	nonEmpty, err := jobsTableNonEmpty(ctx, db)
	if err != nil {
		return err
	}
	if nonEmpty {
		if !confirm(fmt.Sprintf("%s already has jobs. Re-run init-db anyway? [y/N] ", dbPath)) {
			fmt.Println("aborted")
			return nil
		}
	}

	if err := sql.InitDB(ctx, db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	configStore := sql.NewConfigStore(db)
	if err := queuectl.SeedDefaults(ctx, configStore); err != nil {
		return fmt.Errorf("seed config: %w", err)
	}
	fmt.Printf("initialized %s\n", dbPath)
	return nil
}

func jobsTableNonEmpty(ctx context.Context, db *bun.DB) (bool, error) {
	count, err := db.NewSelect().Table("jobs").Count(ctx)
	if err != nil {
		// The jobs table does not exist yet on a fresh database; that is
		// not an error condition for init-db.
		return false, nil
	}
	return count > 0, nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
