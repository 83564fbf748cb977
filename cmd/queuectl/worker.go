package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/sql"
)

const pidFile = "queuectl.pid"

func newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run or control the worker pool",
	}
	cmd.AddCommand(newWorkerStartCmd(), newWorkerStopCmd())
	return cmd
}

func newWorkerStartCmd() *cobra.Command {
	var count int
	var stopWhenEmpty bool
	var pruneLogsAfter time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the worker pool and block until shutdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkerStart(count, stopWhenEmpty, pruneLogsAfter)
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of worker goroutines")
	cmd.Flags().BoolVar(&stopWhenEmpty, "stop-when-empty", false, "exit once the queue stays empty for 3 consecutive polls")
	cmd.Flags().DurationVar(&pruneLogsAfter, "prune-logs-after", 0, "also run a background log cleaner for terminal jobs older than this (0 disables it)")
	return cmd
}

func newWorkerStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Signal a running `worker start` process to shut down gracefully",
		RunE:  runWorkerStop,
	}
}

func runWorkerStart(count int, stopWhenEmpty bool, pruneLogsAfter time.Duration) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store := sql.NewStore(db)
	config := queuectl.NewConfig(sql.NewConfigStore(db))
	log := logger()

	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		log.Error("failed to write pid file", "err", err)
	}
	defer os.Remove(pidFile)

	ctx := context.Background()

	if pruneLogsAfter > 0 {
		cleaner := sql.NewCleaner(db)
		cleanWorker := queuectl.NewLogCleanWorker(cleaner, &queuectl.CleanConfig{
			Interval: pruneLogsAfter,
			Before:   true,
			Delta:    pruneLogsAfter,
		}, log)
		if err := cleanWorker.Start(ctx); err != nil {
			return fmt.Errorf("start log cleaner: %w", err)
		}
		defer cleanWorker.Stop(5 * time.Second)
	}

	supervisor := queuectl.NewSupervisor(store, config, log)
	if err := supervisor.Start(ctx, queuectl.SupervisorConfig{
		Count:         count,
		StopWhenEmpty: stopWhenEmpty,
	}); err != nil {
		return err
	}
	fmt.Printf("worker pool started: %d worker(s), stop-when-empty=%v\n", count, stopWhenEmpty)
	supervisor.Wait()
	fmt.Println("worker pool stopped")
	return nil
}

// runWorkerStop is the out-of-process half of worker shutdown: `worker
// start` owns the process and blocks in Supervisor.Wait, so the only
// way a separate `queuectl worker stop` invocation can reach it is by
// signaling the pid recorded in pidFile — the same SIGTERM path
// Supervisor.Start already listens for via signal.NotifyContext.
func runWorkerStop(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(pidFile)
	if err != nil {
		return fmt.Errorf("no running worker pool found (%s): %w", pidFile, err)
	}
	pid, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("corrupt pid file %s: %w", pidFile, err)
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
	fmt.Printf("sent stop signal to worker pool (pid %d)\n", pid)
	return nil
}
