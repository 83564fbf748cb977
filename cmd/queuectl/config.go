package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/sql"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or write queue configuration",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print a config value, or every recognized key if key is omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runConfigGetOne(args[0])
			}
			return runConfigGetAll()
		},
	}
}

func runConfigGetOne(key string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	config := queuectl.NewConfig(sql.NewConfigStore(db))
	value, ok, err := config.Get(context.Background(), key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("%s is unset\n", key)
		return nil
	}
	fmt.Println(value)
	return nil
}

func runConfigGetAll() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	config := queuectl.NewConfig(sql.NewConfigStore(db))
	for _, key := range []string{
		queuectl.ConfigKeyMaxRetries,
		queuectl.ConfigKeyBackoffBase,
		queuectl.ConfigKeyPollInterval,
	} {
		value, ok, err := config.Get(ctx, key)
		if err != nil {
			return err
		}
		if !ok {
			value = "(default)"
		}
		fmt.Printf("%s=%s\n", queuectl.DenormalizeConfigKey(key), value)
	}
	return nil
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func runConfigSet(key, value string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	config := queuectl.NewConfig(sql.NewConfigStore(db))
	if err := config.Set(context.Background(), key, value); err != nil {
		return err
	}
	fmt.Printf("%s=%s\n", queuectl.NormalizeConfigKey(key), value)
	return nil
}
