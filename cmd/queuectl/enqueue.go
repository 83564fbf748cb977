package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romanqed/queuectl"
	"github.com/romanqed/queuectl/message"
	"github.com/romanqed/queuectl/sql"
)

func newEnqueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue <json>",
		Short: "Enqueue a new job from a JSON request object",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnqueue,
	}
}

// enqueueRequest mirrors message.Request's shape on the CLI JSON
// boundary. The scalar overrides are pointers so that an absent field
// stays nil; run_at is taken as a string and parsed with
// queuectl.ParseTimestamp.
type enqueueRequest struct {
	Id             string  `json:"id"`
	Command        string  `json:"command"`
	Priority       *int    `json:"priority,omitempty"`
	MaxRetries     *int    `json:"max_retries,omitempty"`
	TimeoutSeconds *int    `json:"timeout_seconds,omitempty"`
	RunAt          *string `json:"run_at,omitempty"`
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	var req enqueueRequest
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	r := message.NewRequest(req.Id, req.Command)
	r.Priority = req.Priority
	r.MaxRetries = req.MaxRetries
	r.TimeoutSeconds = req.TimeoutSeconds
	if req.RunAt != nil {
		t, err := queuectl.ParseTimestamp(*req.RunAt)
		if err != nil {
			return fmt.Errorf("parse run_at: %w", err)
		}
		r.RunAt = &t
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store := sql.NewStore(db)
	config := queuectl.NewConfig(sql.NewConfigStore(db))
	manager := queuectl.NewManager(store, config, logger())

	id, err := manager.Enqueue(context.Background(), r)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}
