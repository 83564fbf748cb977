package sql

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/romanqed/queuectl/job"
	"github.com/romanqed/queuectl/message"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`
	Id            string `bun:"id,pk"`
	Command       string `bun:"command,notnull"`

	State      job.Status `bun:"state,notnull,default:0"`
	Attempts   int        `bun:"attempts,notnull,default:0"`
	MaxRetries int        `bun:"max_retries,notnull"`
	Priority   int        `bun:"priority,notnull,default:0"`

	TimeoutSeconds int `bun:"timeout_seconds,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	NextRunAt time.Time `bun:"next_run_at,notnull"`

	LockedBy *string    `bun:"locked_by,nullzero,default:null"`
	LockedAt *time.Time `bun:"locked_at,nullzero,default:null"`

	ProcessingStartedAt  *time.Time `bun:"processing_started_at,nullzero,default:null"`
	ProcessingFinishedAt *time.Time `bun:"processing_finished_at,nullzero,default:null"`

	ExitCode  *int    `bun:"exit_code,nullzero,default:null"`
	LastError *string `bun:"last_error,nullzero,default:null"`

	StdoutPath string `bun:"stdout_path,notnull"`
	StderrPath string `bun:"stderr_path,notnull"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		Identity: message.Identity{
			Id:      jm.Id,
			Command: jm.Command,
		},
		State:                jm.State,
		Attempts:             jm.Attempts,
		MaxRetries:           jm.MaxRetries,
		Priority:             jm.Priority,
		TimeoutSeconds:       jm.TimeoutSeconds,
		CreatedAt:            jm.CreatedAt,
		UpdatedAt:            jm.UpdatedAt,
		NextRunAt:            jm.NextRunAt,
		LockedBy:             jm.LockedBy,
		LockedAt:             jm.LockedAt,
		ProcessingStartedAt:  jm.ProcessingStartedAt,
		ProcessingFinishedAt: jm.ProcessingFinishedAt,
		ExitCode:             jm.ExitCode,
		LastError:            jm.LastError,
		StdoutPath:           jm.StdoutPath,
		StderrPath:           jm.StderrPath,
	}
}

func fromJob(j *job.Job) *jobModel {
	return &jobModel{
		Id:             j.Id,
		Command:        j.Command,
		State:          j.State,
		Attempts:       j.Attempts,
		MaxRetries:     j.MaxRetries,
		Priority:       j.Priority,
		TimeoutSeconds: j.TimeoutSeconds,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
		NextRunAt:      j.NextRunAt,
		StdoutPath:     j.StdoutPath,
		StderrPath:     j.StderrPath,
	}
}

type configModel struct {
	bun.BaseModel `bun:"table:config"`
	Key           string `bun:"key,pk"`
	Value         string `bun:"value,notnull"`
}
