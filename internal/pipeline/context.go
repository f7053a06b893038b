package pipeline

import (
	"context"
	"time"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/config"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/dataset"
)

// SleepFunc is a cancellable wait. The default implementation sleeps for d
// unless the context ends first, in which case it returns the context error.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Context carries the dependencies and accumulating results of a pipeline run.
type Context struct {
	context.Context

	Config   *config.Config
	Timeouts *config.Timeouts
	State    *Store
	Storage  StorageProvider
	Grants   GrantProvider
	Jobs     JobProvider
	Observer Observer

	// Dataset is the prepared training/validation split, set before the
	// upload phase runs.
	Dataset *dataset.Split

	// Outcome is set by the watch phase once the job reaches a terminal
	// state or the local watch is interrupted.
	Outcome *Outcome

	// Sleep is the cancellable wait used for settle delays and poll
	// intervals. Tests replace it to count and skip waits.
	Sleep SleepFunc
}

// NewContext creates a pipeline context with the console observer and the
// default sleep.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	store *Store,
	storage StorageProvider,
	grants GrantProvider,
	jobs JobProvider,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Timeouts: config.LoadTimeouts(),
		State:    store,
		Storage:  storage,
		Grants:   grants,
		Jobs:     jobs,
		Observer: NewConsoleObserver(),
		Sleep:    defaultSleep,
	}
}
