// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package job runs network bound tasks outside of the UI goroutine.
package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/wneessen/mapviewer/internal/logger"
)

// ErrStopped is returned if a task is handed to a runner that was already shut down.
var ErrStopped = errors.New("job runner is stopped")

// Runner executes one-shot tasks on a gocron scheduler. Tasks start immediately and run
// concurrently to each other.
type Runner struct {
	logger    *logger.Logger
	scheduler gocron.Scheduler
	stopped   atomic.Bool
}

// New creates and starts a new Runner.
func New(log *logger.Logger) (*Runner, error) {
	runner := &Runner{logger: log}
	scheduler, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(runner.logPanic),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	runner.scheduler = scheduler
	scheduler.Start()
	return runner, nil
}

// Run schedules task for immediate execution. The task receives ctx, which is also what
// cancels it.
func (r *Runner) Run(ctx context.Context, name string, task func(context.Context)) error {
	if task == nil {
		return nil
	}
	if r.stopped.Load() {
		return ErrStopped
	}
	_, err := r.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", name, err)
	}
	return nil
}

// Shutdown stops the scheduler and waits for running tasks to return.
func (r *Runner) Shutdown() error {
	if !r.stopped.CompareAndSwap(false, true) {
		return nil
	}
	return r.scheduler.Shutdown()
}

func (r *Runner) logPanic(jobID uuid.UUID, jobName string, recoverData any) {
	r.logger.Error("job panicked", slog.String("job", jobName), slog.String("id", jobID.String()),
		slog.Any("panic", recoverData))
}
