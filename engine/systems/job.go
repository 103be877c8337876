package systems

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"golang.org/x/sync/errgroup"
)

type JobSystem struct {
	numWorkers int
	closed     atomic.Bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrJobSystemClosed = fmt.Errorf("job system is shut down")

func NewJobSystem(numWorkers int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	return &JobSystem{
		numWorkers: numWorkers,
	}, nil
}

// Workers returns the maximum number of jobs running at the same time.
func (js *JobSystem) Workers() int {
	return js.numWorkers
}

/**
 * @brief Runs tasks on at most Workers goroutines and waits for all of them.
 * The first failing job cancels the context handed to the jobs that follow.
 *
 * @param ctx Cancels the whole batch.
 * @param tasks The jobs to run. OnStart is required.
 * @return The first error returned by a job, or ctx's error.
 */
func (js *JobSystem) Dispatch(ctx context.Context, tasks []metadata.JobTask) error {
	if js.closed.Load() {
		return ErrJobSystemClosed
	}
	for _, job := range tasks {
		if job.OnStart == nil {
			return fmt.Errorf("job %q has no OnStart", job.Name)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(js.numWorkers)
	for _, job := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := job.OnStart(gctx); err != nil {
				core.LogError("job %s failed: %s", job.Name, err.Error())
				if job.OnFailure != nil {
					job.OnFailure(err)
				}
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			if job.OnComplete != nil {
				job.OnComplete()
			}
			return nil
		})
	}
	return g.Wait()
}

/**
 * @brief Shuts the job system down. Batches already dispatched run to the end.
 */
func (js *JobSystem) Shutdown() error {
	js.closed.Store(true)
	return nil
}
