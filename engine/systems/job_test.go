package systems

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func TestNewJobSystem(t *testing.T) {
	if _, err := NewJobSystem(0); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("expected ErrNoWorkers, got %v", err)
	}
	js, err := NewJobSystem(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if js.Workers() != 3 {
		t.Errorf("expected 3 workers, got %d", js.Workers())
	}
}

func TestJobDispatch(t *testing.T) {
	js, err := NewJobSystem(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var started, completed, running, peak atomic.Int32
	tasks := make([]metadata.JobTask, 10)
	for i := range tasks {
		tasks[i] = metadata.JobTask{
			Name: "work",
			OnStart: func(ctx context.Context) error {
				started.Add(1)
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			},
			OnComplete: func() { completed.Add(1) },
			OnFailure:  func(err error) { t.Errorf("unexpected failure: %v", err) },
		}
	}
	if err := js.Dispatch(context.Background(), tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if started.Load() != 10 || completed.Load() != 10 {
		t.Errorf("expected 10 jobs to run and complete, got %d and %d", started.Load(), completed.Load())
	}
	if peak.Load() > 2 {
		t.Errorf("expected at most 2 jobs at a time, got %d", peak.Load())
	}
}

func TestJobDispatchFailure(t *testing.T) {
	js, err := NewJobSystem(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	boom := errors.New("boom")

	var failed error
	tasks := []metadata.JobTask{
		{
			Name:      "broken",
			OnStart:   func(ctx context.Context) error { return boom },
			OnFailure: func(err error) { failed = err },
		},
	}
	if err := js.Dispatch(context.Background(), tasks); !errors.Is(err, boom) {
		t.Errorf("expected the job error, got %v", err)
	}
	if !errors.Is(failed, boom) {
		t.Errorf("expected OnFailure to receive the job error, got %v", failed)
	}

	if err := js.Dispatch(context.Background(), []metadata.JobTask{{Name: "empty"}}); err == nil {
		t.Error("expected an error for a job without OnStart")
	}
}

func TestJobDispatchAfterShutdown(t *testing.T) {
	js, err := NewJobSystem(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := js.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := js.Dispatch(context.Background(), nil); !errors.Is(err, ErrJobSystemClosed) {
		t.Errorf("expected ErrJobSystemClosed, got %v", err)
	}
}
