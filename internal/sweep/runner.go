package sweep

import (
	"context"
	"sync"
	"time"

	"huddle/pkg/logger"
)

// Sweep is one periodic job.
type Sweep interface {
	Name() string
	Run(ctx context.Context) error
}

// Runner ticks a sweep at a fixed cadence until its context is cancelled.
// A failed run is logged and retried on the next tick.
type Runner struct {
	sweep    Sweep
	interval time.Duration
	log      *logger.Logger
	wg       sync.WaitGroup
}

func NewRunner(sweep Sweep, interval time.Duration, log *logger.Logger) *Runner {
	return &Runner{
		sweep:    sweep,
		interval: interval,
		log:      log,
	}
}

func (r *Runner) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.log.Info("Sweep started", "sweep", r.sweep.Name(), "interval", r.interval)
		for {
			select {
			case <-ctx.Done():
				r.log.Info("Sweep stopped", "sweep", r.sweep.Name())
				return
			case <-ticker.C:
				if err := r.sweep.Run(ctx); err != nil {
					r.log.Error("Sweep run failed", "sweep", r.sweep.Name(), "error", err)
				}
			}
		}
	}()
}

// Wait blocks until the runner's goroutine has exited.
func (r *Runner) Wait() {
	r.wg.Wait()
}
