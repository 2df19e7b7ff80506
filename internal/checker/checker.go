package checker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Checker is the interface that all per-target check implementations satisfy.
// R is the immutable result type produced for one target.
type Checker[R any] interface {
	// Check performs the check against a single target. Failures are encoded
	// in the returned result, never returned as an error.
	Check(ctx context.Context, target string) R

	// Name returns the name of this checker (e.g., "headers", "tech")
	Name() string
}

// Runner orchestrates bounded, optionally rate limited execution of tasks.
type Runner struct {
	Concurrency int           // Maximum number of tasks in flight
	RateLimit   int           // Task starts per second (0 = unlimited)
	Timeout     time.Duration // Per-task timeout (0 = none)
}

// Map runs fn for every input on the runner's pool and returns the outputs
// positionally aligned with inputs: out[i] always belongs to inputs[i].
// Map only returns after every task has finished; there is no early abort.
func Map[T, R any](ctx context.Context, r *Runner, inputs []T, fn func(ctx context.Context, in T) R) []R {
	out := make([]R, len(inputs))
	if len(inputs) == 0 {
		return out
	}

	concurrency := 1
	var limiter *rate.Limiter
	var timeout time.Duration
	if r != nil {
		if r.Concurrency > 0 {
			concurrency = r.Concurrency
		}
		if r.RateLimit > 0 {
			limiter = rate.NewLimiter(rate.Limit(r.RateLimit), r.RateLimit)
		}
		timeout = r.Timeout
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in T) {
			defer wg.Done()

			// Acquire semaphore
			sem <- struct{}{}
			defer func() { <-sem }()

			if limiter != nil {
				// A cancelled context only means the task starts right away
				// and fails fast on its own deadline.
				_ = limiter.Wait(ctx)
			}

			taskCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				taskCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			// Each task owns out[i]; no locking needed.
			out[i] = fn(taskCtx, in)
		}(i, in)
	}

	wg.Wait()
	return out
}

// RunChecks executes checker against every target and returns one result per
// target in input order.
func RunChecks[R any](ctx context.Context, r *Runner, targets []string, checker Checker[R]) []R {
	return Map(ctx, r, targets, checker.Check)
}
