package cmd

import (
	"context"
	"io"
	"time"

	"github.com/khanhnv2901/seca-recon/internal/checker"
)

// progressChecker feeds a progress printer as each check finishes.
type progressChecker[R any] struct {
	inner    checker.Checker[R]
	progress *progressPrinter
	ok       func(R) bool
}

func (p *progressChecker[R]) Name() string { return p.inner.Name() }

func (p *progressChecker[R]) Check(ctx context.Context, target string) R {
	start := time.Now()
	result := p.inner.Check(ctx, target)
	p.progress.Increment(p.ok(result), time.Since(start).Seconds())
	return result
}

// runBatch checks every target on a bounded pool and returns results in
// target order.
func runBatch[R any](ctx context.Context, out io.Writer, showProgress bool, chk checker.Checker[R], targets []string, concurrency int, ok func(R) bool) []R {
	progress := startProgress(out, showProgress, len(targets), chk.Name())
	defer progress.Stop()

	runner := &checker.Runner{Concurrency: concurrency}
	return checker.RunChecks[R](ctx, runner, targets, &progressChecker[R]{
		inner:    chk,
		progress: progress,
		ok:       ok,
	})
}
