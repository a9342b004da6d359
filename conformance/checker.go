// Package conformance checks whole event logs against an automaton.
//
// A log is a list of traces. Every trace is an independent sub-problem, so
// a Checker fans the traces out over a bounded pool of goroutines and writes
// each result back at its input index: output order always equals input
// order, whatever the scheduling.
//
// Before any search starts, every trace is validated and the automaton is
// snapshotted once; the snapshot is shared read-only by all workers. The
// first failing trace cancels the rest of the batch and is reported as a
// *TraceError carrying its index.
package conformance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/nfalign/alignment"
	"github.com/katalvlaran/nfalign/fitting"
	"github.com/katalvlaran/nfalign/nfa"
)

// Checker runs fitting and alignment over logs. A Checker holds no state
// between calls and is safe for concurrent use.
type Checker struct {
	workers   int
	logger    *slog.Logger
	observer  Observer
	alignOpts []alignment.Option
}

// New returns a Checker configured by opts.
func New(opts ...Option) *Checker {
	c := defaultChecker()
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Workers returns the concurrency limit.
func (c *Checker) Workers() int { return c.workers }

// FitAll reports, per trace, whether it fits a.
//
// Errors:
//   - ErrNilAutomaton, ErrEmptyLog.
//   - *TraceError wrapping nfa.ErrMalformedTrace for the first bad trace.
//   - snapshot errors (nfa.ErrNoStartPlace, nfa.ErrDanglingTransition).
//   - ctx.Err() when cancelled, wrapped in a *TraceError if a search saw it.
func (c *Checker) FitAll(ctx context.Context, a *nfa.Automaton, log [][]string) ([]bool, error) {
	snap, traces, err := c.prepare(a, log)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(traces))
	err = c.each(ctx, "fit", a.Label(), len(traces), func(ctx context.Context, i int) error {
		ok, err := fitting.Run(snap, traces[i], fitting.WithContext(ctx))
		if err != nil {
			return err
		}
		out[i] = ok
		if c.observer != nil {
			c.observer.ObserveFit(ok)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// LogFitness returns the fraction of traces in log that fit a.
// It fails with ErrEmptyLog rather than returning 0/0.
func (c *Checker) LogFitness(ctx context.Context, a *nfa.Automaton, log [][]string) (float64, error) {
	fits, err := c.FitAll(ctx, a, log)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, ok := range fits {
		if ok {
			n++
		}
	}

	return float64(n) / float64(len(fits)), nil
}

// AlignLog returns an optimal alignment for every trace, in input order.
func (c *Checker) AlignLog(ctx context.Context, a *nfa.Automaton, log [][]string) ([]*alignment.Alignment, error) {
	snap, traces, err := c.prepare(a, log)
	if err != nil {
		return nil, err
	}

	out := make([]*alignment.Alignment, len(traces))
	err = c.each(ctx, "align", a.Label(), len(traces), func(ctx context.Context, i int) error {
		opts := append(append([]alignment.Option(nil), c.alignOpts...), alignment.WithContext(ctx))
		start := time.Now()
		al, err := alignment.Run(snap, traces[i], opts...)
		if err != nil {
			return err
		}
		out[i] = al
		if c.observer != nil {
			c.observer.ObserveAlignment(al, time.Since(start))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// prepare validates every trace and snapshots the automaton.
func (c *Checker) prepare(a *nfa.Automaton, log [][]string) (*nfa.Snapshot, [][]string, error) {
	if a == nil {
		return nil, nil, ErrNilAutomaton
	}
	if len(log) == 0 {
		return nil, nil, ErrEmptyLog
	}

	traces := make([][]string, len(log))
	for i, tr := range log {
		norm, err := nfa.ValidateTrace(tr)
		if err != nil {
			return nil, nil, &TraceError{Index: i, Err: err}
		}
		traces[i] = norm
	}

	snap, err := a.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("conformance: %w", err)
	}

	return snap, traces, nil
}

// each runs fn for indices 0..n-1 on at most c.workers goroutines.
// The first error cancels the remaining work.
func (c *Checker) each(ctx context.Context, op, model string, n int, fn func(context.Context, int) error) error {
	c.logger.Debug("conformance batch started", "op", op, "model", model, "traces", n, "workers", c.workers)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := fn(gctx, i); err != nil {
				return &TraceError{Index: i, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Warn("conformance batch failed", "op", op, "model", model, "error", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		// Cancelled before any worker observed it.
		c.logger.Warn("conformance batch cancelled", "op", op, "model", model, "error", err)
		return err
	}

	c.logger.Debug("conformance batch finished", "op", op, "model", model, "traces", n, "elapsed", time.Since(start))

	return nil
}

// LogFitness is the fraction of traces in log that fit a, computed with a
// default Checker.
func LogFitness(a *nfa.Automaton, log [][]string) (float64, error) {
	return New().LogFitness(context.Background(), a, log)
}

// OptimalAlignmentLog aligns every trace of log against a with a default
// Checker, returning results in input order.
func OptimalAlignmentLog(a *nfa.Automaton, log [][]string) ([]*alignment.Alignment, error) {
	return New().AlignLog(context.Background(), a, log)
}
