package conformance

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/katalvlaran/nfalign/alignment"
	"github.com/katalvlaran/nfalign/internal/logging"
)

// Sentinel errors for log-level checks.
var (
	// ErrEmptyLog indicates an aggregation over zero traces.
	ErrEmptyLog = errors.New("conformance: log is empty")

	// ErrNilAutomaton indicates a nil automaton was passed.
	ErrNilAutomaton = errors.New("conformance: automaton is nil")
)

// TraceError attributes a failure to one trace of the log.
type TraceError struct {
	Index int   // position of the trace in the log
	Err   error // underlying failure
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("conformance: trace %d: %v", e.Index, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is and errors.As.
func (e *TraceError) Unwrap() error { return e.Err }

// Observer receives per-trace outcomes. Implementations must be safe for
// concurrent use; Checker calls them from its workers.
type Observer interface {
	ObserveFit(fits bool)
	ObserveAlignment(al *alignment.Alignment, elapsed time.Duration)
}

// Option configures a Checker.
type Option func(*Checker)

// WithWorkers sets how many traces are processed concurrently.
// Values below 1 keep the default of runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *Checker) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger for batch diagnostics. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver installs an Observer, e.g. *Metrics.
func WithObserver(o Observer) Option {
	return func(c *Checker) {
		c.observer = o
	}
}

// WithAlignmentOptions sets options applied to every alignment search.
// The batch context always overrides any alignment.WithContext given here.
func WithAlignmentOptions(opts ...alignment.Option) Option {
	return func(c *Checker) {
		c.alignOpts = append([]alignment.Option(nil), opts...)
	}
}

func defaultChecker() *Checker {
	return &Checker{
		workers: runtime.NumCPU(),
		logger:  logging.NewNop(),
	}
}
