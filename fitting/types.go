package fitting

import (
	"context"
	"errors"

	"github.com/katalvlaran/nfalign/nfa"
)

// Sentinel errors for fitting checks.
var (
	// ErrNilAutomaton is returned when a nil *nfa.Automaton is passed.
	ErrNilAutomaton = errors.New("fitting: automaton is nil")

	// ErrNilSnapshot is returned when a nil *nfa.Snapshot is passed to Run.
	ErrNilSnapshot = errors.New("fitting: snapshot is nil")
)

// Option configures a fitting check.
type Option func(*Options)

// Options holds the parameters of a fitting check.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is called once per expanded (place, position) pair.
	// Returning an error aborts the search with that error.
	OnVisit func(p nfa.PlaceID, pos int) error
}

// DefaultOptions returns Options with a background context and no hooks.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the context used for cancellation.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a hook called for every expanded search state.
func WithOnVisit(fn func(p nfa.PlaceID, pos int) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}
