// Package alignment defines moves, alignments, options and sentinel errors
// for optimal trace-to-model alignment.
//
// An alignment reconciles a trace with the language of an automaton using
// three kinds of move:
//
//	(a,a)   synchronous: model and trace both advance on a; cost 0
//	(>>,a)  model move:  the model fires a, the trace stays; cost 1
//	(a,>>)  log move:    the trace consumes a, the model stays; cost 1
//
// Epsilon transitions are model moves of cost 0 and never appear in Moves.
//
// Options:
//
//	– WithContext(ctx):      cancellation, checked while popping the heap.
//	– WithMaxCost(c):        states costing more than c are not explored (c ≥ 0).
//	– WithMaxExpansions(n):  at most n states are settled (n > 0).
//
// Errors (sentinel):
//
//	– ErrNilAutomaton       if a nil automaton is passed.
//	– ErrNilSnapshot        if a nil snapshot is passed to Run.
//	– ErrUnreachableAccept  if no end place is reachable from the start.
//	– ErrCostBoundExceeded  if every alignment costs more than MaxCost.
//	– ErrExpansionLimit     if MaxExpansions is hit before the goal is settled.
//	– ErrOptionViolation    if an option was given an invalid value.
package alignment

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the alignment engine.
var (
	// ErrNilAutomaton indicates that a nil *nfa.Automaton was passed to Optimal.
	ErrNilAutomaton = errors.New("alignment: automaton is nil")

	// ErrNilSnapshot indicates that a nil *nfa.Snapshot was passed to Run.
	ErrNilSnapshot = errors.New("alignment: snapshot is nil")

	// ErrUnreachableAccept indicates that no accepting place can be reached
	// from the start place, so no alignment exists for any trace.
	ErrUnreachableAccept = errors.New("alignment: no accepting place is reachable")

	// ErrCostBoundExceeded indicates that the search stayed within MaxCost and
	// found no accepting state.
	ErrCostBoundExceeded = errors.New("alignment: no alignment within the cost bound")

	// ErrExpansionLimit indicates that MaxExpansions states were settled
	// before the goal was found.
	ErrExpansionLimit = errors.New("alignment: expansion limit reached")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("alignment: invalid option supplied")
)

// Skip marks the side of a move that does not advance.
const Skip = ">>"

// Kind classifies a Move.
type Kind int

const (
	// Synchronous moves advance model and trace together.
	Synchronous Kind = iota
	// ModelMove advances only the model.
	ModelMove
	// LogMove advances only the trace.
	LogMove
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Synchronous:
		return "synchronous"
	case ModelMove:
		return "model"
	case LogMove:
		return "log"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Move is one step of an alignment. Log is the trace side and Model the
// model side; exactly one of them is Skip unless the move is synchronous.
type Move struct {
	Log   string `json:"log"`
	Model string `json:"model"`
}

// Kind reports which side of the move advances.
func (m Move) Kind() Kind {
	switch {
	case m.Log == Skip:
		return ModelMove
	case m.Model == Skip:
		return LogMove
	default:
		return Synchronous
	}
}

// Cost is 0 for synchronous moves and 1 otherwise.
func (m Move) Cost() int {
	if m.Kind() == Synchronous {
		return 0
	}

	return 1
}

// String renders the move as "(log,model)", e.g. "(z,>>)".
func (m Move) String() string {
	return "(" + m.Log + "," + m.Model + ")"
}

// Alignment is an optimal alignment of one trace.
type Alignment struct {
	// Moves lists the visible moves left to right.
	Moves []Move `json:"moves"`

	// Cost is the number of non-synchronous moves in Moves.
	Cost int `json:"cost"`

	// Expanded is the number of (place, position) states settled by the search.
	Expanded int `json:"expanded"`
}

// Fits reports whether the trace is in the model's language.
func (a *Alignment) Fits() bool { return a.Cost == 0 }

// Options configures an alignment search.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// MaxCost caps the explored cost. Defaults to math.MaxInt (no cap).
	MaxCost int

	// MaxExpansions caps the number of settled states. Zero means no cap.
	MaxExpansions int

	// err records the first invalid option; surfaced when the search starts.
	err error
}

// Option is a functional option for configuring an alignment search.
type Option func(*Options)

// DefaultOptions returns Options with no bounds and a background context.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		MaxCost: math.MaxInt,
	}
}

// WithContext sets the context used for cancellation.
// A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxCost bounds the cost of explored states.
//
//	c < 0: invalid option → ErrOptionViolation
func WithMaxCost(c int) Option {
	return func(o *Options) {
		if c < 0 {
			o.err = fmt.Errorf("%w: MaxCost cannot be negative (%d)", ErrOptionViolation, c)
			return
		}
		o.MaxCost = c
	}
}

// WithMaxExpansions bounds the number of settled states.
//
//	n <= 0: invalid option → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxExpansions must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}
