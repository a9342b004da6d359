// File: types.go
// Role: Place, Transition, Automaton, PlaceOption, sentinel errors and New.
// Concurrency:
//   - All Automaton APIs share one sync.RWMutex: mutations take the write
//     lock, queries the read lock. Algorithms take a Snapshot first.

package nfa

import (
	"errors"
	"sync"
)

// Sentinel errors for automaton operations.
var (
	// ErrPlaceNotFound indicates an operation referenced an unknown or removed place.
	ErrPlaceNotFound = errors.New("nfa: place not found")

	// ErrInvalidLabel indicates a transition label that is neither Epsilon nor
	// a single letter or digit.
	ErrInvalidLabel = errors.New("nfa: invalid transition label")

	// ErrTransitionNotFound indicates RemoveTransition found no matching transition.
	ErrTransitionNotFound = errors.New("nfa: transition not found")

	// ErrStartAlreadySet indicates MarkStart was called on an automaton that already has a start.
	ErrStartAlreadySet = errors.New("nfa: start place already set")

	// ErrNoStartPlace indicates the automaton has no start place.
	ErrNoStartPlace = errors.New("nfa: automaton has no start place")

	// ErrDanglingTransition indicates a transition targets a removed place.
	ErrDanglingTransition = errors.New("nfa: transition targets a removed place")

	// ErrEmptyFragment indicates a composition was called without operands.
	ErrEmptyFragment = errors.New("nfa: composition needs at least one operand")
)

// Epsilon is the label of a silent transition. It consumes no trace symbol
// and costs nothing during alignment.
const Epsilon = ""

// PlaceID addresses a place inside its Automaton's arena.
// Ids are assigned in insertion order starting at 0 and are never reused.
type PlaceID int

// NoPlace is the zero-information PlaceID returned when no place applies.
const NoPlace PlaceID = -1

// Place is a node of the automaton.
//
// Label is used for diagnostics only; two places may share a label.
type Place struct {
	// ID is the arena index of this place.
	ID PlaceID

	// Label is a human-readable name.
	Label string
}

// Transition is a directed, labelled edge From→To.
//
// Label is a single alphabet symbol or Epsilon. Transitions are values:
// two transitions with equal fields are interchangeable.
type Transition struct {
	From  PlaceID
	To    PlaceID
	Label string
}

// IsEpsilon reports whether t is a silent transition.
func (t Transition) IsEpsilon() bool { return t.Label == Epsilon }

// slot is one arena cell. A removed place keeps its slot with live=false
// so that ids held by callers stay meaningful.
type slot struct {
	place Place
	out   []Transition
	live  bool
}

// Automaton is a nondeterministic finite automaton with one start place and
// zero or more accepting (end) places.
//
// mu guards every field below it.
type Automaton struct {
	mu sync.RWMutex

	label string
	slots []slot

	start PlaceID   // NoPlace until the first AsStart/MarkStart
	ends  []PlaceID // declaration order, no duplicates
}

// PlaceOption configures a place when it is added.
type PlaceOption func(*placeFlags)

type placeFlags struct {
	start bool
	end   bool
}

// AsStart requests that the new place becomes the start place.
// It has no effect when the automaton already has a start (first start wins).
func AsStart() PlaceOption {
	return func(f *placeFlags) { f.start = true }
}

// AsEnd marks the new place as accepting.
func AsEnd() PlaceOption {
	return func(f *placeFlags) { f.end = true }
}

// New creates an empty Automaton with the given diagnostic label.
// Complexity: O(1)
func New(label string) *Automaton {
	return &Automaton{
		label: label,
		start: NoPlace,
	}
}

// Label returns the automaton's diagnostic label.
func (a *Automaton) Label() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.label
}
