// Package nfa defines the automaton model every conformance algorithm reads:
// places, labelled transitions, silent (epsilon) moves, one start place and a
// set of accepting places.
//
// What:
//
//   - Automaton: an arena of places addressed by PlaceID. Transitions refer to
//     places by id, never by ownership, so cyclic graphs (self-loops, star
//     back-edges) are represented without special handling.
//   - Thompson fragments: Symbol, Concat, Union and Star wire sub-automata with
//     epsilon transitions inside one arena. The regex compiler is built on them.
//   - Composition: ConcatOf, UnionOf and StarOf combine whole automata into a
//     fresh one, leaving the inputs untouched.
//   - Snapshot: a validated, read-only copy consumed by the fitting matcher and
//     the alignment engine.
//
// Contracts:
//
//   - First start wins: AddPlace(..., AsStart()) only sets the start place when
//     none is set yet. Later start flags are ignored without error.
//   - RemovePlace does not cascade. Transitions of other places that point into
//     a removed place dangle, and Snapshot rejects the automaton with
//     ErrDanglingTransition until the caller removes them.
//   - Labels are either Epsilon ("") or exactly one letter or digit.
//
// Errors:
//
//   - ErrPlaceNotFound        place id is unknown or was removed
//   - ErrInvalidLabel         transition label outside the alphabet
//   - ErrTransitionNotFound   RemoveTransition found no matching edge
//   - ErrStartAlreadySet      MarkStart on an automaton that has a start
//   - ErrNoStartPlace         Snapshot of an automaton without start
//   - ErrDanglingTransition   Snapshot found an edge into a removed place
//   - ErrMalformedTrace       ValidateTrace rejected a token
//
// Concurrency:
//
//   - All Automaton methods are safe for concurrent use (sync.RWMutex).
//   - A Snapshot is immutable and may be shared by any number of goroutines.
package nfa
