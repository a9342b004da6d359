// File: snapshot.go
// Role: Validated, read-only view of an automaton for the query algorithms.
// Determinism:
//   - Out(p) keeps insertion order; Ends() keeps declaration order.
// Concurrency:
//   - Built under the source's read lock; the result is immutable and may be
//     shared by any number of goroutines without locking.

package nfa

import "fmt"

// Snapshot is a frozen copy of an Automaton. Slot indices equal PlaceIDs of
// the source; removed places appear as slots with no transitions that are
// never reachable.
//
// Slices returned by Snapshot methods are shared and must not be modified.
type Snapshot struct {
	label string
	start PlaceID
	ends  []PlaceID
	isEnd []bool
	out   [][]Transition
	live  []bool
}

// Snapshot validates the automaton and returns a read-only copy of it.
//
// Validation (in order):
//  1. A start place must be set (ErrNoStartPlace).
//  2. No live transition may target a removed place (ErrDanglingTransition).
//
// An empty end set is NOT an error here; algorithms decide what it means.
//
// Complexity: O(P + T).
func (a *Automaton) Snapshot() (*Snapshot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	// 1) Start place.
	if a.start == NoPlace {
		return nil, fmt.Errorf("%w: %q", ErrNoStartPlace, a.label)
	}

	n := len(a.slots)
	s := &Snapshot{
		label: a.label,
		start: a.start,
		ends:  append([]PlaceID(nil), a.ends...),
		isEnd: make([]bool, n),
		out:   make([][]Transition, n),
		live:  make([]bool, n),
	}

	// 2) Copy adjacency, rejecting dangling targets.
	for i := range a.slots {
		if !a.slots[i].live {
			continue
		}
		s.live[i] = true
		for _, t := range a.slots[i].out {
			if !a.liveLocked(t.To) {
				return nil, fmt.Errorf("%w: %d-%q->%d", ErrDanglingTransition, t.From, t.Label, t.To)
			}
		}
		s.out[i] = append([]Transition(nil), a.slots[i].out...)
	}
	for _, e := range s.ends {
		s.isEnd[e] = true
	}

	return s, nil
}

// Label returns the source automaton's label.
func (s *Snapshot) Label() string { return s.label }

// Slots returns the arena size. Valid PlaceIDs are 0..Slots()-1.
func (s *Snapshot) Slots() int { return len(s.out) }

// Start returns the start place.
func (s *Snapshot) Start() PlaceID { return s.start }

// Ends returns the accepting places in declaration order.
func (s *Snapshot) Ends() []PlaceID { return s.ends }

// IsEnd reports whether p is accepting.
func (s *Snapshot) IsEnd(p PlaceID) bool { return s.isEnd[p] }

// IsLive reports whether p was a live place when the snapshot was taken.
func (s *Snapshot) IsLive(p PlaceID) bool { return s.live[p] }

// Out returns the outgoing transitions of p in insertion order.
func (s *Snapshot) Out(p PlaceID) []Transition { return s.out[p] }
