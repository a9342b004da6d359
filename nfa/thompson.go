// File: thompson.go
// Role: Thompson construction on a single arena: Symbol, Concat, Union, Star,
//       plus Embed (copy another automaton in) and Seal (fix start and ends).
// Determinism:
//   - Places and transitions are created in a fixed order per rule, so the
//     same sequence of calls always yields the same arena layout.
// Concurrency:
//   - Each call holds the write lock for its whole duration.

package nfa

import "fmt"

// Fragment is a sub-automaton living in some Automaton's arena, identified
// by its entry place and its exit places.
type Fragment struct {
	Start PlaceID
	Ends  []PlaceID
}

// Symbol adds two places joined by one transition labelled label.
//
// Errors:
//   - ErrInvalidLabel if label is not a single letter or digit.
func (a *Automaton) Symbol(label string) (Fragment, error) {
	if !IsSymbol(label) {
		return Fragment{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.addPlaceLocked(placeLabel(len(a.slots)))
	e := a.addPlaceLocked(placeLabel(len(a.slots)))
	if _, err := a.addTransitionLocked(s, e, label); err != nil {
		return Fragment{}, err
	}

	return Fragment{Start: s, Ends: []PlaceID{e}}, nil
}

// Concat chains parts left to right: every end of part i gets an epsilon
// transition to the start of part i+1. The result starts at parts[0].Start
// and ends at the ends of the last part. A single part is returned as is.
//
// Errors:
//   - ErrEmptyFragment if parts is empty.
//   - ErrPlaceNotFound if a fragment references a place outside the arena.
func (a *Automaton) Concat(parts ...Fragment) (Fragment, error) {
	if len(parts) == 0 {
		return Fragment{}, ErrEmptyFragment
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := 0; i+1 < len(parts); i++ {
		for _, e := range parts[i].Ends {
			if _, err := a.addTransitionLocked(e, parts[i+1].Start, Epsilon); err != nil {
				return Fragment{}, err
			}
		}
	}
	last := parts[len(parts)-1]

	return Fragment{Start: parts[0].Start, Ends: append([]PlaceID(nil), last.Ends...)}, nil
}

// Union adds a fresh start place with epsilon edges to every part's start
// and a fresh end place reached by epsilon from every part's ends.
//
// Errors:
//   - ErrEmptyFragment if parts is empty.
//   - ErrPlaceNotFound if a fragment references a place outside the arena.
func (a *Automaton) Union(parts ...Fragment) (Fragment, error) {
	if len(parts) == 0 {
		return Fragment{}, ErrEmptyFragment
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.addPlaceLocked(placeLabel(len(a.slots)))
	e := a.addPlaceLocked(placeLabel(len(a.slots)))
	for _, p := range parts {
		if _, err := a.addTransitionLocked(s, p.Start, Epsilon); err != nil {
			return Fragment{}, err
		}
		for _, pe := range p.Ends {
			if _, err := a.addTransitionLocked(pe, e, Epsilon); err != nil {
				return Fragment{}, err
			}
		}
	}

	return Fragment{Start: s, Ends: []PlaceID{e}}, nil
}

// Star builds the Kleene closure of part with a fresh start/end pair:
//
//	start → end           (skip)
//	start → part.Start    (enter)
//	part.End → end        (exit, for every end)
//	part.End → part.Start (repeat, for every end)
//
// All four kinds are epsilon transitions.
func (a *Automaton) Star(part Fragment) (Fragment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.addPlaceLocked(placeLabel(len(a.slots)))
	e := a.addPlaceLocked(placeLabel(len(a.slots)))
	if _, err := a.addTransitionLocked(s, e, Epsilon); err != nil {
		return Fragment{}, err
	}
	if _, err := a.addTransitionLocked(s, part.Start, Epsilon); err != nil {
		return Fragment{}, err
	}
	for _, pe := range part.Ends {
		if _, err := a.addTransitionLocked(pe, e, Epsilon); err != nil {
			return Fragment{}, err
		}
		if _, err := a.addTransitionLocked(pe, part.Start, Epsilon); err != nil {
			return Fragment{}, err
		}
	}

	return Fragment{Start: s, Ends: []PlaceID{e}}, nil
}

// Embed copies every live place and transition of src into a and returns
// the fragment formed by src's start and ends. Labels are kept; ids are
// remapped. src is only read and may be a itself.
//
// Errors:
//   - ErrNoStartPlace if src has no start.
//   - ErrDanglingTransition if src has a transition into a removed place.
//
// Complexity: O(P_src + T_src).
func (a *Automaton) Embed(src *Automaton) (Fragment, error) {
	snap, err := src.Snapshot()
	if err != nil {
		return Fragment{}, err
	}
	labels := src.placeLabels()

	a.mu.Lock()
	defer a.mu.Unlock()

	// 1) Copy live places, remembering old→new ids.
	remap := make([]PlaceID, snap.Slots())
	for i := range remap {
		remap[i] = NoPlace
		if snap.IsLive(PlaceID(i)) {
			remap[i] = a.addPlaceLocked(labels[i])
		}
	}

	// 2) Copy transitions in source order.
	for i := range remap {
		for _, t := range snap.Out(PlaceID(i)) {
			if _, err := a.addTransitionLocked(remap[t.From], remap[t.To], t.Label); err != nil {
				return Fragment{}, err
			}
		}
	}

	f := Fragment{Start: remap[snap.Start()], Ends: make([]PlaceID, 0, len(snap.Ends()))}
	for _, e := range snap.Ends() {
		f.Ends = append(f.Ends, remap[e])
	}

	return f, nil
}

// Seal makes f.Start the start place and every f.Ends entry an end place.
//
// Errors:
//   - ErrStartAlreadySet if the automaton already has a start.
//   - ErrPlaceNotFound if f references a place outside the arena.
func (a *Automaton) Seal(f Fragment) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.start != NoPlace {
		return fmt.Errorf("%w: start is %d", ErrStartAlreadySet, a.start)
	}
	if !a.liveLocked(f.Start) {
		return fmt.Errorf("%w: %d", ErrPlaceNotFound, f.Start)
	}
	for _, e := range f.Ends {
		if !a.liveLocked(e) {
			return fmt.Errorf("%w: %d", ErrPlaceNotFound, e)
		}
	}
	for _, e := range f.Ends {
		_ = a.markEndLocked(e) // liveness checked above
	}
	a.start = f.Start

	return nil
}

// placeLabels returns the label of every slot, live or not.
func (a *Automaton) placeLabels() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	labels := make([]string, len(a.slots))
	for i := range a.slots {
		labels[i] = a.slots[i].place.Label
	}

	return labels
}

// placeLabel names places created by construction rules: q0, q1, ...
func placeLabel(i int) string {
	return fmt.Sprintf("q%d", i)
}
