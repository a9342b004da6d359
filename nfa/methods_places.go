// File: methods_places.go
// Role: Place lifecycle & queries: AddPlace/RemovePlace/MarkStart/MarkEnd,
//       Place/Places/Start/Ends/IsEnd/PlaceCount.
// Determinism:
//   - Places() and Ends() return ids in insertion order.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package nfa

import "fmt"

// AddPlace appends a new place to the arena and returns its id.
//
// Steps:
//  1. Allocate the next slot; the id equals the slot index.
//  2. If AsStart() was given and no start exists yet, the place becomes the start.
//     A second AsStart() is silently ignored (first start wins).
//  3. If AsEnd() was given, append the id to the end set.
//
// Complexity: O(1) amortized.
func (a *Automaton) AddPlace(label string, opts ...PlaceOption) PlaceID {
	var f placeFlags
	for _, opt := range opts {
		opt(&f)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.addPlaceLocked(label)
	if f.start && a.start == NoPlace {
		a.start = id
	}
	if f.end {
		a.ends = append(a.ends, id)
	}

	return id
}

// addPlaceLocked appends a live slot. Caller holds the write lock.
func (a *Automaton) addPlaceLocked(label string) PlaceID {
	id := PlaceID(len(a.slots))
	a.slots = append(a.slots, slot{place: Place{ID: id, Label: label}, live: true})

	return id
}

// RemovePlace removes the place from the arena.
//
// The slot is tombstoned, the place's own outgoing transitions go with it,
// the id leaves the end set, and the start is cleared if it was the start.
// Transitions of OTHER places that point to id are not touched; Snapshot
// reports them as ErrDanglingTransition.
//
// Errors:
//   - ErrPlaceNotFound if id is unknown or already removed.
//
// Complexity: O(|ends|).
func (a *Automaton) RemovePlace(id PlaceID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.liveLocked(id) {
		return fmt.Errorf("%w: %d", ErrPlaceNotFound, id)
	}

	a.slots[id].live = false
	a.slots[id].out = nil

	if a.start == id {
		a.start = NoPlace
	}
	for i, e := range a.ends {
		if e == id {
			a.ends = append(a.ends[:i], a.ends[i+1:]...)
			break
		}
	}

	return nil
}

// MarkStart makes id the start place.
//
// Errors:
//   - ErrPlaceNotFound if id is not live.
//   - ErrStartAlreadySet if a start place exists.
func (a *Automaton) MarkStart(id PlaceID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.liveLocked(id) {
		return fmt.Errorf("%w: %d", ErrPlaceNotFound, id)
	}
	if a.start != NoPlace {
		return fmt.Errorf("%w: start is %d", ErrStartAlreadySet, a.start)
	}
	a.start = id

	return nil
}

// MarkEnd adds id to the end set. Marking an end place twice is a no-op.
//
// Errors:
//   - ErrPlaceNotFound if id is not live.
func (a *Automaton) MarkEnd(id PlaceID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.markEndLocked(id)
}

func (a *Automaton) markEndLocked(id PlaceID) error {
	if !a.liveLocked(id) {
		return fmt.Errorf("%w: %d", ErrPlaceNotFound, id)
	}
	for _, e := range a.ends {
		if e == id {
			return nil
		}
	}
	a.ends = append(a.ends, id)

	return nil
}

// Place returns the place stored under id.
func (a *Automaton) Place(id PlaceID) (Place, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.liveLocked(id) {
		return Place{}, fmt.Errorf("%w: %d", ErrPlaceNotFound, id)
	}

	return a.slots[id].place, nil
}

// HasPlace reports whether id names a live place.
func (a *Automaton) HasPlace(id PlaceID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.liveLocked(id)
}

// Places returns the ids of all live places in insertion order.
// Complexity: O(slots).
func (a *Automaton) Places() []PlaceID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]PlaceID, 0, len(a.slots))
	for i := range a.slots {
		if a.slots[i].live {
			ids = append(ids, PlaceID(i))
		}
	}

	return ids
}

// PlaceCount returns the number of live places.
func (a *Automaton) PlaceCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n++
		}
	}

	return n
}

// Start returns the start place and whether one is set.
func (a *Automaton) Start() (PlaceID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.start, a.start != NoPlace
}

// Ends returns a copy of the end set in declaration order.
func (a *Automaton) Ends() []PlaceID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append([]PlaceID(nil), a.ends...)
}

// IsEnd reports whether id is an accepting place.
func (a *Automaton) IsEnd(id PlaceID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, e := range a.ends {
		if e == id {
			return true
		}
	}

	return false
}

// liveLocked reports whether id is in range and not removed. Caller holds a lock.
func (a *Automaton) liveLocked(id PlaceID) bool {
	return id >= 0 && int(id) < len(a.slots) && a.slots[id].live
}
