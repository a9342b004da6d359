// File: methods_transitions.go
// Role: Transition lifecycle & queries: AddTransition/RemoveTransition,
//       Transitions/TransitionCount/Alphabet.
// Determinism:
//   - Outgoing transitions keep insertion order; algorithms rely on it for
//     reproducible tie-breaking.
//   - Alphabet() is sorted ascending.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package nfa

import (
	"fmt"
	"sort"
)

// AddTransition appends a transition from→to with the given label to the
// outgoing list of from and returns it.
//
// Steps:
//  1. Validate the label: Epsilon or a single letter/digit (ErrInvalidLabel).
//  2. Under the write lock, require both endpoints to be live (ErrPlaceNotFound).
//  3. Append to from's outgoing list. Parallel duplicates are allowed.
//
// Complexity: O(1) amortized.
func (a *Automaton) AddTransition(from, to PlaceID, label string) (Transition, error) {
	if label != Epsilon && !IsSymbol(label) {
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.addTransitionLocked(from, to, label)
}

// addTransitionLocked performs the endpoint checks and the append. Caller holds the write lock.
func (a *Automaton) addTransitionLocked(from, to PlaceID, label string) (Transition, error) {
	if !a.liveLocked(from) {
		return Transition{}, fmt.Errorf("%w: source %d", ErrPlaceNotFound, from)
	}
	if !a.liveLocked(to) {
		return Transition{}, fmt.Errorf("%w: target %d", ErrPlaceNotFound, to)
	}

	t := Transition{From: from, To: to, Label: label}
	a.slots[from].out = append(a.slots[from].out, t)

	return t, nil
}

// RemoveTransition removes the first outgoing transition of t.From equal to t.
//
// Errors:
//   - ErrPlaceNotFound if t.From is not live.
//   - ErrTransitionNotFound if no equal transition exists.
//
// Complexity: O(out-degree of t.From).
func (a *Automaton) RemoveTransition(t Transition) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.liveLocked(t.From) {
		return fmt.Errorf("%w: source %d", ErrPlaceNotFound, t.From)
	}

	out := a.slots[t.From].out
	for i := range out {
		if out[i] == t {
			a.slots[t.From].out = append(out[:i:i], out[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: %d-%q->%d", ErrTransitionNotFound, t.From, t.Label, t.To)
}

// Transitions returns a copy of the outgoing transitions of id in insertion order.
func (a *Automaton) Transitions(id PlaceID) ([]Transition, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.liveLocked(id) {
		return nil, fmt.Errorf("%w: %d", ErrPlaceNotFound, id)
	}

	return append([]Transition(nil), a.slots[id].out...), nil
}

// TransitionCount returns the number of transitions held by live places.
func (a *Automaton) TransitionCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n += len(a.slots[i].out)
		}
	}

	return n
}

// Alphabet returns the distinct non-epsilon labels, sorted ascending.
func (a *Automaton) Alphabet() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	seen := make(map[string]struct{})
	for i := range a.slots {
		if !a.slots[i].live {
			continue
		}
		for _, t := range a.slots[i].out {
			if !t.IsEpsilon() {
				seen[t.Label] = struct{}{}
			}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	return labels
}
