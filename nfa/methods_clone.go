// File: methods_clone.go
// Role: Deep copies of an automaton.
// Determinism:
//   - Clone preserves place ids, tombstones, transition order and end order.
// Concurrency:
//   - Read lock on the source; the clone is a fresh instance.

package nfa

// Clone returns a deep copy of the automaton. Place ids are identical in the
// copy, so ids obtained from a are valid on the clone.
//
// Complexity: O(P + T).
func (a *Automaton) Clone() *Automaton {
	a.mu.RLock()
	defer a.mu.RUnlock()

	c := &Automaton{
		label: a.label,
		slots: make([]slot, len(a.slots)),
		start: a.start,
		ends:  append([]PlaceID(nil), a.ends...),
	}
	for i := range a.slots {
		c.slots[i] = slot{
			place: a.slots[i].place,
			out:   append([]Transition(nil), a.slots[i].out...),
			live:  a.slots[i].live,
		}
	}

	return c
}
