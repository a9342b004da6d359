package nfa

// ShortestAcceptingRun returns the minimum number of labelled (non-epsilon)
// transitions on any run from the start place to an end place, and false if
// no end place is reachable at all.
//
// The search is a 0-1 breadth-first search: epsilon edges cost 0 and are
// pushed to the front of the deque, labelled edges cost 1 and go to the back.
// Each place is settled once, so cycles terminate.
//
// The value bounds alignment cost from above: an empty trace needs exactly
// this many model moves, and every trace symbol adds at most one log move.
//
// Complexity: O(P + T) time, O(P) memory.
func (s *Snapshot) ShortestAcceptingRun() (int, bool) {
	const unseen = -1

	n := len(s.out)
	dist := make([]int, n)
	for i := range dist {
		dist[i] = unseen
	}
	done := make([]bool, n)

	// deque of places: epsilon targets are prepended, labelled targets appended.
	deque := make([]PlaceID, 1, n+1)
	deque[0] = s.start
	dist[s.start] = 0

	for len(deque) > 0 {
		p := deque[0]
		deque = deque[1:]
		if done[p] {
			continue
		}
		done[p] = true

		if s.isEnd[p] {
			// Settled in non-decreasing distance order: first end wins.
			return dist[p], true
		}

		for _, t := range s.out[p] {
			w := 1
			if t.IsEpsilon() {
				w = 0
			}
			nd := dist[p] + w
			if dist[t.To] != unseen && dist[t.To] <= nd {
				continue
			}
			dist[t.To] = nd
			if w == 0 {
				deque = append([]PlaceID{t.To}, deque...)
			} else {
				deque = append(deque, t.To)
			}
		}
	}

	return 0, false
}

// CanAccept reports whether any end place is reachable from the start.
func (s *Snapshot) CanAccept() bool {
	_, ok := s.ShortestAcceptingRun()
	return ok
}
