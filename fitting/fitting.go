// Package fitting decides whether a trace is accepted by an automaton.
//
// A trace fits when some run from the start place to an accepting place
// consumes its symbols in order, taking epsilon transitions freely.
//
// The search is depth-first over (place, position) pairs, where position is
// the number of trace symbols already consumed. Each pair is expanded at most
// once per call, so epsilon cycles created by star construction cannot loop
// forever: a pair reached again along an epsilon cycle has the same remaining
// suffix and therefore nothing new to offer.
//
// Complexity:
//
//   - Time:   O((P + T) · (n + 1))   P places, T transitions, n = len(trace)
//   - Memory: O(P · (n + 1)) for the visited table and the stack
package fitting

import (
	"fmt"

	"github.com/katalvlaran/nfalign/nfa"
)

// cancelCheckEvery bounds how many states are expanded between context checks.
const cancelCheckEvery = 1024

// IsFitting reports whether trace is accepted by a.
//
// Steps:
//  1. Validate the trace against the alphabet contract (nfa.ErrMalformedTrace).
//  2. Snapshot the automaton (nfa.ErrNoStartPlace, nfa.ErrDanglingTransition).
//  3. Run the depth-first search.
func IsFitting(a *nfa.Automaton, trace []string, opts ...Option) (bool, error) {
	snap, norm, err := prepare(a, trace)
	if err != nil {
		return false, err
	}

	return Run(snap, norm, opts...)
}

// Run performs the fitting search on an already validated snapshot.
// trace must have passed nfa.ValidateTrace.
func Run(snap *nfa.Snapshot, trace []string, opts ...Option) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}
	s := newSearcher(snap, trace, false, opts)
	_, ok, err := s.search()

	return ok, err
}

// Witness returns the sequence of places visited by one accepting run of
// trace, including places passed through by epsilon transitions. The bool
// result is false, with a nil path, when the trace does not fit.
func Witness(a *nfa.Automaton, trace []string, opts ...Option) ([]nfa.PlaceID, bool, error) {
	snap, norm, err := prepare(a, trace)
	if err != nil {
		return nil, false, err
	}

	s := newSearcher(snap, norm, true, opts)
	goal, ok, err := s.search()
	if err != nil || !ok {
		return nil, false, err
	}

	return s.path(goal), true, nil
}

func prepare(a *nfa.Automaton, trace []string) (*nfa.Snapshot, []string, error) {
	if a == nil {
		return nil, nil, ErrNilAutomaton
	}
	norm, err := nfa.ValidateTrace(trace)
	if err != nil {
		return nil, nil, err
	}
	snap, err := a.Snapshot()
	if err != nil {
		return nil, nil, err
	}

	return snap, norm, nil
}

// searcher holds the mutable state of one fitting search.
type searcher struct {
	snap    *nfa.Snapshot
	trace   []string
	width   int    // len(trace)+1, states per place
	visited []bool // indexed by place*width+pos
	parent  []int  // only when tracking a witness; -1 for the root
	opts    Options
}

func newSearcher(snap *nfa.Snapshot, trace []string, track bool, opts []Option) *searcher {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	width := len(trace) + 1
	s := &searcher{
		snap:    snap,
		trace:   trace,
		width:   width,
		visited: make([]bool, snap.Slots()*width),
		opts:    o,
	}
	if track {
		s.parent = make([]int, len(s.visited))
	}

	return s
}

// search runs the DFS and returns the accepting state index on success.
func (s *searcher) search() (int, bool, error) {
	n := len(s.trace)
	root := int(s.snap.Start()) * s.width
	stack := []int{root}
	s.mark(root, -1)

	var expanded int
	for len(stack) > 0 {
		// 1) Cancellation check, amortised over cancelCheckEvery pops.
		if expanded%cancelCheckEvery == 0 {
			if err := s.opts.Ctx.Err(); err != nil {
				return 0, false, err
			}
		}
		expanded++

		// 2) Pop the most recent state.
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p, pos := nfa.PlaceID(st/s.width), st%s.width

		if s.opts.OnVisit != nil {
			if err := s.opts.OnVisit(p, pos); err != nil {
				return 0, false, fmt.Errorf("fitting: OnVisit error at (%d,%d): %w", p, pos, err)
			}
		}

		// 3) Whole trace consumed at an accepting place.
		if pos == n && s.snap.IsEnd(p) {
			return st, true, nil
		}

		// 4) Push successors in reverse so the first transition is explored first.
		out := s.snap.Out(p)
		for i := len(out) - 1; i >= 0; i-- {
			t := out[i]
			var next int
			switch {
			case t.IsEpsilon():
				next = int(t.To)*s.width + pos
			case pos < n && t.Label == s.trace[pos]:
				next = int(t.To)*s.width + pos + 1
			default:
				continue
			}
			if s.visited[next] {
				continue
			}
			s.mark(next, st)
			stack = append(stack, next)
		}
	}

	return 0, false, nil
}

func (s *searcher) mark(st, from int) {
	s.visited[st] = true
	if s.parent != nil {
		s.parent[st] = from
	}
}

// path rebuilds the place sequence from the root to goal.
func (s *searcher) path(goal int) []nfa.PlaceID {
	var rev []nfa.PlaceID
	for st := goal; st != -1; st = s.parent[st] {
		rev = append(rev, nfa.PlaceID(st/s.width))
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}

	return rev
}
