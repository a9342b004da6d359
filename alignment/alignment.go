// Package alignment computes minimum-cost alignments of traces against an
// automaton by Dijkstra's algorithm over the implicit product of the model
// and the trace.
//
// A state is a pair (place, position) with position in 0..len(trace). The
// product graph is never built: edges are derived from each place's outgoing
// transitions and the current position when the state is settled. Weights
// are 0 or 1, so Dijkstra's guarantee holds and the returned cost is the
// minimum number of model and log moves needed to reconcile the trace.
//
// Determinism:
//
//   - Edges of a settled state are relaxed in a fixed order: the log move
//     first, then for each outgoing transition in insertion order the model
//     move followed by the synchronous move (when labels match).
//   - Heap ties are broken by push order (first pushed, first popped).
//   - Distances are only replaced by strictly smaller ones.
//   - Among end places reached at full length with minimal cost, the first in
//     declaration order is the goal.
//
// Complexity:
//
//   - Time:  O(S log S) with S = P·(n+1) states, P places, n = len(trace)
//   - Space: O(S) for the distance, predecessor and move tables, all released
//     when the call returns.
package alignment

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/nfalign/nfa"
)

// cancelCheckEvery bounds how many heap pops happen between context checks.
const cancelCheckEvery = 1024

// Optimal returns a minimum-cost alignment of trace against a.
//
// Preconditions and validation (in order):
//  1. a must be non-nil (ErrNilAutomaton).
//  2. trace must satisfy nfa.ValidateTrace (nfa.ErrMalformedTrace).
//  3. a must snapshot cleanly (nfa.ErrNoStartPlace, nfa.ErrDanglingTransition).
//  4. Options must be valid (ErrOptionViolation).
//  5. Some end place must be reachable from the start (ErrUnreachableAccept).
func Optimal(a *nfa.Automaton, trace []string, opts ...Option) (*Alignment, error) {
	if a == nil {
		return nil, ErrNilAutomaton
	}
	norm, err := nfa.ValidateTrace(trace)
	if err != nil {
		return nil, err
	}
	snap, err := a.Snapshot()
	if err != nil {
		return nil, err
	}

	return Run(snap, norm, opts...)
}

// Run aligns an already validated trace against a snapshot. The snapshot is
// only read, so concurrent calls may share it.
func Run(snap *nfa.Snapshot, trace []string, opts ...Option) (*Alignment, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	// 2) Validate the model.
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	if !snap.CanAccept() {
		return nil, fmt.Errorf("%w: automaton %q", ErrUnreachableAccept, snap.Label())
	}

	// 3) Search and rebuild.
	r := newRunner(snap, trace, cfg)
	goal, err := r.process()
	if err != nil {
		return nil, err
	}

	return r.alignment(goal), nil
}

// runner holds the mutable state of a single alignment search.
type runner struct {
	snap    *nfa.Snapshot
	trace   []string
	width   int    // len(trace)+1
	options Options
	dist    []int  // best known cost per state, math.MaxInt if unreached
	prev    []int  // predecessor state, -1 for the root and unreached states
	via     []Move // move that reached the state; zero Move for epsilon steps
	settled []bool
	pq      statePQ
	seq     int // push counter for FIFO tie-breaking
	settles int // number of settled states
}

func newRunner(snap *nfa.Snapshot, trace []string, cfg Options) *runner {
	width := len(trace) + 1
	size := snap.Slots() * width
	r := &runner{
		snap:    snap,
		trace:   trace,
		width:   width,
		options: cfg,
		dist:    make([]int, size),
		prev:    make([]int, size),
		via:     make([]Move, size),
		settled: make([]bool, size),
		pq:      make(statePQ, 0, width),
	}
	for i := range r.dist {
		r.dist[i] = math.MaxInt
		r.prev[i] = -1
	}

	root := int(snap.Start()) * width
	r.dist[root] = 0
	heap.Init(&r.pq)
	r.push(root, 0)

	return r
}

func (r *runner) push(state, d int) {
	heap.Push(&r.pq, &stateItem{state: state, dist: d, seq: r.seq})
	r.seq++
}

// process runs the main loop and returns the goal state.
//
// Loop termination conditions:
//
//   - The heap is empty.
//   - The popped distance exceeds the cheapest goal seen so far; every state
//     with that cost has been settled, so the goal choice is final.
func (r *runner) process() (int, error) {
	n := len(r.trace)
	best := math.MaxInt
	var pops int
	for r.pq.Len() > 0 {
		// 1) Cancellation, amortised.
		if pops%cancelCheckEvery == 0 {
			if err := r.options.Ctx.Err(); err != nil {
				return 0, err
			}
		}
		pops++

		// 2) Pop the cheapest item; skip stale entries.
		item := heap.Pop(&r.pq).(*stateItem)
		u, d := item.state, item.dist
		if r.settled[u] {
			continue
		}
		if d > best {
			break
		}

		// 3) Expansion budget.
		if r.options.MaxExpansions > 0 && r.settles >= r.options.MaxExpansions {
			return 0, fmt.Errorf("%w: %d states settled", ErrExpansionLimit, r.settles)
		}
		r.settled[u] = true
		r.settles++

		p, pos := nfa.PlaceID(u/r.width), u%r.width
		if pos == n && r.snap.IsEnd(p) && d < best {
			best = d
		}

		// 4) Relax outgoing product edges.
		r.relax(u, p, pos)
	}

	return r.goal(best)
}

// relax derives the product edges of state u = (p, pos).
func (r *runner) relax(u int, p nfa.PlaceID, pos int) {
	n := len(r.trace)

	// Log move: consume trace[pos], stay at p.
	if pos < n {
		r.update(u, u+1, 1, Move{Log: r.trace[pos], Model: Skip})
	}

	for _, t := range r.snap.Out(p) {
		to := int(t.To) * r.width

		// Model move: fire t, keep the position. Epsilon is free and silent.
		if t.IsEpsilon() {
			r.update(u, to+pos, 0, Move{})
		} else {
			r.update(u, to+pos, 1, Move{Log: Skip, Model: t.Label})
		}

		// Synchronous move: fire t on the matching trace symbol.
		if pos < n && !t.IsEpsilon() && t.Label == r.trace[pos] {
			r.update(u, to+pos+1, 0, Move{Log: t.Label, Model: t.Label})
		}
	}
}

// update applies a strict improvement of v through u with weight w.
func (r *runner) update(u, v, w int, m Move) {
	if r.settled[v] {
		return
	}
	nd := r.dist[u] + w
	if nd > r.options.MaxCost || nd >= r.dist[v] {
		return
	}
	r.dist[v] = nd
	r.prev[v] = u
	r.via[v] = m
	r.push(v, nd)
}

// goal picks the first end place, in declaration order, whose full-length
// state has cost best.
func (r *runner) goal(best int) (int, error) {
	if best == math.MaxInt {
		if r.options.MaxCost != math.MaxInt {
			return 0, fmt.Errorf("%w: MaxCost=%d", ErrCostBoundExceeded, r.options.MaxCost)
		}
		return 0, fmt.Errorf("%w: automaton %q", ErrUnreachableAccept, r.snap.Label())
	}

	n := len(r.trace)
	for _, e := range r.snap.Ends() {
		s := int(e)*r.width + n
		if r.dist[s] == best {
			return s, nil
		}
	}

	// best was taken from a settled end state, so the loop always returns.
	return 0, fmt.Errorf("%w: automaton %q", ErrUnreachableAccept, r.snap.Label())
}

// alignment follows predecessors from goal back to the root, keeping the
// visible moves, and reverses them into left-to-right order.
func (r *runner) alignment(goal int) *Alignment {
	var moves []Move
	for s := goal; r.prev[s] != -1; s = r.prev[s] {
		if r.via[s] != (Move{}) {
			moves = append(moves, r.via[s])
		}
	}
	for l, h := 0, len(moves)-1; l < h; l, h = l+1, h-1 {
		moves[l], moves[h] = moves[h], moves[l]
	}
	if moves == nil {
		moves = []Move{}
	}

	return &Alignment{Moves: moves, Cost: r.dist[goal], Expanded: r.settles}
}

// stateItem is a heap entry: a product state and the cost it was pushed with.
type stateItem struct {
	state int
	dist  int
	seq   int
}

// statePQ is a min-heap of *stateItem ordered by (dist, seq). Stale entries
// are left in place and skipped when popped (lazy decrease-key).
type statePQ []*stateItem

func (pq statePQ) Len() int { return len(pq) }

func (pq statePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

func (pq statePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *statePQ) Push(x any) { *pq = append(*pq, x.(*stateItem)) }

func (pq *statePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
