package nfa_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/nfalign/nfa"
)

// smallTalk builds Greeting -a-> StartSmallTalk -b(loop)-> StartSmallTalk
// -b-> EndSmallTalk -c-> GoodBye with start Greeting and end GoodBye.
func smallTalk(t testing.TB) (*nfa.Automaton, [4]nfa.PlaceID) {
	t.Helper()
	a := nfa.New("small talk")
	g := a.AddPlace("Greeting", nfa.AsStart())
	s := a.AddPlace("StartSmallTalk")
	e := a.AddPlace("EndSmallTalk")
	b := a.AddPlace("GoodBye", nfa.AsEnd())
	for _, tr := range []nfa.Transition{
		{From: g, To: s, Label: "a"},
		{From: s, To: s, Label: "b"},
		{From: s, To: e, Label: "b"},
		{From: e, To: b, Label: "c"},
	} {
		_, err := a.AddTransition(tr.From, tr.To, tr.Label)
		require.NoError(t, err)
	}

	return a, [4]nfa.PlaceID{g, s, e, b}
}

// AutomatonSuite covers place and transition lifecycle contracts.
type AutomatonSuite struct {
	suite.Suite
}

func TestAutomatonSuite(t *testing.T) {
	suite.Run(t, new(AutomatonSuite))
}

// TestAddPlaceAssignsSequentialIDs checks ids follow insertion order.
func (s *AutomatonSuite) TestAddPlaceAssignsSequentialIDs() {
	a := nfa.New("seq")
	for i := 0; i < 5; i++ {
		s.Equal(nfa.PlaceID(i), a.AddPlace("p"))
	}
	s.Equal(5, a.PlaceCount())
	s.Equal([]nfa.PlaceID{0, 1, 2, 3, 4}, a.Places())
}

// TestFirstStartWins checks a second AsStart is ignored without error.
func (s *AutomatonSuite) TestFirstStartWins() {
	a := nfa.New("starts")
	first := a.AddPlace("first", nfa.AsStart())
	a.AddPlace("second", nfa.AsStart())

	got, ok := a.Start()
	s.True(ok)
	s.Equal(first, got)
}

// TestMarkStartAndEnd covers the compiler-facing markers.
func (s *AutomatonSuite) TestMarkStartAndEnd() {
	a := nfa.New("marks")
	p := a.AddPlace("p")
	q := a.AddPlace("q")

	_, ok := a.Start()
	s.False(ok)

	s.Require().NoError(a.MarkStart(p))
	s.ErrorIs(a.MarkStart(q), nfa.ErrStartAlreadySet)
	s.ErrorIs(a.MarkStart(42), nfa.ErrPlaceNotFound)

	s.Require().NoError(a.MarkEnd(q))
	s.Require().NoError(a.MarkEnd(q)) // idempotent
	s.Equal([]nfa.PlaceID{q}, a.Ends())
	s.True(a.IsEnd(q))
	s.False(a.IsEnd(p))
	s.ErrorIs(a.MarkEnd(-3), nfa.ErrPlaceNotFound)
}

// TestEndsKeepDeclarationOrder checks Ends returns a copy in declaration order.
func (s *AutomatonSuite) TestEndsKeepDeclarationOrder() {
	a := nfa.New("ends")
	x := a.AddPlace("x", nfa.AsEnd())
	y := a.AddPlace("y")
	z := a.AddPlace("z", nfa.AsEnd())
	s.Require().NoError(a.MarkEnd(y))

	ends := a.Ends()
	s.Equal([]nfa.PlaceID{x, z, y}, ends)

	ends[0] = 99
	s.Equal([]nfa.PlaceID{x, z, y}, a.Ends())
}

// TestAddTransitionErrors covers endpoint and label validation.
func (s *AutomatonSuite) TestAddTransitionErrors() {
	a := nfa.New("errs")
	p := a.AddPlace("p")
	q := a.AddPlace("q")

	_, err := a.AddTransition(p, 7, "a")
	s.ErrorIs(err, nfa.ErrPlaceNotFound)
	_, err = a.AddTransition(-1, q, "a")
	s.ErrorIs(err, nfa.ErrPlaceNotFound)

	for _, bad := range []string{"ab", "*", ">>", " ", "(", "\t"} {
		_, err = a.AddTransition(p, q, bad)
		s.ErrorIs(err, nfa.ErrInvalidLabel, "label %q", bad)
	}
	s.Equal(0, a.TransitionCount())

	tr, err := a.AddTransition(p, q, nfa.Epsilon)
	s.Require().NoError(err)
	s.True(tr.IsEpsilon())

	_, err = a.AddTransition(p, q, "7")
	s.NoError(err)
	s.Equal(2, a.TransitionCount())
}

// TestTransitionsKeepInsertionOrder checks Transitions preserves order and
// allows parallel edges.
func (s *AutomatonSuite) TestTransitionsKeepInsertionOrder() {
	a, ids := smallTalk(s.T())
	out, err := a.Transitions(ids[1])
	s.Require().NoError(err)
	s.Equal([]nfa.Transition{
		{From: ids[1], To: ids[1], Label: "b"},
		{From: ids[1], To: ids[2], Label: "b"},
	}, out)

	_, err = a.Transitions(100)
	s.ErrorIs(err, nfa.ErrPlaceNotFound)

	s.Equal([]string{"a", "b", "c"}, a.Alphabet())
	s.Equal(4, a.TransitionCount())
}

// TestRemoveTransition removes the first matching transition only.
func (s *AutomatonSuite) TestRemoveTransition() {
	a := nfa.New("rm")
	p := a.AddPlace("p")
	q := a.AddPlace("q")
	_, _ = a.AddTransition(p, q, "a")
	_, _ = a.AddTransition(p, q, "a")
	_, _ = a.AddTransition(p, p, "b")

	s.Require().NoError(a.RemoveTransition(nfa.Transition{From: p, To: q, Label: "a"}))
	out, _ := a.Transitions(p)
	s.Equal([]nfa.Transition{{From: p, To: q, Label: "a"}, {From: p, To: p, Label: "b"}}, out)

	err := a.RemoveTransition(nfa.Transition{From: p, To: q, Label: "c"})
	s.ErrorIs(err, nfa.ErrTransitionNotFound)
	err = a.RemoveTransition(nfa.Transition{From: 9, To: q, Label: "a"})
	s.ErrorIs(err, nfa.ErrPlaceNotFound)
}

// TestRemovePlace covers tombstoning, start/end cleanup and id stability.
func (s *AutomatonSuite) TestRemovePlace() {
	a, ids := smallTalk(s.T())

	s.Require().NoError(a.RemovePlace(ids[3]))
	s.False(a.HasPlace(ids[3]))
	s.Empty(a.Ends())
	s.Equal(3, a.PlaceCount())
	s.ErrorIs(a.RemovePlace(ids[3]), nfa.ErrPlaceNotFound)

	_, err := a.Place(ids[3])
	s.ErrorIs(err, nfa.ErrPlaceNotFound)

	// Ids are never reused.
	s.Equal(nfa.PlaceID(4), a.AddPlace("new"))

	// Removing the start clears it.
	s.Require().NoError(a.RemovePlace(ids[0]))
	_, ok := a.Start()
	s.False(ok)

	pl, err := a.Place(ids[1])
	s.Require().NoError(err)
	s.Equal("StartSmallTalk", pl.Label)
}

// TestSnapshotRejectsDanglingTransition checks the documented hazard of
// removing a place that still has incoming transitions.
func (s *AutomatonSuite) TestSnapshotRejectsDanglingTransition() {
	a, ids := smallTalk(s.T())
	s.Require().NoError(a.RemovePlace(ids[2]))

	_, err := a.Snapshot()
	s.ErrorIs(err, nfa.ErrDanglingTransition)

	s.Require().NoError(a.RemoveTransition(nfa.Transition{From: ids[1], To: ids[2], Label: "b"}))
	_, err = a.Snapshot()
	s.NoError(err)
}

// TestSnapshotRequiresStart checks ErrNoStartPlace.
func (s *AutomatonSuite) TestSnapshotRequiresStart() {
	a := nfa.New("nostart")
	a.AddPlace("p", nfa.AsEnd())
	_, err := a.Snapshot()
	s.ErrorIs(err, nfa.ErrNoStartPlace)
}

// TestSnapshotIsFrozen checks later mutations do not leak into a snapshot.
func (s *AutomatonSuite) TestSnapshotIsFrozen() {
	a, ids := smallTalk(s.T())
	snap, err := a.Snapshot()
	s.Require().NoError(err)

	_, _ = a.AddTransition(ids[0], ids[3], "z")
	s.Require().NoError(a.MarkEnd(ids[0]))

	s.Len(snap.Out(ids[0]), 1)
	s.False(snap.IsEnd(ids[0]))
	s.Equal([]nfa.PlaceID{ids[3]}, snap.Ends())
	s.Equal(ids[0], snap.Start())
	s.Equal(4, snap.Slots())
	s.Equal("small talk", snap.Label())
}

// TestClone checks a deep copy keeps ids and is independent.
func (s *AutomatonSuite) TestClone() {
	a, ids := smallTalk(s.T())
	c := a.Clone()

	s.Equal(a.Places(), c.Places())
	s.Equal(a.Ends(), c.Ends())
	s.Equal(a.TransitionCount(), c.TransitionCount())

	_, _ = c.AddTransition(ids[0], ids[0], "x")
	s.Equal(4, a.TransitionCount())
	s.Equal(5, c.TransitionCount())
}

// TestShortestAcceptingRun covers the 0-1 BFS used as the alignment bound.
func TestShortestAcceptingRun(t *testing.T) {
	a, ids := smallTalk(t)
	snap, err := a.Snapshot()
	require.NoError(t, err)
	d, ok := snap.ShortestAcceptingRun()
	require.True(t, ok)
	require.Equal(t, 3, d)

	// An epsilon shortcut costs nothing.
	_, err = a.AddTransition(ids[0], ids[2], nfa.Epsilon)
	require.NoError(t, err)
	snap, err = a.Snapshot()
	require.NoError(t, err)
	d, ok = snap.ShortestAcceptingRun()
	require.True(t, ok)
	require.Equal(t, 1, d)

	// A start that is also an end needs no move at all.
	solo := nfa.New("solo")
	solo.AddPlace("s", nfa.AsStart(), nfa.AsEnd())
	snap, err = solo.Snapshot()
	require.NoError(t, err)
	d, ok = snap.ShortestAcceptingRun()
	require.True(t, ok)
	require.Zero(t, d)

	// No reachable end.
	dead := nfa.New("dead")
	s := dead.AddPlace("s", nfa.AsStart())
	dead.AddPlace("island", nfa.AsEnd())
	_, _ = dead.AddTransition(s, s, "a")
	snap, err = dead.Snapshot()
	require.NoError(t, err)
	_, ok = snap.ShortestAcceptingRun()
	require.False(t, ok)
	require.False(t, snap.CanAccept())
}
