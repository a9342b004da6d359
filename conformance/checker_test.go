package conformance_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/nfalign/alignment"
	"github.com/katalvlaran/nfalign/conformance"
	"github.com/katalvlaran/nfalign/internal/logging"
	"github.com/katalvlaran/nfalign/nfa"
	"github.com/katalvlaran/nfalign/regex"
)

// logOf turns "abc,ab" into [[a b c] [a b]]; an empty field is an empty trace.
func logOf(s string) [][]string {
	var out [][]string
	for _, f := range strings.Split(s, ",") {
		tr := []string{}
		if f != "" {
			tr = strings.Split(f, "")
		}
		out = append(out, tr)
	}

	return out
}

// LogSuite replays log fitness over the growing conversation model.
type LogSuite struct {
	suite.Suite
	a                       *nfa.Automaton
	greeting, talk, end, by nfa.PlaceID
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogSuite))
}

func (s *LogSuite) SetupTest() {
	s.a = nfa.New("TestNFA")
	s.greeting = s.a.AddPlace("Greeting", nfa.AsStart())
	s.talk = s.a.AddPlace("Start Small Talk")
	s.end = s.a.AddPlace("End Small Talk")
	s.by = s.a.AddPlace("Good Bye", nfa.AsEnd())
	for _, tr := range []nfa.Transition{
		{From: s.greeting, To: s.talk, Label: "a"},
		{From: s.talk, To: s.talk, Label: "b"},
		{From: s.talk, To: s.end, Label: "b"},
		{From: s.end, To: s.by, Label: "c"},
	} {
		_, err := s.a.AddTransition(tr.From, tr.To, tr.Label)
		s.Require().NoError(err)
	}
}

func (s *LogSuite) TestLogFitness() {
	log1 := logOf("abc,abbbc,aabc,abce,ac,ae")
	got, err := conformance.LogFitness(s.a, log1)
	s.Require().NoError(err)
	s.InDelta(2.0/6, got, 1e-12)

	p5 := s.a.AddPlace("End", nfa.AsEnd())
	_, _ = s.a.AddTransition(s.end, p5, "d")
	p6 := s.a.AddPlace("End", nfa.AsEnd())
	_, _ = s.a.AddTransition(s.talk, p6, "e")
	_, _ = s.a.AddTransition(s.talk, s.by, nfa.Epsilon)

	got, err = conformance.LogFitness(s.a, log1)
	s.Require().NoError(err)
	s.InDelta(3.0/6, got, 1e-12)

	log2 := logOf("abc,abbbc,aabc,abce,ac,ae,ad,a,abe,abce,acde")
	got, err = conformance.LogFitness(s.a, log2)
	s.Require().NoError(err)
	s.InDelta(5.0/11, got, 1e-12)
}

func (s *LogSuite) TestFitAllKeepsOrder() {
	fits, err := conformance.New(conformance.WithWorkers(3)).FitAll(context.Background(), s.a, logOf("abc,ac,abbc,,aabc,abbbbc"))
	s.Require().NoError(err)
	s.Equal([]bool{true, false, true, false, false, true}, fits)
}

func (s *LogSuite) TestOptimalAlignmentLog() {
	als, err := conformance.OptimalAlignmentLog(s.a, logOf("abbbcz,azbbc,azbb"))
	s.Require().NoError(err)
	s.Require().Len(als, 3)

	s.Equal(1, als[0].Cost)
	s.Equal("(a,a) (b,b) (b,b) (b,b) (c,c) (z,>>)", render(als[0].Moves))
	s.Equal(1, als[1].Cost)
	s.Equal("(a,a) (z,>>) (b,b) (b,b) (c,c)", render(als[1].Moves))
	s.Equal(2, als[2].Cost)
	s.Equal("(a,a) (z,>>) (b,b) (b,b) (>>,c)", render(als[2].Moves))
}

func render(ms []alignment.Move) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}

	return strings.Join(parts, " ")
}

func TestLogFitnessOfRegex(t *testing.T) {
	a := regex.MustCompile("a.(b*).((c.d)*)")
	log := [][]string{{"a"}, {"a", "b"}, {"a", "b", "b"}, {"a", "c", "d"}, {"x"}, {"x", "y"}, {"y"}, {"w"}, {"k"}, {"q"}}

	got, err := conformance.LogFitness(a, log)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, got, 1e-12)
}

func TestAddingFittingTraceNeverLowersFitness(t *testing.T) {
	a := regex.MustCompile("a*|(c.d)|(e.f)")
	log := logOf("x,cd,cf,aaa")
	before, err := conformance.LogFitness(a, log)
	require.NoError(t, err)

	after, err := conformance.LogFitness(a, append(log, []string{"e", "f"}))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before)
}

func TestErrors(t *testing.T) {
	a := regex.MustCompile("a")

	_, err := conformance.LogFitness(a, nil)
	assert.ErrorIs(t, err, conformance.ErrEmptyLog)
	_, err = conformance.OptimalAlignmentLog(a, [][]string{})
	assert.ErrorIs(t, err, conformance.ErrEmptyLog)

	_, err = conformance.LogFitness(nil, logOf("a"))
	assert.ErrorIs(t, err, conformance.ErrNilAutomaton)

	// The bad trace is found before any search runs.
	_, err = conformance.LogFitness(a, [][]string{{"a"}, {"a"}, {"cc"}})
	require.ErrorIs(t, err, nfa.ErrMalformedTrace)
	var te *conformance.TraceError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 2, te.Index)

	_, err = conformance.LogFitness(nfa.New("no start"), logOf("a"))
	assert.ErrorIs(t, err, nfa.ErrNoStartPlace)
}

func TestAlignmentOptionsApply(t *testing.T) {
	a := regex.MustCompile("a.b.c")
	c := conformance.New(conformance.WithAlignmentOptions(alignment.WithMaxCost(1)))

	_, err := c.AlignLog(context.Background(), a, logOf("abc,xyz"))
	require.ErrorIs(t, err, alignment.ErrCostBoundExceeded)
	var te *conformance.TraceError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Index)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conformance.New().AlignLog(ctx, regex.MustCompile("a*"), logOf("a,aa,aaa"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkersDefault(t *testing.T) {
	assert.GreaterOrEqual(t, conformance.New().Workers(), 1)
	assert.Equal(t, 4, conformance.New(conformance.WithWorkers(4)).Workers())
	assert.Equal(t, conformance.New().Workers(), conformance.New(conformance.WithWorkers(0)).Workers())
}

// recorder is a concurrency-safe Observer.
type recorder struct {
	mu    sync.Mutex
	fits  []bool
	costs []int
}

func (r *recorder) ObserveFit(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fits = append(r.fits, ok)
}

func (r *recorder) ObserveAlignment(al *alignment.Alignment, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.costs = append(r.costs, al.Cost)
}

func TestObserverAndLogger(t *testing.T) {
	var buf bytes.Buffer
	rec := &recorder{}
	c := conformance.New(
		conformance.WithWorkers(2),
		conformance.WithObserver(rec),
		conformance.WithLogger(logging.NewWriter(&buf, slog.LevelDebug)),
	)
	a := regex.MustCompile("a*|(c.d)|(e.f)")

	_, err := c.FitAll(context.Background(), a, logOf("aa,cd,cf"))
	require.NoError(t, err)
	_, err = c.AlignLog(context.Background(), a, logOf("aa,cdcd,cf,x"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []bool{true, true, false}, rec.fits)
	assert.ElementsMatch(t, []int{0, 2, 2, 1}, rec.costs)
	assert.Contains(t, buf.String(), "conformance batch started")
	assert.Contains(t, buf.String(), "op=align")
	assert.Contains(t, buf.String(), "conformance batch finished")

	buf.Reset()
	_, err = conformance.New(
		conformance.WithLogger(logging.NewWriter(&buf, slog.LevelDebug)),
		conformance.WithAlignmentOptions(alignment.WithMaxCost(0)),
	).AlignLog(context.Background(), a, logOf("x"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "conformance batch failed")
	assert.Contains(t, buf.String(), "err=")
}

func TestLargeLogParallel(t *testing.T) {
	a := regex.MustCompile("a.(b*).((c.d)*)")
	var log [][]string
	var want []int
	for i := 0; i < 200; i++ {
		switch i % 4 {
		case 0:
			log = append(log, []string{"a", "b"})
			want = append(want, 0)
		case 1:
			log = append(log, []string{"b"})
			want = append(want, 1)
		case 2:
			log = append(log, []string{"a", "c"})
			want = append(want, 1)
		default:
			log = append(log, strings.Split("axbbycdcdc", ""))
			want = append(want, 3)
		}
	}

	als, err := conformance.New(conformance.WithWorkers(8)).AlignLog(context.Background(), a, log)
	require.NoError(t, err)
	require.Len(t, als, len(log))
	for i, al := range als {
		assert.Equal(t, want[i], al.Cost, "trace %d", i)
	}
}
