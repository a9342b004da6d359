package nfa_test

import (
	"fmt"

	"github.com/katalvlaran/nfalign/nfa"
)

// ExampleAutomaton builds the small-talk conversation model by hand.
func ExampleAutomaton() {
	a := nfa.New("small talk")
	greeting := a.AddPlace("Greeting", nfa.AsStart())
	start := a.AddPlace("StartSmallTalk")
	end := a.AddPlace("EndSmallTalk")
	bye := a.AddPlace("GoodBye", nfa.AsEnd())

	_, _ = a.AddTransition(greeting, start, "a")
	_, _ = a.AddTransition(start, start, "b")
	_, _ = a.AddTransition(start, end, "b")
	_, _ = a.AddTransition(end, bye, "c")

	snap, err := a.Snapshot()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	shortest, _ := snap.ShortestAcceptingRun()

	fmt.Println("places:", a.PlaceCount())
	fmt.Println("transitions:", a.TransitionCount())
	fmt.Println("alphabet:", a.Alphabet())
	fmt.Println("shortest accepting run:", shortest)
	// Output:
	// places: 4
	// transitions: 4
	// alphabet: [a b c]
	// shortest accepting run: 3
}

// ExampleUnionOf combines two automata into one accepting either language.
func ExampleUnionOf() {
	ab := nfa.New("ab")
	s := ab.AddPlace("s", nfa.AsStart())
	m := ab.AddPlace("m")
	e := ab.AddPlace("e", nfa.AsEnd())
	_, _ = ab.AddTransition(s, m, "a")
	_, _ = ab.AddTransition(m, e, "b")

	u, err := nfa.UnionOf("ab|ab", ab, ab)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(u.Label(), u.PlaceCount(), u.TransitionCount())
	// Output: ab|ab 8 8
}
