// Package nfalign checks event logs against process models written as
// regular expressions.
//
// 🚀 What is nfalign?
//
//	An in-memory conformance toolkit built around one small automaton type:
//		• Model: places, labelled and epsilon transitions, start and end markers
//		• Compiler: Thompson construction from "a.(b*).((c.d)*)"-style expressions
//		• Fitting: does the model accept a trace exactly?
//		• Alignment: cheapest sequence of synchronous, model and log moves
//		• Logs: fitness and alignments of whole logs, in parallel
//
// Under the hood, everything is organized under these subpackages:
//
//	nfa/         - Automaton, Snapshot, Fragment builders, trace validation
//	regex/       - tokenizer, syntax check and Thompson compiler
//	fitting/     - exact acceptance by iterative DFS over (place, position)
//	alignment/   - Dijkstra over the implicit model × trace product
//	conformance/ - log-level fitness and alignment on a worker pool, metrics
//	cmd/nfalign  - command-line front end (check, fit, align)
//
// Quick example:
//
//	model := regex.MustCompile("a*|(c.d)|(e.f)")
//	al, _ := alignment.Optimal(model, []string{"c", "f"})
//	fmt.Println(al.Moves, al.Cost) // [(c,>>) (f,>>)] 2
//
// Alignment moves are written (log,model); ">>" marks the side that does
// not advance. Synchronous moves cost 0, every other move costs 1, and a
// trace fits exactly when its optimal alignment costs 0.
package nfalign
