// Package regex compiles regular expressions over single-character symbols
// into nfa automata by Thompson construction.
//
// Expressions are token streams. Every token is one rune: a letter or digit
// (a symbol) or one of the operators
//
//	(  )  grouping
//	.     concatenation (mandatory, there is no juxtaposition)
//	|     alternation
//	*     Kleene star
//
// Precedence from low to high is |, ., *. Tokenize turns a plain string such
// as "a.(b*).((c.d)*)" into such a stream.
//
// Errors:
//
//   - ErrMalformedRegex is wrapped by every *SyntaxError; Pos locates the
//     offending token.
//
// Example:
//
//	a, err := regex.Compile(regex.Tokenize("a*|(c.d)|(e.f)"))
//	if err != nil {
//	    return err
//	}
//	ok, _ := fitting.IsFitting(a, []string{"c", "d"}) // true
package regex
