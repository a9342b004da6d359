package regex

import (
	"strings"

	"github.com/katalvlaran/nfalign/nfa"
)

// Option configures Compile.
type Option func(*config)

type config struct {
	label    string
	hasLabel bool
}

// WithLabel sets the label of the compiled automaton.
// The default label is the expression itself, tokens joined without spaces.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
		c.hasLabel = true
	}
}

// Compile turns a token stream into an automaton by Thompson construction.
//
// Steps:
//  1. Check the stream (single-rune tokens, known alphabet, balanced parentheses).
//  2. Parse it by recursive descent, building fragments in one arena:
//
//	Expression := Concat { "|" Concat }
//	Concat     := Repeat { "." Repeat }
//	Repeat     := Factor [ "*" ]
//	Factor     := symbol | "(" Expression ")"
//
//  3. Seal the top fragment: its start and ends become the automaton's.
//
// Concatenation is explicit; "ab" is rejected at position 1. The input slice
// is never modified. Each call returns a fresh automaton.
//
// Errors:
//   - *SyntaxError wrapping ErrMalformedRegex.
//
// Complexity: O(len(tokens)) places and transitions.
func Compile(tokens []string, opts ...Option) (*nfa.Automaton, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasLabel {
		cfg.label = strings.Join(tokens, "")
	}

	if err := Check(tokens); err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, a: nfa.New(cfg.label)}
	f, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, syntaxErr(p.pos, tok, "unexpected token")
	}
	if err = p.a.Seal(f); err != nil {
		return nil, err
	}

	return p.a, nil
}

// MustCompile is like Compile but panics on error.
// It is meant for expressions fixed at build time, such as test fixtures.
func MustCompile(expr string) *nfa.Automaton {
	a, err := Compile(Tokenize(expr))
	if err != nil {
		panic(err)
	}

	return a
}

// parser walks tokens with a cursor; tokens is never written.
type parser struct {
	tokens []string
	pos    int
	a      *nfa.Automaton
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}

	return p.tokens[p.pos], true
}

// accept advances past tok if it is next.
func (p *parser) accept(tok string) bool {
	if next, ok := p.peek(); ok && next == tok {
		p.pos++
		return true
	}

	return false
}

func (p *parser) expression() (nfa.Fragment, error) {
	first, err := p.concat()
	if err != nil {
		return nfa.Fragment{}, err
	}
	parts := []nfa.Fragment{first}
	for p.accept(OpUnion) {
		f, err := p.concat()
		if err != nil {
			return nfa.Fragment{}, err
		}
		parts = append(parts, f)
	}
	if len(parts) == 1 {
		return first, nil
	}

	return p.a.Union(parts...)
}

func (p *parser) concat() (nfa.Fragment, error) {
	first, err := p.repeat()
	if err != nil {
		return nfa.Fragment{}, err
	}
	parts := []nfa.Fragment{first}
	for p.accept(OpConcat) {
		f, err := p.repeat()
		if err != nil {
			return nfa.Fragment{}, err
		}
		parts = append(parts, f)
	}
	if len(parts) == 1 {
		return first, nil
	}

	return p.a.Concat(parts...)
}

func (p *parser) repeat() (nfa.Fragment, error) {
	f, err := p.factor()
	if err != nil {
		return nfa.Fragment{}, err
	}
	if !p.accept(OpStar) {
		return f, nil
	}
	if tok, ok := p.peek(); ok && tok == OpStar {
		return nfa.Fragment{}, syntaxErr(p.pos, tok, "repeated star")
	}

	return p.a.Star(f)
}

func (p *parser) factor() (nfa.Fragment, error) {
	tok, ok := p.peek()
	if !ok {
		return nfa.Fragment{}, syntaxErr(p.pos, "", "unexpected end of expression")
	}

	if tok == OpOpen {
		p.pos++
		f, err := p.expression()
		if err != nil {
			return nfa.Fragment{}, err
		}
		if !p.accept(OpClose) {
			next, _ := p.peek()
			return nfa.Fragment{}, syntaxErr(p.pos, next, "expected closing parenthesis")
		}

		return f, nil
	}

	if isOperator(tok) {
		return nfa.Fragment{}, syntaxErr(p.pos, tok, "expected symbol or opening parenthesis")
	}
	p.pos++

	return p.a.Symbol(tok)
}
