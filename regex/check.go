package regex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/katalvlaran/nfalign/nfa"
)

// Operator tokens.
const (
	OpOpen   = "("
	OpClose  = ")"
	OpConcat = "."
	OpUnion  = "|"
	OpStar   = "*"
)

// Check pre-validates a token stream without building anything.
//
// Rules, in order of detection per token:
//  1. Every token is exactly one rune.
//  2. Every token is a letter, a digit, or one of ( ) . | *.
//  3. Parenthesis depth never drops below zero.
//
// After the last token the depth must be exactly zero.
// Every violation is a *SyntaxError wrapping ErrMalformedRegex.
func Check(tokens []string) error {
	depth := 0
	for i, tok := range tokens {
		if utf8.RuneCountInString(tok) != 1 {
			return syntaxErr(i, tok, "token must be a single character")
		}
		switch tok {
		case OpOpen:
			depth++
		case OpClose:
			depth--
			if depth < 0 {
				return syntaxErr(i, tok, "unbalanced closing parenthesis")
			}
		case OpConcat, OpUnion, OpStar:
		default:
			if !nfa.IsSymbol(tok) {
				return syntaxErr(i, tok, "token is neither a symbol nor an operator")
			}
		}
	}
	if depth != 0 {
		return syntaxErr(len(tokens), "", "unclosed parenthesis")
	}

	return nil
}

// Tokenize splits expr into one token per rune, dropping blanks.
// "a . (b*)" becomes [a . ( b * )]. The input is put in NFC form first so
// that precomposed and decomposed accents yield the same tokens. No
// validation is performed.
func Tokenize(expr string) []string {
	expr = norm.NFC.String(expr)
	tokens := make([]string, 0, len(expr))
	for _, r := range expr {
		if unicode.IsSpace(r) {
			continue
		}
		tokens = append(tokens, string(r))
	}

	return tokens
}

// isOperator reports whether tok is one of the five reserved tokens.
func isOperator(tok string) bool {
	return strings.Contains("().|*", tok) && len(tok) == 1
}
