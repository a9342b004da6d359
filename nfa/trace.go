package nfa

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrMalformedTrace indicates a trace token outside the alphabet contract.
var ErrMalformedTrace = errors.New("nfa: malformed trace")

// TraceError locates the offending token of a malformed trace.
type TraceError struct {
	Index int    // position of the token in the trace
	Token string // token as supplied by the caller
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("%v: token %d %q is not a single letter or digit", ErrMalformedTrace, e.Index, e.Token)
}

// Unwrap lets errors.Is(err, ErrMalformedTrace) match.
func (e *TraceError) Unwrap() error { return ErrMalformedTrace }

// IsSymbol reports whether s is a valid alphabet symbol: exactly one rune
// that is a letter or a digit.
func IsSymbol(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)

	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// ValidateTrace checks the trace input contract and returns a normalised copy.
//
// Every token is trimmed of surrounding blanks and put in Unicode NFC form,
// so a letter typed with a combining accent counts as one rune. It must then
// be a single letter or digit. The caller's slice is not modified. A nil or empty trace
// is valid and yields an empty, non-nil slice.
//
// Errors:
//   - *TraceError (wrapping ErrMalformedTrace) for the first bad token.
//
// Complexity: O(total token length).
func ValidateTrace(trace []string) ([]string, error) {
	out := make([]string, len(trace))
	for i, tok := range trace {
		s := norm.NFC.String(strings.TrimSpace(tok))
		if !IsSymbol(s) {
			return nil, &TraceError{Index: i, Token: tok}
		}
		out[i] = s
	}

	return out, nil
}
