package regex

import (
	"errors"
	"fmt"
)

// ErrMalformedRegex is the sentinel matched by every compile failure.
var ErrMalformedRegex = errors.New("regex: malformed expression")

// SyntaxError reports where and why a token stream was rejected.
// Pos is the token index; Pos == len(tokens) means the input ended early.
type SyntaxError struct {
	Pos    int
	Token  string // empty at end of input
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v: %s at position %d", ErrMalformedRegex, e.Reason, e.Pos)
	}

	return fmt.Sprintf("%v: %s at position %d (%q)", ErrMalformedRegex, e.Reason, e.Pos, e.Token)
}

// Unwrap lets errors.Is(err, ErrMalformedRegex) match.
func (e *SyntaxError) Unwrap() error { return ErrMalformedRegex }

func syntaxErr(pos int, tok, reason string) *SyntaxError {
	return &SyntaxError{Pos: pos, Token: tok, Reason: reason}
}
