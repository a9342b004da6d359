package nfa

// ConcatOf returns a new automaton accepting the concatenation of the
// languages of parts, in order. The inputs are only read.
//
// Errors:
//   - ErrEmptyFragment if parts is empty.
//   - any Embed error (ErrNoStartPlace, ErrDanglingTransition) of an input.
func ConcatOf(label string, parts ...*Automaton) (*Automaton, error) {
	return compose(label, parts, func(a *Automaton, fs []Fragment) (Fragment, error) {
		return a.Concat(fs...)
	})
}

// UnionOf returns a new automaton accepting the union of the languages of parts.
func UnionOf(label string, parts ...*Automaton) (*Automaton, error) {
	return compose(label, parts, func(a *Automaton, fs []Fragment) (Fragment, error) {
		return a.Union(fs...)
	})
}

// StarOf returns a new automaton accepting zero or more repetitions of the
// language of part.
func StarOf(label string, part *Automaton) (*Automaton, error) {
	return compose(label, []*Automaton{part}, func(a *Automaton, fs []Fragment) (Fragment, error) {
		return a.Star(fs[0])
	})
}

// compose embeds every input into a fresh automaton, applies rule to the
// resulting fragments and seals the outcome.
func compose(label string, parts []*Automaton, rule func(*Automaton, []Fragment) (Fragment, error)) (*Automaton, error) {
	if len(parts) == 0 {
		return nil, ErrEmptyFragment
	}

	out := New(label)
	frags := make([]Fragment, 0, len(parts))
	for _, p := range parts {
		f, err := out.Embed(p)
		if err != nil {
			return nil, err
		}
		frags = append(frags, f)
	}

	f, err := rule(out, frags)
	if err != nil {
		return nil, err
	}
	if err = out.Seal(f); err != nil {
		return nil, err
	}

	return out, nil
}
