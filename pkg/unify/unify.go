package unify

import "github.com/anskarl/lomrf/pkg/fol"

// MGU computes the most general unifier of two terms, following Robinson's
// algorithm with an occurs check. Returns (substitution, true) on success,
// or (nil, false) if the terms do not unify.
func MGU(t1, t2 fol.Term) (Substitution, bool) {
	return unifyTerms(t1, t2, make(Substitution))
}

func unifyTerms(t1, t2 fol.Term, s Substitution) (Substitution, bool) {
	t1 = Apply(s, t1)
	t2 = Apply(s, t2)

	if v, ok := t1.(fol.Variable); ok {
		return bindVariable(v, t2, s)
	}

	if v, ok := t2.(fol.Variable); ok {
		return bindVariable(v, t1, s)
	}

	switch a := t1.(type) {
	case fol.Constant:
		b, ok := t2.(fol.Constant)
		if !ok || a.Symbol != b.Symbol {
			return nil, false
		}

		return s, true
	case fol.TermFunction:
		b, ok := t2.(fol.TermFunction)
		if !ok || a.Symbol != b.Symbol || len(a.Args) != len(b.Args) {
			return nil, false
		}

		cur := s
		for i := range a.Args {
			var ok bool

			cur, ok = unifyTerms(a.Args[i], b.Args[i], cur)
			if !ok {
				return nil, false
			}
		}

		return cur, true
	}

	return nil, false
}

func bindVariable(v fol.Variable, t fol.Term, s Substitution) (Substitution, bool) {
	if other, ok := t.(fol.Variable); ok && other.Equals(v) {
		return s, true
	}

	if occurs(s, v, t) {
		return nil, false
	}

	next := s.Clone()
	next[v] = t

	return next, true
}

// UnifyAtoms computes the most general unifier of two atomic formulas with
// the same signature.
func UnifyAtoms(a, b fol.AtomicFormula) (Substitution, bool) {
	if a.Signature() != b.Signature() {
		return nil, false
	}

	s := make(Substitution)

	for i := range a.Args {
		var ok bool

		s, ok = unifyTerms(a.Args[i], b.Args[i], s)
		if !ok {
			return nil, false
		}
	}

	return s, true
}

// UnifyLiterals computes the most general unifier of two literals, which
// must agree in sign and signature.
func UnifyLiterals(a, b fol.Literal) (Substitution, bool) {
	if a.Negative != b.Negative {
		return nil, false
	}

	return UnifyAtoms(a.Atom, b.Atom)
}
