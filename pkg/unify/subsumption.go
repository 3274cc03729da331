package unify

import "github.com/anskarl/lomrf/pkg/fol"

// Subsumes implements classical theta-subsumption: c1 subsumes c2 iff there
// exists a substitution theta, applying only to c1's variables, such that
// c1-theta's literal set is contained in c2's literal set. Reflexive and
// transitive (P7).
func Subsumes(c1, c2 fol.Clause) bool {
	return subsumeFrom(c1.Literals, c2.Literals, 0, make(Substitution))
}

// subsumeFrom searches for a substitution mapping each of lhs[i:] onto some
// literal of rhs. Classical theta-subsumption permits several lhs literals
// to map onto the same rhs literal, so candidates are not removed from rhs
// once used.
func subsumeFrom(lhs, rhs []fol.Literal, i int, sub Substitution) bool {
	if i == len(lhs) {
		return true
	}

	for j := range rhs {
		sub2 := sub.Clone()

		if matchLiteral(lhs[i], rhs[j], sub2) && subsumeFrom(lhs, rhs, i+1, sub2) {
			return true
		}
	}

	return false
}

// matchLiteral attempts to extend sub so that lhs-sub equals rhs exactly
// (one-directional matching, not unification: only lhs's variables may be
// bound).
func matchLiteral(lhs, rhs fol.Literal, sub Substitution) bool {
	if lhs.Negative != rhs.Negative || lhs.Atom.Signature() != rhs.Atom.Signature() {
		return false
	}

	for i := range lhs.Atom.Args {
		if !matchTerm(lhs.Atom.Args[i], rhs.Atom.Args[i], sub) {
			return false
		}
	}

	return true
}

func matchTerm(pattern, target fol.Term, sub Substitution) bool {
	switch p := pattern.(type) {
	case fol.Variable:
		if bound, ok := sub[p]; ok {
			return termsEqual(bound, target)
		}

		sub[p] = target

		return true
	case fol.Constant:
		t, ok := target.(fol.Constant)
		return ok && t.Symbol == p.Symbol
	case fol.TermFunction:
		t, ok := target.(fol.TermFunction)
		if !ok || t.Symbol != p.Symbol || len(t.Args) != len(p.Args) {
			return false
		}

		for i := range p.Args {
			if !matchTerm(p.Args[i], t.Args[i], sub) {
				return false
			}
		}

		return true
	}

	return false
}

func termsEqual(a, b fol.Term) bool {
	return a.Equals(b)
}
