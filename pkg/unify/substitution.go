// Package unify implements the Robinson most-general-unifier algorithm
// (with occurs check) over fol.Term, alpha-equivalence (`=~=`) of literals
// and clauses, theta-subsumption, and the most-general-pattern (mgp) of two
// atoms (C5 of the specification).
package unify

import "github.com/anskarl/lomrf/pkg/fol"

// Substitution binds variables to terms. It is the result of both
// unification (bidirectional) and subsumption matching (one-directional,
// from the subsuming clause's variables).
type Substitution map[fol.Variable]fol.Term

// Clone returns an independent copy of the substitution.
func (s Substitution) Clone() Substitution {
	out := make(Substitution, len(s))
	for k, v := range s {
		out[k] = v
	}

	return out
}

// Apply recursively substitutes variables in t according to s.
func Apply(s Substitution, t fol.Term) fol.Term {
	switch v := t.(type) {
	case fol.Variable:
		if bound, ok := s[v]; ok {
			// Chase chains (x -> y -> Const) to a fixed point.
			return Apply(s, bound)
		}

		return v
	case fol.TermFunction:
		args := make([]fol.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = Apply(s, a)
		}

		return fol.TermFunction{Symbol: v.Symbol, Args: args, ResultDomain: v.ResultDomain}
	default:
		return t
	}
}

// ApplyAtom substitutes every argument of an atomic formula.
func ApplyAtom(s Substitution, a fol.AtomicFormula) fol.AtomicFormula {
	args := make([]fol.Term, len(a.Args))
	for i, t := range a.Args {
		args[i] = Apply(s, t)
	}

	return fol.AtomicFormula{Symbol: a.Symbol, Args: args, IsDynamic: a.IsDynamic}
}

// ApplyLiteral substitutes the underlying atom of a literal, preserving
// sign.
func ApplyLiteral(s Substitution, l fol.Literal) fol.Literal {
	return fol.Literal{Atom: ApplyAtom(s, l.Atom), Negative: l.Negative}
}

// ApplyClause substitutes every literal of a clause, preserving weight.
func ApplyClause(s Substitution, c fol.Clause) fol.Clause {
	lits := make([]fol.Literal, len(c.Literals))
	for i, l := range c.Literals {
		lits[i] = ApplyLiteral(s, l)
	}

	return fol.Clause{Weight: c.Weight, Literals: lits}
}

// occurs reports whether variable v occurs within term t under the current
// substitution (the Robinson occurs check).
func occurs(s Substitution, v fol.Variable, t fol.Term) bool {
	switch term := t.(type) {
	case fol.Variable:
		if term.Equals(v) {
			return true
		}

		if bound, ok := s[term]; ok {
			return occurs(s, v, bound)
		}

		return false
	case fol.TermFunction:
		for _, a := range term.Args {
			if occurs(s, v, a) {
				return true
			}
		}

		return false
	default:
		return false
	}
}
