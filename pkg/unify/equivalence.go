package unify

import "github.com/anskarl/lomrf/pkg/fol"

// AlphaEquivalentTerms reports whether t1 and t2 match up to a variable
// renaming, extending the bijection recorded in fwd/bwd. Constants and
// function symbols must match verbatim.
func AlphaEquivalentTerms(t1, t2 fol.Term, fwd, bwd map[fol.Variable]fol.Variable) bool {
	switch a := t1.(type) {
	case fol.Variable:
		b, ok := t2.(fol.Variable)
		if !ok {
			return false
		}

		if mapped, exists := fwd[a]; exists {
			return mapped.Equals(b)
		}

		if mappedBack, exists := bwd[b]; exists {
			return mappedBack.Equals(a)
		}

		fwd[a] = b
		bwd[b] = a

		return true
	case fol.Constant:
		b, ok := t2.(fol.Constant)
		return ok && a.Symbol == b.Symbol
	case fol.TermFunction:
		b, ok := t2.(fol.TermFunction)
		if !ok || a.Symbol != b.Symbol || len(a.Args) != len(b.Args) {
			return false
		}

		for i := range a.Args {
			if !AlphaEquivalentTerms(a.Args[i], b.Args[i], fwd, bwd) {
				return false
			}
		}

		return true
	}

	return false
}

// AlphaEquivalentLiterals (`=~=` restricted to single literals) reports
// whether two literals agree in sign and are alpha-equivalent term-wise,
// extending fwd/bwd.
func AlphaEquivalentLiterals(l1, l2 fol.Literal, fwd, bwd map[fol.Variable]fol.Variable) bool {
	if l1.Negative != l2.Negative || l1.Atom.Signature() != l2.Atom.Signature() {
		return false
	}

	for i := range l1.Atom.Args {
		if !AlphaEquivalentTerms(l1.Atom.Args[i], l2.Atom.Args[i], fwd, bwd) {
			return false
		}
	}

	return true
}

// AlphaEquivalentClauses (`=~=`) reports whether two clauses are similar:
// there is a bijection between their literals preserving sign, extended to
// a consistent variable renaming across both directions. The relation is
// symmetric and is an equivalence relation up to variable renaming (P7).
func AlphaEquivalentClauses(c1, c2 fol.Clause) bool {
	if len(c1.Literals) != len(c2.Literals) {
		return false
	}

	used := make([]bool, len(c2.Literals))

	return matchRemaining(c1.Literals, c2.Literals, 0, used, make(map[fol.Variable]fol.Variable), make(map[fol.Variable]fol.Variable))
}

func matchRemaining(lhs, rhs []fol.Literal, i int, used []bool, fwd, bwd map[fol.Variable]fol.Variable) bool {
	if i == len(lhs) {
		return true
	}

	for j := range rhs {
		if used[j] {
			continue
		}

		fwd2 := cloneVarMap(fwd)
		bwd2 := cloneVarMap(bwd)

		if AlphaEquivalentLiterals(lhs[i], rhs[j], fwd2, bwd2) {
			used[j] = true

			if matchRemaining(lhs, rhs, i+1, used, fwd2, bwd2) {
				return true
			}

			used[j] = false
		}
	}

	return false
}

func cloneVarMap(m map[fol.Variable]fol.Variable) map[fol.Variable]fol.Variable {
	out := make(map[fol.Variable]fol.Variable, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
