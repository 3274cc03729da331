package cnf

import "github.com/anskarl/lomrf/pkg/fol"

// conjunct is one disjunction-of-literals produced by distribution; a slice
// of conjuncts represents their conjunction.
type conjunct []fol.Literal

// toConjuncts converts a quantifier-free NNF formula into conjunctive normal
// form, represented as a list of conjuncts (each a set of literals). The
// length of the returned slice is exactly the number of top-level conjuncts
// distribution produced, which callers use to divide a formula's weight
// evenly across the clauses it yields.
func toConjuncts(f fol.Formula) []conjunct {
	switch n := f.(type) {
	case fol.Atomic:
		return []conjunct{{fol.PosLit(n.Atom)}}
	case fol.Not:
		atomic, ok := n.Operand.(fol.Atomic)
		if !ok {
			// Should not occur: NNF guarantees Not wraps only atomic
			// formulas. Defensive fallback converts the operand with the
			// negation dropped rather than panicking.
			return toConjuncts(n.Operand)
		}

		return []conjunct{{fol.NegLit(atomic.Atom)}}
	case fol.And:
		return append(toConjuncts(n.Left), toConjuncts(n.Right)...)
	case fol.Or:
		left := toConjuncts(n.Left)
		right := toConjuncts(n.Right)
		out := make([]conjunct, 0, len(left)*len(right))

		for _, l := range left {
			for _, r := range right {
				merged := make(conjunct, 0, len(l)+len(r))
				merged = append(merged, l...)
				merged = append(merged, r...)
				out = append(out, merged)
			}
		}

		return out
	}

	return nil
}

// ToCNF runs the per-formula C6 passes on a weighted formula: implication
// removal, NNF, standardize-apart, existential domain expansion and CNF
// distribution, with duplicate literals within a clause collapsed by
// fol.NewClause. It does no tautology elimination or ground-dynamic-literal
// evaluation; PostProcess does those over a combined clause vector.
//
// The weight of each produced clause is wf.Weight divided by the number of
// conjuncts top-level distribution produced (1 when the formula was already
// a single clause, preserving the weight unchanged); +Inf and NaN divide
// through cleanly to +Inf and NaN respectively, so hard and to-be-learned
// weights need no special-casing.
func ToCNF(wf fol.WeightedFormula, domains *fol.ConstantsDomain) ([]fol.Clause, error) {
	f := RemoveImplications(wf.Formula)
	f = NNF(f)
	f = StandardizeApart(f)

	f, err := EliminateQuantifiers(f, domains)
	if err != nil {
		return nil, err
	}

	conjuncts := toConjuncts(f)
	if len(conjuncts) == 0 {
		return nil, nil
	}

	share := wf.Weight / float64(len(conjuncts))

	clauses := make([]fol.Clause, 0, len(conjuncts))

	for _, c := range conjuncts {
		clauses = append(clauses, fol.NewClause(share, c))
	}

	return clauses, nil
}
