package cnf

import "github.com/anskarl/lomrf/pkg/fol"

// NNF pushes negation to the leaves (negation-normal form). Must be called
// after RemoveImplications: Implies/Equivalence nodes are not handled here.
func NNF(f fol.Formula) fol.Formula {
	return nnf(f, false)
}

func nnf(f fol.Formula, negate bool) fol.Formula {
	switch n := f.(type) {
	case fol.Atomic:
		if negate {
			return fol.Not{Operand: n}
		}

		return n
	case fol.Not:
		return nnf(n.Operand, !negate)
	case fol.And:
		if negate {
			return fol.Or{Left: nnf(n.Left, true), Right: nnf(n.Right, true)}
		}

		return fol.And{Left: nnf(n.Left, false), Right: nnf(n.Right, false)}
	case fol.Or:
		if negate {
			return fol.And{Left: nnf(n.Left, true), Right: nnf(n.Right, true)}
		}

		return fol.Or{Left: nnf(n.Left, false), Right: nnf(n.Right, false)}
	case fol.UniversalQuantifier:
		if negate {
			return fol.ExistentialQuantifier{Variable: n.Variable, Operand: nnf(n.Operand, true)}
		}

		return fol.UniversalQuantifier{Variable: n.Variable, Operand: nnf(n.Operand, false)}
	case fol.ExistentialQuantifier:
		if negate {
			return fol.UniversalQuantifier{Variable: n.Variable, Operand: nnf(n.Operand, true)}
		}

		return fol.ExistentialQuantifier{Variable: n.Variable, Operand: nnf(n.Operand, false)}
	}

	return f
}
