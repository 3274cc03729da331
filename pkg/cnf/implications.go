// Package cnf implements the normal-form pipeline of the specification's C6
// component: implication removal, negation-normal form, standardizing
// variables apart, existential elimination by domain expansion, and
// disjunction-over-conjunction distribution into clausal form, followed by
// the clause-level tautology/duplicate-literal/dynamic-literal
// post-processing.
package cnf

import "github.com/anskarl/lomrf/pkg/fol"

// RemoveImplications rewrites F=>G as !F v G and F<=>G as
// (!F v G) ^ (F v !G), recursively.
func RemoveImplications(f fol.Formula) fol.Formula {
	switch n := f.(type) {
	case fol.Atomic:
		return n
	case fol.Not:
		return fol.Not{Operand: RemoveImplications(n.Operand)}
	case fol.And:
		return fol.And{Left: RemoveImplications(n.Left), Right: RemoveImplications(n.Right)}
	case fol.Or:
		return fol.Or{Left: RemoveImplications(n.Left), Right: RemoveImplications(n.Right)}
	case fol.Implies:
		l := RemoveImplications(n.Left)
		r := RemoveImplications(n.Right)

		return fol.Or{Left: fol.Not{Operand: l}, Right: r}
	case fol.Equivalence:
		l := RemoveImplications(n.Left)
		r := RemoveImplications(n.Right)

		return fol.And{
			Left:  fol.Or{Left: fol.Not{Operand: l}, Right: r},
			Right: fol.Or{Left: l, Right: fol.Not{Operand: r}},
		}
	case fol.UniversalQuantifier:
		return fol.UniversalQuantifier{Variable: n.Variable, Operand: RemoveImplications(n.Operand)}
	case fol.ExistentialQuantifier:
		return fol.ExistentialQuantifier{Variable: n.Variable, Operand: RemoveImplications(n.Operand)}
	}

	return f
}
