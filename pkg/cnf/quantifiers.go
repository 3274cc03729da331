package cnf

import (
	"fmt"

	"github.com/anskarl/lomrf/pkg/fol"
)

// EliminateQuantifiers removes every existential by domain expansion
// (Exist x:D F(x) -> OR over c in D of F(c), since domains are finite and
// enumerable no Skolemization is needed) and drops universal quantifiers
// (remaining free variables are implicitly universally quantified, to be
// handled by the grounder). Must run after StandardizeApart.
func EliminateQuantifiers(f fol.Formula, domains *fol.ConstantsDomain) (fol.Formula, error) {
	switch n := f.(type) {
	case fol.Atomic:
		return n, nil
	case fol.Not:
		operand, err := EliminateQuantifiers(n.Operand, domains)
		if err != nil {
			return nil, err
		}

		return fol.Not{Operand: operand}, nil
	case fol.And:
		l, err := EliminateQuantifiers(n.Left, domains)
		if err != nil {
			return nil, err
		}

		r, err := EliminateQuantifiers(n.Right, domains)
		if err != nil {
			return nil, err
		}

		return fol.And{Left: l, Right: r}, nil
	case fol.Or:
		l, err := EliminateQuantifiers(n.Left, domains)
		if err != nil {
			return nil, err
		}

		r, err := EliminateQuantifiers(n.Right, domains)
		if err != nil {
			return nil, err
		}

		return fol.Or{Left: l, Right: r}, nil
	case fol.UniversalQuantifier:
		return EliminateQuantifiers(n.Operand, domains)
	case fol.ExistentialQuantifier:
		inner, err := EliminateQuantifiers(n.Operand, domains)
		if err != nil {
			return nil, err
		}

		dom := domains.Domain(n.Variable.Domain)
		if dom == nil {
			return nil, fmt.Errorf("undeclared domain %q for existential variable %s", n.Variable.Domain, n.Variable.Symbol)
		}

		constants := dom.Constants()
		if len(constants) == 0 {
			return nil, fmt.Errorf("domain %q is empty, cannot expand Exist %s", n.Variable.Domain, n.Variable.Symbol)
		}

		var disjunction fol.Formula = SubstituteVar(inner, n.Variable, fol.Constant{Symbol: constants[0]})

		for _, c := range constants[1:] {
			disjunction = fol.Or{Left: disjunction, Right: SubstituteVar(inner, n.Variable, fol.Constant{Symbol: c})}
		}

		return disjunction, nil
	}

	return f, nil
}
