package cnf

import "github.com/anskarl/lomrf/pkg/fol"

// PostProcess applies the clause-level rules of §4.3: tautology
// elimination (a clause containing both p and !p is dropped -- NewClause
// already folds duplicate-same-sign literals, so only opposite-sign
// duplicates need checking here), and evaluation of ground dynamic literals
// (a ground dynamic literal whose sign-aware truth value is satisfying
// makes the whole clause a tautology; otherwise the literal alone is
// dropped).
func PostProcess(clauses []fol.Clause, dyn *fol.DynamicRegistry) ([]fol.Clause, error) {
	out := make([]fol.Clause, 0, len(clauses))

	for _, c := range clauses {
		kept, tautology, err := evalGroundDynamics(c, dyn)
		if err != nil {
			return nil, err
		}

		if tautology {
			continue
		}

		if kept.IsTautology() {
			continue
		}

		out = append(out, kept)
	}

	return out, nil
}

func evalGroundDynamics(c fol.Clause, dyn *fol.DynamicRegistry) (fol.Clause, bool, error) {
	lits := make([]fol.Literal, 0, len(c.Literals))

	for _, l := range c.Literals {
		if !l.Atom.IsDynamic || !l.Atom.IsGround() {
			lits = append(lits, l)
			continue
		}

		truth, err := dyn.EvalLiteral(l)
		if err != nil {
			return fol.Clause{}, false, err
		}

		if truth {
			// Satisfying ground dynamic literal: the whole clause is a
			// tautology.
			return fol.Clause{}, true, nil
		}
		// Unsatisfying: drop the literal, keep the rest of the clause.
	}

	return fol.Clause{Weight: c.Weight, Literals: lits}, false, nil
}
