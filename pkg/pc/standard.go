package pc

import (
	"github.com/anskarl/lomrf/pkg/cnf"
	"github.com/anskarl/lomrf/pkg/fol"
)

// standardEquivalence builds the hard equivalence H <=> (OR of bodies) for
// one head group, existentially closing each body's variables that do not
// appear in the canonical head (the "existential closure of body-only
// variables" of §4.4).
func standardEquivalence(g *group) fol.WeightedFormula {
	return fol.WeightedFormula{
		Weight:  fol.WeightHardFormula,
		Formula: fol.Equivalence{Left: fol.Atomic{Atom: g.head}, Right: bodyDisjunction(g)},
	}
}

// bodyDisjunction re-expresses every clause body in the group in terms of
// the canonical head's variables, existentially closes body-only
// variables, and disjoins the results.
func bodyDisjunction(g *group) fol.Formula {
	var out fol.Formula

	for _, c := range g.clauses {
		body := closedBody(c, g.head)

		if out == nil {
			out = body
		} else {
			out = fol.Or{Left: out, Right: body}
		}
	}

	if out == nil {
		return fol.Atomic{Atom: fol.AtomicFormula{Symbol: "false", Args: nil, IsDynamic: true}}
	}

	return out
}

// closedBody renames clause's body to use the canonical head's variables
// (matching position-wise against clause.Clause.Head, which shares
// canonical's function-symbol pattern by construction -- see
// groupByHead/patternKey) and existentially quantifies every body variable
// that does not appear in the head.
func closedBody(c fol.WeightedDefiniteClause, canonical fol.AtomicFormula) fol.Formula {
	renaming := make(map[string]fol.Term)
	headVars := make(map[string]bool)

	for i, arg := range c.Clause.Head.Args {
		bindHeadArg(arg, canonical.Args[i], renaming, headVars)
	}

	body := cnf.SubstituteVars(c.Clause.Body, renaming)

	for _, v := range fol.FormulaVariables(c.Clause.Body) {
		if headVars[v.String()] {
			continue
		}

		if _, renamed := renaming[v.String()]; renamed {
			continue
		}

		body = fol.ExistentialQuantifier{Variable: v, Operand: body}
	}

	return body
}

// bindHeadArg records, for a single head-argument position, the
// substitution needed to express the clause's variable(s) at that position
// in terms of canonical's variable(s), and marks the canonical variables
// involved as head variables (never existentially closed).
func bindHeadArg(clauseArg, canonicalArg fol.Term, renaming map[string]fol.Term, headVars map[string]bool) {
	switch c := canonicalArg.(type) {
	case fol.Variable:
		headVars[c.String()] = true

		if cv, ok := clauseArg.(fol.Variable); ok {
			renaming[cv.String()] = c
		}
	case fol.TermFunction:
		cf, ok := clauseArg.(fol.TermFunction)
		if !ok || cf.Symbol != c.Symbol || len(cf.Args) != len(c.Args) {
			return
		}

		for i := range c.Args {
			bindHeadArg(cf.Args[i], c.Args[i], renaming, headVars)
		}
	}
}

// inlinePredicate substitutes every occurrence of g.head's predicate within
// f with g's body disjunction (Simplification mode), unifying each
// occurrence's actual arguments against the canonical head to re-express
// the disjunction in terms of the call site's own terms.
func inlinePredicate(f fol.Formula, g *group) fol.Formula {
	switch n := f.(type) {
	case fol.Atomic:
		if n.Atom.Signature() != g.head.Signature() {
			return n
		}

		renaming := make(map[string]fol.Term)
		for i, arg := range g.head.Args {
			bindCallSite(arg, n.Atom.Args[i], renaming)
		}

		return cnf.SubstituteVars(bodyDisjunction(g), renaming)
	case fol.Not:
		return fol.Not{Operand: inlinePredicate(n.Operand, g)}
	case fol.And:
		return fol.And{Left: inlinePredicate(n.Left, g), Right: inlinePredicate(n.Right, g)}
	case fol.Or:
		return fol.Or{Left: inlinePredicate(n.Left, g), Right: inlinePredicate(n.Right, g)}
	case fol.Implies:
		return fol.Implies{Left: inlinePredicate(n.Left, g), Right: inlinePredicate(n.Right, g)}
	case fol.Equivalence:
		return fol.Equivalence{Left: inlinePredicate(n.Left, g), Right: inlinePredicate(n.Right, g)}
	case fol.UniversalQuantifier:
		return fol.UniversalQuantifier{Variable: n.Variable, Operand: inlinePredicate(n.Operand, g)}
	case fol.ExistentialQuantifier:
		return fol.ExistentialQuantifier{Variable: n.Variable, Operand: inlinePredicate(n.Operand, g)}
	}

	return f
}

// bindCallSite is the inverse direction of bindHeadArg: it records how to
// replace canonical's variables with the actual terms supplied at one
// occurrence (call site) of the completed predicate.
func bindCallSite(canonicalArg, actualArg fol.Term, renaming map[string]fol.Term) {
	switch c := canonicalArg.(type) {
	case fol.Variable:
		renaming[c.String()] = actualArg
	case fol.TermFunction:
		a, ok := actualArg.(fol.TermFunction)
		if !ok || a.Symbol != c.Symbol || len(a.Args) != len(c.Args) {
			return
		}

		for i := range c.Args {
			bindCallSite(c.Args[i], a.Args[i], renaming)
		}
	}
}
