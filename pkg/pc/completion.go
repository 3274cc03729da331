// Package pc implements predicate completion (C7): rewriting a set of
// weighted definite clauses into an equivalent set of weighted formulas, in
// one of three modes (Standard, Decomposed, Simplification).
package pc

import (
	"fmt"

	"github.com/anskarl/lomrf/pkg/fol"
)

// Mode selects the predicate-completion strategy.
type Mode int

const (
	// Standard emits a single hard equivalence H <=> (OR of bodies) per
	// head predicate.
	Standard Mode = iota
	// Decomposed emits one weighted implication body=>head per clause, plus
	// one hard implication head=>(OR of bodies) per head predicate.
	Decomposed
	// Simplification behaves as Standard, then inlines every occurrence of
	// a completed head predicate in the accompanying formula set with its
	// body disjunction, eliminating the head predicate entirely.
	Simplification
)

// group is one head predicate's completion unit: its canonical head atom
// (using the variables of its first clause) and every (possibly
// variable-renamed) clause body contributing to it.
type group struct {
	head    fol.AtomicFormula
	clauses []fol.WeightedDefiniteClause
}

// Complete runs predicate completion over defs (the S of §4.4) in the given
// mode, returning an equivalent set of weighted formulas. extra is the
// accompanying formula set F; Simplification mode returns a rewritten copy
// of it with completed head predicates eliminated (and no completed
// formulas), other modes return it unchanged.
func Complete(mode Mode, defs []fol.WeightedDefiniteClause, extra []fol.WeightedFormula) ([]fol.WeightedFormula, []fol.WeightedFormula, error) {
	groups, err := groupByHead(defs)
	if err != nil {
		return nil, nil, err
	}

	switch mode {
	case Standard:
		out := make([]fol.WeightedFormula, 0, len(groups))
		for _, g := range groups {
			out = append(out, standardEquivalence(g))
		}

		return out, extra, nil
	case Decomposed:
		out := make([]fol.WeightedFormula, 0, len(defs)+len(groups))

		for _, g := range groups {
			for _, c := range g.clauses {
				out = append(out, fol.WeightedFormula{
					Weight:  c.Weight,
					Formula: fol.Implies{Left: c.Clause.Body, Right: fol.Atomic{Atom: g.head}},
				})
			}

			out = append(out, fol.WeightedFormula{
				Weight:  fol.WeightHardFormula,
				Formula: fol.Implies{Left: fol.Atomic{Atom: g.head}, Right: bodyDisjunction(g)},
			})
		}

		return out, extra, nil
	case Simplification:
		equivalences := make([]fol.WeightedFormula, 0, len(groups))

		rewritten := make([]fol.WeightedFormula, len(extra))
		copy(rewritten, extra)

		for _, g := range groups {
			equivalences = append(equivalences, standardEquivalence(g))

			for i, wf := range rewritten {
				rewritten[i] = fol.WeightedFormula{
					Weight:  wf.Weight,
					Formula: inlinePredicate(wf.Formula, g),
				}
			}
		}
		// The completed head predicates are now derived and do not appear
		// in the MRF: they are absent from the returned formula sets
		// (equivalences is discarded, only the rewritten accompanying
		// formulas survive).
		return nil, rewritten, nil
	}

	return nil, nil, fmt.Errorf("unknown predicate completion mode %d", mode)
}

// groupByHead partitions definite clauses first by head signature and then
// by head argument *pattern* (which function symbol, if any, occupies each
// argument slot). Clauses sharing a signature but using different function
// symbols in a functional head position are domain-independent axioms over
// distinct fluents/events and are specialized into separate completion
// units rather than merged -- see §4.4's "specialized ... duplicated once
// per distinct head function symbol".
func groupByHead(defs []fol.WeightedDefiniteClause) ([]*group, error) {
	index := make(map[string]*group)

	var order []string

	for _, d := range defs {
		head, err := canonicalHead(d.Clause.Head)
		if err != nil {
			return nil, err
		}

		key := d.Clause.Head.Signature().String() + "#" + patternKey(head)

		g, ok := index[key]
		if !ok {
			g = &group{head: head}
			index[key] = g
			order = append(order, key)
		}

		g.clauses = append(g.clauses, d)
	}

	out := make([]*group, 0, len(order))
	for _, key := range order {
		out = append(out, index[key])
	}

	return out, nil
}

// patternKey summarizes a head atom's argument shapes: "_" for a bare
// variable slot, "symbol/arity" for a functional slot.
func patternKey(head fol.AtomicFormula) string {
	key := ""

	for _, a := range head.Args {
		switch v := a.(type) {
		case fol.TermFunction:
			key += fmt.Sprintf("|%s/%d", v.Symbol, len(v.Args))
		default:
			key += "|_"
		}
	}

	return key
}

// canonicalHead validates invariant I3 (head args are variables or
// functions of variables) and returns the head atom used as the bound
// variable template for every clause in the group.
func canonicalHead(head fol.AtomicFormula) (fol.AtomicFormula, error) {
	for _, a := range head.Args {
		if !isVariableOrFunctionOfVariables(a) {
			return fol.AtomicFormula{}, fmt.Errorf(
				"invalid definite clause head %s: argument %s is neither a variable nor a function of variables", head, a)
		}
	}

	return head, nil
}

func isVariableOrFunctionOfVariables(t fol.Term) bool {
	switch v := t.(type) {
	case fol.Variable:
		return true
	case fol.TermFunction:
		for _, a := range v.Args {
			if _, ok := a.(fol.Variable); !ok {
				return false
			}
		}

		return true
	default:
		return false
	}
}
