package cnf

import "github.com/anskarl/lomrf/pkg/fol"

// standardizer gives every quantified variable occurrence a fresh
// standardize-apart index, so that nested/repeated quantifiers over
// variables sharing a symbol (e.g. two separate `Exist t ...` scopes) don't
// collide during existential domain-expansion substitution.
type standardizer struct {
	counter int
}

// StandardizeApart renames every quantifier-bound variable (and its uses
// within that quantifier's scope) to a fresh index, leaving free variables
// untouched.
func StandardizeApart(f fol.Formula) fol.Formula {
	s := &standardizer{}
	return s.apart(f, map[string]fol.Variable{})
}

func (s *standardizer) apart(f fol.Formula, renaming map[string]fol.Variable) fol.Formula {
	switch n := f.(type) {
	case fol.Atomic:
		return fol.Atomic{Atom: renameAtom(n.Atom, renaming)}
	case fol.Not:
		return fol.Not{Operand: s.apart(n.Operand, renaming)}
	case fol.And:
		return fol.And{Left: s.apart(n.Left, renaming), Right: s.apart(n.Right, renaming)}
	case fol.Or:
		return fol.Or{Left: s.apart(n.Left, renaming), Right: s.apart(n.Right, renaming)}
	case fol.UniversalQuantifier:
		fresh, next := s.rename(n.Variable, renaming)
		return fol.UniversalQuantifier{Variable: fresh, Operand: s.apart(n.Operand, next)}
	case fol.ExistentialQuantifier:
		fresh, next := s.rename(n.Variable, renaming)
		return fol.ExistentialQuantifier{Variable: fresh, Operand: s.apart(n.Operand, next)}
	}

	return f
}

func (s *standardizer) rename(v fol.Variable, renaming map[string]fol.Variable) (fol.Variable, map[string]fol.Variable) {
	s.counter++
	fresh := fol.Variable{Symbol: v.Symbol, Domain: v.Domain, Index: s.counter}

	next := make(map[string]fol.Variable, len(renaming)+1)
	for k, val := range renaming {
		next[k] = val
	}

	next[v.String()] = fresh

	return fresh, next
}

func renameAtom(a fol.AtomicFormula, renaming map[string]fol.Variable) fol.AtomicFormula {
	args := make([]fol.Term, len(a.Args))
	for i, t := range a.Args {
		args[i] = renameTerm(t, renaming)
	}

	return fol.AtomicFormula{Symbol: a.Symbol, Args: args, IsDynamic: a.IsDynamic}
}

func renameTerm(t fol.Term, renaming map[string]fol.Variable) fol.Term {
	switch v := t.(type) {
	case fol.Variable:
		if fresh, ok := renaming[v.String()]; ok {
			return fresh
		}

		return v
	case fol.TermFunction:
		args := make([]fol.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, renaming)
		}

		return fol.TermFunction{Symbol: v.Symbol, Args: args, ResultDomain: v.ResultDomain}
	default:
		return t
	}
}

// SubstituteVar replaces every occurrence of variable v by term c within a
// formula.
func SubstituteVar(f fol.Formula, v fol.Variable, c fol.Term) fol.Formula {
	renaming := map[string]fol.Term{v.String(): c}
	return substitute(f, renaming)
}

// SubstituteVars replaces every occurrence of each variable named in
// renaming (keyed by Variable.String()) by its mapped term within a
// formula. Used by predicate completion to re-express a clause's body in
// terms of its head group's canonical variables.
func SubstituteVars(f fol.Formula, renaming map[string]fol.Term) fol.Formula {
	return substitute(f, renaming)
}

func substitute(f fol.Formula, renaming map[string]fol.Term) fol.Formula {
	switch n := f.(type) {
	case fol.Atomic:
		return fol.Atomic{Atom: substituteAtom(n.Atom, renaming)}
	case fol.Not:
		return fol.Not{Operand: substitute(n.Operand, renaming)}
	case fol.And:
		return fol.And{Left: substitute(n.Left, renaming), Right: substitute(n.Right, renaming)}
	case fol.Or:
		return fol.Or{Left: substitute(n.Left, renaming), Right: substitute(n.Right, renaming)}
	case fol.UniversalQuantifier:
		return fol.UniversalQuantifier{Variable: n.Variable, Operand: substitute(n.Operand, renaming)}
	case fol.ExistentialQuantifier:
		return fol.ExistentialQuantifier{Variable: n.Variable, Operand: substitute(n.Operand, renaming)}
	}

	return f
}

func substituteAtom(a fol.AtomicFormula, renaming map[string]fol.Term) fol.AtomicFormula {
	args := make([]fol.Term, len(a.Args))
	for i, t := range a.Args {
		args[i] = substituteTerm(t, renaming)
	}

	return fol.AtomicFormula{Symbol: a.Symbol, Args: args, IsDynamic: a.IsDynamic}
}

func substituteTerm(t fol.Term, renaming map[string]fol.Term) fol.Term {
	switch v := t.(type) {
	case fol.Variable:
		if repl, ok := renaming[v.String()]; ok {
			return repl
		}

		return v
	case fol.TermFunction:
		args := make([]fol.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, renaming)
		}

		return fol.TermFunction{Symbol: v.Symbol, Args: args, ResultDomain: v.ResultDomain}
	default:
		return t
	}
}
