package parse

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/anskarl/lomrf/pkg/fol"
)

// resolveAndCheck binds each variable's domain from the enclosing
// predicate/function schema slot (type resolution) and checks invariants
// (I1)-(I4), aggregating every violation found (§4.1).
func resolveAndCheck(
	formulas []fol.WeightedFormula,
	definite []fol.WeightedDefiniteClause,
	predicates *fol.PredicateSchema,
	functions *fol.FunctionSchema,
	domains *fol.ConstantsDomain,
) error {
	c := &checker{predicates: predicates, functions: functions, domains: domains}

	for i := range formulas {
		formulas[i].Formula = c.resolveFormula(formulas[i].Formula)
	}

	for i := range definite {
		c.resolveAtomArgs(&definite[i].Clause.Head, nil)
		definite[i].Clause.Body = c.resolveFormula(definite[i].Clause.Body)
		c.checkDefiniteClauseHead(definite[i].Clause.Head)
	}

	return c.errs.ErrorOrNil()
}

type checker struct {
	predicates *fol.PredicateSchema
	functions  *fol.FunctionSchema
	domains    *fol.ConstantsDomain
	errs       *multierror.Error
}

func (c *checker) resolveFormula(f fol.Formula) fol.Formula {
	switch n := f.(type) {
	case fol.Atomic:
		c.resolveAtomArgs(&n.Atom, nil)
		return n
	case fol.Not:
		n.Operand = c.resolveFormula(n.Operand)
		return n
	case fol.And:
		n.Left = c.resolveFormula(n.Left)
		n.Right = c.resolveFormula(n.Right)

		return n
	case fol.Or:
		n.Left = c.resolveFormula(n.Left)
		n.Right = c.resolveFormula(n.Right)

		return n
	case fol.Implies:
		n.Left = c.resolveFormula(n.Left)
		n.Right = c.resolveFormula(n.Right)

		return n
	case fol.Equivalence:
		n.Left = c.resolveFormula(n.Left)
		n.Right = c.resolveFormula(n.Right)

		return n
	case fol.UniversalQuantifier:
		n.Operand = c.resolveFormula(n.Operand)
		return n
	case fol.ExistentialQuantifier:
		n.Operand = c.resolveFormula(n.Operand)
		return n
	default:
		return f
	}
}

// resolveAtomArgs binds the domain of every bare-variable argument (and,
// one level down, every bare-variable argument of a function-of-variables
// argument) from the atom's predicate schema slot (I1), and checks arity
// (I2) and the one-level function-nesting limit (I4).
func (c *checker) resolveAtomArgs(a *fol.AtomicFormula, _ []string) {
	if a.IsDynamic {
		return
	}

	sig := a.Signature()

	argDomains, ok := c.predicates.Lookup(sig)
	if !ok {
		c.errs = multierror.Append(c.errs, fmt.Errorf("undeclared predicate %s", sig))
		return
	}

	if err := fol.CheckArity(sig, a.Args); err != nil {
		c.errs = multierror.Append(c.errs, err)
		return
	}

	for i, arg := range a.Args {
		a.Args[i] = c.resolveTermArg(arg, argDomains[i], 0)
	}
}

// resolveTermArg binds a bare Variable's domain to expectedDomain, and
// recurses one level into a TermFunction's own arguments using its
// function-schema argument domains; depth > 0 here means we are already one
// level inside a function, so a further nested TermFunction violates I4.
func (c *checker) resolveTermArg(t fol.Term, expectedDomain string, depth int) fol.Term {
	switch v := t.(type) {
	case fol.Variable:
		return fol.Variable{Symbol: v.Symbol, Domain: expectedDomain, Index: v.Index}
	case fol.TermFunction:
		if depth > 0 {
			c.errs = multierror.Append(c.errs, fmt.Errorf(
				"nested function %s exceeds the one-level function-argument limit (I4)", v))

			return t
		}

		sig := fol.AtomSignature{Symbol: v.Symbol, Arity: len(v.Args)}

		resultDomain, argDomains, ok := c.functions.Lookup(sig)
		if !ok {
			c.errs = multierror.Append(c.errs, fmt.Errorf("undeclared function %s", sig))
			return t
		}

		if resultDomain != expectedDomain && expectedDomain != "" {
			c.errs = multierror.Append(c.errs, fmt.Errorf(
				"function %s has result domain %q, expected %q for this argument slot", sig, resultDomain, expectedDomain))
		}

		args := make([]fol.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = c.resolveTermArg(a, argDomains[i], depth+1)
		}

		return fol.TermFunction{Symbol: v.Symbol, Args: args, ResultDomain: resultDomain}
	default:
		return t
	}
}

// checkDefiniteClauseHead validates I3: head arguments are variables or
// functions of variables only (no constants, no nested functions).
func (c *checker) checkDefiniteClauseHead(head fol.AtomicFormula) {
	for _, a := range head.Args {
		if !isVariableOrFunctionOfVariables(a) {
			c.errs = multierror.Append(c.errs, fmt.Errorf(
				"invalid definite clause head %s: argument %s is neither a variable nor a function of variables (I3)", head, a))
		}
	}
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
