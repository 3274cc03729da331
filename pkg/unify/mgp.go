package unify

import (
	"fmt"

	"github.com/anskarl/lomrf/pkg/fol"
)

// MGP computes the most general pattern (least general generalization) of
// two atomic formulas with the same signature: the unique (up to renaming)
// atomic formula G such that G subsumes both A and B, and every common
// generalization of A and B subsumes G.
//
// Returns (G, true), or (fol.AtomicFormula{}, false) if the two atoms do
// not share a signature.
func MGP(a, b fol.AtomicFormula) (fol.AtomicFormula, bool) {
	if a.Signature() != b.Signature() {
		return fol.AtomicFormula{}, false
	}

	gen := newGeneralizer()

	args := make([]fol.Term, len(a.Args))
	for i := range a.Args {
		args[i] = gen.generalize(a.Args[i], b.Args[i])
	}

	return fol.AtomicFormula{Symbol: a.Symbol, Args: args, IsDynamic: a.IsDynamic}, true
}

// generalizer performs anti-unification: whenever two subterms disagree and
// neither is a bare variable, they are replaced by a fresh variable (a bare
// variable on either side is kept instead, see generalize), and the same pair
// of disagreeing subterms always maps to the same fresh variable (so shared
// structure in the inputs yields shared variables in the output).
type generalizer struct {
	cache   map[pairKey]fol.Variable
	counter int
}

type pairKey struct {
	left, right string
}

func newGeneralizer() *generalizer {
	return &generalizer{cache: make(map[pairKey]fol.Variable)}
}

func (g *generalizer) generalize(t1, t2 fol.Term) fol.Term {
	if t1.Equals(t2) {
		return t1
	}

	f1, ok1 := t1.(fol.TermFunction)
	f2, ok2 := t2.(fol.TermFunction)

	if ok1 && ok2 && f1.Symbol == f2.Symbol && len(f1.Args) == len(f2.Args) {
		args := make([]fol.Term, len(f1.Args))
		for i := range f1.Args {
			args[i] = g.generalize(f1.Args[i], f2.Args[i])
		}

		return fol.TermFunction{Symbol: f1.Symbol, Args: args, ResultDomain: f1.ResultDomain}
	}

	// When exactly one (or both, favoring t1) side of a mismatch is already
	// a bare variable, that variable is itself the most general common
	// generalization -- it subsumes both a function application and any
	// other term. Only invent a fresh variable when neither side is one
	// (e.g. differing constants, or functions with differing symbols).
	if _, isVar := t1.(fol.Variable); isVar {
		return t1
	}

	if _, isVar := t2.(fol.Variable); isVar {
		return t2
	}

	key := pairKey{t1.String(), t2.String()}

	if v, ok := g.cache[key]; ok {
		return v
	}

	g.counter++
	v := fol.Variable{Symbol: fmt.Sprintf("_g%d", g.counter), Domain: fol.AnyDomain}
	g.cache[key] = v

	return v
}
