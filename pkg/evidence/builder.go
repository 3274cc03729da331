package evidence

import (
	"fmt"

	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/identity"
)

// Builder incrementally constructs a DB: predicate modes are declared up
// front, then evidence atoms and function mappings are asserted one at a
// time. Result() finalizes an immutable snapshot.
type Builder struct {
	identity *identity.Function
	modes    map[fol.AtomSignature]Mode
	truth    map[int]fol.TriState
	err      error
}

// NewBuilder creates an evidence builder over an already-built identity
// function (C8).
func NewBuilder(id *identity.Function) *Builder {
	return &Builder{
		identity: id,
		modes:    make(map[fol.AtomSignature]Mode),
		truth:    make(map[int]fol.TriState),
	}
}

// DeclareCWA marks sig closed-world: atoms never asserted default to FALSE.
func (b *Builder) DeclareCWA(sig fol.AtomSignature) *Builder {
	b.modes[sig] = CWA
	return b
}

// DeclareOWA marks sig open-world: atoms never asserted default to UNKNOWN.
// This is also the implicit default for any predicate not declared either
// way.
func (b *Builder) DeclareOWA(sig fol.AtomSignature) *Builder {
	b.modes[sig] = OWA
	return b
}

// Assert records a single evidence atom's truth. Asserting the same ground
// atom twice with conflicting truth values is an error detected at Result.
func (b *Builder) Assert(atom fol.EvidenceAtom) *Builder {
	if b.err != nil {
		return b
	}

	id, ok := b.identity.Encode(atom.Signature, atom.Args)
	if !ok {
		b.err = fmt.Errorf("evidence: cannot assert %s%v: not a valid ground atom", atom.Signature, atom.Args)
		return b
	}

	if existing, ok := b.truth[id]; ok && existing != atom.Truth {
		b.err = fmt.Errorf("evidence: conflicting assertions for %s%v: %s then %s",
			atom.Signature, atom.Args, existing, atom.Truth)

		return b
	}

	b.truth[id] = atom.Truth

	return b
}

// AssertFunctionMapping records `retval = fn(args)` as a TRUE assertion of
// the auxiliary predicate Aux_fn(retval, args...), implicitly closed-world
// (only true tuples are ever given), per §4.6.
func (b *Builder) AssertFunctionMapping(fm fol.FunctionMapping) *Builder {
	if b.err != nil {
		return b
	}

	sig := AuxPredicateSignature(fm.Function, len(fm.Args))
	b.modes[sig] = CWA

	args := make([]string, 0, len(fm.Args)+1)
	args = append(args, fm.ReturnValue)
	args = append(args, fm.Args...)

	return b.Assert(fol.EvidenceAtom{Signature: sig, Args: args, Truth: fol.True})
}

// Result finalizes an immutable DB snapshot, or returns the first error
// encountered during assertion.
func (b *Builder) Result() (*DB, error) {
	if b.err != nil {
		return nil, b.err
	}

	modes := make(map[fol.AtomSignature]Mode, len(b.modes))
	for k, v := range b.modes {
		modes[k] = v
	}

	truth := make(map[int]fol.TriState, len(b.truth))
	for k, v := range b.truth {
		truth[k] = v
	}

	return &DB{identity: b.identity, modes: modes, truth: truth}, nil
}
