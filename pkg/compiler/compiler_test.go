package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anskarl/lomrf/pkg/fol"
)

const friendsSmokersKB = `
person = {Anna, Bob, Ed}

Friends(person,person)
Smokes(person)
Cancer(person)

1.5 Friends(x,y) => (Smokes(x) <=> Smokes(y))
2.3 Smokes(x) => Cancer(x)
`

const friendsSmokersDB = `
Friends(Anna,Bob)
Friends(Bob,Anna)
Smokes(Anna)
!Smokes(Ed)
`

func TestCompileEndToEnd(t *testing.T) {
	res, err := Compile(context.Background(), friendsSmokersKB, friendsSmokersDB, Options{
		CWA:   []fol.AtomSignature{{Symbol: "Friends", Arity: 2}, {Symbol: "Smokes", Arity: 1}},
		Query: []fol.AtomSignature{{Symbol: "Cancer", Arity: 1}},
	})
	require.NoError(t, err)
	assert.NotZero(t, res.MRF.NumberOfAtoms(), "expected a non-empty MRF")

	n, err := res.Evidence.NumberOfTrue(fol.AtomSignature{Symbol: "Friends", Arity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Cancer is a query predicate with no evidence, so the Cancer(x) atoms
	// that occur in some ground constraint are in the MRF; at least one must
	// be.
	cancerSig := fol.AtomSignature{Symbol: "Cancer", Arity: 1}

	start, size, ok := res.Identity.RangeOf(cancerSig)
	require.True(t, ok, "Cancer/1 not present in identity function")

	found := false

	for id := start; id < start+size; id++ {
		if _, ok := res.MRF.Atom(id); ok {
			found = true
			break
		}
	}

	assert.True(t, found, "expected at least one Cancer/1 ground atom in the MRF")
}

func TestCompileUnsatisfiableHardClauseIsFatal(t *testing.T) {
	kb := `
person = {Anna}
Smokes(person)

Smokes(x).
`
	db := `!Smokes(Anna)`

	_, err := Compile(context.Background(), kb, db, Options{
		CWA: []fol.AtomSignature{{Symbol: "Smokes", Arity: 1}},
	})
	assert.Error(t, err, "expected an unsatisfiable-hard-clause error")
}

func TestCompileFunctionMappingRegistersAuxPredicate(t *testing.T) {
	kb := `
id = {1,2}
name = {anna,bob}

name lookupName(id)
Knows(name)
`
	db := `anna = lookupName(1)`

	res, err := Compile(context.Background(), kb, db, Options{})
	require.NoError(t, err)

	auxSig := fol.AtomSignature{Symbol: "Aux_lookupName", Arity: 2}
	_, _, ok := res.Identity.RangeOf(auxSig)
	assert.True(t, ok, "expected Aux_lookupName/2 to be registered in the identity function")
}
