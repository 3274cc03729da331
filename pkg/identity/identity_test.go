package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anskarl/lomrf/pkg/fol"
)

func buildAlphaFunction(t *testing.T) (*Function, fol.AtomSignature) {
	t.Helper()

	domains := fol.NewConstantsDomainBuilder().
		AddAll("event", []string{"E1", "E2", "E3"}).
		AddAll("fluent", []string{"F1", "F2"}).
		AddAll("time", fol.IntRange(0, 7)).
		Result()

	schema := fol.NewPredicateSchema()
	sig := fol.AtomSignature{Symbol: "Alpha", Arity: 3}
	schema.Declare(sig, []string{"event", "fluent", "time"})

	id, err := Build(schema, domains)
	require.NoError(t, err)

	return id, sig
}

func TestAlphaEncodeDecodeBounds(t *testing.T) {
	id, sig := buildAlphaFunction(t)

	assert.Equal(t, 48, id.NumberOfAtoms())

	first, ok := id.Encode(sig, []string{"E1", "F1", "0"})
	require.True(t, ok)
	assert.Equal(t, 1, first)

	last, ok := id.Encode(sig, []string{"E3", "F2", "7"})
	require.True(t, ok)
	assert.Equal(t, 48, last)

	gotSig, args, ok := id.Decode(first)
	require.True(t, ok)
	assert.Equal(t, sig, gotSig)
	assert.Equal(t, []string{"E1", "F1", "0"}, args)

	gotSig, args, ok = id.Decode(last)
	require.True(t, ok)
	assert.Equal(t, sig, gotSig)
	assert.Equal(t, []string{"E3", "F2", "7"}, args)
}

func TestAlphaEncodeRejectsUnknownOrWrongArity(t *testing.T) {
	id, sig := buildAlphaFunction(t)

	_, ok := id.Encode(sig, []string{"E9", "F1", "0"})
	assert.False(t, ok, "expected encode with unknown constant to fail")

	_, ok = id.Encode(sig, []string{"E1", "F1"})
	assert.False(t, ok, "expected encode with wrong arity to fail")

	_, ok = id.Encode(fol.AtomSignature{Symbol: "Nope", Arity: 1}, []string{"E1"})
	assert.False(t, ok, "expected encode of undeclared predicate to fail")
}

func TestAlphaMatchesIteratorFullAndPartial(t *testing.T) {
	id, sig := buildAlphaFunction(t)

	all, err := id.MatchesIterator(sig, nil)
	require.NoError(t, err)
	assert.Len(t, all, 48)

	fluentOnly, err := id.MatchesIterator(sig, map[int]string{1: "F1"})
	require.NoError(t, err)
	assert.Len(t, fluentOnly, 24)

	fluentAndTime, err := id.MatchesIterator(sig, map[int]string{1: "F1", 2: "0"})
	require.NoError(t, err)
	assert.Len(t, fluentAndTime, 3)

	for _, expected := range [][]string{{"E1", "F1", "0"}, {"E2", "F1", "0"}, {"E3", "F1", "0"}} {
		want, ok := id.Encode(sig, expected)
		require.True(t, ok)
		assert.Contains(t, fluentAndTime, want)
	}
}

func TestAlphaMatchesIteratorRejectsBadSlotOrConstant(t *testing.T) {
	id, sig := buildAlphaFunction(t)

	_, err := id.MatchesIterator(sig, map[int]string{5: "F1"})
	assert.Error(t, err, "expected error for out-of-range slot")

	_, err = id.MatchesIterator(sig, map[int]string{1: "F9"})
	assert.Error(t, err, "expected error for unknown constant")

	_, err = id.MatchesIterator(fol.AtomSignature{Symbol: "Nope", Arity: 1}, nil)
	assert.Error(t, err, "expected error for undeclared predicate")
}
