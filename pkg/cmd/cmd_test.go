package cmd

import (
	"testing"

	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/identity"
	"github.com/anskarl/lomrf/pkg/parse"
)

func TestParseWeightModeFlag(t *testing.T) {
	cases := map[string]parse.WeightMode{
		"":            parse.KeepWeights,
		"keep":        parse.KeepWeights,
		"remove_all":  parse.RemoveAllWeights,
		"remove_soft": parse.RemoveSoftWeights,
	}

	for in, want := range cases {
		if got := parseWeightModeFlag(in); got != want {
			t.Errorf("parseWeightModeFlag(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCompletionModeFlag(t *testing.T) {
	cases := map[string]int{
		"":               0,
		"standard":       0,
		"decomposed":     1,
		"simplification": 2,
	}

	for in, want := range cases {
		if got := int(completionModeFlag(in)); got != want {
			t.Errorf("completionModeFlag(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseSignatures(t *testing.T) {
	got := parseSignatures([]string{"Friends/2", "Smokes/1"})

	want := []fol.AtomSignature{{Symbol: "Friends", Arity: 2}, {Symbol: "Smokes", Arity: 1}}

	if len(got) != len(want) {
		t.Fatalf("expected %d signatures, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("signature %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFormatGroundAtom(t *testing.T) {
	predicates := fol.NewPredicateSchema()
	predicates.Declare(fol.AtomSignature{Symbol: "Smokes", Arity: 1}, []string{"person"})

	domains := fol.NewConstantsDomainBuilder().AddAll("person", []string{"Anna", "Bob"}).Result()

	ids, err := identity.Build(predicates, domains)
	if err != nil {
		t.Fatalf("identity.Build: %v", err)
	}

	start, _, ok := ids.RangeOf(fol.AtomSignature{Symbol: "Smokes", Arity: 1})
	if !ok {
		t.Fatalf("expected Smokes/1 to be registered")
	}

	got := formatGroundAtom(ids, start, true)

	want := "Smokes(Anna) true"
	if got != want {
		t.Errorf("formatGroundAtom = %q, want %q", got, want)
	}
}
