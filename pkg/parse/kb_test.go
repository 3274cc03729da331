package parse

import (
	"testing"

	"github.com/anskarl/lomrf/pkg/fol"
)

const friendsAndSmokersKB = `
person = {Anna, Bob, Ed}

Friends(person,person)
Smokes(person)
Cancer(person)

1.5 Friends(x,y) => (Smokes(x) <=> Smokes(y))
2.3 Smokes(x) => Cancer(x)
Friends(x,y) v Friends(y,x).
`

func mustParseKB(t *testing.T, src string) *KB {
	t.Helper()

	kb, err := ParseKB(src, fol.NewDynamicRegistry())
	if err != nil {
		t.Fatalf("ParseKB: %v", err)
	}

	return kb
}

func TestParseKBDomainsAndSchemas(t *testing.T) {
	kb := mustParseKB(t, friendsAndSmokersKB)

	if kb.Domains.Size("person") != 3 {
		t.Fatalf("expected 3 people, got %d", kb.Domains.Size("person"))
	}

	if argDomains, ok := kb.Predicates.Lookup(fol.AtomSignature{Symbol: "Friends", Arity: 2}); !ok || len(argDomains) != 2 {
		t.Fatalf("Friends/2 not declared correctly: %v %v", argDomains, ok)
	}

	if _, ok := kb.Predicates.Lookup(fol.AtomSignature{Symbol: "Smokes", Arity: 1}); !ok {
		t.Fatalf("Smokes/1 not declared")
	}

	if len(kb.Formulas) != 3 {
		t.Fatalf("expected 3 formulas, got %d", len(kb.Formulas))
	}
}

func TestParseKBWeightsAndHardness(t *testing.T) {
	kb := mustParseKB(t, friendsAndSmokersKB)

	if kb.Formulas[0].Weight != 1.5 || kb.Formulas[0].IsHard() {
		t.Fatalf("expected soft 1.5 weight, got %+v", kb.Formulas[0])
	}

	if kb.Formulas[1].Weight != 2.3 || kb.Formulas[1].IsHard() {
		t.Fatalf("expected soft 2.3 weight, got %+v", kb.Formulas[1])
	}

	if !kb.Formulas[2].IsHard() {
		t.Fatalf("expected Friends(x,y) v Friends(y,x). to be hard, got %+v", kb.Formulas[2])
	}
}

func TestParseKBVariableDomainsResolved(t *testing.T) {
	kb := mustParseKB(t, friendsAndSmokersKB)

	vars := fol.FormulaVariables(kb.Formulas[0].Formula)
	if len(vars) == 0 {
		t.Fatalf("expected variables in %s", kb.Formulas[0].Formula)
	}

	for _, v := range vars {
		if v.Domain != "person" {
			t.Fatalf("expected variable %s bound to domain person, got %q", v, v.Domain)
		}
	}
}

func TestParseKBDefiniteClause(t *testing.T) {
	src := `
event = {E1,E2}
time = {0,...,3}

Happens(event,time)
HoldsAt(event,time)

HoldsAt(e,t) :- Happens(e,t).
`
	kb := mustParseKB(t, src)

	if len(kb.DefiniteClauses) != 1 {
		t.Fatalf("expected 1 definite clause, got %d", len(kb.DefiniteClauses))
	}

	dc := kb.DefiniteClauses[0]
	if dc.Clause.Head.Symbol != "HoldsAt" {
		t.Fatalf("unexpected head: %s", dc.Clause.Head)
	}

	if !dc.IsHard() {
		t.Fatalf("expected definite clause to default to hard weight")
	}
}

func TestParseKBUndeclaredPredicateIsError(t *testing.T) {
	src := `
person = {Anna, Bob}
Smokes(person)

Smokes(x) => Cancer(x).
`
	if _, err := ParseKB(src, fol.NewDynamicRegistry()); err == nil {
		t.Fatalf("expected an error for undeclared predicate Cancer/1")
	}
}

func TestParseKBDefiniteClauseInvalidHeadArgIsError(t *testing.T) {
	src := `
person = {Anna, Bob}
Knows(person,person)

Knows(Anna,y) :- Knows(y,Anna).
`
	if _, err := ParseKB(src, fol.NewDynamicRegistry()); err == nil {
		t.Fatalf("expected I3 violation error for constant Anna in a definite clause head")
	}
}

func TestParseKBIntRangeDomainExpansion(t *testing.T) {
	src := `
time = {0, ..., 4}
Tick(time)
`
	kb := mustParseKB(t, src)

	if kb.Domains.Size("time") != 5 {
		t.Fatalf("expected 5 time points, got %d", kb.Domains.Size("time"))
	}
}

func TestParseKBDynamicInfixAtom(t *testing.T) {
	src := `
time = {0,...,3}
Before(time,time)

Forall t1,t2 (Before(t1,t2) => t1 != t2).
`
	kb := mustParseKB(t, src)

	if len(kb.Formulas) != 1 {
		t.Fatalf("expected 1 formula, got %d", len(kb.Formulas))
	}
}
