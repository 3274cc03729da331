package cnf

import (
	"testing"

	"github.com/anskarl/lomrf/pkg/fol"
)

func timeVar(t *testing.T) fol.Variable {
	t.Helper()
	return fol.Variable{Symbol: "t", Domain: "time"}
}

func mkDomains(t *testing.T, name string, constants ...string) *fol.ConstantsDomain {
	t.Helper()

	b := fol.NewConstantsDomainBuilder()
	b.AddAll(name, constants)

	return b.Result()
}

// TestCNFImplication verifies scenario 3 of §8: CNF of
// InitiatedAt(Fight,t) <=> Happens(Abrupt,t).
func TestCNFImplication(t *testing.T) {
	tv := timeVar(t)
	init := fol.AtomicFormula{Symbol: "InitiatedAt", Args: []fol.Term{fol.Constant{Symbol: "Fight"}, tv}}
	happens := fol.AtomicFormula{Symbol: "Happens", Args: []fol.Term{fol.Constant{Symbol: "Abrupt"}, tv}}

	f := fol.Equivalence{Left: fol.Atomic{Atom: init}, Right: fol.Atomic{Atom: happens}}
	domains := mkDomains(t, "time", "1", "2")

	clauses, err := ToCNF(fol.WeightedFormula{Weight: fol.WeightHardFormula, Formula: f}, domains)
	if err != nil {
		t.Fatalf("ToCNF: %v", err)
	}

	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}

	for _, c := range clauses {
		if len(c.Literals) != 2 {
			t.Fatalf("expected 2 literals per clause, got %d (%s)", len(c.Literals), c)
		}

		if !fol.IsWeightHard(c.Weight) {
			t.Fatalf("expected hard weight to survive distribution, got %v", c.Weight)
		}
	}
}

// TestExistentialExpansion verifies scenario 4 of §8: Exist t Happens(e,t)
// over time={1,2,3,4} yields one clause of 4 positive literals.
func TestExistentialExpansion(t *testing.T) {
	ev := fol.Variable{Symbol: "e", Domain: "event"}
	tv := fol.Variable{Symbol: "t", Domain: "time"}
	happens := fol.AtomicFormula{Symbol: "Happens", Args: []fol.Term{ev, tv}}

	f := fol.ExistentialQuantifier{Variable: tv, Operand: fol.Atomic{Atom: happens}}

	b := fol.NewConstantsDomainBuilder()
	b.AddAll("time", []string{"1", "2", "3", "4"})
	domains := b.Result()

	clauses, err := ToCNF(fol.WeightedFormula{Weight: 1.5, Formula: f}, domains)
	if err != nil {
		t.Fatalf("ToCNF: %v", err)
	}

	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}

	if len(clauses[0].Literals) != 4 {
		t.Fatalf("expected 4 literals, got %d", len(clauses[0].Literals))
	}

	for _, l := range clauses[0].Literals {
		if l.Negative {
			t.Fatalf("expected all-positive literals, got %s", l)
		}
	}
}

func TestToConjunctsDistributesOrOverAnd(t *testing.T) {
	a := fol.Atomic{Atom: fol.AtomicFormula{Symbol: "A"}}
	b := fol.Atomic{Atom: fol.AtomicFormula{Symbol: "B"}}
	c := fol.Atomic{Atom: fol.AtomicFormula{Symbol: "C"}}

	f := fol.Or{Left: a, Right: fol.And{Left: b, Right: c}}

	conjuncts := toConjuncts(f)
	if len(conjuncts) != 2 {
		t.Fatalf("expected 2 conjuncts (A v B) ^ (A v C), got %d", len(conjuncts))
	}
}
