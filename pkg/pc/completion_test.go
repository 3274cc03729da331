package pc

import (
	"testing"

	"github.com/anskarl/lomrf/pkg/fol"
)

func TestStandardCompletionSingleClause(t *testing.T) {
	x := fol.Variable{Symbol: "x", Domain: "person"}
	y := fol.Variable{Symbol: "y", Domain: "person"}

	head := fol.AtomicFormula{Symbol: "Q", Args: []fol.Term{x}}
	body := fol.Atomic{Atom: fol.AtomicFormula{Symbol: "P", Args: []fol.Term{x, y}}}

	def := fol.WeightedDefiniteClause{
		Weight: fol.WeightHardFormula,
		Clause: fol.DefiniteClause{Head: head, Body: body},
	}

	out, extra, err := Complete(Standard, []fol.WeightedDefiniteClause{def}, nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if extra != nil {
		t.Fatalf("expected no accompanying formulas, got %v", extra)
	}

	if len(out) != 1 {
		t.Fatalf("expected 1 equivalence, got %d", len(out))
	}

	eq, ok := out[0].Formula.(fol.Equivalence)
	if !ok {
		t.Fatalf("expected Equivalence, got %T", out[0].Formula)
	}

	if _, ok := eq.Right.(fol.ExistentialQuantifier); !ok {
		t.Fatalf("expected body-only variable y to be existentially closed, got %T", eq.Right)
	}
}

func TestDecomposedCompletion(t *testing.T) {
	x := fol.Variable{Symbol: "x", Domain: "person"}
	head := fol.AtomicFormula{Symbol: "Q", Args: []fol.Term{x}}
	body := fol.Atomic{Atom: fol.AtomicFormula{Symbol: "P", Args: []fol.Term{x}}}

	def := fol.WeightedDefiniteClause{
		Weight: 2.5,
		Clause: fol.DefiniteClause{Head: head, Body: body},
	}

	out, _, err := Complete(Decomposed, []fol.WeightedDefiniteClause{def}, nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("expected 2 formulas (forward + hard backward), got %d", len(out))
	}

	if out[0].Weight != 2.5 {
		t.Fatalf("expected forward implication to keep clause weight 2.5, got %v", out[0].Weight)
	}

	if !out[1].IsHard() {
		t.Fatalf("expected backward implication to be hard")
	}
}
