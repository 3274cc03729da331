package evidence

import (
	"testing"

	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/identity"
)

func buildHappensDB(t *testing.T) (*DB, fol.AtomSignature) {
	t.Helper()

	domains := fol.NewConstantsDomainBuilder().
		AddAll("event", []string{"walking", "running"}).
		AddAll("time", fol.IntRange(0, 3)).
		Result()

	schema := fol.NewPredicateSchema()
	sig := fol.AtomSignature{Symbol: "Happens", Arity: 2}
	schema.Declare(sig, []string{"event", "time"})

	id, err := identity.Build(schema, domains)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	db, err := NewBuilder(id).
		DeclareCWA(sig).
		Assert(fol.EvidenceAtom{Signature: sig, Args: []string{"walking", "1"}, Truth: fol.True}).
		Assert(fol.EvidenceAtom{Signature: sig, Args: []string{"running", "2"}, Truth: fol.False}).
		Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}

	return db, sig
}

func TestCWADefaultsUnassertedToFalse(t *testing.T) {
	db, sig := buildHappensDB(t)

	truth, ok := db.Apply(sig, []string{"walking", "0"})
	if !ok || truth != fol.False {
		t.Fatalf("Apply(walking,0) = %v, %v; want FALSE, true", truth, ok)
	}

	truth, ok = db.Apply(sig, []string{"walking", "1"})
	if !ok || truth != fol.True {
		t.Fatalf("Apply(walking,1) = %v, %v; want TRUE, true", truth, ok)
	}

	if db.Contains(sig, []string{"walking", "0"}) {
		t.Fatalf("expected unasserted atom to report Contains=false")
	}

	if !db.Contains(sig, []string{"walking", "1"}) {
		t.Fatalf("expected asserted atom to report Contains=true")
	}

	numTrue, err := db.NumberOfTrue(sig)
	if err != nil || numTrue != 1 {
		t.Fatalf("NumberOfTrue = %d, %v; want 1, nil", numTrue, err)
	}

	numKnown, err := db.NumberOfKnown(sig)
	if err != nil || numKnown != 8 {
		t.Fatalf("NumberOfKnown = %d, %v; want 8 (CWA => all known), nil", numKnown, err)
	}
}

func TestOWADefaultsUnassertedToUnknown(t *testing.T) {
	domains := fol.NewConstantsDomainBuilder().
		AddAll("event", []string{"walking", "running"}).
		AddAll("time", fol.IntRange(0, 1)).
		Result()

	schema := fol.NewPredicateSchema()
	sig := fol.AtomSignature{Symbol: "Initiated", Arity: 2}
	schema.Declare(sig, []string{"event", "time"})

	id, err := identity.Build(schema, domains)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	db, err := NewBuilder(id).
		DeclareOWA(sig).
		Assert(fol.EvidenceAtom{Signature: sig, Args: []string{"walking", "0"}, Truth: fol.True}).
		Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}

	unk, err := db.NumberOfUnknown(sig)
	if err != nil || unk != 3 {
		t.Fatalf("NumberOfUnknown = %d, %v; want 3, nil", unk, err)
	}

	known, err := db.NumberOfKnown(sig)
	if err != nil || known != 1 {
		t.Fatalf("NumberOfKnown = %d, %v; want 1, nil", known, err)
	}
}

func TestAssertConflictingTruthIsError(t *testing.T) {
	domains := fol.NewConstantsDomainBuilder().AddAll("person", []string{"anna"}).Result()

	schema := fol.NewPredicateSchema()
	sig := fol.AtomSignature{Symbol: "Smokes", Arity: 1}
	schema.Declare(sig, []string{"person"})

	id, err := identity.Build(schema, domains)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, err = NewBuilder(id).
		Assert(fol.EvidenceAtom{Signature: sig, Args: []string{"anna"}, Truth: fol.True}).
		Assert(fol.EvidenceAtom{Signature: sig, Args: []string{"anna"}, Truth: fol.False}).
		Result()
	if err == nil {
		t.Fatalf("expected conflicting assertions to error")
	}
}

func TestFunctionMappingBecomesAuxPredicate(t *testing.T) {
	domains := fol.NewConstantsDomainBuilder().
		AddAll("person", []string{"anna", "bob"}).
		Result()

	auxSig := AuxPredicateSignature("spouse", 1)

	schema := fol.NewPredicateSchema()
	schema.Declare(auxSig, []string{"person", "person"})

	id, err := identity.Build(schema, domains)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	db, err := NewBuilder(id).
		AssertFunctionMapping(fol.FunctionMapping{Function: "spouse", ReturnValue: "bob", Args: []string{"anna"}}).
		Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}

	truth, ok := db.Apply(auxSig, []string{"bob", "anna"})
	if !ok || truth != fol.True {
		t.Fatalf("Apply(Aux_spouse(bob,anna)) = %v, %v; want TRUE, true", truth, ok)
	}

	if db.ModeOf(auxSig) != CWA {
		t.Fatalf("expected function-mapping auxiliary predicate to be CWA")
	}
}
