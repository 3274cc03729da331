package parse

import (
	"testing"

	"github.com/anskarl/lomrf/pkg/fol"
)

func kbForEvidenceTests(t *testing.T) *KB {
	t.Helper()

	return mustParseKB(t, `
person = {Anna, Bob, Ed}

Friends(person,person)
Smokes(person)
`)
}

func TestParseEvidenceFilePositiveNegativeQuery(t *testing.T) {
	kb := kbForEvidenceTests(t)

	src := `
Friends(Anna,Bob)
!Smokes(Bob)
?Smokes(Ed)
`

	ev, err := ParseEvidenceFile(src, kb.Predicates, kb.Functions, kb.Domains)
	if err != nil {
		t.Fatalf("ParseEvidenceFile: %v", err)
	}

	if len(ev.Atoms) != 3 {
		t.Fatalf("expected 3 evidence atoms, got %d", len(ev.Atoms))
	}

	if ev.Atoms[0].Truth != fol.True || ev.Atoms[0].Signature.Symbol != "Friends" {
		t.Fatalf("unexpected first atom: %+v", ev.Atoms[0])
	}

	if ev.Atoms[1].Truth != fol.False || ev.Atoms[1].Signature.Symbol != "Smokes" {
		t.Fatalf("unexpected second atom: %+v", ev.Atoms[1])
	}

	if ev.Atoms[2].Truth != fol.Unknown {
		t.Fatalf("unexpected third atom: %+v", ev.Atoms[2])
	}
}

func TestParseEvidenceFileUnknownConstantIsError(t *testing.T) {
	kb := kbForEvidenceTests(t)

	src := `Smokes(Zed)`

	if _, err := ParseEvidenceFile(src, kb.Predicates, kb.Functions, kb.Domains); err == nil {
		t.Fatalf("expected an error for constant Zed not in domain person")
	}
}

func TestParseEvidenceFileUndeclaredPredicateIsError(t *testing.T) {
	kb := kbForEvidenceTests(t)

	src := `Cancer(Anna)`

	if _, err := ParseEvidenceFile(src, kb.Predicates, kb.Functions, kb.Domains); err == nil {
		t.Fatalf("expected an error for undeclared predicate Cancer/1")
	}
}

func TestParseEvidenceFileFunctionMapping(t *testing.T) {
	kb := mustParseKB(t, `
id = {1,2,3}
name = {anna,bob}

name lookupName(id)
`)

	src := `anna = lookupName(1)`

	ev, err := ParseEvidenceFile(src, kb.Predicates, kb.Functions, kb.Domains)
	if err != nil {
		t.Fatalf("ParseEvidenceFile: %v", err)
	}

	if len(ev.FunctionMappings) != 1 {
		t.Fatalf("expected 1 function mapping, got %d", len(ev.FunctionMappings))
	}

	fm := ev.FunctionMappings[0]
	if fm.Function != "lookupName" || fm.ReturnValue != "anna" || len(fm.Args) != 1 || fm.Args[0] != "1" {
		t.Fatalf("unexpected mapping: %+v", fm)
	}
}

func TestParseEvidenceFileFunctionMappingBadReturnDomainIsError(t *testing.T) {
	kb := mustParseKB(t, `
id = {1,2,3}
name = {anna,bob}

name lookupName(id)
`)

	src := `charlie = lookupName(1)`

	if _, err := ParseEvidenceFile(src, kb.Predicates, kb.Functions, kb.Domains); err == nil {
		t.Fatalf("expected an error: return value charlie is not a member of domain name")
	}
}
