package parse

import (
	"strings"
	"testing"

	"github.com/anskarl/lomrf/pkg/fol"
)

func TestWriteKBRoundTrip(t *testing.T) {
	kb := mustParseKB(t, friendsAndSmokersKB)

	out, err := WriteKB(kb, WriteOptions{WeightMode: KeepWeights})
	if err != nil {
		t.Fatalf("WriteKB: %v", err)
	}

	reparsed, err := ParseKB(out, fol.NewDynamicRegistry())
	if err != nil {
		t.Fatalf("ParseKB(WriteKB(kb)) failed: %v\noutput:\n%s", err, out)
	}

	if len(reparsed.Formulas) != len(kb.Formulas) {
		t.Fatalf("expected %d formulas after round-trip, got %d", len(kb.Formulas), len(reparsed.Formulas))
	}

	if len(reparsed.Domains.Names()) != len(kb.Domains.Names()) {
		t.Fatalf("expected %d domains after round-trip, got %d", len(kb.Domains.Names()), len(reparsed.Domains.Names()))
	}

	if len(reparsed.Predicates.Signatures()) != len(kb.Predicates.Signatures()) {
		t.Fatalf("expected %d predicates after round-trip, got %d",
			len(kb.Predicates.Signatures()), len(reparsed.Predicates.Signatures()))
	}

	if !strings.Contains(out, "1.5") || !strings.Contains(out, "2.3") {
		t.Fatalf("expected soft weights to survive KeepWeights, got:\n%s", out)
	}

	if !strings.Contains(out, ".") {
		t.Fatalf("expected the hard formula's trailing '.' to survive KeepWeights, got:\n%s", out)
	}
}

func TestWriteKBRemoveAllWeights(t *testing.T) {
	kb := mustParseKB(t, friendsAndSmokersKB)

	out, err := WriteKB(kb, WriteOptions{WeightMode: RemoveAllWeights})
	if err != nil {
		t.Fatalf("WriteKB: %v", err)
	}

	if strings.Contains(out, "1.5") || strings.Contains(out, "2.3") {
		t.Fatalf("expected no soft weights under RemoveAllWeights, got:\n%s", out)
	}

	reparsed, err := ParseKB(out, fol.NewDynamicRegistry())
	if err != nil {
		t.Fatalf("ParseKB(WriteKB(kb)) failed: %v\noutput:\n%s", err, out)
	}

	for _, wf := range reparsed.Formulas {
		if !fol.IsWeightUnknown(wf.Weight) {
			t.Fatalf("expected every formula to have an unknown weight under RemoveAllWeights, got %v", wf.Weight)
		}
	}
}

func TestWriteKBRemoveSoftWeightsKeepsHardMarker(t *testing.T) {
	kb := mustParseKB(t, friendsAndSmokersKB)

	out, err := WriteKB(kb, WriteOptions{WeightMode: RemoveSoftWeights})
	if err != nil {
		t.Fatalf("WriteKB: %v", err)
	}

	if strings.Contains(out, "1.5") || strings.Contains(out, "2.3") {
		t.Fatalf("expected no soft weights under RemoveSoftWeights, got:\n%s", out)
	}

	reparsed, err := ParseKB(out, fol.NewDynamicRegistry())
	if err != nil {
		t.Fatalf("ParseKB(WriteKB(kb)) failed: %v\noutput:\n%s", err, out)
	}

	hardCount := 0

	for _, wf := range reparsed.Formulas {
		if fol.IsWeightHard(wf.Weight) {
			hardCount++
		}
	}

	if hardCount == 0 {
		t.Fatalf("expected the originally-hard formula to remain hard under RemoveSoftWeights")
	}
}

func TestWriteKBCNFMode(t *testing.T) {
	kb := mustParseKB(t, friendsAndSmokersKB)

	out, err := WriteKB(kb, WriteOptions{CNF: true, WeightMode: KeepWeights})
	if err != nil {
		t.Fatalf("WriteKB: %v", err)
	}

	reparsed, err := ParseKB(out, fol.NewDynamicRegistry())
	if err != nil {
		t.Fatalf("ParseKB(WriteKB(kb, CNF)) failed: %v\noutput:\n%s", err, out)
	}

	if len(reparsed.Formulas) == 0 {
		t.Fatalf("expected at least one clause formula in CNF output")
	}
}
