package infer

import (
	"context"
	"testing"

	"github.com/anskarl/lomrf/pkg/mrf"
)

// Builds a tiny MRF in which parent clauses 0 and 1 ground to the same
// constraint {1,2} (so their dependency entries merge) and parent clause 0
// also grounds to a second constraint {3}, then checks CountGroundings and
// UpdateWeights against the
// Σ(parentWeight × signedCount) contract of §4.8.
func buildTwoParentMRF(t *testing.T) *mrf.MRF {
	t.Helper()

	b := mrf.NewBuilder(true)
	b.AddOrMergeConstraint([]int{1, 2}, 0, false, []mrf.ParentEntry{{ClauseIndex: 0, Count: 1}})
	b.AddOrMergeConstraint([]int{1, 2}, 0, false, []mrf.ParentEntry{{ClauseIndex: 1, Count: 2}})
	b.AddOrMergeConstraint([]int{3}, 0, false, []mrf.ParentEntry{{ClauseIndex: 0, Count: 1}})

	m := b.Result()

	// All three ground atoms start TRUE, satisfying every constraint, so
	// every constraint counts toward CountGroundings.
	for _, id := range []int{1, 2, 3} {
		m.SetTruth(id, true)
	}

	return m
}

func TestCountGroundingsSumsSignedCountsPerParentClause(t *testing.T) {
	m := buildTwoParentMRF(t)

	counts, err := CountGroundings(m, 2)
	if err != nil {
		t.Fatalf("CountGroundings: %v", err)
	}

	// Constraint {1,2} has dependency entries for clause 0 (count 1, merged
	// into the same constraint as clause 1's count-2 entry via
	// AddOrMergeConstraint) and clause 1 (count 2); constraint {3} has a
	// dependency entry for clause 0 (count 1). Both constraints are
	// satisfied (all atoms TRUE).
	if counts[0] != 2 {
		t.Fatalf("clause 0 groundings = %v, want 2 (1 from {1,2} + 1 from {3})", counts[0])
	}

	if counts[1] != 2 {
		t.Fatalf("clause 1 groundings = %v, want 2", counts[1])
	}
}

func TestUpdateWeightsAppliesWeightedSum(t *testing.T) {
	m := buildTwoParentMRF(t)

	if err := UpdateWeights(m, []float64{2, 4}); err != nil {
		t.Fatalf("UpdateWeights: %v", err)
	}

	ids := m.Constraints()

	var sawMerged, sawSingle bool

	for _, id := range ids {
		c, _ := m.Constraint(id)

		switch len(c.Literal) {
		case 2:
			// parentWeights[0]*1 + parentWeights[1]*2 = 2*1 + 4*2 = 10.
			if c.Weight != 10 {
				t.Fatalf("merged constraint weight = %v, want 10", c.Weight)
			}

			sawMerged = true
		case 1:
			// parentWeights[0]*1 = 2.
			if c.Weight != 2 {
				t.Fatalf("single-parent constraint weight = %v, want 2", c.Weight)
			}

			sawSingle = true
		}
	}

	if !sawMerged || !sawSingle {
		t.Fatalf("expected both a merged and a single-parent constraint")
	}
}

func TestHammingLossCountsDisagreements(t *testing.T) {
	m := buildTwoParentMRF(t)
	m.SetTruth(1, false)

	loss := HammingLoss(m, map[int]bool{1: true, 2: true, 3: true})
	if loss != 1 {
		t.Fatalf("HammingLoss = %d, want 1", loss)
	}
}

func TestMaxWalkSATSatisfiesSimpleClause(t *testing.T) {
	b := mrf.NewBuilder(false)
	b.AddConstraint([]int{1, 2}, 1, false, nil)

	m := b.Result()
	m.SetTruth(1, false)
	m.SetTruth(2, false)

	solver := &MaxWalkSATSolver{Steps: 100, PFlip: 0.5}

	if err := solver.Infer(context.Background(), m, Options{}); err != nil {
		t.Fatalf("Infer: %v", err)
	}

	a1, _ := m.Atom(1)
	a2, _ := m.Atom(2)

	if !a1.Truth && !a2.Truth {
		t.Fatalf("expected MaxWalkSAT to satisfy {1 v 2}, got both false")
	}
}
