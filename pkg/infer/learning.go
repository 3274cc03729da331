package infer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/anskarl/lomrf/pkg/mrf"
	"github.com/anskarl/lomrf/pkg/util"
)

// CountGroundings computes, for each of numParentClauses parent clauses,
// the signed count of satisfied ground constraints whose dependency entry
// includes that clause (§4.8): the weight-learning loop's basic statistic.
// It returns an error if m was built without a dependency map.
func CountGroundings(m *mrf.MRF, numParentClauses int) ([]float64, error) {
	if !m.HasDependencyMap() {
		return nil, fmt.Errorf("infer: countGroundings requires an MRF built with a dependency map")
	}

	counts := make([]float64, numParentClauses)

	for _, id := range m.Constraints() {
		c, _ := m.Constraint(id)
		if !Satisfied(m, c) {
			continue
		}

		entries, ok := m.DependencyMap(id)
		if !ok {
			continue
		}

		for _, e := range entries {
			if e.ClauseIndex < 0 || e.ClauseIndex >= numParentClauses {
				continue
			}

			counts[e.ClauseIndex] += float64(e.Count)
		}
	}

	return counts, nil
}

// UpdateWeights recomputes every soft ground constraint's weight as the
// weighted sum over its parent clauses, Σ (parentWeight × signedCount)
// (§4.8). Hard constraints are left at weightHard. It mutates the
// constraints reachable from m in place via the MRF's constraint map, so it
// must be called before inference reads constraint weights for this round.
func UpdateWeights(m *mrf.MRF, parentWeights []float64) error {
	if !m.HasDependencyMap() {
		return fmt.Errorf("infer: UpdateWeights requires an MRF built with a dependency map")
	}

	for _, id := range m.Constraints() {
		c, _ := m.Constraint(id)
		if c.IsHard {
			continue
		}

		entries, ok := m.DependencyMap(id)
		if !ok {
			c.Weight = 0
			continue
		}

		contributions := make([]float64, 0, len(entries))

		for _, e := range entries {
			if e.ClauseIndex < 0 || e.ClauseIndex >= len(parentWeights) {
				continue
			}

			contributions = append(contributions, parentWeights[e.ClauseIndex]*float64(e.Count))
		}

		c.Weight = floats.Sum(contributions)
	}

	return nil
}

// HammingLoss counts the ground atoms whose current MRF truth value
// disagrees with the annotation (gold truth assignment), the loss Max-
// Margin minimizes (§4.8).
func HammingLoss(m *mrf.MRF, annotation map[int]bool) int {
	loss := 0

	for atomID, gold := range annotation {
		a, ok := m.Atom(atomID)
		if !ok {
			continue
		}

		if a.Truth != gold {
			loss++
		}
	}

	return loss
}

// ApplyLossAugmentation sets each annotated atom's unary cost so that MAP
// inference biased by it implements loss-augmented inference: the cost is
// positive (rewarding Truth=true) when the gold label is FALSE and negative
// (rewarding Truth=false) when the gold label is TRUE, so disagreeing with
// the annotation always increases the augmented objective by scale, per
// §4.8's "unary terms whose magnitude equals the loss contribution".
func ApplyLossAugmentation(m *mrf.MRF, annotation map[int]bool, scale float64) {
	for atomID, gold := range annotation {
		a, ok := m.Atom(atomID)
		if !ok {
			continue
		}

		cost := scale
		if gold {
			cost = -scale
		}

		a.UnaryCost = util.Some(cost)
	}
}
