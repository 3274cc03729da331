// Package infer implements the inference/learning interface contracts (C12)
// described by §4.8 and §5: a read-only-except-truth-values MRF consumed by
// MAP/marginal inference algorithms, the countGroundings and weight-update
// operations weight-learning repeatedly needs, and Hamming-loss
// loss-augmented inference.
package infer

import (
	"context"
	"math/rand"
	"time"

	"github.com/anskarl/lomrf/pkg/mrf"
)

// Type names an inference algorithm kind, purely for CLI/config plumbing
// -- the contract itself is the Algorithm interface.
type Type int

const (
	// MaxWalkSAT is a stochastic local-search MAP algorithm.
	MaxWalkSAT Type = iota
	// MCSAT is a SampleSAT-style MCMC sampler for marginal inference.
	MCSAT
	// LPRelaxedILP hands the ground theory to an external LP/ILP solver
	// via a scoped SolverHandle.
	LPRelaxedILP
)

// Options configures a single inference call. Deadline, if non-zero, is
// checked once per outer-loop iteration; on expiry the algorithm returns
// without error, leaving the MRF at its current assignment. MaxWalkSAT does
// not keep the best assignment seen earlier, so the returned one can be
// worse than an earlier state.
type Options struct {
	Deadline time.Time
	// LossAugmented requests that the per-atom Hamming loss terms (§4.8),
	// computed from the gold truth assignment in Annotation, be written
	// onto the MRF's atoms as unary costs (ApplyLossAugmentation) before the
	// search.
	LossAugmented bool
	Annotation    map[int]bool
	// Rand seeds the algorithm's randomness; nil uses the package-level
	// default source. Exposed so tests (and callers wanting reproducible
	// runs) can supply a seeded source.
	Rand *rand.Rand
}

func (o Options) deadlineExpired() bool {
	return !o.Deadline.IsZero() && time.Now().After(o.Deadline)
}

// Algorithm is the contract every inference algorithm (MaxWalkSAT, MC-SAT,
// LP-relaxed ILP) implements: consume a read-only MRF (aside from atom
// truth, the only mutable state an algorithm may write) and a context whose
// cancellation it must honor promptly.
type Algorithm interface {
	Infer(ctx context.Context, m *mrf.MRF, opts Options) error
}

// Satisfied reports whether a ground constraint's literal set evaluates to
// true under the MRF's current atom truth assignment.
func Satisfied(m *mrf.MRF, c *mrf.Constraint) bool {
	for _, signed := range c.Literal {
		atomID := signed
		wantTrue := true

		if atomID < 0 {
			atomID = -atomID
			wantTrue = false
		}

		a, ok := m.Atom(atomID)
		if !ok {
			continue
		}

		if a.Truth == wantTrue {
			return true
		}
	}

	return false
}

// UnsatisfiedWeight sums the weight of every currently-unsatisfied
// constraint -- the objective MaxWalkSAT minimizes.
func UnsatisfiedWeight(m *mrf.MRF) float64 {
	var total float64

	for _, id := range m.Constraints() {
		c, _ := m.Constraint(id)
		if !Satisfied(m, c) {
			total += c.Weight
		}
	}

	return total
}
