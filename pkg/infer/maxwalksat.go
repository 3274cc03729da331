package infer

import (
	"context"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/anskarl/lomrf/pkg/mrf"
)

// MaxWalkSATSolver is a stochastic local-search MAP inference algorithm: at
// each step, pick a random unsatisfied constraint, then with probability
// 1-pFlip flip the atom in it that most reduces total unsatisfied weight,
// else flip a uniformly random atom in it. The search reads constraint
// weights only: the unary costs written under Options.LossAugmented do not
// change which atom it flips or when it stops.
type MaxWalkSATSolver struct {
	// Steps bounds the outer loop; a Deadline in Options can end it earlier.
	Steps int
	// PFlip is the random-walk probability (0..1); the classic default is
	// 0.5.
	PFlip float64
}

// NewMaxWalkSATSolver returns a solver with the conventional defaults.
func NewMaxWalkSATSolver() *MaxWalkSATSolver {
	return &MaxWalkSATSolver{Steps: 10000, PFlip: 0.5}
}

// Infer implements Algorithm.
func (s *MaxWalkSATSolver) Infer(ctx context.Context, m *mrf.MRF, opts Options) error {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	if opts.LossAugmented {
		ApplyLossAugmentation(m, opts.Annotation, 1.0)
	}

	steps := s.Steps
	if steps <= 0 {
		steps = 10000
	}

	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if opts.deadlineExpired() {
			log.WithField("step", step).Debug("maxwalksat: deadline expired, returning current assignment")
			return nil
		}

		unsat := unsatisfiedConstraints(m)
		if len(unsat) == 0 {
			return nil
		}

		c := unsat[rng.Intn(len(unsat))]

		if rng.Float64() < s.PFlip {
			flipAtom(m, c.Literal[rng.Intn(len(c.Literal))])
			continue
		}

		best, bestGain := -1, -1.0

		for _, signed := range c.Literal {
			atomID := signed
			if atomID < 0 {
				atomID = -atomID
			}

			gain := -deltaUnsatisfiedWeightIfFlipped(m, atomID)
			if best == -1 || gain > bestGain {
				best, bestGain = atomID, gain
			}
		}

		flipAtom(m, best)
	}

	return nil
}

func unsatisfiedConstraints(m *mrf.MRF) []*mrf.Constraint {
	var out []*mrf.Constraint

	for _, id := range m.Constraints() {
		c, _ := m.Constraint(id)
		if !Satisfied(m, c) {
			out = append(out, c)
		}
	}

	return out
}

func flipAtom(m *mrf.MRF, atomID int) {
	a, ok := m.Atom(atomID)
	if !ok {
		return
	}

	m.SetTruth(atomID, !a.Truth)
}

// deltaUnsatisfiedWeightIfFlipped returns how much the total unsatisfied
// weight would change (positive = worse) if atomID were flipped, by
// actually flipping, measuring, and flipping back -- the constraint set
// touching a single atom is its adjacency list, so this stays local.
func deltaUnsatisfiedWeightIfFlipped(m *mrf.MRF, atomID int) float64 {
	a, ok := m.Atom(atomID)
	if !ok {
		return 0
	}

	before := localUnsatisfiedWeight(m, a)

	m.SetTruth(atomID, !a.Truth)
	after := localUnsatisfiedWeight(m, a)
	m.SetTruth(atomID, !a.Truth)

	return after - before
}

func localUnsatisfiedWeight(m *mrf.MRF, a *mrf.GroundAtom) float64 {
	var total float64

	for _, cid := range a.ConstraintIDs {
		c, ok := m.Constraint(cid)
		if ok && !Satisfied(m, c) {
			total += c.Weight
		}
	}

	return total
}
