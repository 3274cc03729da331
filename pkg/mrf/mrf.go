// Package mrf implements the ground Markov Random Field (C11): the typed
// graph of ground atoms and weighted ground constraints produced by the
// grounder (C10), and the hand-off surface consumed by inference and
// weight-learning (C12).
package mrf

import "github.com/anskarl/lomrf/pkg/util"

// GroundAtom is a single ground atom in the MRF: its dense id (from the
// identity function, C8), its current truth assignment, an optional unary
// cost (used by loss-augmented inference), and the ids of every constraint
// that mentions it.
type GroundAtom struct {
	ID            int
	Truth         bool
	UnaryCost     util.Option[float64]
	ConstraintIDs []int
}

// Constraint is a single ground clause: an ordered list of signed atom ids
// (positive for a positive literal, negation for a negative one), a weight,
// and whether it is hard.
type Constraint struct {
	ID      int
	Literal []int
	Weight  float64
	IsHard  bool
}

// ParentEntry is one parent clause's contribution to a ground constraint:
// the originating clause's index in the compiled theory and the net signed
// count of duplicate-literal combinations that produced this ground
// constraint from that clause (§4.7).
type ParentEntry struct {
	ClauseIndex int
	Count       int
}

// MRF is the read-only (outside of atom truth mutation) hand-off structure
// between grounding and inference/learning.
type MRF struct {
	atoms         map[int]*GroundAtom
	constraints   map[int]*Constraint
	weightHard    float64
	dependencyMap map[int][]ParentEntry
}

// NumberOfAtoms returns the number of distinct ground atoms referenced by
// the MRF's constraints.
func (m *MRF) NumberOfAtoms() int {
	return len(m.atoms)
}

// NumberOfConstraints returns the number of ground constraints.
func (m *MRF) NumberOfConstraints() int {
	return len(m.constraints)
}

// WeightHard returns the sentinel weight value chosen for this MRF's hard
// constraints (strictly greater than the sum of absolute soft weights).
func (m *MRF) WeightHard() float64 {
	return m.weightHard
}

// Atom looks up a ground atom by id.
func (m *MRF) Atom(id int) (*GroundAtom, bool) {
	a, ok := m.atoms[id]
	return a, ok
}

// Constraint looks up a ground constraint by id.
func (m *MRF) Constraint(id int) (*Constraint, bool) {
	c, ok := m.constraints[id]
	return c, ok
}

// Atoms returns every ground atom id present in the MRF; order is
// unspecified.
func (m *MRF) Atoms() []int {
	ids := make([]int, 0, len(m.atoms))
	for id := range m.atoms {
		ids = append(ids, id)
	}

	return ids
}

// Constraints returns every ground constraint id present in the MRF; order
// is unspecified.
func (m *MRF) Constraints() []int {
	ids := make([]int, 0, len(m.constraints))
	for id := range m.constraints {
		ids = append(ids, id)
	}

	return ids
}

// DependencyMap returns, for a ground constraint id, the parent clauses
// (and their signed contribution counts) that produced it, or (nil, false)
// if the MRF was built without a dependency map.
func (m *MRF) DependencyMap(constraintID int) ([]ParentEntry, bool) {
	if m.dependencyMap == nil {
		return nil, false
	}

	entries, ok := m.dependencyMap[constraintID]

	return entries, ok
}

// HasDependencyMap reports whether this MRF carries a dependency map
// (requested by weight-learning callers at grounding time).
func (m *MRF) HasDependencyMap() bool {
	return m.dependencyMap != nil
}

// SetTruth mutates a ground atom's current truth assignment. It is the only
// mutation an inference algorithm is permitted to perform on the MRF.
func (m *MRF) SetTruth(id int, truth bool) bool {
	a, ok := m.atoms[id]
	if !ok {
		return false
	}

	a.Truth = truth

	return true
}
