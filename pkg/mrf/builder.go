package mrf

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Builder assembles an MRF incrementally. It is safe for concurrent use by
// multiple grounder workers: ground-atom ids are already globally unique by
// construction (assigned by the identity function), so workers need no id
// coordination; only the constraint vector append and same-atom adjacency
// update are serialized, under a single mutex.
type Builder struct {
	mu            sync.Mutex
	atoms         map[int]*GroundAtom
	constraints   []*Constraint
	nextID        int
	dependencyMap map[int][]ParentEntry
	withDeps      bool
	dedup         map[string]int
}

// NewBuilder creates an empty MRF builder. withDependencyMap requests that
// AddConstraint also record parent-clause provenance (needed by Max-Margin
// weight learning).
func NewBuilder(withDependencyMap bool) *Builder {
	return &Builder{
		atoms:    make(map[int]*GroundAtom),
		withDeps: withDependencyMap,
		dedup:    make(map[string]int),
	}
}

// canonicalLiteralKey renders a signed literal id set as an order-
// insensitive key, used to detect two parent clauses grounding to the same
// ground constraint (same literal set).
func canonicalLiteralKey(literal []int) string {
	sorted := make([]int, len(literal))
	copy(sorted, literal)
	sort.Ints(sorted)

	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}

// AddOrMergeConstraint behaves as AddConstraint, except that if an
// identical ground constraint (same signed literal set) was already added --
// by this parent clause or a different one -- its dependency-map entries
// are merged into the existing constraint instead of creating a duplicate
// (§4.7: "if two parent clauses produce the same ground constraint ... their
// entries are merged").
func (b *Builder) AddOrMergeConstraint(literal []int, weight float64, isHard bool, parents []ParentEntry) int {
	key := canonicalLiteralKey(literal)

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.dedup[key]; ok {
		if b.withDeps && len(parents) > 0 {
			if b.dependencyMap == nil {
				b.dependencyMap = make(map[int][]ParentEntry)
			}

			b.dependencyMap[existing] = mergeParents(b.dependencyMap[existing], parents)
		}

		return existing
	}

	id := b.addConstraintLocked(literal, weight, isHard, parents)
	b.dedup[key] = id

	return id
}

func (b *Builder) ensureAtomLocked(id int) *GroundAtom {
	a, ok := b.atoms[id]
	if !ok {
		a = &GroundAtom{ID: id}
		b.atoms[id] = a
	}

	return a
}

// AddConstraint appends a ground constraint over literal (signed atom ids,
// positive id = positive literal, -id = negative literal), assigning it the
// next globally unique constraint id and returning it. parents records the
// parent clause indices (and signed multiplicities) that produced this
// ground constraint via duplicate-literal combination; it is ignored unless
// the builder was created with a dependency map.
func (b *Builder) AddConstraint(literal []int, weight float64, isHard bool, parents []ParentEntry) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.addConstraintLocked(literal, weight, isHard, parents)
}

// addConstraintLocked is AddConstraint's body, callable while b.mu is
// already held (by AddOrMergeConstraint).
func (b *Builder) addConstraintLocked(literal []int, weight float64, isHard bool, parents []ParentEntry) int {
	b.nextID++
	id := b.nextID

	lits := make([]int, len(literal))
	copy(lits, literal)

	c := &Constraint{ID: id, Literal: lits, Weight: weight, IsHard: isHard}
	b.constraints = append(b.constraints, c)

	for _, signed := range literal {
		atomID := signed
		if atomID < 0 {
			atomID = -atomID
		}

		a := b.ensureAtomLocked(atomID)
		a.ConstraintIDs = append(a.ConstraintIDs, id)
	}

	if b.withDeps && len(parents) > 0 {
		if b.dependencyMap == nil {
			b.dependencyMap = make(map[int][]ParentEntry)
		}

		b.dependencyMap[id] = mergeParents(b.dependencyMap[id], parents)
	}

	return id
}

func mergeParents(existing, additional []ParentEntry) []ParentEntry {
	byClause := make(map[int]int, len(existing)+len(additional))

	var order []int

	for _, e := range existing {
		if _, seen := byClause[e.ClauseIndex]; !seen {
			order = append(order, e.ClauseIndex)
		}

		byClause[e.ClauseIndex] += e.Count
	}

	for _, e := range additional {
		if _, seen := byClause[e.ClauseIndex]; !seen {
			order = append(order, e.ClauseIndex)
		}

		byClause[e.ClauseIndex] += e.Count
	}

	out := make([]ParentEntry, 0, len(order))
	for _, idx := range order {
		out = append(out, ParentEntry{ClauseIndex: idx, Count: byClause[idx]})
	}

	return out
}

// Result finalizes the built MRF, choosing weightHard (per §4.7) as the sum
// of absolute soft weights plus one, strictly greater than that sum, and
// setting every hard constraint's weight to it.
func (b *Builder) Result() *MRF {
	b.mu.Lock()
	defer b.mu.Unlock()

	var softSum float64

	for _, c := range b.constraints {
		if !c.IsHard {
			w := c.Weight
			if w < 0 {
				w = -w
			}

			softSum += w
		}
	}

	weightHard := softSum + 1

	constraints := make(map[int]*Constraint, len(b.constraints))

	for _, c := range b.constraints {
		if c.IsHard {
			c.Weight = weightHard
		}

		constraints[c.ID] = c
	}

	return &MRF{
		atoms:         b.atoms,
		constraints:   constraints,
		weightHard:    weightHard,
		dependencyMap: b.dependencyMap,
	}
}
