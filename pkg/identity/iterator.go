package identity

import "github.com/anskarl/lomrf/pkg/fol"

// MatchesIterator enumerates every id of predicate sig consistent with a
// partial argument assignment (argSlot, 0-based, -> constant). An empty
// partial assignment yields every id of the predicate (P3). Ordering is by
// ascending slot index, then ascending local index, nested -- i.e. the
// lowest-index free slot varies slowest. Since encode gives slot 0 the
// smallest stride, the ids are not in ascending order when more than one
// slot is free. Ties among multiple partial keys are resolved in the
// same nested order; the specification leaves finer tie-breaking
// unspecified (see Open Questions).
func (f *Function) MatchesIterator(sig fol.AtomSignature, partial map[int]string) ([]int, error) {
	pr, ok := f.ranges[sig]
	if !ok {
		return nil, errUnknownSignature(sig)
	}

	fixed := make([]int, len(pr.domains))
	for i := range fixed {
		fixed[i] = -1
	}

	for slot, constant := range partial {
		if slot < 0 || slot >= len(pr.domains) {
			return nil, errBadSlot(sig, slot)
		}

		idx := pr.domains[slot].IndexOf(constant)
		if idx == 0 {
			return nil, errUnknownConstant(sig, slot, constant)
		}

		fixed[slot] = idx
	}

	var out []int

	var generate func(slot int, id int)

	generate = func(slot int, id int) {
		if slot == len(pr.domains) {
			out = append(out, id)
			return
		}

		if fixed[slot] != -1 {
			generate(slot+1, id+(fixed[slot]-1)*pr.strides[slot])
			return
		}

		for idx := 1; idx <= pr.sizes[slot]; idx++ {
			generate(slot+1, id+(idx-1)*pr.strides[slot])
		}
	}

	generate(0, pr.start)

	return out, nil
}
