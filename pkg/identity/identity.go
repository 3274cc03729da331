// Package identity implements the atom identity function (C8): a dense
// bijection between ground atoms and integer ids, allocated per predicate
// signature over a contiguous range, and a partial-match iterator
// (MatchesIterator) over one predicate's ids.
package identity

import (
	"fmt"

	"github.com/anskarl/lomrf/pkg/fol"
)

// NotExist is the sentinel id returned by Encode when an argument vector is
// not valid (an unknown constant, or a wrong-arity call).
const NotExist = -1

// predicateRange is the per-predicate allocation: its argument domains (in
// schema order), the start of its id range, and the precomputed stride of
// each argument position used by the encode/decode formula.
//
//	encode(c1,...,cn) = start + sum_i (localIndex(ci)-1) * stride_i
//	stride_i = product of sizes of domains before position i
type predicateRange struct {
	signature fol.AtomSignature
	domains   []*fol.Domain
	sizes     []int
	strides   []int
	start     int
	size      int
}

// Function maps ground atoms of every declared predicate to dense integer
// ids and back. It is built once from a schema and constants domain and is
// immutable (and safe for concurrent read-only use) thereafter.
type Function struct {
	ranges map[fol.AtomSignature]*predicateRange
	total  int
}

// Build constructs the global identity function over every predicate in
// schema, allocating contiguous, disjoint id ranges in schema declaration
// order (so the function is deterministic given the same schema/domains).
// Ids start at 1; 0 is never a valid atom id (useful as a sentinel
// elsewhere, e.g. "no literal").
func Build(schema *fol.PredicateSchema, domains *fol.ConstantsDomain) (*Function, error) {
	f := &Function{ranges: make(map[fol.AtomSignature]*predicateRange)}

	next := 1

	for _, sig := range schema.Signatures() {
		argDomains, _ := schema.Lookup(sig)

		pr := &predicateRange{signature: sig, start: next}
		pr.domains = make([]*fol.Domain, len(argDomains))
		pr.sizes = make([]int, len(argDomains))
		pr.strides = make([]int, len(argDomains))

		stride := 1
		for i, dname := range argDomains {
			d := domains.Domain(dname)
			if d == nil {
				return nil, fmt.Errorf("predicate %s references undeclared domain %q", sig, dname)
			}

			pr.domains[i] = d
			pr.sizes[i] = d.Size()
			pr.strides[i] = stride
			stride *= d.Size()
		}

		pr.size = stride
		f.ranges[sig] = pr
		next += stride
	}

	f.total = next - 1

	return f, nil
}

// NumberOfAtoms returns the total number of ids allocated across every
// predicate (P1, summed).
func (f *Function) NumberOfAtoms() int {
	return f.total
}

// RangeOf returns the [start, start+size) id range for a predicate
// signature, and whether it is known to the identity function.
func (f *Function) RangeOf(sig fol.AtomSignature) (start, size int, ok bool) {
	pr, ok := f.ranges[sig]
	if !ok {
		return 0, 0, false
	}

	return pr.start, pr.size, true
}

// Encode maps a ground argument vector to its dense id, or returns
// (NotExist, false) if sig is undeclared, the arity is wrong, or any
// argument is not a member of its domain (P1, P2).
func (f *Function) Encode(sig fol.AtomSignature, args []string) (int, bool) {
	pr, ok := f.ranges[sig]
	if !ok || len(args) != len(pr.domains) {
		return NotExist, false
	}

	id := pr.start

	for i, a := range args {
		idx := pr.domains[i].IndexOf(a)
		if idx == 0 {
			return NotExist, false
		}

		id += (idx - 1) * pr.strides[i]
	}

	return id, true
}

// Decode maps an id back to its ground argument vector (P2). ok is false if
// id is outside any predicate's range.
func (f *Function) Decode(id int) (fol.AtomSignature, []string, bool) {
	pr := f.rangeContaining(id)
	if pr == nil {
		return fol.AtomSignature{}, nil, false
	}

	offset := id - pr.start
	args := make([]string, len(pr.domains))

	for i := len(pr.domains) - 1; i >= 0; i-- {
		localIdx := offset/pr.strides[i] + 1
		offset %= pr.strides[i]
		args[i] = pr.domains[i].At(localIdx)
	}

	return pr.signature, args, true
}

// Extract maps an id to the global (domain-local) constant indices of its
// arguments, for shared global constant indexing across predicates.
func (f *Function) Extract(id int) ([]int, bool) {
	pr := f.rangeContaining(id)
	if pr == nil {
		return nil, false
	}

	offset := id - pr.start
	out := make([]int, len(pr.domains))

	for i := len(pr.domains) - 1; i >= 0; i-- {
		out[i] = offset/pr.strides[i] + 1
		offset %= pr.strides[i]
	}

	return out, true
}

func errUnknownSignature(sig fol.AtomSignature) error {
	return fmt.Errorf("identity: unknown predicate signature %s", sig)
}

func errBadSlot(sig fol.AtomSignature, slot int) error {
	return fmt.Errorf("identity: %s has no argument slot %d", sig, slot)
}

func errUnknownConstant(sig fol.AtomSignature, slot int, constant string) error {
	return fmt.Errorf("identity: %s slot %d: %q is not a member of its domain", sig, slot, constant)
}

func (f *Function) rangeContaining(id int) *predicateRange {
	for _, pr := range f.ranges {
		if id >= pr.start && id < pr.start+pr.size {
			return pr
		}
	}

	return nil
}

// Signature looks up the (domain) argument domains declared for sig.
func (f *Function) Signature(sig fol.AtomSignature) ([]*fol.Domain, bool) {
	pr, ok := f.ranges[sig]
	if !ok {
		return nil, false
	}

	return pr.domains, true
}
