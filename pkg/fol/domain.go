// Package fol holds the first-order-logic data model shared by the parser,
// the normal-form/grounding pipeline and predicate completion: domains and
// constants (C1), the AST of terms/atoms/formulas/clauses (C2), and the
// registry of built-in dynamic predicates and functions (C3).
package fol

import "fmt"

// Domain is a named, ordered set of string constants. Constants are indexed
// 1..N in declaration order; index 0 is reserved to mean "not present".
type Domain struct {
	name      string
	constants []string
	index     map[string]int
}

// Name returns the domain's name.
func (d *Domain) Name() string {
	return d.name
}

// Size returns the number of constants in the domain.
func (d *Domain) Size() int {
	return len(d.constants)
}

// Constants returns the ordered constants of the domain. The returned slice
// must not be mutated by the caller.
func (d *Domain) Constants() []string {
	return d.constants
}

// IndexOf returns the 1-based local index of a constant within the domain,
// or 0 if the constant is not a member.
func (d *Domain) IndexOf(constant string) int {
	return d.index[constant]
}

// Contains reports whether constant is a member of the domain.
func (d *Domain) Contains(constant string) bool {
	return d.index[constant] != 0
}

// At returns the constant at 1-based local index i.
func (d *Domain) At(i int) string {
	return d.constants[i-1]
}

// DomainBuilder incrementally constructs a Domain. Adding the same symbol
// more than once is idempotent: the symbol keeps its first-assigned index.
type DomainBuilder struct {
	name      string
	constants []string
	index     map[string]int
}

// NewDomainBuilder creates a fresh, empty builder for the named domain.
func NewDomainBuilder(name string) *DomainBuilder {
	return &DomainBuilder{name: name, index: make(map[string]int)}
}

// Add appends a single constant (the `+=` form). Idempotent on duplicates.
func (b *DomainBuilder) Add(constant string) *DomainBuilder {
	if _, ok := b.index[constant]; ok {
		return b
	}

	b.constants = append(b.constants, constant)
	b.index[constant] = len(b.constants)

	return b
}

// AddAll appends a batch of constants (the `++=` form), in order. Idempotent
// on duplicates, both within the batch and against constants already added.
func (b *DomainBuilder) AddAll(constants []string) *DomainBuilder {
	for _, c := range constants {
		b.Add(c)
	}

	return b
}

// Result returns an immutable snapshot of the domain built so far. Later
// mutation of the builder produces a disjoint new snapshot on the next call
// to Result -- the slice and map backing the returned Domain are copied so
// that an already-returned snapshot is never affected by later Add calls.
func (b *DomainBuilder) Result() *Domain {
	constants := make([]string, len(b.constants))
	copy(constants, b.constants)

	index := make(map[string]int, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}

	return &Domain{name: b.name, constants: constants, index: index}
}

// ConstantsDomain maps a domain name to its (immutable) ordered constant
// set. It is itself an immutable snapshot once obtained from a
// ConstantsDomainBuilder.
type ConstantsDomain struct {
	domains map[string]*Domain
}

// Domain looks up a named domain, or nil if undeclared.
func (c *ConstantsDomain) Domain(name string) *Domain {
	return c.domains[name]
}

// Size returns the number of constants in the named domain, or 0 if the
// domain does not exist.
func (c *ConstantsDomain) Size(name string) int {
	if d, ok := c.domains[name]; ok {
		return d.Size()
	}

	return 0
}

// Names returns the declared domain names; order is unspecified.
func (c *ConstantsDomain) Names() []string {
	names := make([]string, 0, len(c.domains))
	for n := range c.domains {
		names = append(names, n)
	}

	return names
}

// String renders the constants-domain for debugging, one line per domain
// with its constants in Go slice notation (`name = {[c1 c2]}`); the output
// is not `.mln` surface syntax.
func (c *ConstantsDomain) String() string {
	out := ""
	for _, name := range c.Names() {
		d := c.domains[name]
		out += fmt.Sprintf("%s = {%v}\n", name, d.constants)
	}

	return out
}

// ConstantsDomainBuilder incrementally constructs a ConstantsDomain from
// per-domain DomainBuilders.
type ConstantsDomainBuilder struct {
	builders map[string]*DomainBuilder
}

// NewConstantsDomainBuilder creates a fresh, empty builder.
func NewConstantsDomainBuilder() *ConstantsDomainBuilder {
	return &ConstantsDomainBuilder{builders: make(map[string]*DomainBuilder)}
}

func (b *ConstantsDomainBuilder) builderFor(name string) *DomainBuilder {
	db, ok := b.builders[name]
	if !ok {
		db = NewDomainBuilder(name)
		b.builders[name] = db
	}

	return db
}

// Add appends a single constant to the named domain (`+=`).
func (b *ConstantsDomainBuilder) Add(domain, constant string) *ConstantsDomainBuilder {
	b.builderFor(domain).Add(constant)
	return b
}

// AddAll appends a batch of constants to the named domain (`++=`).
func (b *ConstantsDomainBuilder) AddAll(domain string, constants []string) *ConstantsDomainBuilder {
	b.builderFor(domain).AddAll(constants)
	return b
}

// Result returns an immutable snapshot of all domains built so far.
func (b *ConstantsDomainBuilder) Result() *ConstantsDomain {
	domains := make(map[string]*Domain, len(b.builders))
	for name, db := range b.builders {
		domains[name] = db.Result()
	}

	return &ConstantsDomain{domains: domains}
}

// IntRange expands an integer-range domain literal (`{lo, ..., hi}`) into
// its enumerated string constants, inclusive of both ends.
func IntRange(lo, hi int) []string {
	if hi < lo {
		return nil
	}

	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, fmt.Sprintf("%d", i))
	}

	return out
}
