// Package evidence implements the Evidence DB (C9): per-predicate tri-state
// storage of ground atom truth plus function-mapping tables, built under
// either closed-world (CWA) or open-world (OWA) assumption.
package evidence

import (
	"fmt"

	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/identity"
)

// Mode selects how a predicate's unasserted ground atoms default.
type Mode int

const (
	// CWA (closed-world): unasserted atoms default to FALSE.
	CWA Mode = iota
	// OWA (open-world): unasserted atoms default to UNKNOWN.
	OWA
)

// AuxPredicateSignature returns the signature of the auxiliary predicate a
// function mapping `retval = fn(args)` is translated into: `Aux_fn(retval,
// args...)`, arity one greater than the function's argument arity.
func AuxPredicateSignature(fnSymbol string, argArity int) fol.AtomSignature {
	return fol.AtomSignature{Symbol: "Aux_" + fnSymbol, Arity: argArity + 1}
}

// DB is an immutable, per-predicate tri-state evidence store indexed by the
// atom identity function. Unasserted atoms read back as their predicate's
// mode default (False under CWA, Unknown under OWA).
type DB struct {
	identity *identity.Function
	modes    map[fol.AtomSignature]Mode
	truth    map[int]fol.TriState
}

// Identity returns the atom identity function this DB was built over.
func (db *DB) Identity() *identity.Function {
	return db.identity
}

// ModeOf returns the declared mode for a predicate signature, defaulting to
// OWA for predicates the builder never declared a mode for.
func (db *DB) ModeOf(sig fol.AtomSignature) Mode {
	if m, ok := db.modes[sig]; ok {
		return m
	}

	return OWA
}

func (db *DB) defaultTruth(sig fol.AtomSignature) fol.TriState {
	if db.ModeOf(sig) == CWA {
		return fol.False
	}

	return fol.Unknown
}

// Contains reports whether args was explicitly asserted for sig (as opposed
// to reading back the predicate's mode default).
func (db *DB) Contains(sig fol.AtomSignature, args []string) bool {
	id, ok := db.identity.Encode(sig, args)
	if !ok {
		return false
	}

	_, ok = db.truth[id]

	return ok
}

// Apply returns the effective truth value of a ground atom: its explicit
// assertion if any, else its predicate's mode default. ok is false if the
// signature is undeclared or args do not match its domains.
func (db *DB) Apply(sig fol.AtomSignature, args []string) (fol.TriState, bool) {
	id, ok := db.identity.Encode(sig, args)
	if !ok {
		return fol.Unknown, false
	}

	if t, ok := db.truth[id]; ok {
		return t, true
	}

	return db.defaultTruth(sig), true
}

// ApplyID is Apply addressed directly by atom id, for callers (e.g. the
// grounder) that already hold ids from the identity function.
func (db *DB) ApplyID(id int) fol.TriState {
	if t, ok := db.truth[id]; ok {
		return t
	}

	sig, _, ok := db.identity.Decode(id)
	if !ok {
		return fol.Unknown
	}

	return db.defaultTruth(sig)
}

func (db *DB) counts(sig fol.AtomSignature) (numTrue, numFalse, numUnknown int, err error) {
	start, size, ok := db.identity.RangeOf(sig)
	if !ok {
		return 0, 0, 0, fmt.Errorf("evidence: unknown predicate signature %s", sig)
	}

	def := db.defaultTruth(sig)

	for id := start; id < start+size; id++ {
		t, ok := db.truth[id]
		if !ok {
			t = def
		}

		switch t {
		case fol.True:
			numTrue++
		case fol.False:
			numFalse++
		default:
			numUnknown++
		}
	}

	return numTrue, numFalse, numUnknown, nil
}

// NumberOfTrue counts the ids of sig whose effective truth is TRUE.
func (db *DB) NumberOfTrue(sig fol.AtomSignature) (int, error) {
	n, _, _, err := db.counts(sig)
	return n, err
}

// NumberOfFalse counts the ids of sig whose effective truth is FALSE.
func (db *DB) NumberOfFalse(sig fol.AtomSignature) (int, error) {
	_, n, _, err := db.counts(sig)
	return n, err
}

// NumberOfUnknown counts the ids of sig whose effective truth is UNKNOWN.
func (db *DB) NumberOfUnknown(sig fol.AtomSignature) (int, error) {
	_, _, n, err := db.counts(sig)
	return n, err
}

// NumberOfKnown counts the ids of sig whose effective truth is not UNKNOWN.
func (db *DB) NumberOfKnown(sig fol.AtomSignature) (int, error) {
	t, f, _, err := db.counts(sig)
	return t + f, err
}
