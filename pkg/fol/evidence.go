package fol

import "github.com/anskarl/lomrf/pkg/util"

// TriState is the {TRUE, FALSE, UNKNOWN} truth domain used for open-world
// evidence (C9).
type TriState int

const (
	// Unknown is the "neither asserted true nor false" state.
	Unknown TriState = iota
	// True is the asserted-true state.
	True
	// False is the asserted-false state.
	False
)

func (t TriState) String() string {
	switch t {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	default:
		return "UNKNOWN"
	}
}

// Flip negates a TriState; Flip(Unknown) = Unknown.
func (t TriState) Flip() TriState {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// And implements tri-state conjunction: TRUE^x=x, FALSE^x=FALSE,
// UNKNOWN^UNKNOWN=UNKNOWN.
func (t TriState) And(o TriState) TriState {
	if t == False || o == False {
		return False
	}

	if t == Unknown || o == Unknown {
		return Unknown
	}

	return True
}

// Or implements tri-state disjunction, dual to And.
func (t TriState) Or(o TriState) TriState {
	if t == True || o == True {
		return True
	}

	if t == Unknown || o == Unknown {
		return Unknown
	}

	return False
}

// EvidenceAtom is a single assertion read from a .db file: a signature, its
// ground argument constants, a truth value, and an optional probability
// (the grammar rejects probabilistic values, so this is always None for
// parsed evidence; it exists so evidence can be synthesized by callers
// outside the parser, e.g. by weight-learning diagnostics).
type EvidenceAtom struct {
	Signature   AtomSignature
	Args        []string
	Truth       TriState
	Probability util.Option[float64]
}

// FunctionMapping is a single `RetVal = fn(args)` assertion read from a .db
// file.
type FunctionMapping struct {
	Function    string
	ReturnValue string
	Args        []string
}
