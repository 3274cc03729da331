// Package ground implements the grounder (C10): parallel expansion of
// quantified CNF clauses over the constants domain into a ground MRF (C11),
// consulting the evidence DB (C9) and the atom identity function (C8).
package ground

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/anskarl/lomrf/pkg/evidence"
	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/identity"
	"github.com/anskarl/lomrf/pkg/mrf"
	"github.com/anskarl/lomrf/pkg/unify"
	log "github.com/sirupsen/logrus"
)

// Options configures a grounding run.
type Options struct {
	// Workers is the number of worker goroutines grounding partitions the
	// clause vector concurrently. Zero selects runtime.GOMAXPROCS(0), the
	// machine's hardware parallelism (§5).
	Workers int
	// DependencyMap requests that the resulting MRF carry a ground
	// constraint -> parent clause provenance map, required by Max-Margin
	// weight learning (§4.7, §4.8).
	DependencyMap bool
}

// UnsatError reports that a hard clause ground to the empty (absurd) clause:
// the theory is unsatisfiable as given and grounding is aborted (§4.7(d)).
type UnsatError struct {
	ClauseIndex int
	Clause      fol.Clause
}

func (e *UnsatError) Error() string {
	return fmt.Sprintf("ground: clause %d (%s) grounds to the empty clause under a hard weight: theory is unsatisfiable",
		e.ClauseIndex, e.Clause)
}

// Ground runs the grounder over a CNF theory, producing the MRF. clauses is
// the theory in its final compiled order (index order is semantically
// significant: it is the "parent clause index" the dependency map refers
// to).
func Ground(
	ctx context.Context,
	clauses []fol.Clause,
	domains *fol.ConstantsDomain,
	dyn *fol.DynamicRegistry,
	db *evidence.DB,
	ids *identity.Function,
	opts Options,
) (*mrf.MRF, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if workers > len(clauses) {
		workers = len(clauses)
	}

	if workers < 1 {
		workers = 1
	}

	builder := mrf.NewBuilder(opts.DependencyMap)

	group, gctx := errgroup.WithContext(ctx)

	chunk := (len(clauses) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(clauses) {
			break
		}

		end := start + chunk
		if end > len(clauses) {
			end = len(clauses)
		}

		group.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if err := groundOne(i, clauses[i], domains, dyn, db, ids, builder, opts.DependencyMap); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := builder.Result()

	log.WithFields(log.Fields{
		"clauses":     len(clauses),
		"atoms":       result.NumberOfAtoms(),
		"constraints": result.NumberOfConstraints(),
		"workers":     workers,
	}).Debug("grounding complete")

	return result, nil
}

// groundOne expands a single (possibly non-ground) clause over the
// cartesian product of its variables' domains, emitting zero or more ground
// constraints into builder.
func groundOne(
	clauseIndex int,
	c fol.Clause,
	domains *fol.ConstantsDomain,
	dyn *fol.DynamicRegistry,
	db *evidence.DB,
	ids *identity.Function,
	builder *mrf.Builder,
	withDeps bool,
) error {
	vars := c.Variables()

	domainValues := make([][]string, len(vars))

	for i, v := range vars {
		d := domains.Domain(v.Domain)
		if d == nil {
			return fmt.Errorf("ground: clause %d: variable %s has undeclared domain %q", clauseIndex, v.Symbol, v.Domain)
		}

		domainValues[i] = d.Constants()
	}

	return forEachTuple(domainValues, func(tuple []string) error {
		sub := make(unify.Substitution, len(vars))
		for i, v := range vars {
			sub[v] = fol.Constant{Symbol: tuple[i]}
		}

		ground := unify.ApplyClause(sub, c)

		literal, multiplicity, tautology, _, err := evalGroundClause(ground, dyn, db, ids)
		if err != nil {
			return err
		}

		if tautology {
			return nil
		}

		if len(literal) == 0 {
			if ground.IsHard() {
				return &UnsatError{ClauseIndex: clauseIndex, Clause: ground}
			}
			// Empty and soft: contributes a constant, dropped.
			return nil
		}

		var parents []mrf.ParentEntry
		if withDeps {
			parents = []mrf.ParentEntry{{ClauseIndex: clauseIndex, Count: multiplicity}}
		}

		builder.AddOrMergeConstraint(literal, ground.Weight, ground.IsHard(), parents)

		return nil
	})
}

// evalGroundClause evaluates a fully ground clause's literals against the
// dynamic registry and evidence DB (§4.7 steps b-e), returning the surviving
// signed atom ids, the combinatorial multiplicity contributed by collapsing
// duplicate literal occurrences (§4.7(e): "eliminate duplicate literals
// within the ground clause, summing multiplicities in the dependency map"),
// whether the clause is a tautology (to be discarded entirely), and whether
// any literal was dropped as evidence-contradicted (distinguishing a soft
// empty-by-evidence clause from a genuinely empty one).
//
// multiplicity starts at 1 (the grounding tuple itself) and gains one for
// every extra occurrence beyond the first of any signed literal, so a tuple
// whose clause collapses two identical literals down to one reports
// multiplicity 2 instead of silently losing the duplicate.
func evalGroundClause(c fol.Clause, dyn *fol.DynamicRegistry, db *evidence.DB, ids *identity.Function) (literal []int, multiplicity int, tautology bool, dropped bool, err error) {
	counts := make(map[int]int)

	out := make([]int, 0, len(c.Literals))

	for _, l := range c.Literals {
		if l.Atom.IsDynamic {
			satisfied, evalErr := dyn.EvalLiteral(l)
			if evalErr != nil {
				return nil, 0, false, false, evalErr
			}

			if satisfied {
				return nil, 0, true, false, nil
			}

			dropped = true

			continue
		}

		mode := db.ModeOf(l.Atom.Signature())

		if mode == evidence.CWA {
			truth, ok := db.Apply(l.Atom.Signature(), argStrings(l.Atom))
			if !ok {
				return nil, 0, false, false, fmt.Errorf("ground: evidence lookup failed for %s", l.Atom)
			}

			satisfied := (truth == fol.True && !l.Negative) || (truth == fol.False && l.Negative)
			if satisfied {
				return nil, 0, true, false, nil
			}

			dropped = true

			continue
		}

		id, ok := ids.Encode(l.Atom.Signature(), argStrings(l.Atom))
		if !ok {
			return nil, 0, false, false, fmt.Errorf("ground: %s is not a known ground atom under the identity function", l.Atom)
		}

		signed := id
		if l.Negative {
			signed = -id
		}

		if counts[-signed] > 0 {
			return nil, 0, true, false, nil
		}

		if counts[signed] == 0 {
			out = append(out, signed)
		}

		counts[signed]++
	}

	multiplicity = 1

	for _, n := range counts {
		if n > 1 {
			multiplicity += n - 1
		}
	}

	return out, multiplicity, false, dropped, nil
}

func argStrings(a fol.AtomicFormula) []string {
	args := make([]string, len(a.Args))

	for i, t := range a.Args {
		if c, ok := t.(fol.Constant); ok {
			args[i] = c.Symbol
		} else {
			args[i] = t.String()
		}
	}

	return args
}

// forEachTuple iterates the cartesian product of domainValues, calling fn
// with each tuple (indexed the same as domainValues) until fn returns a
// non-nil error or every tuple has been visited.
func forEachTuple(domainValues [][]string, fn func(tuple []string) error) error {
	tuple := make([]string, len(domainValues))

	var recurse func(i int) error

	recurse = func(i int) error {
		if i == len(domainValues) {
			return fn(tuple)
		}

		for _, v := range domainValues[i] {
			tuple[i] = v

			if err := recurse(i + 1); err != nil {
				return err
			}
		}

		return nil
	}

	return recurse(0)
}
