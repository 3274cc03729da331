// Package compiler orchestrates C1-C11 end to end: parsing a KB and its
// evidence, predicate completion, CNF compilation, building the atom
// identity function and evidence DB, and grounding the Markov Random Field.
package compiler

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/anskarl/lomrf/pkg/cnf"
	"github.com/anskarl/lomrf/pkg/evidence"
	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/ground"
	"github.com/anskarl/lomrf/pkg/identity"
	"github.com/anskarl/lomrf/pkg/mrf"
	"github.com/anskarl/lomrf/pkg/parse"
	"github.com/anskarl/lomrf/pkg/pc"
)

// Options configures an end-to-end compile. CWA/OWA/Query classify
// predicates for the evidence DB (§6's `-cwa`/`-owa`/`-q` CLI flags); a
// predicate named in none of them defaults to OWA. Listing a predicate in
// more than one of CWA/OWA/Query is a configuration error.
type Options struct {
	CompletionMode pc.Mode
	CWA            []fol.AtomSignature
	OWA            []fol.AtomSignature
	Query          []fol.AtomSignature
	Grounding      ground.Options
}

// Result is everything a compile run produces: the parsed KB, the final
// ground-ready CNF theory (index order is the parent-clause order the MRF's
// dependency map refers to), the atom identity function, the evidence DB,
// and the grounded MRF.
type Result struct {
	KB       *parse.KB
	Clauses  []fol.Clause
	Identity *identity.Function
	Evidence *evidence.DB
	MRF      *mrf.MRF
}

// Compile runs the full pipeline: parse the KB and evidence sources, apply
// predicate completion to any definite clauses, compile every weighted
// formula to CNF, build the identity function (extended with one auxiliary
// predicate per function referenced by a function mapping in the evidence),
// build the evidence DB, then ground the MRF.
func Compile(ctx context.Context, kbSrc, evidenceSrc string, opts Options) (*Result, error) {
	dyn := fol.NewDynamicRegistry()

	kb, err := parse.ParseKB(kbSrc, dyn)
	if err != nil {
		return nil, fmt.Errorf("compiler: parsing KB: %w", err)
	}

	log.WithFields(log.Fields{
		"domains":          len(kb.Domains.Names()),
		"formulas":         len(kb.Formulas),
		"definite_clauses": len(kb.DefiniteClauses),
	}).Debug("compiler: KB parsed")

	formulas, err := completeAndCollect(kb, opts.CompletionMode)
	if err != nil {
		return nil, fmt.Errorf("compiler: predicate completion: %w", err)
	}

	clauses, err := compileToCNF(formulas, kb.Domains, dyn)
	if err != nil {
		return nil, fmt.Errorf("compiler: CNF compilation: %w", err)
	}

	ev, err := parse.ParseEvidenceFile(evidenceSrc, kb.Predicates, kb.Functions, kb.Domains)
	if err != nil {
		return nil, fmt.Errorf("compiler: parsing evidence: %w", err)
	}

	idSchema, err := schemaWithAuxPredicates(kb.Predicates, kb.Functions, ev)
	if err != nil {
		return nil, fmt.Errorf("compiler: building identity schema: %w", err)
	}

	ids, err := identity.Build(idSchema, kb.Domains)
	if err != nil {
		return nil, fmt.Errorf("compiler: building atom identity function: %w", err)
	}

	db, err := buildEvidenceDB(ids, opts, ev)
	if err != nil {
		return nil, fmt.Errorf("compiler: building evidence DB: %w", err)
	}

	m, err := ground.Ground(ctx, clauses, kb.Domains, dyn, db, ids, opts.Grounding)
	if err != nil {
		return nil, fmt.Errorf("compiler: grounding: %w", err)
	}

	log.WithFields(log.Fields{
		"atoms":       m.NumberOfAtoms(),
		"constraints": m.NumberOfConstraints(),
	}).Debug("compiler: grounding complete")

	return &Result{KB: kb, Clauses: clauses, Identity: ids, Evidence: db, MRF: m}, nil
}

// completeAndCollect runs predicate completion (C7) over the KB's definite
// clauses, if any, and returns the combined weighted-formula set to compile.
func completeAndCollect(kb *parse.KB, mode pc.Mode) ([]fol.WeightedFormula, error) {
	if len(kb.DefiniteClauses) == 0 {
		return kb.Formulas, nil
	}

	completed, extra, err := pc.Complete(mode, kb.DefiniteClauses, kb.Formulas)
	if err != nil {
		return nil, err
	}

	out := make([]fol.WeightedFormula, 0, len(completed)+len(extra))
	out = append(out, completed...)
	out = append(out, extra...)

	return out, nil
}

// compileToCNF runs the full C6 pipeline (implication removal, NNF,
// standardize-apart, existential expansion, CNF distribution) over every
// formula, then post-processes the combined clause vector (tautology
// elimination, ground-dynamic-literal evaluation, §4.3/§4.7).
func compileToCNF(formulas []fol.WeightedFormula, domains *fol.ConstantsDomain, dyn *fol.DynamicRegistry) ([]fol.Clause, error) {
	var all []fol.Clause

	for i, wf := range formulas {
		clauses, err := cnf.ToCNF(wf, domains)
		if err != nil {
			return nil, fmt.Errorf("formula %d: %w", i, err)
		}

		all = append(all, clauses...)
	}

	return cnf.PostProcess(all, dyn)
}

// schemaWithAuxPredicates clones predicates and extends the clone with one
// auxiliary predicate per distinct function referenced by ev's function
// mappings (§4.6: `retval = fn(args)` becomes evidence for
// `Aux_fn(retval, args...)`), so the identity function allocates an id range
// for it.
func schemaWithAuxPredicates(predicates *fol.PredicateSchema, functions *fol.FunctionSchema, ev *parse.ParsedEvidence) (*fol.PredicateSchema, error) {
	out := fol.NewPredicateSchema()

	for _, sig := range predicates.Signatures() {
		argDomains, _ := predicates.Lookup(sig)
		out.Declare(sig, argDomains)
	}

	seen := make(map[fol.AtomSignature]bool)

	for _, fm := range ev.FunctionMappings {
		fnSig := fol.AtomSignature{Symbol: fm.Function, Arity: len(fm.Args)}

		auxSig := evidence.AuxPredicateSignature(fm.Function, len(fm.Args))
		if seen[auxSig] {
			continue
		}

		seen[auxSig] = true

		resultDomain, argDomains, ok := functions.Lookup(fnSig)
		if !ok {
			return nil, fmt.Errorf("function mapping for %s: undeclared function %s", fm.Function, fnSig)
		}

		full := make([]string, 0, len(argDomains)+1)
		full = append(full, resultDomain)
		full = append(full, argDomains...)

		out.Declare(auxSig, full)
	}

	return out, nil
}

// buildEvidenceDB declares every predicate's mode per opts (defaulting to
// OWA), then asserts every parsed evidence atom and function mapping.
func buildEvidenceDB(ids *identity.Function, opts Options, ev *parse.ParsedEvidence) (*evidence.DB, error) {
	b := evidence.NewBuilder(ids)

	modeOf := make(map[fol.AtomSignature]string)
	for mode, sigs := range map[string][]fol.AtomSignature{"CWA": opts.CWA, "OWA": opts.OWA, "Query": opts.Query} {
		for _, sig := range sigs {
			if prev, ok := modeOf[sig]; ok && prev != mode {
				return nil, fmt.Errorf("predicate %s is listed as both %s and %s", sig, prev, mode)
			}

			modeOf[sig] = mode
		}
	}

	for _, sig := range opts.CWA {
		b.DeclareCWA(sig)
	}

	for _, sig := range opts.OWA {
		b.DeclareOWA(sig)
	}

	for _, sig := range opts.Query {
		b.DeclareOWA(sig)
	}

	for _, a := range ev.Atoms {
		b.Assert(a)
	}

	for _, fm := range ev.FunctionMappings {
		b.AssertFunctionMapping(fm)
	}

	return b.Result()
}
