package parse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/anskarl/lomrf/pkg/cnf"
	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/pc"
)

// WeightMode selects how WriteKB renders a formula's weight (§6's `-w`
// compile flag).
type WeightMode int

const (
	// KeepWeights renders each formula's weight as parsed: a numeric
	// prefix for soft weights, a trailing '.' alone for hard, neither for
	// "to be learned".
	KeepWeights WeightMode = iota
	// RemoveAllWeights strips every weight annotation (hard markers and
	// soft numbers alike), rendering every formula as "to be learned".
	RemoveAllWeights
	// RemoveSoftWeights strips only finite soft weight numbers (rendering
	// those formulas as "to be learned"), preserving hard formulas' '.'
	// marker.
	RemoveSoftWeights
)

// WriteOptions configures WriteKB.
type WriteOptions struct {
	// CNF requests that every formula be compiled and written as pure CNF
	// (one clause per line) rather than its original surface form.
	CNF        bool
	WeightMode WeightMode
}

// WriteKB renders kb back to `.mln` surface syntax (§6), the left inverse of
// ParseKB modulo weight-mode/CNF rewriting and whitespace. Used by `lomrf
// compile -o` and by tests exercising the parser round-trip.
func WriteKB(kb *KB, opts WriteOptions) (string, error) {
	var sb strings.Builder

	writeDomains(&sb, kb.Domains)
	sb.WriteString("\n")
	writePredicates(&sb, kb.Predicates)
	writeFunctions(&sb, kb.Functions)
	sb.WriteString("\n")

	if opts.CNF {
		clauses, err := compileAllToCNF(kb, opts.WeightMode)
		if err != nil {
			return "", err
		}

		sb.WriteString(WriteClauses(clauses, opts.WeightMode))

		return sb.String(), nil
	}

	for _, wf := range kb.Formulas {
		writeWeightedFormula(&sb, wf, opts.WeightMode)
	}

	for _, dc := range kb.DefiniteClauses {
		writeDefiniteClause(&sb, dc, opts.WeightMode)
	}

	return sb.String(), nil
}

// WriteSchemaHeader renders just kb's domains/predicates/functions sections,
// with no formulas. Used by callers (e.g. the weight-learning CLI) that
// write their own clause body via WriteClauses rather than going through
// WriteKB's KB-shaped input.
func WriteSchemaHeader(kb *KB) string {
	var sb strings.Builder

	writeDomains(&sb, kb.Domains)
	sb.WriteString("\n")
	writePredicates(&sb, kb.Predicates)
	writeFunctions(&sb, kb.Functions)
	sb.WriteString("\n")

	return sb.String()
}

// WriteClauses renders a compiled CNF clause vector back to `.mln` surface
// syntax, one weighted clause per line.
func WriteClauses(clauses []fol.Clause, mode WeightMode) string {
	var sb strings.Builder

	for _, c := range clauses {
		writeWeightPrefix(&sb, c.Weight, mode)
		sb.WriteString(c.String())
		writeWeightSuffix(&sb, c.Weight, mode)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeDomains(sb *strings.Builder, domains *fol.ConstantsDomain) {
	names := domains.Names()
	sort.Strings(names)

	for _, name := range names {
		d := domains.Domain(name)

		fmt.Fprintf(sb, "%s = {%s}\n", name, strings.Join(d.Constants(), ","))
	}
}

func writePredicates(sb *strings.Builder, predicates *fol.PredicateSchema) {
	for _, sig := range predicates.Signatures() {
		argDomains, _ := predicates.Lookup(sig)

		fmt.Fprintf(sb, "%s(%s)\n", sig.Symbol, strings.Join(argDomains, ","))
	}
}

func writeFunctions(sb *strings.Builder, functions *fol.FunctionSchema) {
	for _, sig := range functions.Signatures() {
		resultDomain, argDomains, _ := functions.Lookup(sig)

		fmt.Fprintf(sb, "%s %s(%s)\n", resultDomain, sig.Symbol, strings.Join(argDomains, ","))
	}
}

func writeWeightedFormula(sb *strings.Builder, wf fol.WeightedFormula, mode WeightMode) {
	writeWeightPrefix(sb, wf.Weight, mode)
	sb.WriteString(wf.Formula.String())
	writeWeightSuffix(sb, wf.Weight, mode)
	sb.WriteString("\n")
}

func writeDefiniteClause(sb *strings.Builder, dc fol.WeightedDefiniteClause, mode WeightMode) {
	writeWeightPrefix(sb, dc.Weight, mode)
	sb.WriteString(dc.Clause.Head.String())
	sb.WriteString(" :- ")
	sb.WriteString(dc.Clause.Body.String())
	writeWeightSuffix(sb, dc.Weight, mode)
	sb.WriteString("\n")
}

func writeWeightPrefix(sb *strings.Builder, weight float64, mode WeightMode) {
	if mode == RemoveAllWeights || mode == RemoveSoftWeights {
		return
	}

	if fol.IsWeightHard(weight) || fol.IsWeightUnknown(weight) {
		return
	}

	sb.WriteString(strconv.FormatFloat(weight, 'g', -1, 64))
	sb.WriteString(" ")
}

func writeWeightSuffix(sb *strings.Builder, weight float64, mode WeightMode) {
	hard := fol.IsWeightHard(weight)

	switch mode {
	case RemoveAllWeights:
		return
	case RemoveSoftWeights:
		if hard {
			sb.WriteString(".")
		}

		return
	default:
		if hard {
			sb.WriteString(".")
		}
	}
}

// compileAllToCNF runs the C6 pipeline over every formula/definite clause in
// kb (definite clauses are first completed via predicate completion under
// pc.Standard, matching the compiler's default), then post-processes the
// combined clause vector. mode is not applied here: WriteClauses applies it
// when the clauses are rendered.
func compileAllToCNF(kb *KB, mode WeightMode) ([]fol.Clause, error) {
	formulas := kb.Formulas
	if len(kb.DefiniteClauses) > 0 {
		completed, extra, err := pc.Complete(pc.Standard, kb.DefiniteClauses, kb.Formulas)
		if err != nil {
			return nil, err
		}

		formulas = append(append([]fol.WeightedFormula{}, completed...), extra...)
	}

	var all []fol.Clause

	for i, wf := range formulas {
		clauses, err := cnf.ToCNF(wf, kb.Domains)
		if err != nil {
			return nil, fmt.Errorf("formula %d: %w", i, err)
		}

		all = append(all, clauses...)
	}

	return cnf.PostProcess(all, fol.NewDynamicRegistry())
}
