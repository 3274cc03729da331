package parse

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/anskarl/lomrf/pkg/fol"
)

// ParsedEvidence is the result of parsing a `.db` file (C9 input): the
// asserted ground atoms and function mappings found in it.
type ParsedEvidence struct {
	Atoms            []fol.EvidenceAtom
	FunctionMappings []fol.FunctionMapping
}

// ParseEvidenceFile parses a `.db` file (§6): one assertion per statement,
// each either a function mapping (`RetVal = fn(arg1,...)`), a positive
// evidence atom (`P(a,b)`), a negative evidence atom (`!P(a,b)`), or a query
// atom (`?P(a,b)`, truth Unknown but recorded so callers can distinguish an
// explicit query marker from silence). Every constant referenced must belong
// to predicates/functions' declared domains (checked against domains); an
// unknown constant is an error (§6).
func ParseEvidenceFile(src string, predicates *fol.PredicateSchema, functions *fol.FunctionSchema, domains *fol.ConstantsDomain) (*ParsedEvidence, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	var errs *multierror.Error

	result := &ParsedEvidence{}

	for !p.at(EOF) {
		switch {
		case p.isFunctionMapping():
			fm, err := p.parseFunctionMapping()
			if err != nil {
				errs = multierror.Append(errs, err)
				p.skipToNextStatement()

				continue
			}

			if err := checkFunctionMappingConstants(fm, functions, domains); err != nil {
				errs = multierror.Append(errs, err)
				continue
			}

			result.FunctionMappings = append(result.FunctionMappings, fm)

		default:
			atom, err := p.parseEvidenceAtom()
			if err != nil {
				errs = multierror.Append(errs, err)
				p.skipToNextStatement()

				continue
			}

			if err := checkEvidenceAtomConstants(atom, predicates, domains); err != nil {
				errs = multierror.Append(errs, err)
				continue
			}

			result.Atoms = append(result.Atoms, atom)
		}
	}

	return result, errs.ErrorOrNil()
}

// parseParenConstantList parses `(c1,c2,...)` where each ci is a ground
// constant -- an identifier or a number literal, unlike the domain-name-only
// parenthesized lists of a KB schema declaration.
func (p *parser) parseParenConstantList() ([]string, error) {
	if _, err := p.expect(LParen, "'('"); err != nil {
		return nil, err
	}

	var out []string

	for !p.at(RParen) {
		tok := p.cur()
		if tok.Kind != Ident && tok.Kind != Number {
			return nil, &SyntaxError{Token: tok, Message: "expected a constant"}
		}

		p.next()

		out = append(out, tok.Text)

		if p.at(Comma) {
			p.next()
		}
	}

	if _, err := p.expect(RParen, "')'"); err != nil {
		return nil, err
	}

	return out, nil
}

// isFunctionMapping detects `Ident = Ident '('`, the only shape a `.db`
// statement starting with a bare identifier followed by '=' can take.
func (p *parser) isFunctionMapping() bool {
	return p.at(Ident) && p.atOffset(1, Assign) && p.atOffset(2, Ident) && p.atOffset(3, LParen)
}

func (p *parser) parseFunctionMapping() (fol.FunctionMapping, error) {
	retVal := p.next().Text

	if _, err := p.expect(Assign, "'='"); err != nil {
		return fol.FunctionMapping{}, err
	}

	fn := p.next().Text

	args, err := p.parseParenConstantList()
	if err != nil {
		return fol.FunctionMapping{}, err
	}

	if p.at(Dot) {
		p.next()
	}

	return fol.FunctionMapping{Function: fn, ReturnValue: retVal, Args: args}, nil
}

// parseEvidenceAtom parses `[!|?] Name(a1,a2,...)`.
func (p *parser) parseEvidenceAtom() (fol.EvidenceAtom, error) {
	truth := fol.True

	switch {
	case p.at(Bang):
		p.next()

		truth = fol.False
	case p.at(Question):
		p.next()

		truth = fol.Unknown
	}

	name, err := p.expect(Ident, "a predicate")
	if err != nil {
		return fol.EvidenceAtom{}, err
	}

	args, err := p.parseParenConstantList()
	if err != nil {
		return fol.EvidenceAtom{}, err
	}

	if p.at(Dot) {
		p.next()
	}

	return fol.EvidenceAtom{
		Signature: fol.AtomSignature{Symbol: name.Text, Arity: len(args)},
		Args:      args,
		Truth:     truth,
	}, nil
}

func checkEvidenceAtomConstants(atom fol.EvidenceAtom, predicates *fol.PredicateSchema, domains *fol.ConstantsDomain) error {
	argDomains, ok := predicates.Lookup(atom.Signature)
	if !ok {
		return fmt.Errorf("evidence atom %s: undeclared predicate %s", atom.Signature, atom.Signature)
	}

	if len(argDomains) != len(atom.Args) {
		return fmt.Errorf("evidence atom %s: expected %d arguments, got %d", atom.Signature, len(argDomains), len(atom.Args))
	}

	for i, a := range atom.Args {
		if err := checkConstant(domains, argDomains[i], a); err != nil {
			return fmt.Errorf("evidence atom %s: %w", atom.Signature, err)
		}
	}

	return nil
}

func checkFunctionMappingConstants(fm fol.FunctionMapping, functions *fol.FunctionSchema, domains *fol.ConstantsDomain) error {
	sig := fol.AtomSignature{Symbol: fm.Function, Arity: len(fm.Args)}

	resultDomain, argDomains, ok := functions.Lookup(sig)
	if !ok {
		return fmt.Errorf("function mapping for %s: undeclared function %s", fm.Function, sig)
	}

	if err := checkConstant(domains, resultDomain, fm.ReturnValue); err != nil {
		return fmt.Errorf("function mapping for %s: return value: %w", fm.Function, err)
	}

	for i, a := range fm.Args {
		if err := checkConstant(domains, argDomains[i], a); err != nil {
			return fmt.Errorf("function mapping for %s: %w", fm.Function, err)
		}
	}

	return nil
}

func checkConstant(domains *fol.ConstantsDomain, domainName, constant string) error {
	d := domains.Domain(domainName)
	if d == nil {
		return fmt.Errorf("undeclared domain %q", domainName)
	}

	if !d.Contains(constant) {
		return fmt.Errorf("%q is not a member of domain %q", constant, domainName)
	}

	return nil
}
