package parse

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/anskarl/lomrf/pkg/fol"
)

// KB is the parsed, type-checked contents of a `.mln` knowledge base file:
// its domains, predicate/function schemas, weighted formulas and weighted
// definite clauses.
type KB struct {
	Domains         *fol.ConstantsDomain
	Predicates      *fol.PredicateSchema
	Functions       *fol.FunctionSchema
	Formulas        []fol.WeightedFormula
	DefiniteClauses []fol.WeightedDefiniteClause
}

// ParseKB parses and type-checks a KB file (§4.1, §6). dyn supplies the
// built-in dynamic predicates/functions recognized while parsing atoms and
// terms.
func ParseKB(src string, dyn *fol.DynamicRegistry) (*KB, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, dyn: dyn}

	domainNames, err := p.prescanDomainNames()
	if err != nil {
		return nil, err
	}

	p.knownDomains = domainNames

	domainBuilder := fol.NewConstantsDomainBuilder()
	predicates := fol.NewPredicateSchema()
	functions := fol.NewFunctionSchema()

	var formulas []fol.WeightedFormula

	var definiteClauses []fol.WeightedDefiniteClause

	var errs *multierror.Error

	for !p.at(EOF) {
		switch {
		case p.isDomainDecl():
			name, constants, err := p.parseDomainDecl()
			if err != nil {
				errs = multierror.Append(errs, err)
				p.skipToNextStatement()

				continue
			}

			domainBuilder.AddAll(name, constants)

		case p.isFunctionSchemaDecl():
			sig, resultDomain, argDomains, err := p.parseFunctionSchemaDecl()
			if err != nil {
				errs = multierror.Append(errs, err)
				p.skipToNextStatement()

				continue
			}

			functions.Declare(sig, resultDomain, argDomains)

		case p.isPredicateSchemaDecl():
			sig, argDomains, err := p.parsePredicateSchemaDecl()
			if err != nil {
				errs = multierror.Append(errs, err)
				p.skipToNextStatement()

				continue
			}

			predicates.Declare(sig, argDomains)

		default:
			weight, isDefinite, formula, def, err := p.parseWeightedStatement()
			if err != nil {
				errs = multierror.Append(errs, err)
				p.skipToNextStatement()

				continue
			}

			if isDefinite {
				definiteClauses = append(definiteClauses, fol.WeightedDefiniteClause{Weight: weight, Clause: def})
			} else {
				formulas = append(formulas, fol.WeightedFormula{Weight: weight, Formula: formula})
			}
		}
	}

	if errs.ErrorOrNil() != nil {
		return nil, errs.ErrorOrNil()
	}

	domains := domainBuilder.Result()

	if err := resolveAndCheck(formulas, definiteClauses, predicates, functions, domains); err != nil {
		return nil, err
	}

	return &KB{
		Domains:         domains,
		Predicates:      predicates,
		Functions:       functions,
		Formulas:        formulas,
		DefiniteClauses: definiteClauses,
	}, nil
}

// parser holds cursor state shared by the KB and evidence-file grammars.
type parser struct {
	tokens       []Token
	pos          int
	dyn          *fol.DynamicRegistry
	knownDomains map[string]bool
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) at(k Kind) bool {
	return p.cur().Kind == k
}

func (p *parser) atOffset(n int, k Kind) bool {
	i := p.pos + n
	if i >= len(p.tokens) {
		return k == EOF
	}

	return p.tokens[i].Kind == k
}

func (p *parser) next() Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	return t
}

func (p *parser) expect(k Kind, what string) (Token, error) {
	if !p.at(k) {
		return Token{}, &SyntaxError{Token: p.cur(), Message: fmt.Sprintf("expected %s", what)}
	}

	return p.next(), nil
}

// skipToNextStatement recovers from a parse error by advancing past the
// next statement terminator ('.') or EOF, so ParseKB can keep collecting
// further errors instead of stopping at the first one.
func (p *parser) skipToNextStatement() {
	for !p.at(EOF) {
		if p.at(Dot) {
			p.next()
			return
		}

		p.next()
	}
}

// prescanDomainNames scans the entire token stream for `name = {` patterns
// so that predicate-schema-declaration detection works regardless of
// section ordering (§6: "Sections (order permissive)").
func (p *parser) prescanDomainNames() (map[string]bool, error) {
	names := make(map[string]bool)

	for i := 0; i+2 < len(p.tokens); i++ {
		if p.tokens[i].Kind == Ident && p.tokens[i+1].Kind == Assign && p.tokens[i+2].Kind == LBrace {
			names[p.tokens[i].Text] = true
		}
	}

	return names, nil
}

func (p *parser) isDomainDecl() bool {
	return p.at(Ident) && p.atOffset(1, Assign) && p.atOffset(2, LBrace)
}

func (p *parser) parseDomainDecl() (string, []string, error) {
	name := p.next().Text

	if _, err := p.expect(Assign, "'='"); err != nil {
		return "", nil, err
	}

	if _, err := p.expect(LBrace, "'{'"); err != nil {
		return "", nil, err
	}

	var items []string

	for !p.at(RBrace) {
		tok := p.next()
		if tok.Kind != Ident && tok.Kind != Number && tok.Kind != Ellipsis {
			return "", nil, &SyntaxError{Token: tok, Message: "expected a domain constant"}
		}

		items = append(items, tok.Text)

		if p.at(Comma) {
			p.next()
		}
	}

	if _, err := p.expect(RBrace, "'}'"); err != nil {
		return "", nil, err
	}

	if p.at(Dot) {
		p.next()
	}

	constants, err := expandDomainItems(items)
	if err != nil {
		return "", nil, err
	}

	return name, constants, nil
}

// expandDomainItems expands an integer-range domain literal (`{lo, ..., hi}`)
// into its enumerated constants, else returns the enumerated items as-is.
func expandDomainItems(items []string) ([]string, error) {
	if len(items) == 3 && items[1] == "..." {
		lo, err := asInt(items[0])
		if err != nil {
			return nil, err
		}

		hi, err := asInt(items[2])
		if err != nil {
			return nil, err
		}

		return fol.IntRange(lo, hi), nil
	}

	return items, nil
}

func asInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", s)
	}

	return n, nil
}

// isFunctionSchemaDecl detects `retDom name(` -- two bare identifiers
// followed by '(', which a formula or predicate declaration never produces.
func (p *parser) isFunctionSchemaDecl() bool {
	return p.at(Ident) && p.atOffset(1, Ident) && p.atOffset(2, LParen)
}

func (p *parser) parseFunctionSchemaDecl() (fol.AtomSignature, string, []string, error) {
	resultDomain := p.next().Text
	name := p.next().Text

	argDomains, err := p.parseParenIdentList()
	if err != nil {
		return fol.AtomSignature{}, "", nil, err
	}

	if p.at(Dot) {
		p.next()
	}

	return fol.AtomSignature{Symbol: name, Arity: len(argDomains)}, resultDomain, argDomains, nil
}

// isPredicateSchemaDecl detects `Name(d1,d2,...)` where every argument is an
// identifier matching an already-declared domain name, and the statement is
// not followed by ':-' (which would make it a definite clause head instead).
func (p *parser) isPredicateSchemaDecl() bool {
	if !(p.at(Ident) && p.atOffset(1, LParen)) {
		return false
	}

	i := p.pos + 2

	for i < len(p.tokens) {
		tok := p.tokens[i]
		if tok.Kind == RParen {
			break
		}

		if tok.Kind != Ident || !p.knownDomains[tok.Text] {
			return false
		}

		i++

		if i < len(p.tokens) && p.tokens[i].Kind == Comma {
			i++
			continue
		}
	}

	if i >= len(p.tokens) || p.tokens[i].Kind != RParen {
		return false
	}

	next := i + 1
	if next < len(p.tokens) && p.tokens[next].Kind == ColonDash {
		return false
	}

	return true
}

func (p *parser) parsePredicateSchemaDecl() (fol.AtomSignature, []string, error) {
	name := p.next().Text

	argDomains, err := p.parseParenIdentList()
	if err != nil {
		return fol.AtomSignature{}, nil, err
	}

	if p.at(Dot) {
		p.next()
	}

	return fol.AtomSignature{Symbol: name, Arity: len(argDomains)}, argDomains, nil
}

func (p *parser) parseParenIdentList() ([]string, error) {
	if _, err := p.expect(LParen, "'('"); err != nil {
		return nil, err
	}

	var out []string

	for !p.at(RParen) {
		tok, err := p.expect(Ident, "a domain name")
		if err != nil {
			return nil, err
		}

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

// parseWeightedStatement parses `[weight]? <formula-or-definite-clause> [.]`
// (§6). Absence of a numeric weight and absence of a trailing '.' denotes
// "to be learned" (NaN); a trailing '.' with no numeric weight denotes hard
// (+Inf).
func (p *parser) parseWeightedStatement() (weight float64, isDefinite bool, formula fol.Formula, def fol.DefiniteClause, err error) {
	weight = fol.WeightUnknown
	hasWeight := false

	if p.at(Number) || (p.at(Minus) && p.atOffset(1, Number)) {
		neg := false
		if p.at(Minus) {
			neg = true
			p.next()
		}

		tok := p.next()

		var w float64
		if _, serr := fmt.Sscanf(tok.Text, "%g", &w); serr != nil {
			return 0, false, nil, fol.DefiniteClause{}, &SyntaxError{Token: tok, Message: "expected a numeric weight"}
		}

		if neg {
			w = -w
		}

		weight = w
		hasWeight = true
	}

	head, err := p.parseFormula()
	if err != nil {
		return 0, false, nil, fol.DefiniteClause{}, err
	}

	if p.at(ColonDash) {
		p.next()

		headAtom, ok := head.(fol.Atomic)
		if !ok {
			return 0, false, nil, fol.DefiniteClause{}, &SyntaxError{Token: p.cur(), Message: "definite clause head must be an atomic formula"}
		}

		body, err := p.parseFormula()
		if err != nil {
			return 0, false, nil, fol.DefiniteClause{}, err
		}

		isHard := false

		if p.at(Dot) {
			p.next()

			isHard = true
		}

		if !hasWeight && isHard {
			weight = fol.WeightHardFormula
		}

		return weight, true, nil, fol.DefiniteClause{Head: headAtom.Atom, Body: body}, nil
	}

	isHard := false

	if p.at(Dot) {
		p.next()

		isHard = true
	}

	if !hasWeight && isHard {
		weight = fol.WeightHardFormula
	}

	return weight, false, head, fol.DefiniteClause{}, nil
}
