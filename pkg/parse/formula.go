package parse

import (
	"fmt"

	"github.com/anskarl/lomrf/pkg/fol"
)

// parseFormula parses a full formula at the lowest-precedence level (<=>),
// per §6's "Operators by precedence (low -> high): <=>, =>, v, ^, !".
func (p *parser) parseFormula() (fol.Formula, error) {
	return p.parseIff()
}

func (p *parser) parseIff() (fol.Formula, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}

	if p.at(Iff) {
		p.next()

		right, err := p.parseIff()
		if err != nil {
			return nil, err
		}

		return fol.Equivalence{Left: left, Right: right}, nil
	}

	return left, nil
}

func (p *parser) parseImplies() (fol.Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.at(Implies) {
		p.next()

		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}

		return fol.Implies{Left: left, Right: right}, nil
	}

	return left, nil
}

func (p *parser) parseOr() (fol.Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.at(Or) {
		p.next()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = fol.Or{Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (fol.Formula, error) {
	left, err := p.parseUnit()
	if err != nil {
		return nil, err
	}

	for p.at(And) {
		p.next()

		right, err := p.parseUnit()
		if err != nil {
			return nil, err
		}

		left = fol.And{Left: left, Right: right}
	}

	return left, nil
}

// parseUnit parses the highest-precedence forms: negation, quantifiers,
// parenthesized subformulas, and atoms.
func (p *parser) parseUnit() (fol.Formula, error) {
	switch {
	case p.at(Bang):
		p.next()

		operand, err := p.parseUnit()
		if err != nil {
			return nil, err
		}

		return fol.Not{Operand: operand}, nil

	case p.at(Forall):
		return p.parseQuantifier(false)

	case p.at(Exist):
		return p.parseQuantifier(true)

	case p.at(LParen):
		p.next()

		f, err := p.parseIff()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RParen, "')'"); err != nil {
			return nil, err
		}

		return f, nil

	default:
		return p.parseAtomOrInfix()
	}
}

// parseQuantifier parses `Forall x[,y,...] F` / `Exist x[,y,...] F`,
// desugaring a multi-variable quantifier into nested single-variable ones
// (the AST's UniversalQuantifier/ExistentialQuantifier each bind one
// variable).
func (p *parser) parseQuantifier(existential bool) (fol.Formula, error) {
	p.next()

	var vars []string

	for {
		tok, err := p.expect(Ident, "a quantified variable")
		if err != nil {
			return nil, err
		}

		vars = append(vars, tok.Text)

		if p.at(Comma) {
			p.next()
			continue
		}

		break
	}

	body, err := p.parseUnit()
	if err != nil {
		return nil, err
	}

	for i := len(vars) - 1; i >= 0; i-- {
		v := fol.NewVariable(vars[i])
		if existential {
			body = fol.ExistentialQuantifier{Variable: v, Operand: body}
		} else {
			body = fol.UniversalQuantifier{Variable: v, Operand: body}
		}
	}

	return body, nil
}

// parseAtomOrInfix parses either a predicate atom (`Name(t1,...)` or a bare
// unary `Name`) or an infix dynamic comparison (`t1 OP t2`), per §6's
// "Infix dynamic atoms: =, !=, <, <=, >, >=".
func (p *parser) parseAtomOrInfix() (fol.Formula, error) {
	nameTok, err := p.expect(Ident, "a predicate or term")
	if err != nil {
		return nil, err
	}

	if p.at(LParen) {
		args, err := p.parseArgList(nameTok.Text)
		if err != nil {
			return nil, err
		}

		return fol.Atomic{Atom: fol.AtomicFormula{
			Symbol:    nameTok.Text,
			Args:      args,
			IsDynamic: p.dyn != nil && p.dyn.IsDynamicPredicate(fol.AtomSignature{Symbol: nameTok.Text, Arity: len(args)}),
		}}, nil
	}

	left := p.termFromIdent(nameTok)
	left, err = p.parseTermSuffix(left)
	if err != nil {
		return nil, err
	}

	if symbol, ok := p.infixOp(); ok {
		p.next()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		return fol.Atomic{Atom: fol.AtomicFormula{
			Symbol:    symbol,
			Args:      []fol.Term{left, right},
			IsDynamic: true,
		}}, nil
	}

	// A bare identifier with no following '(' and no infix operator is a
	// unary predicate used without parens (§6: "Unary predicate may omit
	// parens").
	return fol.Atomic{Atom: fol.AtomicFormula{
		Symbol: nameTok.Text,
		Args:   []fol.Term{left},
		IsDynamic: p.dyn != nil && p.dyn.IsDynamicPredicate(fol.AtomSignature{Symbol: nameTok.Text, Arity: 1}),
	}}, nil
}

func (p *parser) infixOp() (string, bool) {
	switch p.cur().Kind {
	case Assign:
		return "equals", true
	case NotEq:
		return "notEquals", true
	case Lt:
		return "lessThan", true
	case LtEq:
		return "lessThanEq", true
	case Gt:
		return "greaterThan", true
	case GtEq:
		return "greaterThanEq", true
	default:
		return "", false
	}
}

func (p *parser) parseArgList(predicateName string) ([]fol.Term, error) {
	if _, err := p.expect(LParen, "'('"); err != nil {
		return nil, err
	}

	var args []fol.Term

	for !p.at(RParen) {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		args = append(args, t)

		if p.at(Comma) {
			p.next()
		}
	}

	if _, err := p.expect(RParen, "')'"); err != nil {
		return nil, err
	}

	return args, nil
}

// parseTerm parses a single term: a constant, a variable, a function call
// (one level, per I4), or a postfix/binary dynamic-function shortcut.
func (p *parser) parseTerm() (fol.Term, error) {
	t, err := p.parseTermBase()
	if err != nil {
		return nil, err
	}

	return p.parseTermSuffix(t)
}

// parseTermBase parses a single constant, variable, or function call (one
// level, per I4), with no postfix or binary suffix applied.
func (p *parser) parseTermBase() (fol.Term, error) {
	tok, err := p.expect(Ident, "a term")
	if err != nil {
		tok, err = p.expect(Number, "a term")
		if err != nil {
			return nil, err
		}
	}

	if p.at(LParen) {
		args, err := p.parseArgList(tok.Text)
		if err != nil {
			return nil, err
		}

		return fol.TermFunction{Symbol: tok.Text, Args: args}, nil
	}

	return p.termFromIdent(tok), nil
}

// parseTermSuffix applies postfix (`t++`, `t--`) and left-associative
// binary (`a + b`, `a - b`, `a * b`, `a / b`, `a % b`) dynamic-function
// shortcuts to an already-parsed base term. Each binary operator's right
// operand is only the next base term, so the loop itself folds a chain
// like `a - b - c` left-associatively into `minus(minus(a,b), c)` rather
// than recursing into a full suffix parse that would fold it right.
func (p *parser) parseTermSuffix(t fol.Term) (fol.Term, error) {
	for {
		switch {
		case p.at(PlusPlus):
			p.next()

			t = fol.TermFunction{Symbol: "succ", Args: []fol.Term{t}}
		case p.at(MinusMinus):
			p.next()

			t = fol.TermFunction{Symbol: "prec", Args: []fol.Term{t}}
		case p.at(Plus), p.at(Minus), p.at(Star), p.at(Slash), p.at(Percent):
			symbol := binaryFunctionSymbol(p.cur().Kind)

			p.next()

			right, err := p.parseTermBase()
			if err != nil {
				return nil, err
			}

			t = fol.TermFunction{Symbol: symbol, Args: []fol.Term{t, right}}
		default:
			return t, nil
		}
	}
}

func binaryFunctionSymbol(k Kind) string {
	switch k {
	case Plus:
		return "plus"
	case Minus:
		return "minus"
	case Star:
		return "times"
	case Slash:
		return "divide"
	case Percent:
		return "mod"
	default:
		return fmt.Sprintf("op%d", k)
	}
}

// termFromIdent classifies a bare identifier as a Variable (lowercase
// leading rune) or Constant (otherwise), the lomrf/LoMRF convention.
func (p *parser) termFromIdent(tok Token) fol.Term {
	if tok.Kind == Number {
		return fol.Constant{Symbol: tok.Text}
	}

	if len(tok.Text) > 0 && tok.Text[0] >= 'a' && tok.Text[0] <= 'z' {
		return fol.NewVariable(tok.Text)
	}

	return fol.Constant{Symbol: tok.Text}
}
