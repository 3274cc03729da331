// Package parse implements the parser (C4): the KB (`.mln`) and evidence
// (`.db`) grammars of §6, lexed and parsed by hand in the teacher's
// recursive-descent, token-buffer style (go-corset's `pkg/hir/parser.go`
// and `pkg/util/source/lex`), with type resolution and the (I1)-(I4)
// schema-validation pass run as a second pass over the produced AST.
package parse

import "fmt"

// Kind enumerates lexical token kinds.
type Kind int

const (
	EOF Kind = iota
	Ident
	Number
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Dot
	Bang        // !
	Question    // ?
	Assign      // =
	NotEq       // !=
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	PlusPlus    // ++
	MinusMinus  // --
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Percent     // %
	Ellipsis    // ...
	ColonDash   // :-
	Iff         // <=>
	Implies     // =>
	Or          // v  (keyword)
	And         // ^
	Forall      // Forall (keyword)
	Exist       // Exist  (keyword)
)

// Token is a single lexed token: its kind, literal text, and source
// position (1-based line/column) for error reporting.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("%q (line %d, col %d)", t.Text, t.Line, t.Col)
}

// SyntaxError reports a parse failure with the offending token attached
// (§4.1: "Errors are reported with the offending token").
type SyntaxError struct {
	Token   Token
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Token, e.Message)
}
