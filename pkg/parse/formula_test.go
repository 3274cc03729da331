package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anskarl/lomrf/pkg/fol"
)

func parseTermString(t *testing.T, src string) fol.Term {
	t.Helper()

	tokens, err := Tokenize(src)
	require.NoError(t, err)

	p := &parser{tokens: tokens, dyn: fol.NewDynamicRegistry()}

	term, err := p.parseTerm()
	require.NoError(t, err)

	return term
}

func TestParseTermChainedArithmeticIsLeftAssociative(t *testing.T) {
	term := parseTermString(t, "a - b - c")

	want := fol.TermFunction{
		Symbol: "minus",
		Args: []fol.Term{
			fol.TermFunction{
				Symbol: "minus",
				Args:   []fol.Term{fol.NewVariable("a"), fol.NewVariable("b")},
			},
			fol.NewVariable("c"),
		},
	}

	assert.Equal(t, want, term)
}

func TestParseTermChainedDivisionIsLeftAssociative(t *testing.T) {
	term := parseTermString(t, "a / b / c / d")

	inner := fol.TermFunction{
		Symbol: "divide",
		Args:   []fol.Term{fol.NewVariable("a"), fol.NewVariable("b")},
	}
	middle := fol.TermFunction{Symbol: "divide", Args: []fol.Term{inner, fol.NewVariable("c")}}
	want := fol.TermFunction{Symbol: "divide", Args: []fol.Term{middle, fol.NewVariable("d")}}

	assert.Equal(t, want, term)
}

func TestParseTermMixedPostfixAndBinary(t *testing.T) {
	term := parseTermString(t, "a++ - b")

	want := fol.TermFunction{
		Symbol: "minus",
		Args: []fol.Term{
			fol.TermFunction{Symbol: "succ", Args: []fol.Term{fol.NewVariable("a")}},
			fol.NewVariable("b"),
		},
	}

	assert.Equal(t, term, want)
}
