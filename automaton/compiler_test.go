package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/nettopo/grammar"
)

func TestCompilePatternToNFALiteral(t *testing.T) {
	nfa := CompilePatternToNFA(grammar.Literal("abc"))

	require.NotNil(t, nfa)
	assert.NotEqual(t, nfa.Start, nfa.Accept)
	assert.NotEmpty(t, nfa.States)
}

func TestCompilePatternToNFACharRange(t *testing.T) {
	nfa := CompilePatternToNFA(grammar.CharRange{From: 'a', To: 'z'})

	require.NotNil(t, nfa)
	start := nfa.States[nfa.Start]
	assert.NotEmpty(t, start.Transitions)
}

func TestCompileLexicalGrammarProducesAcceptingStatesForEveryToken(t *testing.T) {
	lg := grammar.LexicalGrammar{
		Tokens: []grammar.TokenDefinition{
			{Name: "IF", Pattern: grammar.Literal("if"), Priority: 1},
			{Name: "IDENT", Pattern: grammar.LexSequence{
				grammar.Alpha(),
				grammar.LexZeroOrMore{Inner: grammar.Alnum()},
			}, Priority: 1},
		},
	}

	dfa := CompileLexicalGrammar(lg)
	require.NoError(t, Validate(dfa))

	state := dfa.InitialState
	for _, r := range "if" {
		state = dfa.NextState(state, r)
		require.NotEmpty(t, state)
	}
	assert.True(t, dfa.IsAccepting(state))

	state = dfa.InitialState
	for _, r := range "x1" {
		state = dfa.NextState(state, r)
		require.NotEmpty(t, state)
	}
	assert.True(t, dfa.IsAccepting(state))
	assert.Equal(t, grammar.TokenType("IDENT"), dfa.GetTokenType(state))
}
