package ll1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/nettopo/grammar"
	"github.com/shadowCow/nettopo/langdef"
)

func buildTable(t *testing.T) (grammar.SyntacticGrammar, *ParseTable) {
	t.Helper()
	syn := langdef.GetSyntacticGrammar()
	first := ComputeFirstSets(syn)
	follow := ComputeFollowSets(syn, first)
	table, err := BuildParseTable(syn, first, follow)
	require.NoError(t, err, "network-topology grammar must be LL(1)")
	return syn, table
}

func tok(kind grammar.TokenType, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: 1, Col: 1}
}

func TestNetworkTopologyGrammarIsLL1(t *testing.T) {
	buildTable(t)
}

func TestValidatorAcceptsMinimalProgram(t *testing.T) {
	syn, table := buildTable(t)

	tokens := []Token{
		tok(langdef.KwPrograma, "programa"),
		tok(langdef.TokIdentifier, "t"),
		tok(langdef.OpSemicolon, ";"),
		tok(langdef.KwInicio, "inicio"),
		tok(langdef.KwFin, "fin"),
		tok(langdef.OpDot, "."),
	}

	v := NewValidator(table, syn, tokens)
	assert.NoError(t, v.Validate())
}

func TestValidatorRejectsUnknownDefineKeyword(t *testing.T) {
	syn, table := buildTable(t)

	tokens := []Token{
		tok(langdef.KwPrograma, "programa"),
		tok(langdef.TokIdentifier, "p"),
		tok(langdef.OpSemicolon, ";"),
		tok(langdef.KwDefine, "define"),
		tok(langdef.TokIdentifier, "segmento"), // not maquinas/concentradores/coaxial
		tok(langdef.TokIdentifier, "c"),
		tok(langdef.OpEquals, "="),
		tok(langdef.TokNumber, "10"),
		tok(langdef.OpSemicolon, ";"),
		tok(langdef.KwInicio, "inicio"),
		tok(langdef.KwFin, "fin"),
		tok(langdef.OpDot, "."),
	}

	v := NewValidator(table, syn, tokens)
	require.Error(t, v.Validate())
}

func TestValidatorRejectsMissingPeriodTerminator(t *testing.T) {
	syn, table := buildTable(t)

	tokens := []Token{
		tok(langdef.KwPrograma, "programa"),
		tok(langdef.TokIdentifier, "t"),
		tok(langdef.OpSemicolon, ";"),
		tok(langdef.KwInicio, "inicio"),
		tok(langdef.KwFin, "fin"),
	}

	v := NewValidator(table, syn, tokens)
	require.Error(t, v.Validate())
}
