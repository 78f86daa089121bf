package automaton

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/nettopo/grammar"
)

func TestLoadParsesKeywordsSection(t *testing.T) {
	src := `
METADATA
start: S0

STATES
S0
S1

TRANSITIONS
S0 -> S1 : ALPHA

ACCEPT
S1 : IDENTIFIER : 1

KEYWORDS
si : SI
sino : SINO : ci
END_KEYWORDS
`
	dfa, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	kind, ok := dfa.Keywords.Lookup("si")
	require.True(t, ok)
	assert.Equal(t, grammar.TokenType("SI"), kind)

	kind, ok = dfa.Keywords.Lookup("SINO")
	require.True(t, ok)
	assert.Equal(t, grammar.TokenType("SINO"), kind)

	_, ok = dfa.Keywords.Lookup("otro")
	assert.False(t, ok)
}

func TestLoadRejectsKeywordsSectionMissingTerminator(t *testing.T) {
	src := `
METADATA
start: S0

STATES
S0
S1

TRANSITIONS
S0 -> S1 : ALPHA

ACCEPT
S1 : IDENTIFIER : 1

KEYWORDS
si : SI
`
	_, err := Load(strings.NewReader(src))
	require.Error(t, err)
}

func TestWriteThenLoadRoundTripsKeywords(t *testing.T) {
	lg := grammar.LexicalGrammar{
		Tokens: []grammar.TokenDefinition{
			{Name: "IDENT", Pattern: grammar.LexSequence{
				grammar.Alpha(),
				grammar.LexZeroOrMore{Inner: grammar.Alnum()},
			}, Priority: 1},
		},
	}
	dfa := CompileLexicalGrammar(lg)
	dfa.Keywords.Add("si", "SI", true)
	dfa.Keywords.Add("sino", "SINO", false)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dfa))

	loaded, err := Load(&buf)
	require.NoError(t, err)

	kind, ok := loaded.Keywords.Lookup("si")
	require.True(t, ok)
	assert.Equal(t, grammar.TokenType("SI"), kind)

	kind, ok = loaded.Keywords.Lookup("SINO")
	require.True(t, ok)
	assert.Equal(t, grammar.TokenType("SINO"), kind)
}
