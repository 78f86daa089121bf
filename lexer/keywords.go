package lexer

import "github.com/shadowCow/nettopo/automaton"

// KeywordTable is an alias for automaton.KeywordTable: the table now
// lives alongside DfaWithTokens so a loaded or compiled automaton
// carries its own keyword map, but the lexer package keeps this name so
// existing callers building a table for a hand-assembled grammar don't
// need to import automaton directly.
type KeywordTable = automaton.KeywordTable

// NewKeywordTable builds an empty keyword table.
func NewKeywordTable() KeywordTable {
	return automaton.NewKeywordTable()
}
