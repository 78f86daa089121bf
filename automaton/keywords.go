package automaton

import "github.com/shadowCow/nettopo/grammar"

// KeywordTable maps reserved words to the token kind they reclassify to
// once the scanner has already matched them as IDENTIFIER, plus whether
// the match is case-sensitive. The network-topology language's keywords
// are all case-sensitive Spanish words, but the table keeps the flag
// per-entry rather than global so a future grammar revision could mix
// case-insensitive keywords in without changing the lexer.
//
// A DfaWithTokens carries its own KeywordTable so that a loaded or
// compiled automaton is self-contained: the lexer needs nothing beyond
// the automaton to reclassify identifiers into reserved words.
type KeywordTable struct {
	entries       map[string]grammar.TokenType
	caseSensitive map[string]bool
}

// NewKeywordTable builds an empty keyword table.
func NewKeywordTable() KeywordTable {
	return KeywordTable{
		entries:       make(map[string]grammar.TokenType),
		caseSensitive: make(map[string]bool),
	}
}

// Add registers a keyword and the token kind it reclassifies to.
func (t KeywordTable) Add(word string, kind grammar.TokenType, caseSensitive bool) {
	t.entries[word] = kind
	t.caseSensitive[word] = caseSensitive
}

// Lookup returns the reclassified token kind for lexeme, if it names a
// keyword.
func (t KeywordTable) Lookup(lexeme string) (grammar.TokenType, bool) {
	if kind, ok := t.entries[lexeme]; ok {
		return kind, true
	}
	for word, kind := range t.entries {
		if !t.caseSensitive[word] && equalFold(word, lexeme) {
			return kind, true
		}
	}
	return "", false
}

// Entries returns the table's (word, kind, caseSensitive) rows in no
// particular order, for writers that need to serialize the table.
func (t KeywordTable) Entries() []KeywordEntry {
	entries := make([]KeywordEntry, 0, len(t.entries))
	for word, kind := range t.entries {
		entries = append(entries, KeywordEntry{
			Word:          word,
			Kind:          kind,
			CaseSensitive: t.caseSensitive[word],
		})
	}
	return entries
}

// KeywordEntry is one row of a KeywordTable.
type KeywordEntry struct {
	Word          string
	Kind          grammar.TokenType
	CaseSensitive bool
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
