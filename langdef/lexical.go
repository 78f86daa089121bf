package langdef

import (
	"github.com/shadowCow/nettopo/automaton"
	"github.com/shadowCow/nettopo/grammar"
)

// GetLexicalGrammar returns the lexical grammar for the network-topology
// language: identifiers (from which keywords are later reclassified by
// the lexer's keyword table), decimal integers, double-quoted strings,
// the fixed operator/delimiter set, and whitespace.
func GetLexicalGrammar() grammar.LexicalGrammar {
	letter := grammar.Alpha()
	digit := grammar.Digit()

	identifier := grammar.LexSequence{
		letter,
		grammar.LexZeroOrMore{Inner: grammar.Alnum()},
	}

	number := grammar.LexOneOrMore{Inner: digit}

	// A string body character is either a plain character (not the
	// closing quote, a newline, or a backslash) or a two-character escape
	// sequence: backslash followed by one of \\, \", \n.
	strBodyChar := grammar.LexAlternative{
		grammar.AnyCharExcept{'"', '\n', '\\'},
		grammar.LexSequence{
			grammar.Literal(`\`),
			grammar.CharSet{'\\', '"', 'n'},
		},
	}

	str := grammar.LexSequence{
		grammar.Literal(`"`),
		grammar.LexZeroOrMore{Inner: strBodyChar},
		grammar.Literal(`"`),
	}

	whitespace := grammar.LexOneOrMore{Inner: grammar.Space()}

	return grammar.LexicalGrammar{
		Tokens: []grammar.TokenDefinition{
			{Name: TokIdentifier, Pattern: identifier, Priority: 1},
			{Name: TokNumber, Pattern: number, Priority: 1},
			{Name: TokString, Pattern: str, Priority: 1},
			{Name: TokWhitespace, Pattern: whitespace, Priority: 1, Ignored: true},

			{Name: OpLte, Pattern: grammar.Literal("<="), Priority: 2},
			{Name: OpGte, Pattern: grammar.Literal(">="), Priority: 2},
			{Name: OpNeq, Pattern: grammar.Literal("<>"), Priority: 2},
			{Name: OpAnd, Pattern: grammar.Literal("&&"), Priority: 2},
			{Name: OpOr, Pattern: grammar.Literal("||"), Priority: 2},

			{Name: OpSemicolon, Pattern: grammar.Literal(";"), Priority: 1},
			{Name: OpComma, Pattern: grammar.Literal(","), Priority: 1},
			{Name: OpEquals, Pattern: grammar.Literal("="), Priority: 1},
			{Name: OpLt, Pattern: grammar.Literal("<"), Priority: 1},
			{Name: OpGt, Pattern: grammar.Literal(">"), Priority: 1},
			{Name: OpNot, Pattern: grammar.Literal("!"), Priority: 1},
			{Name: OpLParen, Pattern: grammar.Literal("("), Priority: 1},
			{Name: OpRParen, Pattern: grammar.Literal(")"), Priority: 1},
			{Name: OpDot, Pattern: grammar.Literal("."), Priority: 1},
			{Name: OpLBracket, Pattern: grammar.Literal("["), Priority: 1},
			{Name: OpRBracket, Pattern: grammar.Literal("]"), Priority: 1},
		},
	}
}

// Keywords returns the reserved-word table: every entry reclassifies
// from IDENTIFIER to its specific token kind, case-sensitive.
func Keywords() []KeywordEntry {
	return keywordEntries
}

// BuildKeywordTable assembles the automaton.KeywordTable (lexer.KeywordTable
// is an alias of it) the scanner uses to reclassify IDENTIFIER matches into
// reserved-word token kinds.
func BuildKeywordTable() automaton.KeywordTable {
	table := automaton.NewKeywordTable()
	for _, e := range keywordEntries {
		table.Add(e.Word, e.Kind, true)
	}
	return table
}
