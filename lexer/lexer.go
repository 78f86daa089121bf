// Package lexer implements C2: a DFA-driven longest-match scanner that
// turns source text into a token stream, dropping WHITESPACE and
// reclassifying identifiers that collide with reserved keywords.
package lexer

import (
	"unicode/utf8"

	"github.com/shadowCow/nettopo/automaton"
	"github.com/shadowCow/nettopo/grammar"
)

// Token is a single lexical token with its source position.
type Token struct {
	Kind   grammar.TokenType
	Lexeme string
	Line   int
	Col    int
}

// Lexer tokenizes source code using a compiled or loaded DFA. The DFA
// carries its own keyword table, so a Lexer needs nothing beyond dfa to
// reclassify matched identifiers into reserved words.
type Lexer struct {
	dfa    automaton.DfaWithTokens
	source string
	offset int
	line   int
	col    int
}

// NewLexer creates a lexer over source, scanning with dfa and
// reclassifying identifiers found in dfa.Keywords.
func NewLexer(dfa automaton.DfaWithTokens, source string) *Lexer {
	return &Lexer{
		dfa:    dfa,
		source: source,
		offset: 0,
		line:   1,
		col:    1,
	}
}

// Tokenize scans the entire source and returns its token stream, ending
// with a synthesized EOF token. WHITESPACE runs are dropped silently.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0)

	for l.offset < len(l.source) {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		if tok != nil {
			tokens = append(tokens, *tok)
		}
	}

	tokens = append(tokens, Token{Kind: grammar.TokenType("EOF"), Lexeme: "", Line: l.line, Col: l.col})
	return tokens, nil
}

// nextToken scans a single token via longest match, or nil if the scan
// consumed an ignored run (whitespace).
func (l *Lexer) nextToken() (*Token, error) {
	startOffset := l.offset
	startLine := l.line
	startCol := l.col

	state := l.dfa.InitialState
	lastAcceptState := ""
	lastAcceptOffset := -1
	lastAcceptLine := l.line
	lastAcceptCol := l.col

	for l.offset < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.offset:])
		if r == utf8.RuneError && size == 1 {
			break
		}

		nextState := l.dfa.NextState(state, r)
		if nextState == "" {
			break
		}

		state = nextState
		l.offset += size
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}

		if l.dfa.IsAccepting(state) {
			lastAcceptState = state
			lastAcceptOffset = l.offset
			lastAcceptLine = l.line
			lastAcceptCol = l.col
		}
	}

	if lastAcceptOffset <= startOffset {
		r, _ := utf8.DecodeRuneInString(l.source[startOffset:])
		return nil, newLexicalError(startLine, startCol, unexpectedCharReason(r))
	}

	kind := l.dfa.GetTokenType(lastAcceptState)
	lexeme := l.source[startOffset:lastAcceptOffset]

	l.offset = lastAcceptOffset
	l.line = lastAcceptLine
	l.col = lastAcceptCol

	if l.dfa.IsIgnored(lastAcceptState) {
		return nil, nil
	}

	if kind == grammar.TokenType("IDENTIFIER") {
		if reclassified, ok := l.dfa.Keywords.Lookup(lexeme); ok {
			kind = reclassified
		}
	}

	return &Token{Kind: kind, Lexeme: lexeme, Line: startLine, Col: startCol}, nil
}

func unexpectedCharReason(r rune) string {
	if r == utf8.RuneError {
		return "invalid UTF-8 sequence"
	}
	return "unexpected character " + string(r)
}
