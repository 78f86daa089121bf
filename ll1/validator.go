package ll1

import (
	"fmt"
	"io"

	"github.com/shadowCow/nettopo/grammar"
)

// Token is the minimal view of a scanned token the validator needs: kind,
// lexeme (for error messages and the parse trace), and position.
type Token struct {
	Kind   grammar.TokenType
	Lexeme string
	Line   int
	Col    int
}

// Validator runs the stack-based predictive parsing algorithm (C4)
// against a parse table: it confirms the token stream is a member of the
// language the grammar defines, without constructing any tree. A second,
// independent pass (the astbuild package) walks the same tokens to build
// the AST once validation succeeds.
type Validator struct {
	table   *ParseTable
	grammar grammar.SyntacticGrammar
	tokens  []Token
	pos     int
	trace   bool
	tracer  *ParseTracer
	out     io.Writer
}

// NewValidator creates a predictive validator over tokens, which must
// already have WHITESPACE dropped (the lexer does this at scan time).
func NewValidator(table *ParseTable, syn grammar.SyntacticGrammar, tokens []Token) *Validator {
	return &Validator{
		table:   table,
		grammar: syn,
		tokens:  tokens,
	}
}

// SetTrace enables step-by-step trace output to out.
func (v *Validator) SetTrace(enabled bool, out io.Writer) {
	v.trace = enabled
	v.out = out
	if enabled {
		v.tracer = NewParseTracer()
	}
}

type stackItem struct {
	symbol     string
	isTerminal bool
}

const symbolEOF = "$"

// Validate runs the stack algorithm to completion. It returns nil if the
// token stream is a valid derivation of the grammar's start symbol, or a
// *SyntaxError identifying the first token the table has no entry for.
func (v *Validator) Validate() error {
	stack := []stackItem{
		{symbol: symbolEOF, isTerminal: true},
		{symbol: string(v.grammar.StartSymbol), isTerminal: false},
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		lookahead := v.currentTokenKind()

		if v.trace {
			v.tracer.Step(stackSymbols(stack, top), lookahead, fmt.Sprintf("pop %s", top.symbol), v.out)
		}

		if top.isTerminal {
			if top.symbol == symbolEOF {
				if v.pos >= len(v.tokens) {
					break
				}
				tok := v.tokens[v.pos]
				return newSyntaxError(tok.Line, tok.Col, []string{symbolEOF}, string(tok.Kind))
			}

			if v.pos >= len(v.tokens) {
				return newSyntaxError(0, 0, []string{top.symbol}, symbolEOF)
			}

			current := v.tokens[v.pos]
			if string(current.Kind) != top.symbol {
				return newSyntaxError(current.Line, current.Col, []string{top.symbol}, string(current.Kind))
			}

			v.pos++
			continue
		}

		nonTerminal := grammar.Symbol(top.symbol)
		production := v.table.Get(nonTerminal, lookahead)
		if production == nil {
			if v.pos >= len(v.tokens) {
				return newSyntaxError(0, 0, v.expectedFor(nonTerminal), symbolEOF)
			}
			current := v.tokens[v.pos]
			return newSyntaxError(current.Line, current.Col, v.expectedFor(nonTerminal), string(current.Kind))
		}

		symbols := extractSymbols(production)
		for i := len(symbols) - 1; i >= 0; i-- {
			stack = append(stack, symbols[i])
		}
	}

	return nil
}

func (v *Validator) currentTokenKind() string {
	if v.pos >= len(v.tokens) {
		return symbolEOF
	}
	return string(v.tokens[v.pos].Kind)
}

// expectedFor reports, best-effort, which lookaheads the table defines
// entries for under nonTerminal — used only to enrich a SyntaxError.
func (v *Validator) expectedFor(nonTerminal grammar.Symbol) []string {
	var expected []string
	for _, term := range v.table.Terminals() {
		if v.table.Get(nonTerminal, term) != nil {
			expected = append(expected, term)
		}
	}
	return expected
}

func stackSymbols(rest []stackItem, popped stackItem) []string {
	out := make([]string, 0, len(rest)+1)
	out = append(out, popped.symbol)
	for i := len(rest) - 1; i >= 0; i-- {
		out = append(out, rest[i].symbol)
	}
	return out
}

// extractSymbols flattens a production into the stack items it pushes.
// By the time the table has selected a production, SynAlternative has
// already been resolved — encountering one here is a table-construction
// bug, not a user-facing syntax error.
func extractSymbols(prod grammar.ProductionRule) []stackItem {
	switch production := prod.(type) {
	case grammar.Terminal:
		return []stackItem{{symbol: string(production.TokenType), isTerminal: true}}

	case grammar.Epsilon:
		return nil

	case grammar.NonTerminal:
		return []stackItem{{symbol: string(production.Symbol), isTerminal: false}}

	case grammar.SynSequence:
		var symbols []stackItem
		for _, elem := range production {
			symbols = append(symbols, extractSymbols(elem)...)
		}
		return symbols

	case grammar.SynAlternative:
		panic("encountered SynAlternative during validation - table construction bug")

	case grammar.SynOptional:
		return extractSymbols(production.Inner)

	case grammar.SynZeroOrMore:
		return extractSymbols(production.Inner)

	case grammar.SynOneOrMore:
		return extractSymbols(production.Inner)

	default:
		panic(fmt.Sprintf("unknown production type: %T", prod))
	}
}
