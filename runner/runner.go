// Package runner provides a simple API to execute network-topology
// programs from files: the complete pipeline from source text through
// lexing, LL(1) validation, AST construction, semantic analysis, and
// interpretation.
package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/shadowCow/nettopo/astbuild"
	"github.com/shadowCow/nettopo/config"
	"github.com/shadowCow/nettopo/interp"
	"github.com/shadowCow/nettopo/langdef"
	"github.com/shadowCow/nettopo/lexer"
	"github.com/shadowCow/nettopo/ll1"
	"github.com/shadowCow/nettopo/sema"
	"github.com/shadowCow/nettopo/topology"
)

// Result carries what a successful Run produced, beyond the side effects
// already flushed to output: the final topology, for a --visualize caller.
type Result struct {
	Topology *topology.Topology
}

// Run executes a network-topology program from a file: read → lex →
// validate → build AST → analyze → interpret. Output from write()
// statements is written to the provided io.Writer only after a
// successful run, per the fail-fast "no partial output" guarantee.
//
// If debug is true, prints grammar information, FIRST/FOLLOW sets, the
// parse table, and a parse trace.
func Run(filePath string, output io.Writer, debug bool) (*Result, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}

	synGrammar := langdef.GetSyntacticGrammar()
	if debug {
		ll1.PrintGrammar(synGrammar, output)
	}

	firstSets := ll1.ComputeFirstSets(synGrammar)
	if debug {
		ll1.PrintFirstSets(firstSets, output)
	}
	followSets := ll1.ComputeFollowSets(synGrammar, firstSets)
	if debug {
		ll1.PrintFollowSets(followSets, output)
	}

	dfa, table, err := config.Load()
	if err != nil {
		return nil, err
	}
	if debug {
		ll1.PrintParseTable(table, output)
	}

	lex := lexer.NewLexer(dfa, string(source))
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("lexical error in %q: %w", filePath, err)
	}

	validator := ll1.NewValidator(table, synGrammar, toValidatorTokens(tokens))
	if debug {
		validator.SetTrace(true, output)
	}
	if err := validator.Validate(); err != nil {
		return nil, fmt.Errorf("syntax error in %q: %w", filePath, err)
	}

	program, err := astbuild.NewBuilder(tokens).Build()
	if err != nil {
		return nil, fmt.Errorf("internal error building AST for %q: %w", filePath, err)
	}

	if err := sema.NewAnalyzer().Analyze(program); err != nil {
		return nil, fmt.Errorf("semantic error in %q: %w", filePath, err)
	}

	topo := topology.New()
	interpreter := interp.New(output, topo)
	if err := interpreter.Run(program); err != nil {
		return nil, fmt.Errorf("runtime error in %q: %w", filePath, err)
	}
	if err := interpreter.FlushOutput(); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	return &Result{Topology: topo}, nil
}

// toValidatorTokens converts lexer tokens to the structurally identical
// ll1.Token shape the grammar-generic validator depends on, keeping ll1
// free of any dependency on a concrete lexer implementation. The lexer's
// synthesized trailing EOF token is dropped: the validator's own stack
// algorithm already treats running off the end of the slice as end of
// input, so passing EOF through as one more real token would make it
// look like unconsumed input remains after a fully valid program.
func toValidatorTokens(tokens []lexer.Token) []ll1.Token {
	out := make([]ll1.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == langdef.TokEOF {
			continue
		}
		out = append(out, ll1.Token{Kind: t.Kind, Lexeme: t.Lexeme, Line: t.Line, Col: t.Col})
	}
	return out
}
