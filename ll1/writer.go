package ll1

import (
	"fmt"
	"io"
	"sort"

	"github.com/shadowCow/nettopo/grammar"
)

// WriteTable serializes a parse table to its .txt representation, the
// inverse of LoadTable:
//
//	TERMINALS
//	<terminal>
//	...
//
//	NONTERMINALS
//	<non-terminal>
//	...
//
//	TABLE
//	<non-terminal> , <terminal> => <production>
//	...
//
// production uses the same notation as formatProduction: space-separated
// sequences, "(a | b)" alternatives, postfix "?", "*", "+", and the literal
// EPSILON for the empty production.
func WriteTable(w io.Writer, pt *ParseTable) error {
	terminals := make([]string, len(pt.terminals))
	copy(terminals, pt.terminals)
	sort.Strings(terminals)

	nonTerminals := make([]string, len(pt.nonTerminals))
	for i, nt := range pt.nonTerminals {
		nonTerminals[i] = string(nt)
	}
	sort.Strings(nonTerminals)

	if _, err := fmt.Fprintln(w, "TERMINALS"); err != nil {
		return err
	}
	for _, t := range terminals {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "NONTERMINALS"); err != nil {
		return err
	}
	for _, nt := range nonTerminals {
		if _, err := fmt.Fprintln(w, nt); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "TABLE"); err != nil {
		return err
	}
	for _, nt := range nonTerminals {
		for _, t := range terminals {
			prod := pt.Get(grammar.Symbol(nt), t)
			if prod == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s , %s => %s\n", nt, t, formatProduction(prod)); err != nil {
				return err
			}
		}
	}

	return nil
}
