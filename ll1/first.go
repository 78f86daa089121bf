// Package ll1 implements C3: FIRST/FOLLOW set computation and LL(1)
// parse table generation, plus text (de)serialization of the resulting
// table and a stack-based predictive validator (C4) that runs against it.
package ll1

import (
	"github.com/shadowCow/nettopo/grammar"
)

// FirstSets holds the FIRST sets for all symbols in a grammar.
// FIRST(X) is the set of terminals that can begin strings derivable from X.
type FirstSets struct {
	sets     map[string]map[string]bool
	nullable map[grammar.Symbol]bool
}

// NewFirstSets creates an empty FirstSets structure.
func NewFirstSets() *FirstSets {
	return &FirstSets{
		sets:     make(map[string]map[string]bool),
		nullable: make(map[grammar.Symbol]bool),
	}
}

// Get returns the FIRST set for a symbol (terminal or non-terminal).
func (fs *FirstSets) Get(symbol string) map[string]bool {
	if set, ok := fs.sets[symbol]; ok {
		return set
	}
	return make(map[string]bool)
}

// IsNullable returns true if a non-terminal can derive epsilon.
func (fs *FirstSets) IsNullable(symbol grammar.Symbol) bool {
	return fs.nullable[symbol]
}

// ComputeFirstSets computes FIRST sets for all symbols in the grammar via
// fixed-point iteration over its productions.
func ComputeFirstSets(g grammar.SyntacticGrammar) *FirstSets {
	fs := NewFirstSets()

	terminals := collectTerminals(g)
	for _, term := range terminals {
		termKey := string(term)
		fs.sets[termKey] = map[string]bool{termKey: true}
	}

	changed := true
	for changed {
		changed = false

		for symbol, production := range g.Productions {
			symbolKey := string(symbol)
			if fs.sets[symbolKey] == nil {
				fs.sets[symbolKey] = make(map[string]bool)
			}

			oldSize := len(fs.sets[symbolKey])
			oldNullable := fs.nullable[symbol]

			firstSet, nullable := fs.computeFirstOfProduction(production)
			for term := range firstSet {
				fs.sets[symbolKey][term] = true
			}
			if nullable {
				fs.nullable[symbol] = true
			}

			if len(fs.sets[symbolKey]) != oldSize || fs.nullable[symbol] != oldNullable {
				changed = true
			}
		}
	}

	return fs
}

// computeFirstOfProduction computes FIRST set for a production rule.
// Returns (first_set, is_nullable).
func (fs *FirstSets) computeFirstOfProduction(prod grammar.ProductionRule) (map[string]bool, bool) {
	result := make(map[string]bool)
	nullable := false

	switch p := prod.(type) {
	case grammar.Terminal:
		result[string(p.TokenType)] = true
		nullable = false

	case grammar.NonTerminal:
		symbolKey := string(p.Symbol)
		for term := range fs.Get(symbolKey) {
			result[term] = true
		}
		nullable = fs.IsNullable(p.Symbol)

	case grammar.Epsilon:
		nullable = true

	case grammar.SynSequence:
		nullable = true
		for _, elem := range p {
			firstElem, nullableElem := fs.computeFirstOfProduction(elem)
			for term := range firstElem {
				result[term] = true
			}
			if !nullableElem {
				nullable = false
				break
			}
		}

	case grammar.SynAlternative:
		nullable = false
		for _, alt := range p {
			firstAlt, nullableAlt := fs.computeFirstOfProduction(alt)
			for term := range firstAlt {
				result[term] = true
			}
			if nullableAlt {
				nullable = true
			}
		}

	case grammar.SynOptional:
		firstInner, _ := fs.computeFirstOfProduction(p.Inner)
		for term := range firstInner {
			result[term] = true
		}
		nullable = true

	case grammar.SynZeroOrMore:
		firstInner, _ := fs.computeFirstOfProduction(p.Inner)
		for term := range firstInner {
			result[term] = true
		}
		nullable = true

	case grammar.SynOneOrMore:
		firstInner, nullableInner := fs.computeFirstOfProduction(p.Inner)
		for term := range firstInner {
			result[term] = true
		}
		nullable = nullableInner
	}

	return result, nullable
}

// collectTerminals traverses the grammar and collects all terminal token types.
func collectTerminals(g grammar.SyntacticGrammar) []grammar.TokenType {
	terminals := make(map[grammar.TokenType]bool)

	for _, production := range g.Productions {
		collectTerminalsFromProduction(production, terminals)
	}

	result := make([]grammar.TokenType, 0, len(terminals))
	for term := range terminals {
		result = append(result, term)
	}
	return result
}

// collectTerminalsFromProduction recursively finds terminals in a production.
func collectTerminalsFromProduction(prod grammar.ProductionRule, terminals map[grammar.TokenType]bool) {
	switch p := prod.(type) {
	case grammar.Terminal:
		terminals[p.TokenType] = true
	case grammar.NonTerminal:
	case grammar.Epsilon:
	case grammar.SynSequence:
		for _, elem := range p {
			collectTerminalsFromProduction(elem, terminals)
		}
	case grammar.SynAlternative:
		for _, alt := range p {
			collectTerminalsFromProduction(alt, terminals)
		}
	case grammar.SynOptional:
		collectTerminalsFromProduction(p.Inner, terminals)
	case grammar.SynZeroOrMore:
		collectTerminalsFromProduction(p.Inner, terminals)
	case grammar.SynOneOrMore:
		collectTerminalsFromProduction(p.Inner, terminals)
	}
}
