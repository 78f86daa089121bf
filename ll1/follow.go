package ll1

import (
	"github.com/shadowCow/nettopo/grammar"
)

// FollowSets holds the FOLLOW sets for all non-terminals in a grammar.
// FOLLOW(X) is the set of terminals that can appear immediately after X in a derivation.
type FollowSets struct {
	sets map[grammar.Symbol]map[string]bool
}

// NewFollowSets creates an empty FollowSets structure.
func NewFollowSets() *FollowSets {
	return &FollowSets{
		sets: make(map[grammar.Symbol]map[string]bool),
	}
}

// Get returns the FOLLOW set for a non-terminal symbol.
func (fs *FollowSets) Get(symbol grammar.Symbol) map[string]bool {
	if set, ok := fs.sets[symbol]; ok {
		return set
	}
	return make(map[string]bool)
}

// EndOfInputMarker is the special symbol representing end of input.
const EndOfInputMarker = "$"

// ComputeFollowSets computes FOLLOW sets for all non-terminals in the grammar.
// Requires FIRST sets to be computed first.
func ComputeFollowSets(g grammar.SyntacticGrammar, firstSets *FirstSets) *FollowSets {
	fs := NewFollowSets()

	for symbol := range g.Productions {
		fs.sets[symbol] = make(map[string]bool)
	}

	fs.sets[g.StartSymbol][EndOfInputMarker] = true

	changed := true
	for changed {
		changed = false

		for symbol, production := range g.Productions {
			if fs.addFollowsFromProduction(symbol, production, g, firstSets) {
				changed = true
			}
		}
	}

	return fs
}

// addFollowsFromProduction adds FOLLOW set entries based on a production rule.
// Returns true if any FOLLOW sets were modified.
func (fs *FollowSets) addFollowsFromProduction(
	leftSide grammar.Symbol,
	production grammar.ProductionRule,
	g grammar.SyntacticGrammar,
	firstSets *FirstSets,
) bool {
	changed := false

	switch p := production.(type) {
	case grammar.Terminal:
		return false

	case grammar.Epsilon:
		return false

	case grammar.NonTerminal:
		changed = fs.addToFollow(p.Symbol, fs.Get(leftSide))

	case grammar.SynSequence:
		for i, elem := range p {
			nonterminals := collectNonTerminalsFromProduction(elem)

			following := p[i+1:]
			firstOfFollowing, nullableFollowing := computeFirstOfSequence(following, firstSets)

			for _, nt := range nonterminals {
				if fs.addToFollow(nt, firstOfFollowing) {
					changed = true
				}

				if nullableFollowing {
					if fs.addToFollow(nt, fs.Get(leftSide)) {
						changed = true
					}
				}
			}
		}

	case grammar.SynAlternative:
		for _, alt := range p {
			if fs.addFollowsFromProduction(leftSide, alt, g, firstSets) {
				changed = true
			}
		}

	case grammar.SynOptional:
		nonterminals := collectNonTerminalsFromProduction(p.Inner)
		for _, nt := range nonterminals {
			if fs.addToFollow(nt, fs.Get(leftSide)) {
				changed = true
			}
		}

	case grammar.SynZeroOrMore:
		nonterminals := collectNonTerminalsFromProduction(p.Inner)
		firstOfInner, _ := firstSets.computeFirstOfProduction(p.Inner)
		for _, nt := range nonterminals {
			if fs.addToFollow(nt, fs.Get(leftSide)) {
				changed = true
			}
			if fs.addToFollow(nt, firstOfInner) {
				changed = true
			}
		}

	case grammar.SynOneOrMore:
		nonterminals := collectNonTerminalsFromProduction(p.Inner)
		firstOfInner, _ := firstSets.computeFirstOfProduction(p.Inner)
		for _, nt := range nonterminals {
			if fs.addToFollow(nt, fs.Get(leftSide)) {
				changed = true
			}
			if fs.addToFollow(nt, firstOfInner) {
				changed = true
			}
		}
	}

	return changed
}

// addToFollow adds terminals from 'toAdd' to the FOLLOW set of 'symbol'.
// Returns true if the FOLLOW set was modified.
func (fs *FollowSets) addToFollow(symbol grammar.Symbol, toAdd map[string]bool) bool {
	if fs.sets[symbol] == nil {
		fs.sets[symbol] = make(map[string]bool)
	}

	oldSize := len(fs.sets[symbol])
	for term := range toAdd {
		fs.sets[symbol][term] = true
	}
	return len(fs.sets[symbol]) != oldSize
}

// collectNonTerminalsFromProduction recursively finds all non-terminals in a production.
func collectNonTerminalsFromProduction(prod grammar.ProductionRule) []grammar.Symbol {
	var result []grammar.Symbol

	switch p := prod.(type) {
	case grammar.Terminal:
	case grammar.Epsilon:
	case grammar.NonTerminal:
		result = append(result, p.Symbol)
	case grammar.SynSequence:
		for _, elem := range p {
			result = append(result, collectNonTerminalsFromProduction(elem)...)
		}
	case grammar.SynAlternative:
		for _, alt := range p {
			result = append(result, collectNonTerminalsFromProduction(alt)...)
		}
	case grammar.SynOptional:
		result = append(result, collectNonTerminalsFromProduction(p.Inner)...)
	case grammar.SynZeroOrMore:
		result = append(result, collectNonTerminalsFromProduction(p.Inner)...)
	case grammar.SynOneOrMore:
		result = append(result, collectNonTerminalsFromProduction(p.Inner)...)
	}

	return result
}

// computeFirstOfSequence computes the FIRST set for a sequence of production rules.
// Returns (first_set, is_nullable).
func computeFirstOfSequence(seq []grammar.ProductionRule, firstSets *FirstSets) (map[string]bool, bool) {
	result := make(map[string]bool)
	nullable := true

	for _, elem := range seq {
		firstElem, nullableElem := firstSets.computeFirstOfProduction(elem)
		for term := range firstElem {
			result[term] = true
		}
		if !nullableElem {
			nullable = false
			break
		}
	}

	if len(seq) == 0 {
		nullable = true
	}

	return result, nullable
}
