package automaton

import "github.com/shadowCow/nettopo/grammar"

// CompilePatternToNFA converts a LexicalPattern into an NFA using Thompson's
// construction. Each pattern type becomes a simple NFA fragment, then the
// fragments are combined.
func CompilePatternToNFA(pattern grammar.LexicalPattern) *NFA {
	switch p := pattern.(type) {
	case grammar.Literal:
		return nfaFromLiteral(p)
	case grammar.CharRange:
		return nfaFromCharRange(p)
	case grammar.CharSet:
		return nfaFromCharSet(p)
	case grammar.AnyChar:
		return nfaFromAnyChar(p)
	case grammar.AnyCharExcept:
		return nfaFromAnyCharExcept(p)
	case grammar.LexSequence:
		return nfaFromSequence(p)
	case grammar.LexAlternative:
		return nfaFromAlternative(p)
	case grammar.LexOptional:
		return nfaFromOptional(p)
	case grammar.LexZeroOrMore:
		return nfaFromZeroOrMore(p)
	case grammar.LexOneOrMore:
		return nfaFromOneOrMore(p)
	default:
		panic("unknown lexical pattern type")
	}
}

// nfaFromLiteral creates an NFA that matches an exact string.
func nfaFromLiteral(lit grammar.Literal) *NFA {
	str := string(lit)
	if len(str) == 0 {
		nfa := NewNFA()
		nfa.AddEpsilonTransition(nfa.Start, nfa.Accept)
		return nfa
	}

	nfa := NewNFA()
	current := nfa.Start

	for i, r := range str {
		if i == len(str)-1 {
			nfa.AddTransition(current, r, nfa.Accept)
		} else {
			next := nfa.AddState()
			nfa.AddTransition(current, r, next)
			current = next
		}
	}

	return nfa
}

// nfaFromCharRange creates an NFA that matches any character in a range.
func nfaFromCharRange(cr grammar.CharRange) *NFA {
	nfa := NewNFA()
	for r := cr.From; r <= cr.To; r++ {
		nfa.AddTransition(nfa.Start, r, nfa.Accept)
	}
	return nfa
}

// nfaFromCharSet creates an NFA that matches any character in a set.
func nfaFromCharSet(cs grammar.CharSet) *NFA {
	nfa := NewNFA()
	for _, r := range cs {
		nfa.AddTransition(nfa.Start, r, nfa.Accept)
	}
	return nfa
}

// asciiCeiling bounds the character classes this compiler enumerates
// explicitly. The network-topology source language is ASCII only:
// identifiers, keywords, numbers, and quoted strings never require
// characters above this range.
const asciiCeiling = rune(127)

// nfaFromAnyChar creates an NFA that matches any single character.
func nfaFromAnyChar(ac grammar.AnyChar) *NFA {
	nfa := NewNFA()
	for r := rune(0); r <= asciiCeiling; r++ {
		nfa.AddTransition(nfa.Start, r, nfa.Accept)
	}
	return nfa
}

// nfaFromAnyCharExcept creates an NFA that matches any character except
// those in the set.
func nfaFromAnyCharExcept(ace grammar.AnyCharExcept) *NFA {
	nfa := NewNFA()

	excluded := make(map[rune]bool)
	for _, r := range ace {
		excluded[r] = true
	}

	for r := rune(0); r <= asciiCeiling; r++ {
		if !excluded[r] {
			nfa.AddTransition(nfa.Start, r, nfa.Accept)
		}
	}

	return nfa
}

// nfaFromSequence creates an NFA for a sequence of patterns.
func nfaFromSequence(seq grammar.LexSequence) *NFA {
	if len(seq) == 0 {
		nfa := NewNFA()
		nfa.AddEpsilonTransition(nfa.Start, nfa.Accept)
		return nfa
	}

	result := CompilePatternToNFA(seq[0])

	for _, pattern := range seq[1:] {
		next := CompilePatternToNFA(pattern)

		offset := len(result.States)
		next.RenumberStates(offset)

		for id, state := range next.States {
			result.States[id] = state
		}

		result.AddEpsilonTransition(result.Accept, next.Start)
		result.Accept = next.Accept
	}

	return result
}

// nfaFromAlternative creates an NFA for alternative patterns.
func nfaFromAlternative(alt grammar.LexAlternative) *NFA {
	if len(alt) == 0 {
		nfa := NewNFA()
		nfa.AddEpsilonTransition(nfa.Start, nfa.Accept)
		return nfa
	}

	nfa := NewNFA()

	for _, pattern := range alt {
		altNFA := CompilePatternToNFA(pattern)

		offset := len(nfa.States)
		altNFA.RenumberStates(offset)

		for id, state := range altNFA.States {
			nfa.States[id] = state
		}

		nfa.AddEpsilonTransition(nfa.Start, altNFA.Start)
		nfa.AddEpsilonTransition(altNFA.Accept, nfa.Accept)
	}

	return nfa
}

// nfaFromOptional creates an NFA for an optional pattern (A?).
func nfaFromOptional(opt grammar.LexOptional) *NFA {
	inner := CompilePatternToNFA(opt.Inner)

	nfa := NewNFA()
	offset := len(nfa.States)
	inner.RenumberStates(offset)

	for id, state := range inner.States {
		nfa.States[id] = state
	}

	nfa.AddEpsilonTransition(nfa.Start, inner.Start)
	nfa.AddEpsilonTransition(inner.Accept, nfa.Accept)
	nfa.AddEpsilonTransition(nfa.Start, nfa.Accept)

	return nfa
}

// nfaFromZeroOrMore creates an NFA for a zero-or-more pattern (A*).
func nfaFromZeroOrMore(zom grammar.LexZeroOrMore) *NFA {
	inner := CompilePatternToNFA(zom.Inner)

	nfa := NewNFA()
	offset := len(nfa.States)
	inner.RenumberStates(offset)

	for id, state := range inner.States {
		nfa.States[id] = state
	}

	nfa.AddEpsilonTransition(nfa.Start, inner.Start)
	nfa.AddEpsilonTransition(inner.Accept, nfa.Accept)
	nfa.AddEpsilonTransition(nfa.Start, nfa.Accept)
	nfa.AddEpsilonTransition(inner.Accept, inner.Start)

	return nfa
}

// nfaFromOneOrMore creates an NFA for a one-or-more pattern (A+).
// Like A* but without the bypass epsilon from start to accept: at least
// one iteration is required.
func nfaFromOneOrMore(oom grammar.LexOneOrMore) *NFA {
	inner := CompilePatternToNFA(oom.Inner)

	nfa := NewNFA()
	offset := len(nfa.States)
	inner.RenumberStates(offset)

	for id, state := range inner.States {
		nfa.States[id] = state
	}

	nfa.AddEpsilonTransition(nfa.Start, inner.Start)
	nfa.AddEpsilonTransition(inner.Accept, nfa.Accept)
	nfa.AddEpsilonTransition(inner.Accept, inner.Start)

	return nfa
}

// CompileLexicalGrammar compiles a lexical grammar into a DFA.
// All token patterns are combined into a single NFA, then converted to a
// DFA via subset construction.
func CompileLexicalGrammar(lexGrammar grammar.LexicalGrammar) DfaWithTokens {
	if len(lexGrammar.Tokens) == 0 {
		return DfaWithTokens{
			InitialState:    "start",
			States:          make(map[string]DfaStateWithToken),
			AcceptingStates: make(map[string]AcceptingState),
			Keywords:        NewKeywordTable(),
		}
	}

	ignored := make(map[grammar.TokenType]bool)
	nfas := make([]*NFA, 0, len(lexGrammar.Tokens))
	for _, tokenDef := range lexGrammar.Tokens {
		nfa := CompilePatternToNFA(tokenDef.Pattern)
		nfa.AcceptStates[nfa.Accept] = AcceptInfo{TokenType: tokenDef.Name, Priority: tokenDef.Priority}
		if tokenDef.Ignored {
			ignored[tokenDef.Name] = true
		}
		nfas = append(nfas, nfa)
	}

	combined := combineNFAs(nfas)
	dfa := NFAToDFAWithTokens(combined)
	for name, acc := range dfa.AcceptingStates {
		if ignored[acc.TokenType] {
			acc.Ignored = true
			dfa.AcceptingStates[name] = acc
		}
	}
	return dfa
}

// combineNFAs combines multiple NFAs into a single NFA using alternation.
func combineNFAs(nfas []*NFA) *NFA {
	if len(nfas) == 0 {
		return NewNFA()
	}

	result := NewNFA()
	offset := len(result.States)

	for _, nfa := range nfas {
		nfaCopy := nfa.Copy()
		nfaCopy.RenumberStates(offset)

		for id, state := range nfaCopy.States {
			result.States[id] = state
		}
		for id, acceptInfo := range nfaCopy.AcceptStates {
			result.AcceptStates[id] = acceptInfo
		}

		result.AddEpsilonTransition(result.Start, nfaCopy.Start)

		offset = len(result.States)
	}

	return result
}
