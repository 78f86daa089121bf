package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shadowCow/nettopo/grammar"
)

// Dfa is a deterministic finite automaton with no token information —
// used internally by subset construction before accepting-state metadata
// is attached.
type Dfa struct {
	InitialState string
	States       map[string]DfaState
}

// DfaState is a single DFA state with its transitions.
type DfaState struct {
	Name              string
	Transitions       map[rune]string
	DefaultTransition string
}

// NextState returns the next state given the current state and input rune.
func (d Dfa) NextState(currentState string, input rune) string {
	transition, exists := d.States[currentState].Transitions[input]
	if !exists {
		transition = d.States[currentState].DefaultTransition
	}
	return transition
}

// NFAToDFA converts an NFA to a DFA using subset construction, without
// token metadata.
func NFAToDFA(nfa *NFA) Dfa {
	startClosure := epsilonClosure(nfa, map[int]bool{nfa.Start: true})

	dfa := Dfa{
		InitialState: stateSetToString(startClosure),
		States:       make(map[string]DfaState),
	}

	queue := []map[int]bool{startClosure}
	processed := make(map[string]bool)

	for len(queue) > 0 {
		currentSet := queue[0]
		queue = queue[1:]

		currentName := stateSetToString(currentSet)
		if processed[currentName] {
			continue
		}
		processed[currentName] = true

		transitions := make(map[rune]string)
		symbolsMap := make(map[rune]map[int]bool)

		for stateID := range currentSet {
			state := nfa.States[stateID]
			for symbol, targets := range state.Transitions {
				if symbolsMap[symbol] == nil {
					symbolsMap[symbol] = make(map[int]bool)
				}
				for target := range targets {
					symbolsMap[symbol][target] = true
				}
			}
		}

		for symbol, targets := range symbolsMap {
			closure := epsilonClosure(nfa, targets)
			nextName := stateSetToString(closure)
			transitions[symbol] = nextName

			if !processed[nextName] {
				queue = append(queue, closure)
			}
		}

		dfa.States[currentName] = DfaState{
			Name:              currentName,
			Transitions:       transitions,
			DefaultTransition: "",
		}
	}

	return dfa
}

// DfaWithTokens is a DFA that tracks which tokens are accepted by which
// states — the representation the lexer package scans against. Keywords
// holds the reserved-word reclassification map the scanner consults once
// it has matched an identifier, so a loaded or compiled automaton is
// self-contained: the lexer needs nothing beyond the DfaWithTokens it is
// given to tokenize a source file correctly.
type DfaWithTokens struct {
	InitialState    string
	States          map[string]DfaStateWithToken
	AcceptingStates map[string]AcceptingState
	Keywords        KeywordTable
}

// DfaStateWithToken is a DFA state that can have associated token information.
type DfaStateWithToken struct {
	Name              string
	Transitions       map[rune]string
	DefaultTransition string
}

// AcceptingState tracks token information for an accepting state, plus
// whether it is a final-ignored state (whitespace/comment) whose tokens
// the lexer drops rather than emits.
type AcceptingState struct {
	TokenType grammar.TokenType
	Priority  int
	Ignored   bool
}

// NextState returns the next state given current state and input rune, or
// "" when no transition applies.
func (d *DfaWithTokens) NextState(currentState string, input rune) string {
	state, exists := d.States[currentState]
	if !exists {
		return ""
	}
	if next, exists := state.Transitions[input]; exists {
		return next
	}
	return state.DefaultTransition
}

// IsAccepting returns true if the state is an accepting state.
func (d *DfaWithTokens) IsAccepting(state string) bool {
	_, ok := d.AcceptingStates[state]
	return ok
}

// IsIgnored returns true if the state is final-ignored: its tokens are
// dropped rather than emitted.
func (d *DfaWithTokens) IsIgnored(state string) bool {
	acc, ok := d.AcceptingStates[state]
	return ok && acc.Ignored
}

// GetTokenType returns the token type for an accepting state.
func (d *DfaWithTokens) GetTokenType(state string) grammar.TokenType {
	if acc, ok := d.AcceptingStates[state]; ok {
		return acc.TokenType
	}
	return ""
}

// NFAToDFAWithTokens converts an NFA with token information to a DFA.
// Accepting states remember which token they matched; when a DFA state
// merges several NFA accept states (ambiguous pattern overlap), the
// highest-priority token wins, and among equal priorities the token
// declared earliest in the grammar wins.
func NFAToDFAWithTokens(nfa *NFA) DfaWithTokens {
	startClosure := epsilonClosure(nfa, map[int]bool{nfa.Start: true})

	dfa := DfaWithTokens{
		InitialState:    stateSetToString(startClosure),
		States:          make(map[string]DfaStateWithToken),
		AcceptingStates: make(map[string]AcceptingState),
		Keywords:        NewKeywordTable(),
	}

	queue := []map[int]bool{startClosure}
	processed := make(map[string]bool)

	for len(queue) > 0 {
		currentSet := queue[0]
		queue = queue[1:]

		currentName := stateSetToString(currentSet)
		if processed[currentName] {
			continue
		}
		processed[currentName] = true

		var tokenType grammar.TokenType
		maxPriority := -1
		isAccepting := false
		winnerID := -1

		// Equal priorities go to the lowest NFA state id: combineNFAs
		// numbers each token's states after those of earlier tokens.
		for stateID := range currentSet {
			if acceptInfo, ok := nfa.AcceptStates[stateID]; ok {
				isAccepting = true
				if acceptInfo.Priority > maxPriority || (acceptInfo.Priority == maxPriority && stateID < winnerID) {
					maxPriority = acceptInfo.Priority
					tokenType = acceptInfo.TokenType
					winnerID = stateID
				}
			}
		}

		transitions := make(map[rune]string)
		symbolsMap := make(map[rune]map[int]bool)

		for stateID := range currentSet {
			state := nfa.States[stateID]
			for symbol, targets := range state.Transitions {
				if symbolsMap[symbol] == nil {
					symbolsMap[symbol] = make(map[int]bool)
				}
				for target := range targets {
					symbolsMap[symbol][target] = true
				}
			}
		}

		for symbol, targets := range symbolsMap {
			closure := epsilonClosure(nfa, targets)
			nextName := stateSetToString(closure)
			transitions[symbol] = nextName

			if !processed[nextName] {
				queue = append(queue, closure)
			}
		}

		dfa.States[currentName] = DfaStateWithToken{
			Name:              currentName,
			Transitions:       transitions,
			DefaultTransition: "",
		}

		if isAccepting {
			dfa.AcceptingStates[currentName] = AcceptingState{TokenType: tokenType, Priority: maxPriority}
		}
	}

	return dfa
}

// epsilonClosure computes the epsilon closure of a set of NFA states: all
// states reachable by following zero or more epsilon transitions.
func epsilonClosure(nfa *NFA, states map[int]bool) map[int]bool {
	closure := make(map[int]bool)
	stack := make([]int, 0, len(states))

	for state := range states {
		closure[state] = true
		stack = append(stack, state)
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for target := range nfa.States[current].Epsilon {
			if !closure[target] {
				closure[target] = true
				stack = append(stack, target)
			}
		}
	}

	return closure
}

// stateSetToString converts a set of NFA state IDs to a canonical string
// representation, used as the DFA state name.
func stateSetToString(states map[int]bool) string {
	if len(states) == 0 {
		return "empty"
	}

	ids := make([]int, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}

	return "{" + strings.Join(parts, ",") + "}"
}
