package automaton

import "fmt"

// Validate checks the structural invariants an automaton must satisfy
// regardless of how it was produced (compiled from a grammar or loaded
// from text): a declared start state, at least one accepting state, and
// every transition target and accepting-state name referencing a state
// that actually exists.
func Validate(dfa DfaWithTokens) error {
	if dfa.InitialState == "" {
		return newConfigError(0, "automaton has no start state")
	}
	if _, ok := dfa.States[dfa.InitialState]; !ok {
		return newConfigError(0, fmt.Sprintf("start state %q does not exist", dfa.InitialState))
	}
	if len(dfa.AcceptingStates) == 0 {
		return newConfigError(0, "automaton has no accepting state")
	}

	for name, state := range dfa.States {
		for r, to := range state.Transitions {
			if _, ok := dfa.States[to]; !ok {
				return newConfigError(0, fmt.Sprintf("state %q transitions on %q to undeclared state %q", name, string(r), to))
			}
		}
		if state.DefaultTransition != "" {
			if _, ok := dfa.States[state.DefaultTransition]; !ok {
				return newConfigError(0, fmt.Sprintf("state %q has a default transition to undeclared state %q", name, state.DefaultTransition))
			}
		}
	}

	for name := range dfa.AcceptingStates {
		if _, ok := dfa.States[name]; !ok {
			return newConfigError(0, fmt.Sprintf("accepting state %q is not among the automaton's declared states", name))
		}
	}

	return nil
}
