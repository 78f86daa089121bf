package automaton

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shadowCow/nettopo/grammar"
)

// Load reads a DfaWithTokens from its .aut text representation. The
// format has five sections:
//
//	METADATA
//	start: <state>
//
//	STATES
//	<state>
//	...
//
//	TRANSITIONS
//	<state> -> <state> : <charspec>
//	...
//
//	ACCEPT
//	<state> : <tokenType> : <priority> [: ignored]
//	...
//
//	KEYWORDS
//	<word> : <tokenType> [: ci]
//	...
//	END_KEYWORDS
//
// charspec is either a quoted literal character ('a'), a named class
// (ALPHA, DIGIT, ALNUM, SPACE, ANY), a range (a-z), or a negated class
// (^ followed by any of the above), mirroring the predicate vocabulary
// of grammar.LexicalPattern. KEYWORDS is the one section with an explicit
// END_ terminator: its entries name reserved words the scanner
// reclassifies after already matching IDENTIFIER, and the terminator
// lets a keyword word collide with a section-header-shaped string
// without ending the section early.
func Load(r io.Reader) (DfaWithTokens, error) {
	dfa := DfaWithTokens{
		States:          make(map[string]DfaStateWithToken),
		AcceptingStates: make(map[string]AcceptingState),
		Keywords:        NewKeywordTable(),
	}

	declaredStates := make(map[string]bool)
	section := ""
	lineNum := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if section == "KEYWORDS" && line == "END_KEYWORDS" {
			section = ""
			continue
		}

		switch line {
		case "METADATA", "STATES", "TRANSITIONS", "ACCEPT", "KEYWORDS":
			section = line
			continue
		}

		switch section {
		case "METADATA":
			if err := parseMetadataLine(line, lineNum, &dfa); err != nil {
				return DfaWithTokens{}, err
			}
		case "STATES":
			declaredStates[line] = true
			if _, exists := dfa.States[line]; !exists {
				dfa.States[line] = DfaStateWithToken{Name: line, Transitions: make(map[rune]string)}
			}
		case "TRANSITIONS":
			if err := parseTransitionLine(line, lineNum, &dfa, declaredStates); err != nil {
				return DfaWithTokens{}, err
			}
		case "ACCEPT":
			if err := parseAcceptLine(line, lineNum, &dfa, declaredStates); err != nil {
				return DfaWithTokens{}, err
			}
		case "KEYWORDS":
			if err := parseKeywordLine(line, lineNum, &dfa); err != nil {
				return DfaWithTokens{}, err
			}
		default:
			return DfaWithTokens{}, newConfigError(lineNum, "content outside of a recognized section")
		}
	}

	if err := scanner.Err(); err != nil {
		return DfaWithTokens{}, wrapConfigError(lineNum, "reading automaton source", err)
	}

	if section == "KEYWORDS" {
		return DfaWithTokens{}, newConfigError(lineNum, "KEYWORDS section missing END_KEYWORDS terminator")
	}
	if dfa.InitialState == "" {
		return DfaWithTokens{}, newConfigError(0, "METADATA section missing required 'start' entry")
	}
	if !declaredStates[dfa.InitialState] {
		return DfaWithTokens{}, newConfigError(0, fmt.Sprintf("start state %q is not declared in STATES", dfa.InitialState))
	}
	if len(dfa.AcceptingStates) == 0 {
		return DfaWithTokens{}, newConfigError(0, "automaton declares no accepting states")
	}

	return dfa, nil
}

func parseMetadataLine(line string, lineNum int, dfa *DfaWithTokens) error {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return newConfigError(lineNum, fmt.Sprintf("malformed METADATA entry %q", line))
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch key {
	case "start":
		dfa.InitialState = value
	default:
		return newConfigError(lineNum, fmt.Sprintf("unknown METADATA key %q", key))
	}
	return nil
}

func parseTransitionLine(line string, lineNum int, dfa *DfaWithTokens, declared map[string]bool) error {
	arrowSplit := strings.SplitN(line, "->", 2)
	if len(arrowSplit) != 2 {
		return newConfigError(lineNum, fmt.Sprintf("malformed transition %q, expected 'from -> to : charspec'", line))
	}
	from := strings.TrimSpace(arrowSplit[0])

	rest := strings.SplitN(arrowSplit[1], ":", 2)
	if len(rest) != 2 {
		return newConfigError(lineNum, fmt.Sprintf("malformed transition %q, missing charspec", line))
	}
	to := strings.TrimSpace(rest[0])
	charspec := strings.TrimSpace(rest[1])

	if !declared[from] {
		return newConfigError(lineNum, fmt.Sprintf("transition references undeclared state %q", from))
	}
	if !declared[to] {
		return newConfigError(lineNum, fmt.Sprintf("transition references undeclared state %q", to))
	}

	runes, err := resolveCharSpec(charspec)
	if err != nil {
		return wrapConfigError(lineNum, fmt.Sprintf("invalid charspec %q", charspec), err)
	}

	state := dfa.States[from]
	if state.Transitions == nil {
		state.Transitions = make(map[rune]string)
	}
	for _, r := range runes {
		if _, already := state.Transitions[r]; already {
			continue // the earliest-declared transition on r wins
		}
		state.Transitions[r] = to
	}
	dfa.States[from] = state

	return nil
}

func parseAcceptLine(line string, lineNum int, dfa *DfaWithTokens, declared map[string]bool) error {
	parts := strings.Split(line, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return newConfigError(lineNum, fmt.Sprintf("malformed ACCEPT entry %q, expected 'state : tokenType : priority [: ignored]'", line))
	}

	state := parts[0]
	if !declared[state] {
		return newConfigError(lineNum, fmt.Sprintf("ACCEPT references undeclared state %q", state))
	}

	tokenType := grammar.TokenType(parts[1])
	priority, err := strconv.Atoi(parts[2])
	if err != nil {
		return wrapConfigError(lineNum, fmt.Sprintf("invalid priority %q", parts[2]), err)
	}

	ignored := false
	if len(parts) >= 4 && parts[3] == "ignored" {
		ignored = true
	}

	dfa.AcceptingStates[state] = AcceptingState{TokenType: tokenType, Priority: priority, Ignored: ignored}
	return nil
}

func parseKeywordLine(line string, lineNum int, dfa *DfaWithTokens) error {
	parts := strings.Split(line, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return newConfigError(lineNum, fmt.Sprintf("malformed KEYWORDS entry %q, expected 'word : tokenType [: ci]'", line))
	}

	word := parts[0]
	tokenType := grammar.TokenType(parts[1])
	caseSensitive := true
	if len(parts) >= 3 && parts[2] == "ci" {
		caseSensitive = false
	}

	dfa.Keywords.Add(word, tokenType, caseSensitive)
	return nil
}

// resolveCharSpec expands a charspec token into the individual runes it
// denotes: a quoted literal, a named class, a range, or a negation of any
// of those.
func resolveCharSpec(spec string) ([]rune, error) {
	negate := false
	if strings.HasPrefix(spec, "^") {
		negate = true
		spec = spec[1:]
	}

	var runes []rune
	switch {
	case strings.HasPrefix(spec, "'") && strings.HasSuffix(spec, "'") && len(spec) >= 3:
		inner := spec[1 : len(spec)-1]
		switch inner {
		case `\'`:
			runes = []rune{'\''}
		case `\n`:
			runes = []rune{'\n'}
		case `\t`:
			runes = []rune{'\t'}
		case `\r`:
			runes = []rune{'\r'}
		default:
			runes = []rune(inner)
		}
	case spec == "ALPHA":
		runes = expandRange('a', 'z')
		runes = append(runes, expandRange('A', 'Z')...)
	case spec == "DIGIT":
		runes = expandRange('0', '9')
	case spec == "ALNUM":
		runes = expandRange('a', 'z')
		runes = append(runes, expandRange('A', 'Z')...)
		runes = append(runes, expandRange('0', '9')...)
	case spec == "SPACE":
		runes = []rune{' ', '\t', '\r', '\n'}
	case spec == "ANY":
		runes = expandRange(0, asciiCeiling)
	case len(spec) == 3 && spec[1] == '-':
		runes = expandRange(rune(spec[0]), rune(spec[2]))
	default:
		return nil, fmt.Errorf("unrecognized charspec %q", spec)
	}

	if !negate {
		return runes, nil
	}

	excluded := make(map[rune]bool, len(runes))
	for _, r := range runes {
		excluded[r] = true
	}
	negated := make([]rune, 0, asciiCeiling+1-rune(len(excluded)))
	for r := rune(0); r <= asciiCeiling; r++ {
		if !excluded[r] {
			negated = append(negated, r)
		}
	}
	return negated, nil
}

func expandRange(from, to rune) []rune {
	out := make([]rune, 0, to-from+1)
	for r := from; r <= to; r++ {
		out = append(out, r)
	}
	return out
}
