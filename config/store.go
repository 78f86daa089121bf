// Package config implements the process-wide, lazily-initialized store
// for the compiled lexical automaton and LL(1) parse table: built once,
// on first access, then shared read-only across however many source
// files this process goes on to interpret (§5 concurrency model).
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"sync"

	"github.com/shadowCow/nettopo/automaton"
	"github.com/shadowCow/nettopo/langdef"
	"github.com/shadowCow/nettopo/ll1"
)

var (
	once    sync.Once
	store   *cachedStore
	loadErr error
)

type cachedStore struct {
	dfa   automaton.DfaWithTokens
	table *ll1.ParseTable
}

// Load returns the process-wide compiled grammar, building it on first
// access and returning the cached result on every subsequent call. Per
// the lazy one-shot initialization contract, a build failure here is a
// configuration bug, not a per-request error — callers are expected to
// treat a non-nil error as fatal to the whole process.
func Load() (automaton.DfaWithTokens, *ll1.ParseTable, error) {
	once.Do(func() {
		lexGrammar := langdef.GetLexicalGrammar()
		dfa := automaton.CompileLexicalGrammar(lexGrammar)
		dfa.Keywords = langdef.BuildKeywordTable()
		if err := automaton.Validate(dfa); err != nil {
			loadErr = fmt.Errorf("config: invalid lexical automaton: %w", err)
			return
		}

		synGrammar := langdef.GetSyntacticGrammar()
		firstSets := ll1.ComputeFirstSets(synGrammar)
		followSets := ll1.ComputeFollowSets(synGrammar, firstSets)
		table, err := ll1.BuildParseTable(synGrammar, firstSets, followSets)
		if err != nil {
			loadErr = fmt.Errorf("config: grammar is not LL(1): %w", err)
			return
		}

		store = &cachedStore{dfa: dfa, table: table}
	})

	if loadErr != nil {
		return automaton.DfaWithTokens{}, nil, loadErr
	}
	return store.dfa, store.table, nil
}

// LoadFromFiles builds the store from on-disk automaton/table files
// instead of compiling the embedded grammar, per §4.3's load-or-build
// duality. It bypasses the process-wide cache: callers that need a
// shared singleton should use Load instead.
func LoadFromFiles(autPath, tablePath string, readFile func(string) ([]byte, error)) (automaton.DfaWithTokens, *ll1.ParseTable, error) {
	autBytes, err := readFile(autPath)
	if err != nil {
		return automaton.DfaWithTokens{}, nil, fmt.Errorf("config: reading automaton file: %w", err)
	}
	tableBytes, err := readFile(tablePath)
	if err != nil {
		return automaton.DfaWithTokens{}, nil, fmt.Errorf("config: reading table file: %w", err)
	}

	dfa, err := automaton.Load(bytes.NewReader(autBytes))
	if err != nil {
		return automaton.DfaWithTokens{}, nil, fmt.Errorf("config: loading automaton: %w", err)
	}
	if err := automaton.Validate(dfa); err != nil {
		return automaton.DfaWithTokens{}, nil, fmt.Errorf("config: invalid loaded automaton: %w", err)
	}

	table, err := ll1.LoadTable(bufio.NewScanner(bytes.NewReader(tableBytes)))
	if err != nil {
		return automaton.DfaWithTokens{}, nil, fmt.Errorf("config: loading parse table: %w", err)
	}

	return dfa, table, nil
}
