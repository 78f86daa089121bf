package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildsAndCachesTheGrammar(t *testing.T) {
	dfa1, table1, err := Load()
	require.NoError(t, err)
	require.NotNil(t, table1)

	dfa2, table2, err := Load()
	require.NoError(t, err)

	// Second call must return the exact same cached objects, not rebuild.
	assert.Same(t, table1, table2)
	assert.Equal(t, dfa1, dfa2)
}

func TestLoadFromFilesBuildsTheStoreFromDiskInsteadOfTheEmbeddedGrammar(t *testing.T) {
	autPath := filepath.Join("..", "testdata", "automaton.aut")
	tablePath := filepath.Join("..", "testdata", "ll1_table.txt")

	dfa, table, err := LoadFromFiles(autPath, tablePath, os.ReadFile)
	require.NoError(t, err)
	require.NotNil(t, table)

	state := dfa.InitialState
	for _, r := range "abc" {
		state = dfa.NextState(state, r)
		require.NotEmpty(t, state)
	}
	assert.True(t, dfa.IsAccepting(state))

	kind, ok := dfa.Keywords.Lookup("programa")
	require.True(t, ok)
	assert.Equal(t, "PROGRAMA", string(kind))
}

func TestLoadFromFilesFailsOnAMissingFile(t *testing.T) {
	_, _, err := LoadFromFiles(filepath.Join("..", "testdata", "does-not-exist.aut"), filepath.Join("..", "testdata", "ll1_table.txt"), os.ReadFile)
	require.Error(t, err)
}
