package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.net")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunRequiresAFilePath(t *testing.T) {
	var out bytes.Buffer
	err := Run(Config{Args: []string{"nettopo"}, Output: &out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

func TestRunExecutesAValidProgram(t *testing.T) {
	path := writeSource(t, `programa p; inicio escribe("hi"); fin.`)

	var out bytes.Buffer
	err := Run(Config{Args: []string{"nettopo", path}, Output: &out})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestRunVisualizeFlagAppendsSnapshot(t *testing.T) {
	path := writeSource(t, `programa p; define maquinas a; inicio coloca(a,1,2); fin.`)

	var out bytes.Buffer
	err := Run(Config{Args: []string{"nettopo", "--visualize", path}, Output: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "a:")
}

func TestFormatErrorTagsSemanticErrors(t *testing.T) {
	path := writeSource(t, `programa p; define coaxial c=10; inicio colocaCoaxial(c,0,0,derecha); maquinaCoaxial(m,c,5); fin.`)

	var out bytes.Buffer
	err := Run(Config{Args: []string{"nettopo", path}, Output: &out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error semantic:")
}
