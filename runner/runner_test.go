package runner

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
	dir := t.TempDir()
	path := filepath.Join(dir, "program.net")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunEmptyProgramAcceptsAndProducesNoOutput(t *testing.T) {
	path := writeSource(t, `programa t; inicio fin.`)

	var out bytes.Buffer
	result, err := Run(path, &out, false)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Empty(t, result.Topology.Machines)
}

func TestRunConnectsBothMachinesToHubPorts(t *testing.T) {
	src := `programa p; define maquinas a,b; define concentradores h=2; ` +
		`inicio coloca(h,0,0); coloca(a,1,1); coloca(b,2,2); ` +
		`uneMaquinaPuerto(a,h,1); uneMaquinaPuerto(b,h,2); fin.`
	path := writeSource(t, src)

	var out bytes.Buffer
	result, err := Run(path, &out, false)
	require.NoError(t, err)

	hub := result.Topology.Hubs["h"]
	assert.Equal(t, 0, hub.AvailableCount)
}

func TestRunRejectsReconnectingAnAlreadyConnectedMachine(t *testing.T) {
	src := `programa p; define maquinas a,b; define concentradores h=2; ` +
		`inicio coloca(h,0,0); coloca(a,1,1); coloca(b,2,2); ` +
		`uneMaquinaPuerto(a,h,1); uneMaquinaPuerto(b,h,2); uneMaquinaPuerto(a,h,2); fin.`
	path := writeSource(t, src)

	_, err := Run(path, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime error")
}

func TestRunRejectsUndeclaredMachineAtSemanticPhase(t *testing.T) {
	src := `programa p; define coaxial c=10; inicio colocaCoaxial(c,0,0,derecha); maquinaCoaxial(m,c,5); fin.`
	path := writeSource(t, src)

	_, err := Run(path, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semantic error")
}

func TestRunHubPortReadGuardsConnect(t *testing.T) {
	src := `programa p; define maquinas a; define concentradores h=1; ` +
		`inicio coloca(a,0,0); coloca(h,1,0); si (h.p[1] = 0) inicio uneMaquinaPuerto(a,h,1); fin fin.`
	path := writeSource(t, src)

	_, err := Run(path, &bytes.Buffer{}, false)
	require.NoError(t, err)
}

func TestRunEscribeWritesSingleLine(t *testing.T) {
	path := writeSource(t, `programa p; inicio escribe("hi"); fin.`)

	var out bytes.Buffer
	_, err := Run(path, &out, false)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestRunUnknownDefineKeywordIsASyntaxError(t *testing.T) {
	path := writeSource(t, `programa p; define segmento c=10; inicio fin.`)

	_, err := Run(path, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestRunMissingFileReturnsReadError(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "missing.net"), &bytes.Buffer{}, false)
	require.Error(t, err)
}
