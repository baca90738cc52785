package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/born-ml/micrograd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "micrograd "+version+"\n", out)
}

func TestRunCommand_ReferenceScenario(t *testing.T) {
	out, logs, err := execute(t, "run")
	require.NoError(t, err)

	assert.Contains(t, out, "o = 0.7071")
	assert.Contains(t, out, "d o/d x1 = -1.4999\n")
	assert.Contains(t, out, "d o/d w1 = 1.0000\n")
	assert.Contains(t, out, "d o/d x2 = 0.5000\n")
	assert.Contains(t, out, "d o/d w2 = 0.0000\n")
	assert.Contains(t, out, "d o/d b = 0.5000\n")
	assert.Contains(t, logs, "backward complete")
	assert.Contains(t, logs, "run_id=")
}

func TestRunCommand_Render(t *testing.T) {
	out, _, err := execute(t, "run", "--render")
	require.NoError(t, err)

	assert.Contains(t, out, "o=(0.7071")
	assert.Contains(t, out, "[exp]")
	assert.Equal(t, 2, strings.Count(out, " e=("), "e feeds numerator and denominator")
}

func TestRunCommand_ConfigAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "micrograd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backward:\n  mode: recursive\nlog:\n  format: json\n"), 0o644))

	_, logs, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, logs, `"mode":"recursive"`)

	_, logs, err = execute(t, "run", "--config", path, "--mode", "topological", "--log-format", "text")
	require.NoError(t, err)
	assert.Contains(t, logs, "mode=topological")
}

func TestRunCommand_InvalidMode(t *testing.T) {
	_, _, err := execute(t, "run", "--mode", "sideways")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestBuildNeuron_Leaves(t *testing.T) {
	nr := buildNeuron(config.Default().Scenario)
	require.Len(t, nr.leaves, 5)
	assert.Equal(t, "o", nr.output.Label())
	assert.InDelta(t, 0.7071, nr.output.Value(), 1e-3)
}
