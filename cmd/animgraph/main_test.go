package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectFile = "../../internal/project/testdata/avatar.yaml"

// run executes the root command. Cobra keeps flag values between runs, so
// every call spells out the flags it depends on.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	dir := t.TempDir()
	store := []string{"--store", "file", "--path", filepath.Join(dir, "slots")}

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "animgraph version dev")

	out, err = run(t, append([]string{"compile", projectFile, "--dry-run=true"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"name":"Avatar"`)
	_, err = os.Stat(filepath.Join(dir, "slots"))
	assert.True(t, os.IsNotExist(err), "dry run does not touch the store")

	out, err = run(t, append([]string{"compile", projectFile, "--dry-run=false"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Avatar_Main_Animator")
	assert.Contains(t, out, "2 published, 0 removed")

	out, err = run(t, append([]string{"slots", "Avatar"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Avatar_Presets_Menu")
	assert.Contains(t, out, "__root__")

	out, err = run(t, append([]string{"reset", "Avatar"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "2 slots removed from Avatar")
}

func TestCLI_Graph(t *testing.T) {
	out, err := run(t, "graph", projectFile, "--output", "Main", "--layer", "Hats Exclusive States", "--trees=false")
	require.NoError(t, err)
	assert.Contains(t, out, "%% Hats Exclusive States")
	assert.Contains(t, out, "graph TD")

	out, err = run(t, "graph", projectFile, "--output", "Main", "--layer", "", "--trees=true")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	_, err = run(t, "graph", projectFile, "--output", "Nope", "--layer", "", "--trees=false")
	assert.Error(t, err)
}

func TestCLI_PresetsRecover(t *testing.T) {
	out, err := run(t, "presets", "recover", projectFile, "--output", "Presets", "--layer", "Shirt Presets", "--into", "")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Red")
	assert.Contains(t, out, "Av/Shirt/H")
}

func TestCLI_UnknownStore(t *testing.T) {
	_, err := run(t, "slots", "Avatar", "--store", "tape", "--path", "")
	assert.ErrorContains(t, err, "unknown store")
}
