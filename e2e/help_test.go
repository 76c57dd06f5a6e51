//go:build e2e && unix

package main

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "--help should exit cleanly")

	output := string(out)
	assert.Contains(t, output, "Usage:")
	for _, flag := range []string{"--source", "--debounce", "--config", "--no-mouse", "--print"} {
		assert.Contains(t, output, flag)
	}
	assert.Contains(t, output, "query", "Help should list the query command")
}

func TestQueryCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	dataset, err := tf.CreateDataset("records.json")
	require.NoError(t, err)

	out, err := exec.Command(binPath, "query", "co", "--source", dataset, "--log-file", "").CombinedOutput()
	require.NoError(t, err, string(out))

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "1\tAcme Corp"))
	assert.True(t, strings.HasSuffix(lines[2], `"co" included in item`))
}

func TestQueryUnreadableDataset(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "query", "x", "--source", "records.csv", "--log-file", "").CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "Error:")
}
