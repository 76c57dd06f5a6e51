//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// closeAfterCommit lets the debounced search for the committed value run,
// then dismisses the dropdown so the status line shows the selection
func closeAfterCommit(t *testing.T, tf *TUITestFramework) {
	t.Helper()
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, tf.Escape())
}

// First result row on screen: below the title, the input box and the
// results border
const firstRowY = 5

func TestTypingShowsMatches(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset())
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("typeahead"), "Should show typeahead title")

	require.NoError(t, tf.Type("co"))

	require.NoError(t, tf.WaitForE(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.Contains(plain, "Acme Corp") &&
			strings.Contains(plain, "Contoso") &&
			strings.Contains(plain, "Cogswell Cogs") &&
			strings.Contains(plain, "3 matches")
	}, 3*time.Second, "typed query should list three matches"))

	// Cogswell has an item starting with the query
	require.True(t, tf.SeePlain(`"co" included in item`), "Should annotate tag matches")
}

func TestNoResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset())
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Type("zzz"))
	require.True(t, tf.OutputContainsPlain("No results", 3*time.Second), "Should show the empty dropdown")
}

func TestKeyboardCommit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset())
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Type("co"))
	require.True(t, tf.OutputContainsPlain("3 matches", 3*time.Second))

	require.NoError(t, tf.Down())
	require.NoError(t, tf.Down())
	require.NoError(t, tf.Enter())
	closeAfterCommit(t, tf)

	require.NoError(t, tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "Selected: Contoso")
	}, 3*time.Second, "second row should be committed"))
}

func TestMouseClickCommits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset())
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Type("co"))
	require.True(t, tf.OutputContainsPlain("3 matches", 3*time.Second))

	require.NoError(t, tf.MoveTo(4, firstRowY+2))
	require.NoError(t, tf.Click(4, firstRowY+2))
	closeAfterCommit(t, tf)

	require.NoError(t, tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "Selected: Cogswell Cogs")
	}, 3*time.Second, "clicked row should be committed"))
}

func TestPrintOnExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset("--print"))
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Type("glob"))
	require.True(t, tf.OutputContainsPlain("1 match", 3*time.Second))
	require.NoError(t, tf.Down())
	require.NoError(t, tf.Enter())
	closeAfterCommit(t, tf)
	require.True(t, tf.OutputContainsPlain("Selected: Globex", 3*time.Second))

	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	require.NoError(t, tf.Quit())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after quit")
	}

	// The value is printed after the alternate screen is left
	require.NoError(t, tf.WaitForE(func(string) bool {
		plain := tf.SnapshotPlain()
		return strings.LastIndex(plain, "Globex") > strings.LastIndex(plain, "Selected: Globex")
	}, 2*time.Second, "selection should be printed on exit"))
}

func TestMissingDataset(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(workspace+"/missing.json", "--log-file", ""))
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.OutputContainsPlain("Dataset unavailable", 3*time.Second), "Should report the load failure")
}
