//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordDetailPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset())
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Type("initech"))
	require.True(t, tf.OutputContainsPlain("1 match", 3*time.Second))
	require.NoError(t, tf.Down())

	require.NoError(t, tf.SendKeys(KeyCtrlO))
	require.True(t, tf.OutputContainsPlain("address: 5 Office Park", 3*time.Second), "Should show the record in the pager")

	require.NoError(t, tf.SendKeys(KeyPagerQ))
	require.True(t, tf.SeePlain("typeahead"), "Should return to main TUI after closing pager")
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset())
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.SendKeys(KeyF1))
	require.True(t, tf.OutputContainsPlain("Matching", 3*time.Second), "Should show help in the pager")

	require.NoError(t, tf.SendKeys(KeyPagerQ))
	require.True(t, tf.SeePlain("typeahead"), "Should return to main TUI after closing help")
}
