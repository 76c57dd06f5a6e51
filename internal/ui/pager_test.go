package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"typeahead/internal/domain"
	"typeahead/internal/ui/input"
)

func TestRecordDetailOrdersKnownKeysFirst(t *testing.T) {
	record := domain.Record{
		ID:      "7",
		Name:    "Initech",
		Address: "Office Park",
		Items:   []string{"stapler", "tps report"},
		Extra:   map[string]any{"zone": "b", "floor": 3},
	}

	out, err := RecordDetail(record)
	require.NoError(t, err)

	var keys []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, " ") {
			keys = append(keys, strings.SplitN(line, ":", 2)[0])
		}
	}
	assert.Equal(t, []string{"id", "name", "address", "items", "floor", "zone"}, keys)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	assert.Equal(t, "7", back["id"], "numeric-looking ids stay strings")
	assert.Equal(t, []any{"stapler", "tps report"}, back["items"])
	assert.Equal(t, 3, back["floor"])
}

func TestRecordDetailEmptyItems(t *testing.T) {
	out, err := RecordDetail(domain.Record{Name: "Bare"})
	require.NoError(t, err)
	assert.Contains(t, out, "items: []")
}

func TestShowWithoutProgram(t *testing.T) {
	assert.Error(t, NewPager().Show("content"))
}

func TestHelpContentListsBindings(t *testing.T) {
	out := ansi.Strip(NewHelpRenderer().RenderHelpContent(input.DefaultKeyMap(), ""))
	for _, want := range []string{"typeahead help", "enter", "esc", "ctrl+o", "included in item"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Configuration")
}

func TestHelpContentShowsConfigFile(t *testing.T) {
	out := ansi.Strip(NewHelpRenderer().RenderHelpContent(input.DefaultKeyMap(), "/tmp/typeahead.toml"))
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "/tmp/typeahead.toml")
}
