package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingUpdatesText(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("a"))
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "a"}, actions[0])

	actions, _ = h.HandleKey(runes("c"))
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "ac"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "a"}}, actions)
	assert.Equal(t, "a", h.Text())
}

func TestCursorMovementProducesNoAction(t *testing.T) {
	h := New()
	h.HandleKey(runes("ab"))

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Empty(t, actions)
	assert.Equal(t, "ab", h.Text())
}

func TestBoundKeys(t *testing.T) {
	h := New()
	h.HandleKey(runes("co"))

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want types.Action
	}{
		{"down", tea.KeyMsg{Type: tea.KeyDown}, types.NavigateAction{Direction: "down"}},
		{"ctrl+n", tea.KeyMsg{Type: tea.KeyCtrlN}, types.NavigateAction{Direction: "down"}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, types.NavigateAction{Direction: "up"}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, types.SubmitTextAction{Text: "co"}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, types.DismissAction{}},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, types.ScrollAction{Direction: "pagedown"}},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, types.ScrollAction{Direction: "pageup"}},
		{"ctrl+o", tea.KeyMsg{Type: tea.KeyCtrlO}, types.OpenDetailAction{}},
		{"f1", tea.KeyMsg{Type: tea.KeyF1}, types.ToggleHelpAction{}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, _ := h.HandleKey(tt.msg)
			assert.Equal(t, []types.Action{tt.want}, actions)
			assert.Equal(t, "co", h.Text(), "bound keys never edit the query")
		})
	}
}

func TestSetTextIsSilent(t *testing.T) {
	h := New()
	h.SetText("Acme Corp")
	assert.Equal(t, "Acme Corp", h.Text())

	actions, _ := h.HandleKey(runes("!"))
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "Acme Corp!"}}, actions)
}

func TestHelpBindings(t *testing.T) {
	k := DefaultKeyMap()
	assert.NotEmpty(t, k.ShortHelp())
	for _, col := range k.FullHelp() {
		for _, b := range col {
			assert.NotEmpty(t, b.Help().Key)
		}
	}
}
