package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/ui/input/types"
)

// Handler turns key presses into actions. Bound keys become commands, the
// rest go to the query input.
type Handler struct {
	keys      KeyMap
	textInput *textinput.Model
}

// New creates a handler with the default bindings
func New() *Handler {
	ti := textinput.New()
	ti.Prompt = "" // Prompt is handled in the UI layer
	ti.Placeholder = "Search by id, name, address or item"
	ti.Focus()

	return &Handler{
		keys:      DefaultKeyMap(),
		textInput: &ti,
	}
}

// HandleKey processes a key message
func (h *Handler) HandleKey(msg tea.KeyMsg) ([]types.Action, tea.Cmd) {
	switch {
	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{}}, nil
	case key.Matches(msg, h.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, nil
	case key.Matches(msg, h.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, nil
	case key.Matches(msg, h.keys.Commit):
		return []types.Action{types.SubmitTextAction{Text: h.textInput.Value()}}, nil
	case key.Matches(msg, h.keys.Dismiss):
		return []types.Action{types.DismissAction{}}, nil
	case key.Matches(msg, h.keys.PageUp):
		return []types.Action{types.ScrollAction{Direction: "pageup"}}, nil
	case key.Matches(msg, h.keys.PageDown):
		return []types.Action{types.ScrollAction{Direction: "pagedown"}}, nil
	case key.Matches(msg, h.keys.Home):
		return []types.Action{types.ScrollAction{Direction: "home"}}, nil
	case key.Matches(msg, h.keys.End):
		return []types.Action{types.ScrollAction{Direction: "end"}}, nil
	case key.Matches(msg, h.keys.Detail):
		return []types.Action{types.OpenDetailAction{}}, nil
	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)

	// Cursor movement and the like leave the text alone
	if h.textInput.Value() == before {
		return nil, cmd
	}
	return []types.Action{types.UpdateTextAction{Text: h.textInput.Value()}}, cmd
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// SetText replaces the input value without producing an action, used for
// the live preview and commits
func (h *Handler) SetText(text string) {
	if h.textInput.Value() == text {
		return
	}
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

// Text returns the current input value
func (h *Handler) Text() string {
	return h.textInput.Value()
}

// TextInput returns the text input model
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Keys returns the key bindings
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// Focus gives the input the cursor
func (h *Handler) Focus() tea.Cmd {
	return h.textInput.Focus()
}

// Blur removes the cursor from the input
func (h *Handler) Blur() {
	h.textInput.Blur()
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
