// Package types holds the actions the key handler emits for the model.
package types

// Action is one step the model performs in response to input
type Action interface {
	Type() string
}

// Navigation actions
type NavigateAction struct {
	Direction string // "up" or "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// ScrollAction moves the result window without changing focus
type ScrollAction struct {
	Direction string // "pageup", "pagedown", "home", "end"
}

func (a ScrollAction) Type() string { return "scroll" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

// Command actions
type OpenDetailAction struct{}

func (a OpenDetailAction) Type() string { return "open_detail" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
