package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/ui/input"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager.
// configFile is left out when empty.
func (r *HelpRenderer) RenderHelpContent(keys input.KeyMap, configFile string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	section := func(title string, bindings ...key.Binding) {
		help.WriteString(sectionStyle.Render(title))
		help.WriteString("\n")
		for _, b := range bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %-12s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(titleStyle.Render("typeahead help"))
	help.WriteString("\n")

	section("Results", keys.Down, keys.Up, keys.Commit, keys.Dismiss)
	help.WriteString(noteStyle.Render("  Arrow keys preview the focused name in the input. Hover is ignored until the key is released."))
	help.WriteString("\n\n")

	section("Scrolling", keys.PageUp, keys.PageDown, keys.Home, keys.End)
	help.WriteString(noteStyle.Render("  The mouse wheel scrolls the list, a click selects a row."))
	help.WriteString("\n\n")

	section("Other", keys.Detail, keys.Help, keys.Quit)

	help.WriteString(sectionStyle.Render("Matching"))
	help.WriteString("\n")
	help.WriteString(descStyle.Render("  A record matches when any field contains the query, ignoring case."))
	help.WriteString("\n")
	help.WriteString(descStyle.Render("  Rows whose items start with the query are marked \"included in item\"."))

	if configFile != "" {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render("Configuration"))
		help.WriteString("\n")
		help.WriteString(descStyle.Render("  " + configFile))
	}

	return help.String()
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager() tea.Cmd {
	content := m.helpRender.RenderHelpContent(m.inputHandler.Keys(), m.configFile)
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}
