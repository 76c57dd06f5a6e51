package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	InputBox      lipgloss.Style
	ResultsBox    lipgloss.Style
	Row           lipgloss.Style
	RowFocused    lipgloss.Style
	ID            lipgloss.Style
	Address       lipgloss.Style
	Highlight     lipgloss.Style
	Tag           lipgloss.Style
	NoResults     lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		ResultsBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		Row:           lipgloss.NewStyle(),
		RowFocused:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		ID:            lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Address:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Tag:           lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true), // yellow
		NoResults:     lipgloss.NewStyle().Faint(true).Italic(true).Padding(0, 1),
		Dim:           lipgloss.NewStyle().Faint(true),
		Help:          lipgloss.NewStyle().Faint(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
