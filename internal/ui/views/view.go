package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/domain"
	"typeahead/internal/ui/services/typeahead"
)

const defaultWidth = 80

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width     int
	Height    int
	Input     string // rendered text input
	Snapshot  typeahead.Snapshot
	Offset    int // first visible result row
	MaxRows   int
	Source    string
	Loading   bool
	LoadError string
	Committed string
	HelpView  string
	Marker    string // appended to the title, e.g. a readiness marker for tests
}

// Region is a rectangle of terminal cells
type Region struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell x, y lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Layout records where the last render put things, for mouse hit-testing
type Layout struct {
	Input   Region
	Results Region // zero while the dropdown is closed
	RowsTop int    // screen line of the first visible row
	Rows    int    // number of visible rows
}

// InResults reports whether x, y is inside the results container
func (l Layout) InResults(x, y int) bool {
	return l.Results.Contains(x, y)
}

// InInput reports whether x, y is inside the input box
func (l Layout) InInput(x, y int) bool {
	return l.Input.Contains(x, y)
}

// RowLine maps a screen position to a line within the visible rows
func (l Layout) RowLine(x, y int) (int, bool) {
	if !l.Results.Contains(x, y) || y < l.RowsTop || y >= l.RowsTop+l.Rows {
		return 0, false
	}
	return y - l.RowsTop, true
}

// Renderer handles all view rendering
type Renderer struct {
	styles    *Styles
	rowRender *RecordRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:    styles,
		rowRender: NewRecordRenderer(styles, nil),
	}
}

// Rows returns the row renderer
func (r *Renderer) Rows() *RecordRenderer {
	return r.rowRender
}

// Render produces the complete view and its layout
func (r *Renderer) Render(state ViewState) (string, Layout) {
	var layout Layout
	width := state.Width
	if width <= 0 {
		width = defaultWidth // Default terminal width
	}

	var blocks []string
	line := 0
	add := func(block string) int {
		top := line
		blocks = append(blocks, block)
		line += lipgloss.Height(block)
		return top
	}

	add(r.renderTitle(state, width))

	// Border and padding take 4 columns
	input := r.styles.InputBox.Width(width - 2).Render(r.styles.Prompt.Render("> ") + state.Input)
	top := add(input)
	layout.Input = Region{X: 0, Y: top, Width: lipgloss.Width(input), Height: lipgloss.Height(input)}

	if results, rows := r.renderResults(state, width); results != "" {
		top = add(results)
		layout.Results = Region{X: 0, Y: top, Width: lipgloss.Width(results), Height: lipgloss.Height(results)}
		layout.RowsTop = top + 1
		layout.Rows = rows
	}

	if status := r.renderStatus(state); status != "" {
		add(status)
	}

	content := strings.Join(blocks, "\n")

	// Push help to the bottom
	if state.HelpView != "" {
		helpText := r.styles.Help.Render(state.HelpView)
		padding := state.Height - line - lipgloss.Height(helpText)
		if padding > 0 {
			content += strings.Repeat("\n", padding)
		}
		content += "\n" + helpText
	}

	return content, layout
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("typeahead")
	if state.Marker != "" {
		logo += " " + state.Marker
	}
	if state.Source == "" {
		return logo
	}
	source := r.styles.Dim.Render(state.Source)
	padding := width - lipgloss.Width(logo) - lipgloss.Width(source)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + source
}

// renderResults draws the dropdown for the open phases. Returns the block
// and the number of rows in it.
func (r *Renderer) renderResults(state ViewState, width int) (string, int) {
	snap := state.Snapshot
	rowWidth := width - 2 // borders

	switch snap.Phase {
	case domain.PhaseOpenEmpty:
		return r.styles.ResultsBox.Width(rowWidth).Render(r.styles.NoResults.Render("No results")), 0

	case domain.PhaseOpenListing:
		maxRows := state.MaxRows
		if maxRows <= 0 {
			maxRows = len(snap.Results)
		}
		start := min(max(state.Offset, 0), len(snap.Results))
		end := min(start+maxRows, len(snap.Results))

		lines := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			lines = append(lines, r.rowRender.RenderRecord(RowProps{
				Record:  snap.Results[i],
				Query:   snap.Query,
				Focused: i == snap.Focus,
				Index:   i,
			}, rowWidth))
		}
		return r.styles.ResultsBox.Width(rowWidth).Render(strings.Join(lines, "\n")), len(lines)
	}
	return "", 0
}

func (r *Renderer) renderStatus(state ViewState) string {
	snap := state.Snapshot
	switch {
	case state.LoadError != "":
		return r.styles.StatusError.Render("Dataset unavailable: " + state.LoadError)
	case state.Loading:
		return r.styles.StatusLoading.Render("Loading dataset…")
	case snap.Phase == domain.PhaseOpenListing:
		n := len(snap.Results)
		text := fmt.Sprintf("%d match", n)
		if n != 1 {
			text += "es"
		}
		if state.MaxRows > 0 && n > state.MaxRows {
			start := max(state.Offset, 0)
			text += fmt.Sprintf(" (%d-%d shown)", start+1, min(start+state.MaxRows, n))
		}
		return r.styles.Dim.Render(text)
	case state.Committed != "":
		return r.styles.StatusSuccess.Render("Selected: " + state.Committed)
	}
	return ""
}
