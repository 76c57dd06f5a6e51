package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"typeahead/internal/domain"
	"typeahead/internal/search"
)

const (
	columnGap   = 2
	idWidth     = 6
	minRowWidth = 20
	focusMarker = "› "
	plainMarker = "  "
)

// RowProps is everything a result row needs to draw itself
type RowProps struct {
	Record  domain.Record
	Query   string
	Focused bool
	Index   int
}

// TagMatcher decides whether a row gets the item annotation
type TagMatcher interface {
	TagMatch(record domain.Record, query string) bool
}

type tagMatchFunc func(domain.Record, string) bool

func (f tagMatchFunc) TagMatch(r domain.Record, q string) bool { return f(r, q) }

// RecordRenderer handles rendering of result rows
type RecordRenderer struct {
	styles *Styles
	tags   TagMatcher
}

// NewRecordRenderer creates a new record renderer. A nil matcher uses
// search.TagMatch.
func NewRecordRenderer(styles *Styles, tags TagMatcher) *RecordRenderer {
	if tags == nil {
		tags = tagMatchFunc(search.TagMatch)
	}
	return &RecordRenderer{
		styles: styles,
		tags:   tags,
	}
}

// SetTagMatcher swaps the matcher, e.g. for the indexed one once the dataset is loaded
func (r *RecordRenderer) SetTagMatcher(tags TagMatcher) {
	if tags != nil {
		r.tags = tags
	}
}

// Annotation returns the item annotation for a row, or "" when the query
// does not start any of the record's items
func (r *RecordRenderer) Annotation(record domain.Record, query string) string {
	if !r.tags.TagMatch(record, query) {
		return ""
	}
	return `"` + query + `" included in item`
}

// RenderRecord renders one row exactly width cells wide
func (r *RecordRenderer) RenderRecord(p RowProps, width int) string {
	if width < minRowWidth {
		width = minRowWidth
	}

	base := r.styles.Row
	marker := plainMarker
	if p.Focused {
		base = r.styles.RowFocused
		marker = focusMarker
	}

	avail := width - runewidth.StringWidth(marker)

	tag := r.Annotation(p.Record, p.Query)
	if tag != "" {
		tag = " " + runewidth.Truncate(tag, avail/2, "…")
	}
	avail -= runewidth.StringWidth(tag)

	idW := min(idWidth, avail/4)
	rest := max(avail-idW-2*columnGap, 0)
	nameW := rest * 2 / 5
	addrW := rest - nameW

	gap := base.Render(strings.Repeat(" ", columnGap))

	var b strings.Builder
	b.WriteString(base.Render(marker))
	b.WriteString(r.field(p.Record.ID, idW, p.Query, r.styles.ID.Inherit(base)))
	b.WriteString(gap)
	b.WriteString(r.field(p.Record.Name, nameW, p.Query, lipgloss.NewStyle().Bold(true).Inherit(base)))
	b.WriteString(gap)
	b.WriteString(r.field(p.Record.Address, addrW, p.Query, r.styles.Address.Inherit(base)))
	if tag != "" {
		b.WriteString(r.styles.Tag.Inherit(base).Render(tag))
	}
	return b.String()
}

// field truncates text to w cells, highlights the first match of query in
// what remains and pads to w
func (r *RecordRenderer) field(text string, w int, query string, style lipgloss.Style) string {
	if w <= 0 {
		return ""
	}
	shown := runewidth.Truncate(text, w, "…")
	seg := search.Highlight(shown, query)

	var b strings.Builder
	if seg.Before != "" {
		b.WriteString(style.Render(seg.Before))
	}
	if seg.Found {
		b.WriteString(r.styles.Highlight.Inherit(style).Render(seg.Match))
		if seg.After != "" {
			b.WriteString(style.Render(seg.After))
		}
	}
	if pad := w - runewidth.StringWidth(shown); pad > 0 {
		b.WriteString(style.Render(strings.Repeat(" ", pad)))
	}
	return b.String()
}
