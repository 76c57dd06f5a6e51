package typeahead

import "typeahead/internal/domain"

// State holds all interaction state of the widget
type State struct {
	Query    string
	Results  []domain.Record
	Computed bool // Results hold the output of a filter pass
	Focus    int  // domain.NoFocus or an index into Results
	Mode     domain.InputMode
	Open     bool
	Loaded   bool // dataset available
}

// Snapshot is a read-only copy of State with the derived phase
type Snapshot struct {
	Phase   domain.Phase
	Query   string
	Results []domain.Record
	Focus   int
	Mode    domain.InputMode
	Loaded  bool
}

// Focused returns the focused record, if any
func (s Snapshot) Focused() (domain.Record, bool) {
	if s.Focus < 0 || s.Focus >= len(s.Results) {
		return domain.Record{}, false
	}
	return s.Results[s.Focus], true
}

// Key is a navigation key the controller reacts to
type Key int

const (
	KeyOther Key = iota
	KeyArrowDown
	KeyArrowUp
	KeyEnter
	KeyEscape
)

// Searcher runs the filter over the loaded dataset
type Searcher interface {
	Search(query string) []domain.Record
}

// HitTester tells whether a screen position lies inside the results container
type HitTester interface {
	InResults(x, y int) bool
}

// HitTesterFunc adapts a function to HitTester
type HitTesterFunc func(x, y int) bool

func (f HitTesterFunc) InResults(x, y int) bool { return f(x, y) }

// Elapsed is posted back to the UI loop when the debounce timer fires
type Elapsed struct {
	Seq   uint64
	Query string
}

// Event types published on the UI bus

// FocusChangedEvent is published whenever the focus index changes
type FocusChangedEvent struct {
	Old int
	New int
}

// ResultsChangedEvent is published whenever the result set is replaced or cleared
type ResultsChangedEvent struct {
	Query string
	Count int
}
