package typeahead

import (
	"github.com/charmbracelet/log"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/logger"
	"typeahead/internal/search"
	"typeahead/internal/ui/services/debounce"
	"typeahead/internal/ui/services/events"
)

// Service is the interaction controller. It owns query, results, focus,
// input mode and dropdown visibility, and turns input events into state
// transitions. All methods must be called from the UI goroutine; the only
// asynchronous piece is the debounce timer, which reports back through the
// notifier as an Elapsed value that the UI loop hands to DebounceElapsed.
type Service struct {
	state     *State
	bus       eventbus.EventBus // domain events, may be nil
	ui        events.EventBus
	debouncer *debounce.Service
	notify    func(Elapsed)
	searcher  Searcher
	cacheSize int
	release   func()
	log       *log.Logger
}

// NewService creates a controller
func NewService(bus eventbus.EventBus, ui events.EventBus, debouncer *debounce.Service, cacheSize int) *Service {
	if ui == nil {
		ui = &events.NullBus{}
	}
	return &Service{
		state:     newState(),
		bus:       bus,
		ui:        ui,
		debouncer: debouncer,
		cacheSize: cacheSize,
		log:       logger.New("typeahead"),
	}
}

func newState() *State {
	return &State{Focus: domain.NoFocus, Mode: domain.ModePointer}
}

// SetNotifier sets the function that delivers debounce expiries to the UI loop
func (s *Service) SetNotifier(fn func(Elapsed)) {
	s.notify = fn
}

// Mount registers the outside-click listener. hit decides what counts as
// inside the results container. Calling Mount twice keeps the first listener.
func (s *Service) Mount(hit HitTester) {
	if s.release != nil {
		return
	}
	s.release = s.ui.Subscribe(events.PointerDownType, func(e interface{}) {
		ev, ok := e.(events.PointerDownEvent)
		if !ok {
			return
		}
		if hit == nil || !hit.InResults(ev.X, ev.Y) {
			s.Dismiss()
		}
	})
}

// Unmount releases the outside-click listener, cancels the pending filter
// pass and discards all state
func (s *Service) Unmount() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.debouncer.Stop()
	s.state = newState()
	s.searcher = nil
}

// mounted reports whether the outside-click listener is registered
func (s *Service) mounted() bool {
	return s.release != nil
}

// SetDataset makes the dataset available. Only the first call has an effect.
// A query typed while the dataset was pending is filtered right away.
func (s *Service) SetDataset(records []domain.Record) error {
	if s.state.Loaded {
		return nil
	}
	engine, err := search.NewEngine(records, s.cacheSize)
	if err != nil {
		return err
	}
	s.searcher = engine
	s.state.Loaded = true
	s.log.Info("dataset available", "records", len(records))

	if s.state.Query != "" {
		s.debouncer.Stop()
		s.runSearch(s.state.Query)
	}
	return nil
}

// Searcher returns the active searcher, nil until the dataset is loaded
func (s *Service) Searcher() Searcher {
	return s.searcher
}

// Keystroke records the new input text and reschedules the filter pass.
// Clearing the input closes the dropdown at once.
func (s *Service) Keystroke(text string) {
	s.state.Query = text
	s.schedule(text)
}

// DebounceElapsed runs the filter pass for the latest keystroke. Stale
// expiries are ignored. Returns whether the pass ran.
func (s *Service) DebounceElapsed(e Elapsed) bool {
	if e.Seq != s.debouncer.Latest() {
		return false
	}
	s.runSearch(e.Query)
	return true
}

func (s *Service) schedule(query string) {
	if query == "" {
		// No pass pending: keys must not act on the old results
		s.debouncer.Stop()
		s.runSearch("")
		return
	}
	s.debouncer.Trigger(func(seq uint64) {
		if s.notify != nil {
			s.notify(Elapsed{Seq: seq, Query: query})
		}
	})
}

func (s *Service) runSearch(query string) {
	if query == "" {
		s.state.Open = false
		s.state.Results = nil
		s.state.Computed = false
		s.setFocus(domain.NoFocus)
		s.ui.Publish(ResultsChangedEvent{})
		return
	}
	if s.searcher == nil {
		// Dataset not loaded yet: the box stays inert
		return
	}

	s.state.Results = s.searcher.Search(query)
	s.state.Computed = true
	s.state.Open = true
	s.setFocus(domain.NoFocus)

	s.ui.Publish(ResultsChangedEvent{Query: query, Count: len(s.state.Results)})
	if s.bus != nil {
		s.bus.Publish(eventbus.SearchCompletedEvent{Query: query, MatchCount: len(s.state.Results)})
	}
}

// PointerEnter focuses row i unless keyboard navigation is active
func (s *Service) PointerEnter(i int) {
	if s.state.Mode == domain.ModeKeyboard || !s.validIndex(i) {
		return
	}
	s.setFocus(i)
}

// PointerLeave clears focus unless keyboard navigation is active
func (s *Service) PointerLeave(i int) {
	if s.state.Mode == domain.ModeKeyboard {
		return
	}
	s.setFocus(domain.NoFocus)
}

// KeyDown handles navigation keys. Arrows and Enter only act while the
// dropdown is open with results.
func (s *Service) KeyDown(key Key) {
	if key == KeyEscape {
		s.Dismiss()
		return
	}
	if !s.state.Open || len(s.state.Results) == 0 {
		return
	}

	last := len(s.state.Results) - 1
	next := s.state.Focus
	switch key {
	case KeyArrowDown:
		s.state.Mode = domain.ModeKeyboard
		if next == domain.NoFocus {
			next = 0
		} else {
			next = min(next+1, last)
		}
	case KeyArrowUp:
		s.state.Mode = domain.ModeKeyboard
		if next == domain.NoFocus {
			next = last
		} else {
			next = max(next-1, 0)
		}
	case KeyEnter:
		s.commitFocused()
		return
	default:
		return
	}

	if next != s.state.Focus {
		s.setFocus(next)
		// Live preview: show the focused name without a new filter pass
		if name := s.state.Results[next].Name; name != "" {
			s.state.Query = name
		}
	}
}

// KeyUp returns to pointer mode so hover can move focus again
func (s *Service) KeyUp() {
	s.state.Mode = domain.ModePointer
}

// RowClick commits the name of row i
func (s *Service) RowClick(i int) {
	if !s.validIndex(i) {
		return
	}
	record := s.state.Results[i]
	if record.Name == "" {
		return
	}
	s.commit(record.Name, &record)
}

// InputFocus reopens the dropdown over existing results
func (s *Service) InputFocus() {
	if len(s.state.Results) > 0 {
		s.state.Open = true
	}
}

// Dismiss closes the dropdown without touching query or results
func (s *Service) Dismiss() {
	s.state.Open = false
}

// commitFocused reads the focus index at the time Enter is handled
func (s *Service) commitFocused() {
	if s.validIndex(s.state.Focus) {
		record := s.state.Results[s.state.Focus]
		if record.Name != "" {
			s.commit(record.Name, &record)
			return
		}
	}
	s.commit(s.state.Query, nil)
}

// commit finalises value as the query and runs it like a typed search
func (s *Service) commit(value string, record *domain.Record) {
	s.state.Query = value
	s.log.Info("query committed", "query", value)
	if s.bus != nil {
		s.bus.Publish(eventbus.QueryCommittedEvent{Query: value, Record: record})
	}
	s.schedule(value)
}

// OnFocusChange registers fn for every change to a non-empty focus, the hook
// used to scroll the focused row into view. Returns the release func.
func (s *Service) OnFocusChange(fn func(index int)) func() {
	return s.ui.Subscribe(events.EventType(FocusChangedEvent{}), func(e interface{}) {
		if ev, ok := e.(FocusChangedEvent); ok && ev.New != domain.NoFocus {
			fn(ev.New)
		}
	})
}

func (s *Service) setFocus(i int) {
	if s.state.Focus == i {
		return
	}
	old := s.state.Focus
	s.state.Focus = i
	s.ui.Publish(FocusChangedEvent{Old: old, New: i})
}

func (s *Service) validIndex(i int) bool {
	return i >= 0 && i < len(s.state.Results)
}

// Snapshot returns a copy of the current state
func (s *Service) Snapshot() Snapshot {
	phase := domain.PhaseClosed
	if s.state.Open && s.state.Computed {
		phase = domain.PhaseOpenListing
		if len(s.state.Results) == 0 {
			phase = domain.PhaseOpenEmpty
		}
	}
	return Snapshot{
		Phase:   phase,
		Query:   s.state.Query,
		Results: s.state.Results,
		Focus:   s.state.Focus,
		Mode:    s.state.Mode,
		Loaded:  s.state.Loaded,
	}
}
