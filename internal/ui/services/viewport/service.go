package viewport

import (
	"typeahead/internal/ui/services/events"
	"typeahead/internal/ui/services/typeahead"
)

// Service keeps the focused result row inside the visible window of the
// dropdown. Scrolling moves the window by the smallest amount that brings
// the row into view.
type Service struct {
	state   *State
	bus     events.EventBus
	release []func()
}

// NewService creates a viewport showing at most height rows
func NewService(bus events.EventBus, height int) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{Height: max(height, 1)},
		bus:   bus,
	}
}

// FocusSource reports focus changes to a non-empty row
type FocusSource interface {
	OnFocusChange(fn func(index int)) func()
}

// Attach follows the controller: the window resets on every new result set
// and scrolls to each newly focused row. Returns a func that detaches.
func (s *Service) Attach(focus FocusSource) func() {
	s.release = append(s.release,
		s.bus.Subscribe(events.EventType(typeahead.ResultsChangedEvent{}), func(e interface{}) {
			if ev, ok := e.(typeahead.ResultsChangedEvent); ok {
				s.Reset(ev.Count)
			}
		}),
	)
	if focus != nil {
		s.release = append(s.release, focus.OnFocusChange(s.ScrollIntoView))
	}
	return s.Detach
}

// Detach releases the subscriptions
func (s *Service) Detach() {
	for _, release := range s.release {
		release()
	}
	s.release = nil
}

// Offset returns the index of the first visible row
func (s *Service) Offset() int {
	return s.state.Offset
}

// Height returns the number of rows the window can show
func (s *Service) Height() int {
	return s.state.Height
}

// SetHeight changes the window size and keeps the offset valid
func (s *Service) SetHeight(height int) {
	height = max(height, 1)
	if height == s.state.Height {
		return
	}
	s.state.Height = height
	s.setOffset(s.clampOffset(s.state.Offset))
}

// SetTotal updates the row count without moving the window unless needed
func (s *Service) SetTotal(total int) {
	s.state.Total = max(total, 0)
	s.setOffset(s.clampOffset(s.state.Offset))
}

// Reset starts a new list scrolled to the top
func (s *Service) Reset(total int) {
	s.state.Total = max(total, 0)
	s.setOffset(0)
}

// ScrollIntoView moves the window to the nearest position showing row i
func (s *Service) ScrollIntoView(i int) {
	if i < 0 || i >= s.state.Total {
		return
	}
	switch {
	case i < s.state.Offset:
		s.setOffset(i)
	case i >= s.state.Offset+s.state.Height:
		s.setOffset(i - s.state.Height + 1)
	}
}

// Scroll moves the window without touching focus, as the mouse wheel does
func (s *Service) Scroll(direction Direction) {
	page := max(s.state.Height-1, 1)
	offset := s.state.Offset
	switch direction {
	case DirectionUp:
		offset--
	case DirectionDown:
		offset++
	case DirectionPageUp:
		offset -= page
	case DirectionPageDown:
		offset += page
	case DirectionHome:
		offset = 0
	case DirectionEnd:
		offset = s.state.Total
	}
	s.setOffset(s.clampOffset(offset))
}

// RowAt maps a line within the window to a row index, or -1
func (s *Service) RowAt(line int) int {
	if line < 0 || line >= s.state.Height {
		return -1
	}
	i := s.state.Offset + line
	if i >= s.state.Total {
		return -1
	}
	return i
}

func (s *Service) clampOffset(offset int) int {
	limit := max(s.state.Total-s.state.Height, 0)
	if offset > limit {
		return limit
	}
	if offset < 0 {
		return 0
	}
	return offset
}

func (s *Service) setOffset(offset int) {
	if offset == s.state.Offset {
		return
	}
	s.state.Offset = offset
	s.bus.Publish(ChangedEvent{Offset: offset, Height: s.state.Height})
}
