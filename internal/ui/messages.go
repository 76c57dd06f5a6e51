package ui

import (
	"typeahead/internal/eventbus"
	"typeahead/internal/ui/services/typeahead"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchElapsedMsg is posted when the search debounce fires
type searchElapsedMsg typeahead.Elapsed

// keyReleaseMsg is posted when no key has been pressed for the release delay
type keyReleaseMsg struct {
	seq uint64
}

// detailPagerMsg contains the result of the record detail pager
type detailPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
