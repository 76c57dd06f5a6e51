package viewport

// State holds the visible window over the result list
type State struct {
	Offset int // index of the first visible row
	Height int // rows the window can show
	Total  int // rows in the list
}

// Direction represents scroll directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// ChangedEvent is published when the window moves or resizes
type ChangedEvent struct {
	Offset int
	Height int
}
