package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDatasetLoaded   EventType = "DatasetLoaded"
	EventDatasetFailed   EventType = "DatasetFailed"
	EventSearchCompleted EventType = "SearchCompleted"
	EventQueryCommitted  EventType = "QueryCommitted"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DatasetLoadedEvent is emitted once the data source has delivered its records
type DatasetLoadedEvent struct {
	Source  string
	Records []Record
}

func (e DatasetLoadedEvent) Type() EventType { return EventDatasetLoaded }

// DatasetFailedEvent is emitted when the data source could not be read
type DatasetFailedEvent struct {
	Source string
	Err    error
}

func (e DatasetFailedEvent) Type() EventType { return EventDatasetFailed }

// SearchCompletedEvent is emitted after a debounced filter pass
type SearchCompletedEvent struct {
	Query      string
	MatchCount int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// QueryCommittedEvent is emitted when a query is finalised by Enter or a row click.
// Record is nil when nothing was focused.
type QueryCommittedEvent struct {
	Query  string
	Record *Record
}

func (e QueryCommittedEvent) Type() EventType { return EventQueryCommitted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Source   string
	Defaults bool // no file at Path, built-in defaults in use
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
