package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventStationsRequested EventType = "StationsRequested"
	EventStationsLoaded    EventType = "StationsLoaded"
	EventStationsFailed    EventType = "StationsFailed"
	EventSearchTextChanged EventType = "SearchTextChanged"
	EventStationSelected   EventType = "StationSelected"
	EventListboxOpened     EventType = "ListboxOpened"
	EventListboxClosed     EventType = "ListboxClosed"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// StationsRequestedEvent is emitted when a station fetch starts
type StationsRequestedEvent struct {
	URL string
}

func (e StationsRequestedEvent) Type() EventType { return EventStationsRequested }

// StationsLoadedEvent is emitted when the station list has been fetched
type StationsLoadedEvent struct {
	Stations []Station
}

func (e StationsLoadedEvent) Type() EventType { return EventStationsLoaded }

// StationsFailedEvent is emitted when the station fetch fails
type StationsFailedEvent struct {
	Err error
}

func (e StationsFailedEvent) Type() EventType { return EventStationsFailed }

// SearchTextChangedEvent is emitted when a combobox reports new search text
type SearchTextChangedEvent struct {
	Field string
	Text  string
}

func (e SearchTextChangedEvent) Type() EventType { return EventSearchTextChanged }

// StationSelectedEvent is emitted when an option is chosen in a field
type StationSelectedEvent struct {
	Field   string
	Station string
}

func (e StationSelectedEvent) Type() EventType { return EventStationSelected }

// ListboxOpenedEvent is emitted when a field's listbox expands
type ListboxOpenedEvent struct {
	Field string
}

func (e ListboxOpenedEvent) Type() EventType { return EventListboxOpened }

// ListboxClosedEvent is emitted when a field's listbox collapses
type ListboxClosedEvent struct {
	Field string
}

func (e ListboxClosedEvent) Type() EventType { return EventListboxClosed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
